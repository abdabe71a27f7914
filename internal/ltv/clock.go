package ltv

import (
	"errors"
	"time"

	"lever/core"
)

// Mark current accrual mark for a market's time basis. Block basis derives
// a synthetic block count from elapsed seconds since genesis; second basis
// uses the raw unix clock.
func Mark(basis core.TimeBasis, genesis, secondsPerBlock int64, now time.Time) (int64, error) {
	switch basis {
	case core.TimeBasisBlock:
		if secondsPerBlock <= 0 {
			return 0, errors.New("secondsPerBlock should not be less than or equal zero")
		}

		seconds := now.UTC().Unix() - genesis
		if seconds <= 0 {
			return 0, errors.New("invalid blocks")
		}

		return seconds / secondsPerBlock, nil
	case core.TimeBasisSecond:
		return now.UTC().Unix(), nil
	default:
		return 0, errors.New("unknown time basis: " + string(basis))
	}
}
