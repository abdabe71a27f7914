package core

import "context"

// IBlockService accrual-mark clock. Markets on a block basis read a
// synthetic block height; markets on a second basis read the unix clock.
type IBlockService interface {
	CurrentMark(ctx context.Context, market *Market) (int64, error)
}
