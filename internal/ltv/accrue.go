package ltv

import (
	"github.com/shopspring/decimal"

	"lever/core"
)

// Accrue folds interest accrued since the position's last mark into its
// principal and advances the mark. No-op on a debt-free position or within
// the same period, so repeated calls at one mark add nothing. Interest
// capitalizes on every touch: compounding happens at call granularity.
func Accrue(p *core.Position, rateBPS, mark int64) decimal.Decimal {
	if !p.Principal.IsPositive() {
		return decimal.Zero
	}

	elapsed := mark - p.AccrualMark
	if elapsed <= 0 {
		return decimal.Zero
	}

	interest := Interest(p.Principal, rateBPS, elapsed)
	p.Principal = p.Principal.Add(interest)
	p.AccrualMark = mark

	return interest
}
