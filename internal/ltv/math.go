package ltv

import (
	"github.com/shopspring/decimal"
)

var (
	// Scale fixed-point scale for rates and ratios, 10000 = 100%
	Scale int64 = 10000
	// MaxPrecision max precision
	MaxPrecision int32 = 8
	// MaxHealth sentinel health for a position with no debt; compares
	// above every real threshold and never triggers liquidation
	MaxHealth = decimal.New(1, 18)

	scale = decimal.NewFromInt(Scale)
)

// Interest capitalized interest for elapsed accrual periods.
// interest = principal * rate * elapsed / Scale, truncated toward zero.
// The truncation systematically under-accrues, a conservative bias that
// favors the pool.
func Interest(principal decimal.Decimal, rateBPS, elapsed int64) decimal.Decimal {
	if !principal.IsPositive() || elapsed <= 0 {
		return decimal.Zero
	}

	return principal.
		Mul(decimal.NewFromInt(rateBPS)).
		Mul(decimal.NewFromInt(elapsed)).
		Div(scale).
		Truncate(MaxPrecision)
}

// MaxBorrow borrow ceiling for a collateral value at the given LTV.
// max_borrow = collateral_value * borrow_ltv / Scale
func MaxBorrow(collateralValue decimal.Decimal, borrowLTV int64) decimal.Decimal {
	return collateralValue.
		Mul(decimal.NewFromInt(borrowLTV)).
		Div(scale).
		Truncate(MaxPrecision)
}

// Health bps-scaled ratio of collateral value to debt value.
// MaxHealth when there is no debt; zero when debt is outstanding against
// no collateral. A position is liquidatable iff health < liquidation LTV.
func Health(collateralValue, debtValue decimal.Decimal) decimal.Decimal {
	if !debtValue.IsPositive() {
		return MaxHealth
	}
	if !collateralValue.IsPositive() {
		return decimal.Zero
	}

	return collateralValue.Mul(scale).Div(debtValue).Truncate(MaxPrecision)
}

// Liquidatable reports whether debt has crossed the liquidation threshold
// against collateral value: debt_value / collateral_value > liquidation_ltv.
// Cross-multiplied so no truncation can move a position across the line.
func Liquidatable(collateralValue, debtValue decimal.Decimal, liquidationLTV int64) bool {
	if !debtValue.IsPositive() {
		return false
	}

	return debtValue.Mul(scale).GreaterThan(collateralValue.Mul(decimal.NewFromInt(liquidationLTV)))
}

// Apportion splits a repayment between principal and interest.
// principal = repay * original / debt, truncated, so the interest portion
// absorbs the rounding remainder and principal+interest == repay exactly.
func Apportion(repay, original, debt decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	if !debt.IsPositive() {
		return decimal.Zero, decimal.Zero
	}

	principal := repay.Mul(original).Div(debt).Truncate(MaxPrecision)
	return principal, repay.Sub(principal)
}

// Seize collateral units awarded for repaying debtAmount of loan asset at
// the given price, including the liquidation bonus.
// seized = (debt_amount / price) * (Scale + bonus) / Scale
func Seize(debtAmount, price decimal.Decimal, bonusBPS int64) decimal.Decimal {
	if !price.IsPositive() {
		return decimal.Zero
	}

	units := debtAmount.Div(price).Truncate(MaxPrecision)
	return units.
		Mul(decimal.NewFromInt(Scale + bonusBPS)).
		Div(scale).
		Truncate(MaxPrecision)
}

// SharesForDeposit pool shares minted for an asset deposit, proportional
// to the claim on totalAssets; 1:1 when no shares are outstanding.
func SharesForDeposit(assets, totalShares, totalAssets decimal.Decimal) decimal.Decimal {
	if !totalShares.IsPositive() || !totalAssets.IsPositive() {
		return assets
	}

	return assets.Mul(totalShares).Div(totalAssets).Truncate(MaxPrecision)
}

// AssetsForShares assets redeemed for burning shares.
func AssetsForShares(shares, totalShares, totalAssets decimal.Decimal) decimal.Decimal {
	if !totalShares.IsPositive() {
		return decimal.Zero
	}

	return shares.Mul(totalAssets).Div(totalShares).Truncate(MaxPrecision)
}
