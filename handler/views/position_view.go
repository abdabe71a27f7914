package views

import (
	"lever/core"

	"github.com/shopspring/decimal"
)

// Position position view with values at the current oracle price
type Position struct {
	core.Position
	CollateralValue decimal.Decimal `json:"collateral_value"`
	// Health collateral value relative to debt, basis points
	Health decimal.Decimal `json:"health"`
	// Liquidatable true when the position is past the market's
	// liquidation threshold
	Liquidatable bool `json:"liquidatable"`
}
