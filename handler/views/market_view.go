package views

import (
	"lever/core"

	"github.com/shopspring/decimal"
)

// Market market view
type Market struct {
	core.Market
	Price decimal.Decimal `json:"price"`
}
