package views

import (
	"lever/core"

	"github.com/shopspring/decimal"
)

// Pool pool view
type Pool struct {
	core.Pool
	TotalAssets decimal.Decimal `json:"total_assets"`
	// SharePrice assets per share; 1 for an empty pool
	SharePrice decimal.Decimal `json:"share_price"`
}

// PoolShare pool share view
type PoolShare struct {
	core.PoolShare
	// Assets current redemption value of the shares
	Assets decimal.Decimal `json:"assets"`
}
