package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PriceTicker a single oracle reading: loan-asset units per collateral unit
type PriceTicker struct {
	AssetID   string          `json:"asset_id"`
	Price     decimal.Decimal `json:"price"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// IPriceOracleService price source. Every public engine operation re-reads
// the price; nothing is cached inside the engine.
type IPriceOracleService interface {
	// GetPrice returns the current price for the asset, rejecting stale
	// data with ErrStalePrice and non-positive values with ErrInvalidPrice
	GetPrice(ctx context.Context, assetID string) (decimal.Decimal, error)
}
