package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Pool pooled-liquidity vault state. One row per deployment.
// The idle balance is not pool-owned state; it is the custodian's
// balance fact, queried per call. totalAssets = idle + TotalBorrowedOut.
type Pool struct {
	ID      uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	AssetID string `sql:"size:36;unique_index:pool_asset_idx" json:"asset_id"`
	// TotalBorrowedOut aggregate principal currently lent to markets
	TotalBorrowedOut decimal.Decimal `sql:"type:decimal(32,16)" json:"total_borrowed_out"`
	TotalShares      decimal.Decimal `sql:"type:decimal(32,16)" json:"total_shares"`
	Version          int64           `sql:"default:0" json:"version"`
	CreatedAt        time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// PoolShare a depositor's claim on the pool
type PoolShare struct {
	UserID    string          `sql:"size:36;PRIMARY_KEY" json:"user_id"`
	Shares    decimal.Decimal `sql:"type:decimal(32,16)" json:"shares"`
	Version   int64           `sql:"default:0" json:"version"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// PoolMarket explicit capability row on the pool's market allow-list
type PoolMarket struct {
	MarketSymbol string    `sql:"size:20;PRIMARY_KEY" json:"market_symbol"`
	Enabled      bool      `json:"enabled"`
	UpdatedAt    time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IPoolStore pool store interface
type IPoolStore interface {
	Save(ctx context.Context, pool *Pool) error
	Find(ctx context.Context) (*Pool, error)
	Update(ctx context.Context, pool *Pool, version int64) error

	FindShare(ctx context.Context, userID string) (*PoolShare, error)
	SaveShare(ctx context.Context, share *PoolShare) error

	IsMarketAuthorized(ctx context.Context, marketSymbol string) (bool, error)
	SetMarketStatus(ctx context.Context, marketSymbol string, enabled bool) error
}

// IPoolService pooled-liquidity vault. Markets never touch pool counters
// directly; every mutation goes through these entry points.
type IPoolService interface {
	// Deposit mints shares for a liquidity provider
	Deposit(ctx context.Context, userID string, amount decimal.Decimal) (decimal.Decimal, error)
	// Redeem burns shares and returns the proportional assets
	Redeem(ctx context.Context, userID string, shares decimal.Decimal) (decimal.Decimal, error)
	// Draw lends amount out to receiver on behalf of an authorized market
	Draw(ctx context.Context, marketSymbol, receiver string, amount decimal.Decimal) error
	// Repay returns principal from an authorized market; over-repayment
	// relative to the tracked borrowed total is kept as a donation
	Repay(ctx context.Context, marketSymbol string, amount decimal.Decimal) error
	// BadDebt writes off writtenOff while recovering only recovered,
	// socializing the shortfall across all share holders
	BadDebt(ctx context.Context, marketSymbol string, writtenOff, recovered decimal.Decimal) error
	TotalAssets(ctx context.Context) (decimal.Decimal, error)
}
