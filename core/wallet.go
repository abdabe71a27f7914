package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Balance funds held for an account per asset
type Balance struct {
	ID        uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Account   string          `sql:"size:36;unique_index:balance_idx" json:"account"`
	AssetID   string          `sql:"size:36;unique_index:balance_idx" json:"asset_id"`
	Amount    decimal.Decimal `sql:"type:decimal(32,16)" json:"amount"`
	Version   int64           `sql:"default:0" json:"version"`
	UpdatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Transfer journal row, one per value movement; Amount is signed from the
// account's point of view
type Transfer struct {
	ID        uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	TraceID   string          `sql:"size:36;unique_index:trace_idx" json:"trace_id"`
	Account   string          `sql:"size:36;index:account_idx" json:"account"`
	AssetID   string          `sql:"size:36" json:"asset_id"`
	Amount    decimal.Decimal `sql:"type:decimal(32,16)" json:"amount"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// IWalletStore wallet store interface
type IWalletStore interface {
	FindBalance(ctx context.Context, account, assetID string) (*Balance, error)
	SaveBalance(ctx context.Context, balance *Balance, version int64) error
	CreateTransfer(ctx context.Context, transfer *Transfer) error
	ListTransfers(ctx context.Context, account string, fromID uint64, limit int) ([]*Transfer, error)
}
