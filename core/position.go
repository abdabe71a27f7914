package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Position per-account ledger entry in one market.
// Created implicitly on first deposit and never deleted; a fully
// unwound position decays back to the zero state.
type Position struct {
	ID         uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	UserID     string `sql:"size:36;unique_index:position_idx" json:"user_id"`
	Symbol     string `sql:"size:20;unique_index:position_idx" json:"symbol"`
	Collateral decimal.Decimal `sql:"type:decimal(32,16)" json:"collateral"`
	// Principal outstanding debt including capitalized interest
	Principal decimal.Decimal `sql:"type:decimal(32,16)" json:"principal"`
	// OriginalPrincipal cumulative drawn principal net of principal repaid;
	// never exceeds Principal since interest only adds
	OriginalPrincipal decimal.Decimal `sql:"type:decimal(32,16)" json:"original_principal"`
	// AccrualMark block number or unix second at which interest was last
	// folded into Principal
	AccrualMark int64     `json:"accrual_mark"`
	Version     int64     `sql:"default:0" json:"version"`
	CreatedAt   time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IPositionStore position store interface
type IPositionStore interface {
	Save(ctx context.Context, position *Position) error
	Find(ctx context.Context, userID, symbol string) (*Position, error)
	FindByUser(ctx context.Context, userID string) ([]*Position, error)
	List(ctx context.Context, symbol string, fromID uint64, limit int) ([]*Position, error)
	Update(ctx context.Context, position *Position, version int64) error
}
