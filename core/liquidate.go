package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// LiquidationResult settlement breakdown handed back to the liquidator
type LiquidationResult struct {
	UserID           string          `json:"user_id"`
	Symbol           string          `json:"symbol"`
	DebtRepaid       decimal.Decimal `json:"debt_repaid"`
	PrincipalPortion decimal.Decimal `json:"principal_portion"`
	InterestPortion  decimal.Decimal `json:"interest_portion"`
	CollateralSeized decimal.Decimal `json:"collateral_seized"`
	Recovered        decimal.Decimal `json:"recovered"`
	// BadDebt true when the recovered value could not cover the repaid
	// debt and the shortfall was socialized through the pool
	BadDebt      bool            `json:"bad_debt"`
	HealthBefore decimal.Decimal `json:"health_before"`
	HealthAfter  decimal.Decimal `json:"health_after"`
}

// Liquidation journal row, one per executed liquidation
type Liquidation struct {
	ID               uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Liquidator       string          `sql:"size:36" json:"liquidator"`
	UserID           string          `sql:"size:36;index:liquidation_user_idx" json:"user_id"`
	Symbol           string          `sql:"size:20;index:liquidation_symbol_idx" json:"symbol"`
	DebtRepaid       decimal.Decimal `sql:"type:decimal(32,16)" json:"debt_repaid"`
	PrincipalPortion decimal.Decimal `sql:"type:decimal(32,16)" json:"principal_portion"`
	InterestPortion  decimal.Decimal `sql:"type:decimal(32,16)" json:"interest_portion"`
	CollateralSeized decimal.Decimal `sql:"type:decimal(32,16)" json:"collateral_seized"`
	Recovered        decimal.Decimal `sql:"type:decimal(32,16)" json:"recovered"`
	BadDebt          bool            `json:"bad_debt"`
	CreatedAt        time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// ILiquidationStore liquidation journal store
type ILiquidationStore interface {
	Create(ctx context.Context, liquidation *Liquidation) error
	// Find returns the row, or found=false when id is unknown
	Find(ctx context.Context, id uint64) (*Liquidation, bool, error)
	List(ctx context.Context, symbol string, fromID uint64, limit int) ([]*Liquidation, error)
}

// ILiquidateService liquidation engine
type ILiquidateService interface {
	Liquidate(ctx context.Context, liquidator, userID, symbol string, repayAmount decimal.Decimal) (*LiquidationResult, error)
}
