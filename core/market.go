package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TimeBasis how a market counts accrual periods
type TimeBasis string

const (
	// TimeBasisBlock accrual periods are synthetic blocks derived from wall clock
	TimeBasisBlock TimeBasis = "block"
	// TimeBasisSecond accrual periods are raw unix seconds
	TimeBasisSecond TimeBasis = "second"
)

// Market immutable lending market configuration.
// All fields are fixed at creation; a market is never updated.
type Market struct {
	ID              uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Symbol          string `sql:"size:20;unique_index:symbol_idx" json:"symbol"`
	CollateralAsset string `sql:"size:36" json:"collateral_asset"`
	LoanAsset       string `sql:"size:36" json:"loan_asset"`
	// 最大初始借款率, basis points
	BorrowLTV int64 `json:"borrow_ltv"`
	// 清算阈值, basis points, strictly greater than BorrowLTV
	LiquidationLTV int64 `json:"liquidation_ltv"`
	// 每期利率, basis points per accrual period
	RatePerPeriod int64 `json:"rate_per_period"`
	// 清算奖励, basis points added to seized collateral
	LiquidationBonus int64     `json:"liquidation_bonus"`
	TimeBasis        TimeBasis `sql:"size:10" json:"time_basis"`
	// genesis and block length only matter for TimeBasisBlock
	Genesis         int64     `json:"genesis"`
	SecondsPerBlock int64     `json:"seconds_per_block"`
	CreatedAt       time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// IMarketStore market store interface
type IMarketStore interface {
	Create(ctx context.Context, market *Market) error
	Find(ctx context.Context, symbol string) (*Market, error)
	All(ctx context.Context) ([]*Market, error)
}

// ILendService lending state machine over one market's position ledger
type ILendService interface {
	Deposit(ctx context.Context, userID, symbol string, amount decimal.Decimal) (*Position, error)
	Borrow(ctx context.Context, userID, symbol string, amount decimal.Decimal) (*Position, error)
	Repay(ctx context.Context, userID, symbol string, amount decimal.Decimal) (*Position, error)
	Withdraw(ctx context.Context, userID, symbol string, amount decimal.Decimal) (*Position, error)
}
