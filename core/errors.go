package core

import "strconv"

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unknown
	ErrUnknown ErrorCode = 100000
	// ErrOperationInProgress another operation holds the market ledger
	ErrOperationInProgress ErrorCode = 100001

	// ErrMarketNotFound no market
	ErrMarketNotFound ErrorCode = 100100
	// ErrZeroAmount amount must be positive
	ErrZeroAmount ErrorCode = 100101
	// ErrInsufficientCollateral withdraw amount exceeds collateral
	ErrInsufficientCollateral ErrorCode = 100102
	// ErrExceedsBorrowLimit debt would exceed the borrow LTV against collateral
	ErrExceedsBorrowLimit ErrorCode = 100103
	// ErrNoDebt repay on a position with no outstanding debt
	ErrNoDebt ErrorCode = 100104
	// ErrNotLiquidatable position health is at or above the liquidation threshold
	ErrNotLiquidatable ErrorCode = 100105
	// ErrUnauthorized caller may not act on this position
	ErrUnauthorized ErrorCode = 100106

	// ErrStalePrice oracle data older than the freshness window
	ErrStalePrice ErrorCode = 100200
	// ErrInvalidPrice oracle returned a non-positive price
	ErrInvalidPrice ErrorCode = 100201

	// ErrMarketNotAuthorized market is not on the pool allow-list
	ErrMarketNotAuthorized ErrorCode = 100300
	// ErrInsufficientLiquidity pool idle balance cannot cover the request
	ErrInsufficientLiquidity ErrorCode = 100301
	// ErrBadDebtDisabled pool has the bad-debt path switched off
	ErrBadDebtDisabled ErrorCode = 100302
)

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	return e.String()
}
