package core

import (
	"context"

	"github.com/shopspring/decimal"
)

const (
	// CustodyAccount account holding market-layer custody: collateral and
	// the interest portion of repayments
	CustodyAccount = "custody"
	// PoolAccount account holding the pool's idle funds
	PoolAccount = "pool"
)

// IWalletService value-transfer boundary, bound to one owner account.
// Each call either fully succeeds or fails; a failure aborts the whole
// engine operation that issued it.
type IWalletService interface {
	// TransferIn moves amount of asset from the account into the owner
	TransferIn(ctx context.Context, from, assetID string, amount decimal.Decimal) error
	// TransferOut moves amount of asset from the owner to the account
	TransferOut(ctx context.Context, to, assetID string, amount decimal.Decimal) error
	// Balance reports funds the owner physically holds
	Balance(ctx context.Context, assetID string) (decimal.Decimal, error)
}

// ICollateralRedeemer converts seized collateral units into loan-asset
// value recovered for the pool. Liquidation-only; the recovered value may
// fall short of the nominal collateral value.
type ICollateralRedeemer interface {
	Redeem(ctx context.Context, assetID string, amount decimal.Decimal) (decimal.Decimal, error)
}
