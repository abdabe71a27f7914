package lend

import (
	"context"

	"lever/core"
	"lever/internal/ltv"
	"lever/pkg/number"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

type lendService struct {
	guard     *core.Guard
	markets   core.IMarketStore
	positions core.IPositionStore
	pool      core.IPoolService
	oracle    core.IPriceOracleService
	block     core.IBlockService
	wallet    core.IWalletService
}

// New new lend service
func New(
	guard *core.Guard,
	marketStr core.IMarketStore,
	positionStr core.IPositionStore,
	poolSrv core.IPoolService,
	priceSrv core.IPriceOracleService,
	blockSrv core.IBlockService,
	walletSrv core.IWalletService,
) core.ILendService {
	return &lendService{
		guard:     guard,
		markets:   marketStr,
		positions: positionStr,
		pool:      poolSrv,
		oracle:    priceSrv,
		block:     blockSrv,
		wallet:    walletSrv,
	}
}

// Deposit pulls collateral from the caller into market custody. Deposit
// never endangers a position, so there is no LTV check.
func (s *lendService) Deposit(ctx context.Context, userID, symbol string, amount decimal.Decimal) (*core.Position, error) {
	log := logger.FromContext(ctx).WithField("lend", "deposit")

	if !amount.IsPositive() {
		return nil, core.ErrZeroAmount
	}

	if err := s.guard.Enter(symbol); err != nil {
		return nil, err
	}
	defer s.guard.Exit(symbol)

	market, position, err := s.load(ctx, userID, symbol)
	if err != nil {
		return nil, err
	}

	if err := s.accrue(ctx, market, position); err != nil {
		return nil, err
	}

	if err := s.wallet.TransferIn(ctx, userID, market.CollateralAsset, amount); err != nil {
		log.WithError(err).Errorln("wallet.TransferIn")
		return nil, err
	}

	position.Collateral = position.Collateral.Add(amount)
	if position.ID == 0 {
		if err := s.positions.Save(ctx, position); err != nil {
			return nil, err
		}
	} else if err := s.positions.Update(ctx, position, position.Version); err != nil {
		return nil, err
	}

	return position, nil
}

// Borrow draws loan asset from the pool against collateral, capped at the
// origination LTV.
func (s *lendService) Borrow(ctx context.Context, userID, symbol string, amount decimal.Decimal) (*core.Position, error) {
	log := logger.FromContext(ctx).WithField("lend", "borrow")

	if !amount.IsPositive() {
		return nil, core.ErrZeroAmount
	}

	if err := s.guard.Enter(symbol); err != nil {
		return nil, err
	}
	defer s.guard.Exit(symbol)

	market, position, err := s.load(ctx, userID, symbol)
	if err != nil {
		return nil, err
	}

	if err := s.accrue(ctx, market, position); err != nil {
		return nil, err
	}

	price, err := s.oracle.GetPrice(ctx, market.CollateralAsset)
	if err != nil {
		return nil, err
	}

	collateralValue := position.Collateral.Mul(price).Truncate(ltv.MaxPrecision)
	maxBorrow := ltv.MaxBorrow(collateralValue, market.BorrowLTV)
	if position.Principal.Add(amount).GreaterThan(maxBorrow) {
		return nil, core.ErrExceedsBorrowLimit
	}

	if err := s.pool.Draw(ctx, market.Symbol, userID, amount); err != nil {
		log.WithError(err).Errorln("pool.Draw")
		return nil, err
	}

	mark, err := s.block.CurrentMark(ctx, market)
	if err != nil {
		return nil, err
	}

	position.Principal = position.Principal.Add(amount)
	position.OriginalPrincipal = position.OriginalPrincipal.Add(amount)
	position.AccrualMark = mark
	if err := s.positions.Update(ctx, position, position.Version); err != nil {
		return nil, err
	}

	return position, nil
}

// Repay settles up to the outstanding debt. Only the principal portion is
// forwarded to the pool; interest stays with the market layer.
func (s *lendService) Repay(ctx context.Context, userID, symbol string, amount decimal.Decimal) (*core.Position, error) {
	log := logger.FromContext(ctx).WithField("lend", "repay")

	if !amount.IsPositive() {
		return nil, core.ErrZeroAmount
	}

	if err := s.guard.Enter(symbol); err != nil {
		return nil, err
	}
	defer s.guard.Exit(symbol)

	market, position, err := s.load(ctx, userID, symbol)
	if err != nil {
		return nil, err
	}

	if err := s.accrue(ctx, market, position); err != nil {
		return nil, err
	}

	if !position.Principal.IsPositive() {
		return nil, core.ErrNoDebt
	}

	repayAmount := number.Min(amount, position.Principal)
	principalPortion, interestPortion := ltv.Apportion(repayAmount, position.OriginalPrincipal, position.Principal)

	if err := s.wallet.TransferIn(ctx, userID, market.LoanAsset, repayAmount); err != nil {
		log.WithError(err).Errorln("wallet.TransferIn")
		return nil, err
	}

	if principalPortion.IsPositive() {
		if err := s.pool.Repay(ctx, market.Symbol, principalPortion); err != nil {
			log.WithError(err).Errorln("pool.Repay")
			return nil, err
		}
	}

	position.Principal = position.Principal.Sub(repayAmount)
	position.OriginalPrincipal = position.OriginalPrincipal.Sub(principalPortion)
	if err := s.positions.Update(ctx, position, position.Version); err != nil {
		return nil, err
	}

	log.WithField("principal", principalPortion).
		WithField("interest", interestPortion).
		Debugln("repaid")

	return position, nil
}

// Withdraw returns collateral to the caller as long as the remaining
// collateral still covers the debt at the origination LTV.
func (s *lendService) Withdraw(ctx context.Context, userID, symbol string, amount decimal.Decimal) (*core.Position, error) {
	log := logger.FromContext(ctx).WithField("lend", "withdraw")

	if !amount.IsPositive() {
		return nil, core.ErrZeroAmount
	}

	if err := s.guard.Enter(symbol); err != nil {
		return nil, err
	}
	defer s.guard.Exit(symbol)

	market, position, err := s.load(ctx, userID, symbol)
	if err != nil {
		return nil, err
	}

	if amount.GreaterThan(position.Collateral) {
		return nil, core.ErrInsufficientCollateral
	}

	if err := s.accrue(ctx, market, position); err != nil {
		return nil, err
	}

	if position.Principal.IsPositive() {
		price, err := s.oracle.GetPrice(ctx, market.CollateralAsset)
		if err != nil {
			return nil, err
		}

		remaining := position.Collateral.Sub(amount)
		remainingValue := remaining.Mul(price).Truncate(ltv.MaxPrecision)
		if position.Principal.GreaterThan(ltv.MaxBorrow(remainingValue, market.BorrowLTV)) {
			return nil, core.ErrExceedsBorrowLimit
		}
	}

	if err := s.wallet.TransferOut(ctx, userID, market.CollateralAsset, amount); err != nil {
		log.WithError(err).Errorln("wallet.TransferOut")
		return nil, err
	}

	position.Collateral = position.Collateral.Sub(amount)
	if err := s.positions.Update(ctx, position, position.Version); err != nil {
		return nil, err
	}

	return position, nil
}

func (s *lendService) load(ctx context.Context, userID, symbol string) (*core.Market, *core.Position, error) {
	market, err := s.markets.Find(ctx, symbol)
	if err != nil {
		return nil, nil, err
	}
	if market.ID == 0 {
		return nil, nil, core.ErrMarketNotFound
	}

	position, err := s.positions.Find(ctx, userID, symbol)
	if err != nil {
		return nil, nil, err
	}

	// an unknown account yields an unsaved zero position; only a deposit
	// that lands creates the ledger row
	if position.ID == 0 {
		position.UserID = userID
		position.Symbol = symbol
	}

	return market, position, nil
}

func (s *lendService) accrue(ctx context.Context, market *core.Market, position *core.Position) error {
	mark, err := s.block.CurrentMark(ctx, market)
	if err != nil {
		return err
	}

	ltv.Accrue(position, market.RatePerPeriod, mark)
	return nil
}
