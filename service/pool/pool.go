package pool

import (
	"context"

	"lever/core"
	"lever/internal/ltv"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

// Config pool service config
type Config struct {
	// AssetID loan asset the pool holds and lends
	AssetID string `json:"asset_id" valid:"required"`
	// BadDebtEnabled allows markets to socialize unrecoverable principal
	BadDebtEnabled bool `json:"bad_debt_enabled"`
}

type poolService struct {
	cfg    Config
	pools  core.IPoolStore
	wallet core.IWalletService
}

// New new pool service
func New(cfg Config, pools core.IPoolStore, wallet core.IWalletService) core.IPoolService {
	return &poolService{
		cfg:    cfg,
		pools:  pools,
		wallet: wallet,
	}
}

func (s *poolService) Deposit(ctx context.Context, userID string, amount decimal.Decimal) (decimal.Decimal, error) {
	log := logger.FromContext(ctx).WithField("pool", "deposit")

	if !amount.IsPositive() {
		return decimal.Zero, core.ErrZeroAmount
	}

	pool, err := s.pool(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	totalAssets, err := s.totalAssets(ctx, pool)
	if err != nil {
		return decimal.Zero, err
	}

	// price shares against assets before the deposit lands
	shares := ltv.SharesForDeposit(amount, pool.TotalShares, totalAssets)

	// a deposit too small to mint a single share unit would be a donation
	if !shares.IsPositive() {
		return decimal.Zero, core.ErrZeroAmount
	}

	if err := s.wallet.TransferIn(ctx, userID, s.cfg.AssetID, amount); err != nil {
		log.WithError(err).Errorln("wallet.TransferIn")
		return decimal.Zero, err
	}

	share, err := s.pools.FindShare(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	share.UserID = userID
	share.Shares = share.Shares.Add(shares)
	if err := s.pools.SaveShare(ctx, share); err != nil {
		return decimal.Zero, err
	}

	pool.TotalShares = pool.TotalShares.Add(shares)
	if err := s.pools.Update(ctx, pool, pool.Version); err != nil {
		return decimal.Zero, err
	}

	return shares, nil
}

func (s *poolService) Redeem(ctx context.Context, userID string, shares decimal.Decimal) (decimal.Decimal, error) {
	log := logger.FromContext(ctx).WithField("pool", "redeem")

	if !shares.IsPositive() {
		return decimal.Zero, core.ErrZeroAmount
	}

	pool, err := s.pool(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	share, err := s.pools.FindShare(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	if share.Shares.LessThan(shares) {
		return decimal.Zero, core.ErrInsufficientCollateral
	}

	totalAssets, err := s.totalAssets(ctx, pool)
	if err != nil {
		return decimal.Zero, err
	}

	assets := ltv.AssetsForShares(shares, pool.TotalShares, totalAssets)

	idle, err := s.wallet.Balance(ctx, s.cfg.AssetID)
	if err != nil {
		return decimal.Zero, err
	}
	if idle.LessThan(assets) {
		return decimal.Zero, core.ErrInsufficientLiquidity
	}

	if err := s.wallet.TransferOut(ctx, userID, s.cfg.AssetID, assets); err != nil {
		log.WithError(err).Errorln("wallet.TransferOut")
		return decimal.Zero, err
	}

	share.Shares = share.Shares.Sub(shares)
	if err := s.pools.SaveShare(ctx, share); err != nil {
		return decimal.Zero, err
	}

	pool.TotalShares = pool.TotalShares.Sub(shares)
	if err := s.pools.Update(ctx, pool, pool.Version); err != nil {
		return decimal.Zero, err
	}

	return assets, nil
}

func (s *poolService) Draw(ctx context.Context, marketSymbol, receiver string, amount decimal.Decimal) error {
	log := logger.FromContext(ctx).WithField("pool", "draw")

	if !amount.IsPositive() {
		return core.ErrZeroAmount
	}

	if err := s.requireAuthorized(ctx, marketSymbol); err != nil {
		return err
	}

	pool, err := s.pool(ctx)
	if err != nil {
		return err
	}

	idle, err := s.wallet.Balance(ctx, s.cfg.AssetID)
	if err != nil {
		return err
	}
	if idle.LessThan(amount) {
		return core.ErrInsufficientLiquidity
	}

	if err := s.wallet.TransferOut(ctx, receiver, s.cfg.AssetID, amount); err != nil {
		log.WithError(err).Errorln("wallet.TransferOut")
		return err
	}

	pool.TotalBorrowedOut = pool.TotalBorrowedOut.Add(amount)
	return s.pools.Update(ctx, pool, pool.Version)
}

func (s *poolService) Repay(ctx context.Context, marketSymbol string, amount decimal.Decimal) error {
	log := logger.FromContext(ctx).WithField("pool", "repay")

	if !amount.IsPositive() {
		return core.ErrZeroAmount
	}

	if err := s.requireAuthorized(ctx, marketSymbol); err != nil {
		return err
	}

	pool, err := s.pool(ctx)
	if err != nil {
		return err
	}

	if err := s.wallet.TransferIn(ctx, core.CustodyAccount, s.cfg.AssetID, amount); err != nil {
		log.WithError(err).Errorln("wallet.TransferIn")
		return err
	}

	// floored at zero: over-repayment is a donation, never an error
	pool.TotalBorrowedOut = pool.TotalBorrowedOut.Sub(amount)
	if pool.TotalBorrowedOut.IsNegative() {
		pool.TotalBorrowedOut = decimal.Zero
	}

	return s.pools.Update(ctx, pool, pool.Version)
}

func (s *poolService) BadDebt(ctx context.Context, marketSymbol string, writtenOff, recovered decimal.Decimal) error {
	log := logger.FromContext(ctx).WithField("pool", "bad_debt")

	if !s.cfg.BadDebtEnabled {
		return core.ErrBadDebtDisabled
	}

	if !writtenOff.IsPositive() {
		return core.ErrZeroAmount
	}
	if recovered.IsNegative() {
		return core.ErrZeroAmount
	}

	if err := s.requireAuthorized(ctx, marketSymbol); err != nil {
		return err
	}

	pool, err := s.pool(ctx)
	if err != nil {
		return err
	}

	if recovered.IsPositive() {
		if err := s.wallet.TransferIn(ctx, core.CustodyAccount, s.cfg.AssetID, recovered); err != nil {
			log.WithError(err).Errorln("wallet.TransferIn")
			return err
		}
	}

	// the full written-off amount leaves the books while only recovered
	// returned to idle; the delta is the loss borne by all share holders
	pool.TotalBorrowedOut = pool.TotalBorrowedOut.Sub(writtenOff)
	if pool.TotalBorrowedOut.IsNegative() {
		pool.TotalBorrowedOut = decimal.Zero
	}

	log.WithField("written_off", writtenOff).
		WithField("recovered", recovered).
		Infoln("bad debt socialized")

	return s.pools.Update(ctx, pool, pool.Version)
}

func (s *poolService) TotalAssets(ctx context.Context) (decimal.Decimal, error) {
	pool, err := s.pool(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	return s.totalAssets(ctx, pool)
}

func (s *poolService) pool(ctx context.Context) (*core.Pool, error) {
	pool, err := s.pools.Find(ctx)
	if err != nil {
		return nil, err
	}

	if pool.ID == 0 {
		pool.AssetID = s.cfg.AssetID
		if err := s.pools.Save(ctx, pool); err != nil {
			return nil, err
		}
	}

	return pool, nil
}

func (s *poolService) totalAssets(ctx context.Context, pool *core.Pool) (decimal.Decimal, error) {
	idle, err := s.wallet.Balance(ctx, s.cfg.AssetID)
	if err != nil {
		return decimal.Zero, err
	}

	return idle.Add(pool.TotalBorrowedOut), nil
}

func (s *poolService) requireAuthorized(ctx context.Context, marketSymbol string) error {
	ok, err := s.pools.IsMarketAuthorized(ctx, marketSymbol)
	if err != nil {
		return err
	}
	if !ok {
		return core.ErrMarketNotAuthorized
	}
	return nil
}
