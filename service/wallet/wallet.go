package wallet

import (
	"context"

	"lever/core"
	"lever/pkg/id"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

// walletService value-transfer custodian over the internal balance ledger,
// bound to one owner account. Real asset custody sits outside the engine;
// this implementation stands at that boundary and keeps each movement
// atomic per call.
type walletService struct {
	owner   string
	wallets core.IWalletStore
}

// New new wallet service for the owner account
func New(walletStr core.IWalletStore, owner string) core.IWalletService {
	return &walletService{
		owner:   owner,
		wallets: walletStr,
	}
}

func (s *walletService) TransferIn(ctx context.Context, from, assetID string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return core.ErrZeroAmount
	}

	return s.move(ctx, from, s.owner, assetID, amount)
}

func (s *walletService) TransferOut(ctx context.Context, to, assetID string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return core.ErrZeroAmount
	}

	return s.move(ctx, s.owner, to, assetID, amount)
}

func (s *walletService) Balance(ctx context.Context, assetID string) (decimal.Decimal, error) {
	balance, err := s.wallets.FindBalance(ctx, s.owner, assetID)
	if err != nil {
		return decimal.Zero, err
	}

	return balance.Amount, nil
}

func (s *walletService) move(ctx context.Context, from, to, assetID string, amount decimal.Decimal) error {
	log := logger.FromContext(ctx).WithField("wallet", s.owner)

	src, err := s.wallets.FindBalance(ctx, from, assetID)
	if err != nil {
		return err
	}
	if src.Amount.LessThan(amount) {
		return core.ErrInsufficientLiquidity
	}

	dst, err := s.wallets.FindBalance(ctx, to, assetID)
	if err != nil {
		return err
	}

	trace := id.GenTraceID()

	src.Amount = src.Amount.Sub(amount)
	src.Account = from
	src.AssetID = assetID
	if err := s.wallets.SaveBalance(ctx, src, src.Version); err != nil {
		return err
	}

	dst.Amount = dst.Amount.Add(amount)
	dst.Account = to
	dst.AssetID = assetID
	if err := s.wallets.SaveBalance(ctx, dst, dst.Version); err != nil {
		return err
	}

	for _, transfer := range []*core.Transfer{
		{TraceID: id.UUIDFromString(trace + ":out"), Account: from, AssetID: assetID, Amount: amount.Neg()},
		{TraceID: id.UUIDFromString(trace + ":in"), Account: to, AssetID: assetID, Amount: amount},
	} {
		if err := s.wallets.CreateTransfer(ctx, transfer); err != nil {
			log.WithError(err).Errorln("transfers.Create")
			return err
		}
	}

	return nil
}
