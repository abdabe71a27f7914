package wallet

import (
	"context"

	"lever/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

type walletStore struct {
	db *db.DB
}

// New new wallet store
func New(db *db.DB) core.IWalletStore {
	return &walletStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update()
		if err := tx.AutoMigrate(core.Balance{}).Error; err != nil {
			return err
		}

		if err := tx.Model(core.Balance{}).AddUniqueIndex("idx_balances_account_asset", "account", "asset_id").Error; err != nil {
			return err
		}

		if err := tx.AutoMigrate(core.Transfer{}).Error; err != nil {
			return err
		}

		if err := tx.Model(core.Transfer{}).AddUniqueIndex("idx_transfers_trace", "trace_id").Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *walletStore) FindBalance(ctx context.Context, account, assetID string) (*core.Balance, error) {
	var balance core.Balance
	err := s.db.View().Where("account = ? AND asset_id = ?", account, assetID).First(&balance).Error
	if store.IsErrNotFound(err) {
		return &core.Balance{Account: account, AssetID: assetID}, nil
	}
	if err != nil {
		return nil, err
	}

	return &balance, nil
}

func (s *walletStore) SaveBalance(ctx context.Context, balance *core.Balance, version int64) error {
	if balance.ID == 0 {
		return s.db.Update().
			Where("account = ? AND asset_id = ?", balance.Account, balance.AssetID).
			FirstOrCreate(balance).Error
	}

	balance.Version = version + 1
	tx := s.db.Update().Model(core.Balance{}).
		Where("id = ? AND version = ?", balance.ID, version).
		Updates(map[string]interface{}{
			"amount":  balance.Amount,
			"version": balance.Version,
		})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}

func (s *walletStore) CreateTransfer(ctx context.Context, transfer *core.Transfer) error {
	return s.db.Update().Where("trace_id = ?", transfer.TraceID).FirstOrCreate(transfer).Error
}

func (s *walletStore) ListTransfers(ctx context.Context, account string, fromID uint64, limit int) ([]*core.Transfer, error) {
	var transfers []*core.Transfer
	if err := s.db.View().
		Where("account = ? AND id > ?", account, fromID).
		Order("id").
		Limit(limit).
		Find(&transfers).Error; err != nil {
		return nil, err
	}
	return transfers, nil
}
