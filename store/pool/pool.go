package pool

import (
	"context"

	"lever/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

type poolStore struct {
	db *db.DB
}

// New new pool store
func New(db *db.DB) core.IPoolStore {
	return &poolStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update()
		if err := tx.AutoMigrate(core.Pool{}).Error; err != nil {
			return err
		}

		if err := tx.Model(core.Pool{}).AddUniqueIndex("idx_pools_asset", "asset_id").Error; err != nil {
			return err
		}

		if err := tx.AutoMigrate(core.PoolShare{}).Error; err != nil {
			return err
		}

		if err := tx.AutoMigrate(core.PoolMarket{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *poolStore) Save(ctx context.Context, pool *core.Pool) error {
	return s.db.Update().Where("asset_id = ?", pool.AssetID).FirstOrCreate(pool).Error
}

func (s *poolStore) Find(ctx context.Context) (*core.Pool, error) {
	var pool core.Pool
	err := s.db.View().First(&pool).Error
	if store.IsErrNotFound(err) {
		return &core.Pool{}, nil
	}
	if err != nil {
		return nil, err
	}

	return &pool, nil
}

func (s *poolStore) Update(ctx context.Context, pool *core.Pool, version int64) error {
	pool.Version = version + 1
	tx := s.db.Update().Model(core.Pool{}).
		Where("id = ? AND version = ?", pool.ID, version).
		Updates(map[string]interface{}{
			"total_borrowed_out": pool.TotalBorrowedOut,
			"total_shares":       pool.TotalShares,
			"version":            pool.Version,
		})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}

func (s *poolStore) FindShare(ctx context.Context, userID string) (*core.PoolShare, error) {
	var share core.PoolShare
	err := s.db.View().Where("user_id = ?", userID).First(&share).Error
	if store.IsErrNotFound(err) {
		return &core.PoolShare{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}

	return &share, nil
}

func (s *poolStore) SaveShare(ctx context.Context, share *core.PoolShare) error {
	return s.db.Update().
		Where("user_id = ?", share.UserID).
		Assign(map[string]interface{}{"shares": share.Shares}).
		FirstOrCreate(share).Error
}

func (s *poolStore) IsMarketAuthorized(ctx context.Context, marketSymbol string) (bool, error) {
	var row core.PoolMarket
	err := s.db.View().Where("market_symbol = ?", marketSymbol).First(&row).Error
	if store.IsErrNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return row.Enabled, nil
}

func (s *poolStore) SetMarketStatus(ctx context.Context, marketSymbol string, enabled bool) error {
	return s.db.Update().
		Where("market_symbol = ?", marketSymbol).
		Assign(map[string]interface{}{"enabled": enabled}).
		FirstOrCreate(&core.PoolMarket{MarketSymbol: marketSymbol, Enabled: enabled}).Error
}
