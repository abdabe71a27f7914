package position

import (
	"context"

	"lever/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

type positionStore struct {
	db *db.DB
}

// New new position store
func New(db *db.DB) core.IPositionStore {
	return &positionStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Position{})
		if err := tx.AutoMigrate(core.Position{}).Error; err != nil {
			return err
		}

		if err := tx.AddUniqueIndex("idx_positions_user_symbol", "user_id", "symbol").Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *positionStore) Save(ctx context.Context, position *core.Position) error {
	return s.db.Update().
		Where("user_id = ? AND symbol = ?", position.UserID, position.Symbol).
		FirstOrCreate(position).Error
}

func (s *positionStore) Find(ctx context.Context, userID, symbol string) (*core.Position, error) {
	var position core.Position
	err := s.db.View().Where("user_id = ? AND symbol = ?", userID, symbol).First(&position).Error
	if store.IsErrNotFound(err) {
		return &core.Position{}, nil
	}
	if err != nil {
		return nil, err
	}

	return &position, nil
}

func (s *positionStore) FindByUser(ctx context.Context, userID string) ([]*core.Position, error) {
	var positions []*core.Position
	if err := s.db.View().Where("user_id = ?", userID).Find(&positions).Error; err != nil {
		return nil, err
	}
	return positions, nil
}

func (s *positionStore) List(ctx context.Context, symbol string, fromID uint64, limit int) ([]*core.Position, error) {
	var positions []*core.Position
	if err := s.db.View().
		Where("symbol = ? AND id > ?", symbol, fromID).
		Order("id").
		Limit(limit).
		Find(&positions).Error; err != nil {
		return nil, err
	}
	return positions, nil
}

func (s *positionStore) Update(ctx context.Context, position *core.Position, version int64) error {
	position.Version = version + 1
	tx := s.db.Update().Model(core.Position{}).
		Where("id = ? AND version = ?", position.ID, version).
		Updates(map[string]interface{}{
			"collateral":         position.Collateral,
			"principal":          position.Principal,
			"original_principal": position.OriginalPrincipal,
			"accrual_mark":       position.AccrualMark,
			"version":            position.Version,
		})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}
