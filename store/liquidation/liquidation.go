package liquidation

import (
	"context"

	"lever/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type liquidationStore struct {
	db *db.DB
}

// New new liquidation store
func New(db *db.DB) core.ILiquidationStore {
	return &liquidationStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Liquidation{})
		if err := tx.AutoMigrate(core.Liquidation{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *liquidationStore) Create(ctx context.Context, liquidation *core.Liquidation) error {
	return s.db.Update().Create(liquidation).Error
}

func (s *liquidationStore) Find(ctx context.Context, id uint64) (*core.Liquidation, bool, error) {
	var liquidation core.Liquidation
	if err := s.db.View().Where("id = ?", id).First(&liquidation).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return &liquidation, true, nil
}

func (s *liquidationStore) List(ctx context.Context, symbol string, fromID uint64, limit int) ([]*core.Liquidation, error) {
	var liquidations []*core.Liquidation
	query := s.db.View().Where("id > ?", fromID)
	if symbol != "" {
		query = query.Where("symbol = ?", symbol)
	}

	if err := query.Order("id").Limit(limit).Find(&liquidations).Error; err != nil {
		return nil, err
	}
	return liquidations, nil
}
