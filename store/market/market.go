package market

import (
	"context"

	"lever/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

type marketStore struct {
	db *db.DB
}

// New new market store
func New(db *db.DB) core.IMarketStore {
	return &marketStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Market{})
		if err := tx.AutoMigrate(core.Market{}).Error; err != nil {
			return err
		}

		if err := tx.AddUniqueIndex("idx_markets_symbol", "symbol").Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *marketStore) Create(ctx context.Context, market *core.Market) error {
	return s.db.Update().Where("symbol = ?", market.Symbol).FirstOrCreate(market).Error
}

func (s *marketStore) Find(ctx context.Context, symbol string) (*core.Market, error) {
	var market core.Market
	err := s.db.View().Where("symbol = ?", symbol).First(&market).Error
	if store.IsErrNotFound(err) {
		return &core.Market{}, nil
	}
	if err != nil {
		return nil, err
	}

	return &market, nil
}

func (s *marketStore) All(ctx context.Context) ([]*core.Market, error) {
	var markets []*core.Market
	if err := s.db.View().Find(&markets).Error; err != nil {
		return nil, err
	}
	return markets, nil
}
