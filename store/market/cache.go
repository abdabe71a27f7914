package market

import (
	"context"
	"fmt"
	"time"

	"lever/core"

	"github.com/bluele/gcache"
	"golang.org/x/sync/singleflight"
)

// Cache wraps a market store with an in-memory cache. Markets are
// immutable once created, so entries only expire to pick up new markets.
func Cache(store core.IMarketStore, exp time.Duration) core.IMarketStore {
	return &cacheMarketStore{
		IMarketStore: store,
		cache:        gcache.New(256).LRU().Build(),
		sf:           &singleflight.Group{},
		exp:          exp,
	}
}

type cacheMarketStore struct {
	core.IMarketStore
	cache gcache.Cache
	sf    *singleflight.Group
	exp   time.Duration
}

func (s *cacheMarketStore) Create(ctx context.Context, market *core.Market) error {
	if err := s.IMarketStore.Create(ctx, market); err != nil {
		return err
	}
	_ = s.cache.SetWithExpire(s.marketKey(market.Symbol), market, s.exp)
	return nil
}

func (s *cacheMarketStore) Find(ctx context.Context, symbol string) (*core.Market, error) {
	if v, err := s.cache.Get(s.marketKey(symbol)); err == nil {
		if market, ok := v.(*core.Market); ok {
			return market, nil
		}
	}

	v, err, _ := s.sf.Do(s.marketKey(symbol), func() (interface{}, error) {
		market, err := s.IMarketStore.Find(ctx, symbol)
		if err != nil {
			return nil, err
		}
		if market.ID > 0 {
			_ = s.cache.SetWithExpire(s.marketKey(symbol), market, s.exp)
		}
		return market, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*core.Market), nil
}

func (s *cacheMarketStore) marketKey(symbol string) string {
	return fmt.Sprintf("market:symbol:%s", symbol)
}
