package pricewatch

import (
	"context"
	"time"

	"lever/core"
	"lever/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/robfig/cron/v3"
)

// Watcher probes the price feed for every market so a dead or stale
// oracle shows up in the logs before a borrow or liquidation trips on it.
type Watcher struct {
	worker.BaseJob
	markets core.IMarketStore
	oracle  core.IPriceOracleService
}

// New new price watcher
func New(location string, marketStr core.IMarketStore, priceSrv core.IPriceOracleService) *Watcher {
	watcher := Watcher{
		markets: marketStr,
		oracle:  priceSrv,
	}

	l, _ := time.LoadLocation(location)
	watcher.Cron = cron.New(cron.WithLocation(l))
	spec := "@every 10s"
	watcher.Cron.AddFunc(spec, watcher.Run)
	watcher.OnWork = func() error {
		return watcher.onWork(context.Background())
	}

	return &watcher
}

func (w *Watcher) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "pricewatch")

	markets, err := w.markets.All(ctx)
	if err != nil {
		log.WithError(err).Errorln("markets.All")
		return err
	}

	for _, market := range markets {
		price, err := w.oracle.GetPrice(ctx, market.CollateralAsset)
		if err != nil {
			log.WithError(err).
				WithField("symbol", market.Symbol).
				Errorln("price feed unavailable")
			continue
		}

		log.WithField("symbol", market.Symbol).
			WithField("price", price).
			Debugln("price feed ok")
	}

	return nil
}
