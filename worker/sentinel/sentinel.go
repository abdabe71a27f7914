package sentinel

import (
	"context"
	"errors"
	"fmt"

	"lever/core"
	"lever/internal/ltv"
	"lever/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
	"github.com/sirupsen/logrus"
)

const checkpointKey = "sentinel_checkpoint"

// Sentinel scans the position ledger for accounts past the liquidation
// threshold. It never mutates positions; interest is folded into a
// scratch copy so candidates are judged on up-to-date debt.
type Sentinel struct {
	worker.TickWorker
	markets   core.IMarketStore
	positions core.IPositionStore
	oracle    core.IPriceOracleService
	block     core.IBlockService
	property  property.Store
	cfg       Config
}

type Config struct {
	Batch int `json:"batch" valid:"required"`
}

// New new sentinel worker
func New(
	marketStr core.IMarketStore,
	positionStr core.IPositionStore,
	priceSrv core.IPriceOracleService,
	blockSrv core.IBlockService,
	propertyStr property.Store,
	cfg Config,
) *Sentinel {
	return &Sentinel{
		markets:   marketStr,
		positions: positionStr,
		oracle:    priceSrv,
		block:     blockSrv,
		property:  propertyStr,
		cfg:       cfg,
	}
}

// Run run worker
func (w *Sentinel) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "sentinel")
	ctx = logger.WithContext(ctx, log)

	return w.StartTick(ctx, func(ctx context.Context) error {
		return w.onWork(ctx)
	})
}

func (w *Sentinel) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx)

	markets, err := w.markets.All(ctx)
	if err != nil {
		log.WithError(err).Errorln("markets.All")
		return err
	}

	scanned := 0
	for _, market := range markets {
		n, err := w.scanMarket(ctx, market)
		if err != nil {
			return err
		}
		scanned += n
	}

	if scanned == 0 {
		return errors.New("EOF")
	}

	return nil
}

func (w *Sentinel) scanMarket(ctx context.Context, market *core.Market) (int, error) {
	log := logger.FromContext(ctx).WithField("symbol", market.Symbol)

	key := fmt.Sprintf("%s_%s", checkpointKey, market.Symbol)
	v, err := w.property.Get(ctx, key)
	if err != nil {
		log.WithError(err).Errorln("property.Get", key)
		return 0, err
	}

	fromID := uint64(v.Int64())
	positions, err := w.positions.List(ctx, market.Symbol, fromID, w.cfg.Batch)
	if err != nil {
		log.WithError(err).Errorln("positions.List")
		return 0, err
	}

	if len(positions) == 0 {
		// wrap around and start the next sweep from the top
		if fromID > 0 {
			if err := w.property.Save(ctx, key, 0); err != nil {
				log.WithError(err).Errorln("property.Save", key)
				return 0, err
			}
		}
		return 0, nil
	}

	mark, err := w.block.CurrentMark(ctx, market)
	if err != nil {
		return 0, err
	}

	price, err := w.oracle.GetPrice(ctx, market.CollateralAsset)
	if err != nil {
		log.WithError(err).Errorln("oracle.GetPrice")
		return 0, err
	}

	for _, position := range positions {
		fromID = position.ID

		if !position.Principal.IsPositive() {
			continue
		}

		scratch := *position
		ltv.Accrue(&scratch, market.RatePerPeriod, mark)

		collateralValue := scratch.Collateral.Mul(price).Truncate(ltv.MaxPrecision)
		if !ltv.Liquidatable(collateralValue, scratch.Principal, market.LiquidationLTV) {
			continue
		}

		log.WithFields(logrus.Fields{
			"user":       scratch.UserID,
			"debt":       scratch.Principal,
			"collateral": scratch.Collateral,
			"health":     ltv.Health(collateralValue, scratch.Principal),
		}).Infoln("liquidation candidate")
	}

	if err := w.property.Save(ctx, key, fromID); err != nil {
		log.WithError(err).Errorln("property.Save", key)
		return 0, err
	}

	return len(positions), nil
}
