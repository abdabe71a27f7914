package redeemer

import (
	"context"

	"lever/core"
	"lever/internal/ltv"

	"github.com/shopspring/decimal"
)

// Config collateral redemption config
type Config struct {
	// HaircutBPS settlement loss applied to the oracle value of seized
	// collateral, basis points; a deployment fact, not engine policy
	HaircutBPS int64 `json:"haircut_bps"`
}

// redeemerService values seized collateral at the oracle price minus a
// configured haircut. The recovered value may fall short of the debt the
// collateral nominally covers.
type redeemerService struct {
	cfg    Config
	oracle core.IPriceOracleService
}

// New new collateral redeemer
func New(cfg Config, priceSrv core.IPriceOracleService) core.ICollateralRedeemer {
	return &redeemerService{cfg: cfg, oracle: priceSrv}
}

func (s *redeemerService) Redeem(ctx context.Context, assetID string, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, nil
	}

	price, err := s.oracle.GetPrice(ctx, assetID)
	if err != nil {
		return decimal.Zero, err
	}

	value := amount.Mul(price).Truncate(ltv.MaxPrecision)
	return value.
		Mul(decimal.NewFromInt(ltv.Scale - s.cfg.HaircutBPS)).
		Div(decimal.NewFromInt(ltv.Scale)).
		Truncate(ltv.MaxPrecision), nil
}
