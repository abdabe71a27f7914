package liquidate

import (
	"context"

	"lever/core"
	"lever/internal/ltv"
	"lever/pkg/number"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type liquidateService struct {
	guard        *core.Guard
	markets      core.IMarketStore
	positions    core.IPositionStore
	liquidations core.ILiquidationStore
	pool         core.IPoolService
	oracle       core.IPriceOracleService
	block        core.IBlockService
	wallet       core.IWalletService
	redeemer     core.ICollateralRedeemer
}

// New new liquidate service
func New(
	guard *core.Guard,
	marketStr core.IMarketStore,
	positionStr core.IPositionStore,
	liquidationStr core.ILiquidationStore,
	poolSrv core.IPoolService,
	priceSrv core.IPriceOracleService,
	blockSrv core.IBlockService,
	walletSrv core.IWalletService,
	redeemer core.ICollateralRedeemer,
) core.ILiquidateService {
	return &liquidateService{
		guard:        guard,
		markets:      marketStr,
		positions:    positionStr,
		liquidations: liquidationStr,
		pool:         poolSrv,
		oracle:       priceSrv,
		block:        blockSrv,
		wallet:       walletSrv,
		redeemer:     redeemer,
	}
}

// Liquidate repays up to repayAmount of an unhealthy position's debt and
// seizes collateral with the market's bonus. Partial liquidation is always
// allowed; a position stripped of collateral stays open until its residual
// debt is repaid or written off.
func (s *liquidateService) Liquidate(ctx context.Context, liquidator, userID, symbol string, repayAmount decimal.Decimal) (*core.LiquidationResult, error) {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"liquidator": liquidator,
		"user":       userID,
		"symbol":     symbol,
	})

	if !repayAmount.IsPositive() {
		return nil, core.ErrZeroAmount
	}
	if liquidator == userID {
		return nil, core.ErrUnauthorized
	}

	if err := s.guard.Enter(symbol); err != nil {
		return nil, err
	}
	defer s.guard.Exit(symbol)

	market, err := s.markets.Find(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if market.ID == 0 {
		return nil, core.ErrMarketNotFound
	}

	position, err := s.positions.Find(ctx, userID, symbol)
	if err != nil {
		return nil, err
	}
	if position.ID == 0 {
		return nil, core.ErrNotLiquidatable
	}

	mark, err := s.block.CurrentMark(ctx, market)
	if err != nil {
		return nil, err
	}
	ltv.Accrue(position, market.RatePerPeriod, mark)

	price, err := s.oracle.GetPrice(ctx, market.CollateralAsset)
	if err != nil {
		return nil, err
	}

	collateralValue := position.Collateral.Mul(price).Truncate(ltv.MaxPrecision)
	health := ltv.Health(collateralValue, position.Principal)
	if !ltv.Liquidatable(collateralValue, position.Principal, market.LiquidationLTV) {
		return nil, core.ErrNotLiquidatable
	}

	debtToRepay := number.Min(repayAmount.Truncate(ltv.MaxPrecision), position.Principal)
	if !debtToRepay.IsPositive() {
		return nil, core.ErrZeroAmount
	}

	principalPortion, interestPortion := ltv.Apportion(debtToRepay, position.OriginalPrincipal, position.Principal)

	// bonus formula capped at what the position actually holds
	seized := number.Min(ltv.Seize(debtToRepay, price, market.LiquidationBonus), position.Collateral)

	// a repay too small to seize a single collateral unit must be rejected
	// here: once funds start moving every leg has to land
	if !seized.IsPositive() {
		return nil, core.ErrZeroAmount
	}

	if err := s.wallet.TransferIn(ctx, liquidator, market.LoanAsset, debtToRepay); err != nil {
		log.WithError(err).Errorln("wallet.TransferIn")
		return nil, err
	}

	recovered, err := s.redeemer.Redeem(ctx, market.CollateralAsset, seized)
	if err != nil {
		log.WithError(err).Errorln("redeemer.Redeem")
		return nil, err
	}

	badDebt := recovered.LessThan(debtToRepay)
	if badDebt {
		// deep insolvency: write off the full principal portion, return
		// only what the collateral actually recovered
		if err := s.pool.BadDebt(ctx, market.Symbol, principalPortion, recovered); err != nil {
			log.WithError(err).Errorln("pool.BadDebt")
			return nil, err
		}
	} else if principalPortion.IsPositive() {
		if err := s.pool.Repay(ctx, market.Symbol, principalPortion); err != nil {
			log.WithError(err).Errorln("pool.Repay")
			return nil, err
		}
	}

	position.Principal = position.Principal.Sub(debtToRepay)
	position.OriginalPrincipal = position.OriginalPrincipal.Sub(principalPortion)
	position.Collateral = position.Collateral.Sub(seized)

	if err := s.wallet.TransferOut(ctx, liquidator, market.CollateralAsset, seized); err != nil {
		log.WithError(err).Errorln("wallet.TransferOut")
		return nil, err
	}

	if err := s.positions.Update(ctx, position, position.Version); err != nil {
		return nil, err
	}

	if err := s.liquidations.Create(ctx, &core.Liquidation{
		Liquidator:       liquidator,
		UserID:           userID,
		Symbol:           symbol,
		DebtRepaid:       debtToRepay,
		PrincipalPortion: principalPortion,
		InterestPortion:  interestPortion,
		CollateralSeized: seized,
		Recovered:        recovered,
		BadDebt:          badDebt,
	}); err != nil {
		log.WithError(err).Errorln("liquidations.Create")
		return nil, err
	}

	result := &core.LiquidationResult{
		UserID:           userID,
		Symbol:           symbol,
		DebtRepaid:       debtToRepay,
		PrincipalPortion: principalPortion,
		InterestPortion:  interestPortion,
		CollateralSeized: seized,
		Recovered:        recovered,
		BadDebt:          badDebt,
		HealthBefore:     health,
		HealthAfter:      ltv.Health(position.Collateral.Mul(price).Truncate(ltv.MaxPrecision), position.Principal),
	}

	log.WithField("repaid", debtToRepay).
		WithField("seized", seized).
		WithField("bad_debt", badDebt).
		Infoln("liquidated")

	return result, nil
}
