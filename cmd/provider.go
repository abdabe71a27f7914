package cmd

import (
	"time"

	"lever/core"
	blockservice "lever/service/block"
	lendservice "lever/service/lend"
	liquidateservice "lever/service/liquidate"
	oracleservice "lever/service/oracle"
	poolservice "lever/service/pool"
	redeemerservice "lever/service/redeemer"
	walletservice "lever/service/wallet"
	liquidationstore "lever/store/liquidation"
	marketstore "lever/store/market"
	poolstore "lever/store/pool"
	positionstore "lever/store/position"
	walletstore "lever/store/wallet"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

// ---------------store-----------------------------------------

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}

func provideMarketStore(db *db.DB) core.IMarketStore {
	return marketstore.Cache(marketstore.New(db), time.Minute)
}

func providePositionStore(db *db.DB) core.IPositionStore {
	return positionstore.New(db)
}

func providePoolStore(db *db.DB) core.IPoolStore {
	return poolstore.New(db)
}

func provideWalletStore(db *db.DB) core.IWalletStore {
	return walletstore.New(db)
}

func provideLiquidationStore(db *db.DB) core.ILiquidationStore {
	return liquidationstore.New(db)
}

// ------------------service------------------------------------

func provideBlockService() core.IBlockService {
	return blockservice.New()
}

func providePriceService() core.IPriceOracleService {
	return oracleservice.New(cfg.Oracle)
}

func provideCustodyWallet(walletStr core.IWalletStore) core.IWalletService {
	return walletservice.New(walletStr, core.CustodyAccount)
}

func providePoolWallet(walletStr core.IWalletStore) core.IWalletService {
	return walletservice.New(walletStr, core.PoolAccount)
}

func provideRedeemer(priceSrv core.IPriceOracleService) core.ICollateralRedeemer {
	return redeemerservice.New(cfg.Redeemer, priceSrv)
}

func providePoolService(poolStr core.IPoolStore, poolWallet core.IWalletService) core.IPoolService {
	return poolservice.New(cfg.Pool, poolStr, poolWallet)
}

func provideLendService(
	guard *core.Guard,
	marketStr core.IMarketStore,
	positionStr core.IPositionStore,
	poolSrv core.IPoolService,
	priceSrv core.IPriceOracleService,
	blockSrv core.IBlockService,
	custodyWallet core.IWalletService,
) core.ILendService {
	return lendservice.New(guard, marketStr, positionStr, poolSrv, priceSrv, blockSrv, custodyWallet)
}

func provideLiquidateService(
	guard *core.Guard,
	marketStr core.IMarketStore,
	positionStr core.IPositionStore,
	liquidationStr core.ILiquidationStore,
	poolSrv core.IPoolService,
	priceSrv core.IPriceOracleService,
	blockSrv core.IBlockService,
	custodyWallet core.IWalletService,
	redeemer core.ICollateralRedeemer,
) core.ILiquidateService {
	return liquidateservice.New(guard, marketStr, positionStr, liquidationStr, poolSrv, priceSrv, blockSrv, custodyWallet, redeemer)
}
