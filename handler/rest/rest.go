package rest

import (
	"errors"
	"net/http"

	"lever/core"
	"lever/handler/render"

	"github.com/go-chi/chi"
)

// Handle handle rest api request
func Handle(
	marketStr core.IMarketStore,
	positionStr core.IPositionStore,
	poolStr core.IPoolStore,
	walletStr core.IWalletStore,
	liquidationStr core.ILiquidationStore,
	priceSrv core.IPriceOracleService,
	blockSrv core.IBlockService,
	lendSrv core.ILendService,
	liquidateSrv core.ILiquidateService,
	poolSrv core.IPoolService,
) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/markets/all", allMarketsHandler(marketStr, priceSrv))
	router.Get("/markets/{symbol}", marketHandler(marketStr, priceSrv))

	router.Get("/positions", positionsHandler(marketStr, positionStr, priceSrv, blockSrv))
	router.Get("/positions/{symbol}", positionHandler(marketStr, positionStr, priceSrv, blockSrv))

	router.Post("/deposits", lendHandler(lendSrv.Deposit))
	router.Post("/borrows", lendHandler(lendSrv.Borrow))
	router.Post("/repayments", lendHandler(lendSrv.Repay))
	router.Post("/withdrawals", lendHandler(lendSrv.Withdraw))

	router.Post("/liquidations", liquidationHandler(liquidateSrv))
	router.Get("/liquidations", liquidationsHandler(liquidationStr))
	router.Get("/liquidations/{id}", findLiquidationHandler(liquidationStr))

	router.Get("/pool", poolHandler(poolStr, poolSrv))
	router.Get("/pool/shares/{user_id}", poolShareHandler(poolStr, poolSrv))
	router.Post("/pool/deposits", poolDepositHandler(poolSrv))
	router.Post("/pool/redemptions", poolRedeemHandler(poolSrv))

	router.Get("/transfers", transfersHandler(walletStr))

	return router
}
