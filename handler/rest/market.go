package rest

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"lever/core"
	"lever/handler/param"
	"lever/handler/render"
	"lever/handler/views"

	"github.com/shopspring/decimal"
)

func allMarketsHandler(marketStr core.IMarketStore, priceSrv core.IPriceOracleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		markets, err := marketStr.All(ctx)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		marketViews := make([]*views.Market, 0)
		for _, m := range markets {
			marketViews = append(marketViews, getMarketView(ctx, m, priceSrv))
		}

		render.JSON(w, marketViews)
	}
}

func marketHandler(marketStr core.IMarketStore, priceSrv core.IPriceOracleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		symbol := strings.ToLower(param.String(r, "symbol"))
		market, err := marketStr.Find(ctx, symbol)
		if err != nil {
			render.BadRequest(w, err)
			return
		}
		if market.ID == 0 {
			render.NotFoundRequest(w, errors.New("market not found"))
			return
		}

		render.JSON(w, getMarketView(ctx, market, priceSrv))
	}
}

func getMarketView(ctx context.Context, market *core.Market, priceSrv core.IPriceOracleService) *views.Market {
	price, err := priceSrv.GetPrice(ctx, market.CollateralAsset)
	if err != nil {
		price = decimal.Zero
	}

	return &views.Market{
		Market: *market,
		Price:  price,
	}
}
