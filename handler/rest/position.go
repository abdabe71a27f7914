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
	"lever/internal/ltv"
)

func positionsHandler(marketStr core.IMarketStore, positionStr core.IPositionStore, priceSrv core.IPriceOracleService, blockSrv core.IBlockService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			UserID string `json:"user_id"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		positions, err := positionStr.FindByUser(ctx, params.UserID)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		positionViews := make([]*views.Position, 0)
		for _, p := range positions {
			market, err := marketStr.Find(ctx, p.Symbol)
			if err != nil || market.ID == 0 {
				continue
			}
			positionViews = append(positionViews, getPositionView(ctx, market, p, priceSrv, blockSrv))
		}

		render.JSON(w, positionViews)
	}
}

func positionHandler(marketStr core.IMarketStore, positionStr core.IPositionStore, priceSrv core.IPriceOracleService, blockSrv core.IBlockService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			UserID string `json:"user_id"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

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

		position, err := positionStr.Find(ctx, params.UserID, symbol)
		if err != nil {
			render.BadRequest(w, err)
			return
		}
		if position.ID == 0 {
			render.NotFoundRequest(w, errors.New("position not found"))
			return
		}

		render.JSON(w, getPositionView(ctx, market, position, priceSrv, blockSrv))
	}
}

// getPositionView values the position at the current oracle price with
// interest folded into a scratch copy; the ledger row is untouched.
func getPositionView(ctx context.Context, market *core.Market, position *core.Position, priceSrv core.IPriceOracleService, blockSrv core.IBlockService) *views.Position {
	scratch := *position
	if mark, err := blockSrv.CurrentMark(ctx, market); err == nil {
		ltv.Accrue(&scratch, market.RatePerPeriod, mark)
	}

	view := views.Position{Position: scratch}

	price, err := priceSrv.GetPrice(ctx, market.CollateralAsset)
	if err != nil {
		return &view
	}

	view.CollateralValue = scratch.Collateral.Mul(price).Truncate(ltv.MaxPrecision)
	view.Health = ltv.Health(view.CollateralValue, scratch.Principal)
	view.Liquidatable = ltv.Liquidatable(view.CollateralValue, scratch.Principal, market.LiquidationLTV)

	return &view
}
