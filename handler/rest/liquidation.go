package rest

import (
	"errors"
	"net/http"
	"strings"

	"lever/core"
	"lever/handler/param"
	"lever/handler/render"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

func liquidationHandler(liquidateSrv core.ILiquidateService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			Liquidator string          `json:"liquidator"`
			UserID     string          `json:"user_id"`
			Symbol     string          `json:"symbol"`
			Amount     decimal.Decimal `json:"amount"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		result, err := liquidateSrv.Liquidate(ctx, params.Liquidator, params.UserID, strings.ToLower(params.Symbol), params.Amount)
		if err != nil {
			render.Failed(w, err)
			return
		}

		render.JSON(w, result)
	}
}

func liquidationsHandler(liquidationStr core.ILiquidationStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			Symbol string `json:"symbol"`
			From   string `json:"from"`
			Limit  string `json:"limit"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		limit := cast.ToInt(params.Limit)
		if limit <= 0 || limit > 500 {
			limit = 100
		}

		liquidations, err := liquidationStr.List(ctx, strings.ToLower(params.Symbol), cast.ToUint64(params.From), limit)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, liquidations)
	}
}

func findLiquidationHandler(liquidationStr core.ILiquidationStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id := cast.ToUint64(param.String(r, "id"))
		if id == 0 {
			render.BadRequest(w, errors.New("invalid liquidation id"))
			return
		}

		liquidation, found, err := liquidationStr.Find(ctx, id)
		if err != nil {
			render.BadRequest(w, err)
			return
		}
		if !found {
			render.NotFoundRequest(w, errors.New("liquidation not found"))
			return
		}

		render.JSON(w, liquidation)
	}
}
