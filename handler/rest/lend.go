package rest

import (
	"context"
	"net/http"
	"strings"

	"lever/core"
	"lever/handler/param"
	"lever/handler/render"

	"github.com/shopspring/decimal"
)

type lendOperation func(ctx context.Context, userID, symbol string, amount decimal.Decimal) (*core.Position, error)

func lendHandler(op lendOperation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			UserID string          `json:"user_id"`
			Symbol string          `json:"symbol"`
			Amount decimal.Decimal `json:"amount"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		position, err := op(ctx, params.UserID, strings.ToLower(params.Symbol), params.Amount)
		if err != nil {
			render.Failed(w, err)
			return
		}

		render.JSON(w, position)
	}
}
