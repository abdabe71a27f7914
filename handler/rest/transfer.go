package rest

import (
	"net/http"

	"lever/core"
	"lever/handler/param"
	"lever/handler/render"

	"github.com/spf13/cast"
)

func transfersHandler(walletStr core.IWalletStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			Account string `json:"account"`
			From    string `json:"from"`
			Limit   string `json:"limit"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		limit := cast.ToInt(params.Limit)
		if limit <= 0 || limit > 500 {
			limit = 100
		}

		transfers, err := walletStr.ListTransfers(ctx, params.Account, cast.ToUint64(params.From), limit)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, transfers)
	}
}
