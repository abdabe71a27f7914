package rest

import (
	"net/http"

	"lever/core"
	"lever/handler/param"
	"lever/handler/render"
	"lever/handler/views"
	"lever/internal/ltv"

	"github.com/shopspring/decimal"
)

func poolHandler(poolStr core.IPoolStore, poolSrv core.IPoolService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		pool, err := poolStr.Find(ctx)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		totalAssets, err := poolSrv.TotalAssets(ctx)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		sharePrice := decimal.New(1, 0)
		if pool.TotalShares.IsPositive() {
			sharePrice = totalAssets.Div(pool.TotalShares).Truncate(ltv.MaxPrecision)
		}

		render.JSON(w, &views.Pool{
			Pool:        *pool,
			TotalAssets: totalAssets,
			SharePrice:  sharePrice,
		})
	}
}

func poolShareHandler(poolStr core.IPoolStore, poolSrv core.IPoolService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID := param.String(r, "user_id")
		share, err := poolStr.FindShare(ctx, userID)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		pool, err := poolStr.Find(ctx)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		totalAssets, err := poolSrv.TotalAssets(ctx)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, &views.PoolShare{
			PoolShare: *share,
			Assets:    ltv.AssetsForShares(share.Shares, pool.TotalShares, totalAssets),
		})
	}
}

func poolDepositHandler(poolSrv core.IPoolService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			UserID string          `json:"user_id"`
			Amount decimal.Decimal `json:"amount"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		shares, err := poolSrv.Deposit(ctx, params.UserID, params.Amount)
		if err != nil {
			render.Failed(w, err)
			return
		}

		render.JSON(w, render.H{"shares": shares})
	}
}

func poolRedeemHandler(poolSrv core.IPoolService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			UserID string          `json:"user_id"`
			Shares decimal.Decimal `json:"shares"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		assets, err := poolSrv.Redeem(ctx, params.UserID, params.Shares)
		if err != nil {
			render.Failed(w, err)
			return
		}

		render.JSON(w, render.H{"assets": assets})
	}
}
