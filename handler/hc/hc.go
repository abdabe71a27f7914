package hc

import (
	"net/http"
	"time"

	"lever/handler/render"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
)

// Handle reports process uptime and the build version for liveness probes.
func Handle(ver string) http.Handler {
	boot := time.Now()

	r := chi.NewRouter()
	r.Use(middleware.NoCache)
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		render.JSON(w, render.H{
			"uptime":  time.Since(boot).Truncate(time.Millisecond).String(),
			"version": ver,
		})
	})

	return r
}
