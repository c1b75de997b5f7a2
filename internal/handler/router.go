package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter wires the results API. Middlewares apply to every route in the
// given order.
func NewRouter(h *Handler, ping *PingHandler, middlewares ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middlewares...)

	r.Get("/", h.IndexHandler)
	r.Get("/ping", ping.PingHandler)
	r.Route("/runs", func(r chi.Router) {
		r.Post("/", h.SaveRunHandler)
		r.Get("/", h.ListRunsHandler)
		r.Get("/{id}", h.GetRunHandler)
		r.Get("/{id}/series/{metric}", h.SeriesHandler)
	})
	return r
}
