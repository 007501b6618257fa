// Package web serves the program and agenda over HTTP for local viewers.
package web

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/confsched/confsched/internal/core/agenda"
	"github.com/confsched/confsched/internal/core/db"
)

// NewRouter creates the chi router with all routes and middleware.
func NewRouter(database *db.DB, ag *agenda.Set, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(CORS)
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recovery(logger))

	h := NewHandler(database, ag)

	r.Get("/healthz", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/program", h.Program)
		r.Get("/days", h.Days)
		r.Get("/days/{day}/sessions", h.DaySessions)
		r.Get("/sessions/{id}", h.Session)
		r.Get("/search", h.Search)
		r.Get("/agenda", h.Agenda)

		r.Route("/starred", func(r chi.Router) {
			r.Get("/", h.Starred)
			r.Post("/{id}/toggle", h.ToggleStar)
			r.Delete("/", h.ClearStarred)
		})

		r.Get("/share", h.Share)
		r.Post("/share/adopt", h.AdoptShare)
	})

	return r
}
