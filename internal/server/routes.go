package server

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/pandorahunt/boxhunt/internal/hunt"
)

func addRoutes(r chi.Router, logger *slog.Logger, svc *hunt.Service, cache *NearbyCache, health map[string]Checker) {
	broker := NewBroker()

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Pandora Box Hunt API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, health))

	r.Route("/api", func(r chi.Router) {
		r.Get("/boxes", handleListBoxes(logger, svc, cache))
		r.Get("/boxes/{id}", handleBoxQuestion(logger, svc))
		r.Post("/boxes/{id}/open", handleOpenBox(logger, svc, broker))
		r.Get("/events", handleEvents(broker))
	})
}
