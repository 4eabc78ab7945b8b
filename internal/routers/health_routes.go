package routers

import (
	"github.com/go-chi/chi/v5"

	"github.com/CodingManiac11/ai-interview-assistant/internal/handlers"
)

func HealthRoutes(router *chi.Mux, healthHandler *handlers.HealthHandler) {
	router.Get("/healthz", healthHandler.HealthzHandler)
	router.Get("/readyz", healthHandler.ReadyzHandler)
}
