package routers

import (
	"github.com/go-chi/chi/v5"

	"github.com/CodingManiac11/ai-interview-assistant/internal/handlers"
	"github.com/CodingManiac11/ai-interview-assistant/internal/middleware"
	"github.com/CodingManiac11/ai-interview-assistant/internal/models"
)

func CandidateRoutes(router *chi.Mux, candidateHandler *handlers.CandidateHandler) {
	router.Route("/api/v1/candidates", func(r chi.Router) {
		r.With(middleware.ValidateRequest[*models.CreateCandidateRequest]()).Post("/", candidateHandler.CreateCandidateHandler)
		r.Get("/", candidateHandler.ListCandidatesHandler)
		r.Get("/{id}", candidateHandler.GetCandidateHandler)
		r.Post("/{id}/reset", candidateHandler.ResetCandidateHandler)
	})
}
