package routers

import (
	"github.com/go-chi/chi/v5"

	"github.com/CodingManiac11/ai-interview-assistant/internal/handlers"
	"github.com/CodingManiac11/ai-interview-assistant/internal/middleware"
	"github.com/CodingManiac11/ai-interview-assistant/internal/models"
)

func SessionRoutes(router *chi.Mux, sessionHandler *handlers.SessionHandler) {
	router.Route("/api/v1/session", func(r chi.Router) {
		r.Get("/", sessionHandler.GetSessionHandler)
		r.With(middleware.ValidateRequest[*models.LoadSessionRequest]()).Post("/load", sessionHandler.LoadSessionHandler)
		r.Post("/start", sessionHandler.StartSessionHandler)
		r.With(middleware.ValidateRequest[*models.SubmitAnswerRequest]()).Post("/answer", sessionHandler.SubmitAnswerHandler)
		r.With(middleware.ValidateRequest[*models.DraftRequest]()).Post("/draft", sessionHandler.DraftHandler)
		r.Get("/resume", sessionHandler.GetResumeHandler)
		r.With(middleware.ValidateRequest[*models.ResumeDecisionRequest]()).Post("/resume", sessionHandler.PostResumeHandler)
	})
}
