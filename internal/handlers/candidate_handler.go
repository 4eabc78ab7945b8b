// Package handlers exposes the interview engine over HTTP.
package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/CodingManiac11/ai-interview-assistant/internal/middleware"
	"github.com/CodingManiac11/ai-interview-assistant/internal/models"
	"github.com/CodingManiac11/ai-interview-assistant/internal/repository"
	"github.com/CodingManiac11/ai-interview-assistant/internal/resume"
	"github.com/CodingManiac11/ai-interview-assistant/internal/session"
	"github.com/CodingManiac11/ai-interview-assistant/internal/utils"
)

type CandidateHandler struct {
	repo       *repository.CandidateRepository
	controller *session.Controller
	logger     *zap.Logger
}

func NewCandidateHandler(repo *repository.CandidateRepository, controller *session.Controller, logger *zap.Logger) *CandidateHandler {
	return &CandidateHandler{repo: repo, controller: controller, logger: logger}
}

// CreateCandidateHandler seeds a new candidate. Contact fields left blank
// are filled from the resume text when it carries them.
func (h *CandidateHandler) CreateCandidateHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.CreateCandidateRequest](r)

	profile := models.CandidateProfile{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		ResumeContent:  req.ResumeContent,
		ResumeFileName: req.ResumeFileName,
	}
	if req.ResumeContent != "" {
		extracted := resume.Extract(req.ResumeContent)
		if profile.Name == "" {
			profile.Name = extracted.Name
		}
		if profile.Email == "" {
			profile.Email = extracted.Email
		}
		if profile.Phone == "" {
			profile.Phone = extracted.Phone
		}
	}

	candidate, err := h.repo.Create(profile)
	if err != nil {
		h.logger.Error("failed to create candidate", zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "create_failed",
			Message: "Failed to create candidate",
		})
		return
	}

	h.logger.Info("candidate created", zap.String("candidateId", candidate.ID))
	utils.JSON(w, http.StatusCreated, candidate)
}

func (h *CandidateHandler) ListCandidatesHandler(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.repo.List()
	if err != nil {
		h.logger.Error("failed to list candidates", zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "list_failed",
			Message: "Failed to list candidates",
		})
		return
	}
	utils.JSON(w, http.StatusOK, candidates)
}

func (h *CandidateHandler) GetCandidateHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	candidate, err := h.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrCandidateNotFound) {
			utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
				Code:    "candidate_not_found",
				Message: "Candidate not found",
			})
			return
		}
		h.logger.Error("failed to fetch candidate", zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "fetch_failed",
			Message: "Failed to fetch candidate",
		})
		return
	}
	utils.JSON(w, http.StatusOK, candidate)
}

// ResetCandidateHandler wipes a candidate's interview progress. The live
// session is torn down if it belongs to this candidate.
func (h *CandidateHandler) ResetCandidateHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	candidate, err := h.controller.ResetCandidate(id)
	if err != nil {
		if errors.Is(err, repository.ErrCandidateNotFound) {
			utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
				Code:    "candidate_not_found",
				Message: "Candidate not found",
			})
			return
		}
		h.logger.Error("failed to reset candidate", zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "reset_failed",
			Message: "Failed to reset candidate",
		})
		return
	}
	utils.JSON(w, http.StatusOK, candidate)
}
