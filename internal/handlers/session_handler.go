package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/CodingManiac11/ai-interview-assistant/internal/middleware"
	"github.com/CodingManiac11/ai-interview-assistant/internal/models"
	"github.com/CodingManiac11/ai-interview-assistant/internal/repository"
	"github.com/CodingManiac11/ai-interview-assistant/internal/session"
	"github.com/CodingManiac11/ai-interview-assistant/internal/utils"
)

type SessionHandler struct {
	controller *session.Controller
	logger     *zap.Logger
}

func NewSessionHandler(controller *session.Controller, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{controller: controller, logger: logger}
}

// LoadSessionHandler binds a candidate to the controller.
func (h *SessionHandler) LoadSessionHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.LoadSessionRequest](r)

	candidate, err := h.controller.LoadCandidate(req.CandidateID)
	if err != nil {
		h.writeControllerError(w, err, "failed to load candidate")
		return
	}
	utils.JSON(w, http.StatusOK, candidate)
}

func (h *SessionHandler) StartSessionHandler(w http.ResponseWriter, r *http.Request) {
	sess, err := h.controller.StartInterview()
	if err != nil {
		h.writeControllerError(w, err, "failed to start interview")
		return
	}
	utils.JSON(w, http.StatusOK, sess)
}

// SubmitAnswerHandler submits the answer for the active question.
// Evaluation runs asynchronously; the response reflects the state after
// the submission was accepted, and the outcome arrives over the WebSocket.
func (h *SessionHandler) SubmitAnswerHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.SubmitAnswerRequest](r)

	if err := h.controller.SubmitAnswer(req.Answer); err != nil {
		h.writeControllerError(w, err, "failed to submit answer")
		return
	}
	utils.JSON(w, http.StatusAccepted, h.controller.Snapshot())
}

// DraftHandler records the provisional answer text so a timer expiry can
// submit the candidate's partial work.
func (h *SessionHandler) DraftHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.DraftRequest](r)

	if err := h.controller.SetDraft(req.Answer); err != nil {
		h.writeControllerError(w, err, "failed to record draft")
		return
	}
	utils.JSON(w, http.StatusNoContent, nil)
}

func (h *SessionHandler) GetSessionHandler(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, h.controller.Snapshot())
}

// GetResumeHandler reports the unfinished interview available for
// resumption, for the welcome-back prompt.
func (h *SessionHandler) GetResumeHandler(w http.ResponseWriter, r *http.Request) {
	candidate, err := h.controller.PendingResumption()
	if err != nil {
		h.writeControllerError(w, err, "failed to query resumption")
		return
	}
	utils.JSON(w, http.StatusOK, models.ResumePromptResponse{
		Candidate:         candidate,
		QuestionsAnswered: candidate.CurrentQuestionIndex,
		TotalQuestions:    models.TotalQuestions,
		Decisions:         []string{models.DecisionContinue, models.DecisionRestart, models.DecisionSwitch},
	})
}

// PostResumeHandler applies the chosen resumption decision.
func (h *SessionHandler) PostResumeHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.ResumeDecisionRequest](r)

	switch req.Decision {
	case models.DecisionContinue:
		sess, err := h.controller.ResumeContinue()
		if err != nil {
			h.writeControllerError(w, err, "failed to continue interview")
			return
		}
		utils.JSON(w, http.StatusOK, sess)
	case models.DecisionRestart:
		candidate, err := h.controller.ResumeRestart()
		if err != nil {
			h.writeControllerError(w, err, "failed to restart interview")
			return
		}
		utils.JSON(w, http.StatusOK, candidate)
	case models.DecisionSwitch:
		h.controller.SwitchCandidate()
		utils.JSON(w, http.StatusOK, h.controller.Snapshot())
	}
}

func (h *SessionHandler) writeControllerError(w http.ResponseWriter, err error, logMsg string) {
	switch {
	case errors.Is(err, repository.ErrCandidateNotFound):
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "candidate_not_found",
			Message: "Candidate not found",
		})
	case errors.Is(err, session.ErrNoPendingResumption):
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "no_pending_resumption",
			Message: "No unfinished interview to resume",
		})
	case errors.Is(err, session.ErrSessionActive):
		utils.JSON(w, http.StatusConflict, models.ErrorResponse{
			Code:    "session_active",
			Message: "An interview session is already active",
		})
	case errors.Is(err, session.ErrInterviewCompleted):
		utils.JSON(w, http.StatusConflict, models.ErrorResponse{
			Code:    "interview_completed",
			Message: "This candidate's interview is already completed; reset to start over",
		})
	case errors.Is(err, session.ErrNoActiveQuestion):
		utils.JSON(w, http.StatusConflict, models.ErrorResponse{
			Code:    "no_active_question",
			Message: "No question is currently active",
		})
	case errors.Is(err, session.ErrNoCandidate), errors.Is(err, session.ErrNotAwaitingStart):
		utils.JSON(w, http.StatusConflict, models.ErrorResponse{
			Code:    "invalid_session_state",
			Message: err.Error(),
		})
	default:
		h.logger.Error(logMsg, zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "Internal server error",
		})
	}
}
