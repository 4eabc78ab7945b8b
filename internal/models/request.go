package models

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._%+-]*@[a-zA-Z0-9][a-zA-Z0-9.-]*\.[a-zA-Z]{2,}$`)

type CreateCandidateRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	ResumeContent  string `json:"resumeContent"`
	ResumeFileName string `json:"resumeFileName"`
}

// implements the Validator interface
func (r *CreateCandidateRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)

	// Contact fields may be filled in later from the resume content, but a
	// candidate created with neither contact data nor a resume is unusable.
	if r.Name == "" && r.Email == "" && r.Phone == "" && strings.TrimSpace(r.ResumeContent) == "" {
		return &ErrorResponse{
			Code:    "empty_profile",
			Message: "Provide contact fields or resume content",
		}
	}

	if r.Email != "" && !emailPattern.MatchString(r.Email) {
		return &ErrorResponse{
			Code:    "invalid_email",
			Message: "Email address is not valid",
		}
	}

	return nil
}

type LoadSessionRequest struct {
	CandidateID string `json:"candidateId"`
}

func (r *LoadSessionRequest) Validate() error {
	if strings.TrimSpace(r.CandidateID) == "" {
		return &ErrorResponse{
			Code:    "missing_candidate_id",
			Message: "candidateId is required",
		}
	}
	return nil
}

// SubmitAnswerRequest carries the answer text for the active question. An
// empty answer is accepted and scores zero.
type SubmitAnswerRequest struct {
	Answer string `json:"answer"`
}

func (r *SubmitAnswerRequest) Validate() error {
	return nil
}

// DraftRequest updates the provisional answer text recorded for the active
// question, so an expiry can submit the candidate's partial work.
type DraftRequest struct {
	Answer string `json:"answer"`
}

func (r *DraftRequest) Validate() error {
	return nil
}

// Resume decisions offered when an unfinished interview is found at load
// time.
const (
	DecisionContinue = "continue"
	DecisionRestart  = "restart"
	DecisionSwitch   = "switch"
)

type ResumeDecisionRequest struct {
	Decision string `json:"decision"`
}

func (r *ResumeDecisionRequest) Validate() error {
	switch r.Decision {
	case DecisionContinue, DecisionRestart, DecisionSwitch:
		return nil
	default:
		return &ErrorResponse{
			Code:    "invalid_decision",
			Message: "Decision must be one of: continue, restart, switch",
		}
	}
}
