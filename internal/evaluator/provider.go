// Package evaluator scores interview answers. Scoring backends are
// pluggable providers; the aggregation of a finished answer set is a pure
// local computation shared by all of them.
package evaluator

import (
	"context"

	"github.com/CodingManiac11/ai-interview-assistant/internal/models"
)

// Evaluation is the result for a single answer. Score is bounded to
// [0, 10] and Feedback is always non-empty.
type Evaluation struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

// Provider is the contract every scoring backend must honor: a bounded
// score range, non-empty feedback, and bounded completion time.
type Provider interface {
	Evaluate(ctx context.Context, question models.Question, answer string, timeSpent int) (*Evaluation, error)
	Name() string
}

// ProviderError is an error from a scoring backend.
type ProviderError struct {
	Provider string
	Code     string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return e.Provider + " error: " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Provider + " error: " + e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Common error codes across providers.
const (
	ErrCodeAPIKey       = "invalid_api_key"
	ErrCodeServiceDown  = "service_unavailable"
	ErrCodeInvalidInput = "invalid_input"
	ErrCodeTimeout      = "timeout"
)
