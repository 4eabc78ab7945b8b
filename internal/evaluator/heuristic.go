package evaluator

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/CodingManiac11/ai-interview-assistant/internal/models"
)

const (
	briefAnswerThreshold = 20  // characters
	rushedRatio          = 0.3 // fraction of the time budget
	ranOutRatio          = 0.9
)

// Heuristic is the built-in deterministic scoring backend. It stands in for
// a real scoring service but honors the same provider contract, so the two
// are interchangeable. The random perturbation source is injectable so
// tests can pin scores.
type Heuristic struct {
	mu      sync.Mutex
	rng     *rand.Rand
	latency time.Duration
}

// NewHeuristic creates a heuristic provider seeded from seed. latency, if
// positive, simulates backend response time and respects ctx cancellation.
func NewHeuristic(seed int64, latency time.Duration) *Heuristic {
	return &Heuristic{rng: rand.New(rand.NewSource(seed)), latency: latency}
}

func (h *Heuristic) Name() string {
	return "heuristic"
}

func (h *Heuristic) Evaluate(ctx context.Context, question models.Question, answer string, timeSpent int) (*Evaluation, error) {
	if h.latency > 0 {
		select {
		case <-time.After(h.latency):
		case <-ctx.Done():
			return nil, &ProviderError{
				Provider: "heuristic",
				Code:     ErrCodeTimeout,
				Message:  "evaluation cancelled",
				Err:      ctx.Err(),
			}
		}
	}

	text := strings.TrimSpace(answer)
	length := len(text)

	if length == 0 {
		return &Evaluation{Score: 0, Feedback: "No answer provided."}, nil
	}

	if length < briefAnswerThreshold {
		score := length/10 + 1
		if score > 3 {
			score = 3
		}
		return &Evaluation{
			Score:    float64(score),
			Feedback: "Answer is too brief. Consider providing more detail and examples.",
		}, nil
	}

	// Base score from answer length, capped at 8.
	base := length/50 + 3
	if base > 8 {
		base = 8
	}

	var timeRatio float64
	if question.TimeLimit > 0 {
		timeRatio = float64(timeSpent) / float64(question.TimeLimit)
	}

	feedback := "Good balance of detail and time management."
	switch {
	case timeRatio < rushedRatio:
		base -= 2
		feedback = "Good efficiency, but consider taking more time to provide comprehensive answers."
	case timeRatio > ranOutRatio:
		base--
		feedback = "Time management could be improved. Try to be more concise."
	}
	if base < 1 {
		base = 1
	}

	score := base + h.perturb()
	if score < 1 {
		score = 1
	}
	if score > 10 {
		score = 10
	}

	switch {
	case score >= 8:
		feedback = "Excellent answer! Shows strong understanding of the concept."
	case score >= 6:
		feedback = "Good answer with room for improvement. Consider adding more specific examples."
	case score >= 4:
		feedback = "Adequate answer but lacks depth. Try to explain the reasoning behind your approach."
	}

	return &Evaluation{Score: float64(score), Feedback: feedback}, nil
}

// perturb returns the bounded +-1 variation applied to simulate scoring
// jitter of a real backend.
func (h *Heuristic) perturb() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rng.Float64() > 0.5 {
		return 1
	}
	return -1
}

func init() {
	RegisterProvider("heuristic", func() (Provider, error) {
		return NewHeuristic(time.Now().UnixNano(), 500*time.Millisecond), nil
	})
}
