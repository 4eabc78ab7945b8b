package evaluator

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/CodingManiac11/ai-interview-assistant/internal/models"
)

func testQuestion(limit int) models.Question {
	return models.Question{
		ID:         "q-1",
		Text:       "Explain the event loop.",
		Difficulty: models.DifficultyMedium,
		TimeLimit:  limit,
		Category:   "Node.js",
	}
}

// fixedHeuristic returns a provider whose perturbation is pinned: seed 1
// yields Float64() > 0.5 on the first draw, so the perturbation is +1.
func fixedHeuristic(t *testing.T) *Heuristic {
	t.Helper()
	return NewHeuristic(1, 0)
}

func TestEvaluateEmptyAnswerScoresZero(t *testing.T) {
	h := fixedHeuristic(t)

	for _, answer := range []string{"", "   ", "\n\t"} {
		eval, err := h.Evaluate(context.Background(), testQuestion(60), answer, 10)
		if err != nil {
			t.Fatalf("Evaluate returned error: %v", err)
		}
		if eval.Score != 0 {
			t.Fatalf("expected score 0 for empty answer %q, got %v", answer, eval.Score)
		}
		if eval.Feedback != "No answer provided." {
			t.Fatalf("unexpected feedback: %q", eval.Feedback)
		}
	}
}

func TestEvaluateBriefAnswerCappedAtThree(t *testing.T) {
	h := fixedHeuristic(t)

	eval, err := h.Evaluate(context.Background(), testQuestion(60), "short reply please", 30)
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	if eval.Score < 1 || eval.Score > 3 {
		t.Fatalf("expected brief answer capped at 3, got %v", eval.Score)
	}
	if !strings.Contains(eval.Feedback, "too brief") {
		t.Fatalf("expected brevity feedback, got %q", eval.Feedback)
	}
}

func TestEvaluateIsDeterministicForSeed(t *testing.T) {
	answer := strings.Repeat("a solid explanation ", 15) // ~300 chars

	first, err := NewHeuristic(42, 0).Evaluate(context.Background(), testQuestion(60), answer, 30)
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	second, err := NewHeuristic(42, 0).Evaluate(context.Background(), testQuestion(60), answer, 30)
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	if first.Score != second.Score || first.Feedback != second.Feedback {
		t.Fatalf("same seed produced different evaluations: %+v vs %+v", first, second)
	}
}

func TestEvaluateScoreStaysInBounds(t *testing.T) {
	h := NewHeuristic(7, 0)
	answers := []string{
		strings.Repeat("x", 25),
		strings.Repeat("detailed answer with examples ", 5),
		strings.Repeat("very long thorough answer text ", 40),
	}
	for _, answer := range answers {
		for _, spent := range []int{1, 30, 59, 60} {
			eval, err := h.Evaluate(context.Background(), testQuestion(60), answer, spent)
			if err != nil {
				t.Fatalf("Evaluate returned error: %v", err)
			}
			if eval.Score < 1 || eval.Score > 10 {
				t.Fatalf("score %v out of [1,10] for len=%d spent=%d", eval.Score, len(answer), spent)
			}
			if eval.Feedback == "" {
				t.Fatalf("expected non-empty feedback")
			}
		}
	}
}

func TestEvaluateRushedAnswerPenalized(t *testing.T) {
	answer := strings.Repeat("concise but complete answer ", 4) // >100 chars, base 5

	rushed, err := fixedHeuristic(t).Evaluate(context.Background(), testQuestion(60), answer, 5)
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	balanced, err := fixedHeuristic(t).Evaluate(context.Background(), testQuestion(60), answer, 30)
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	if rushed.Score >= balanced.Score {
		t.Fatalf("expected rushed score %v below balanced score %v", rushed.Score, balanced.Score)
	}
}

func TestEvaluateZeroTimeLimitDoesNotPanic(t *testing.T) {
	h := fixedHeuristic(t)
	if _, err := h.Evaluate(context.Background(), testQuestion(0), strings.Repeat("ok ", 20), 10); err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
}

func TestEvaluateHonorsContextCancellation(t *testing.T) {
	h := NewHeuristic(1, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := h.Evaluate(ctx, testQuestion(60), "answer", 10); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}

func TestNewProviderFromRegistry(t *testing.T) {
	p, err := NewProvider("heuristic")
	if err != nil {
		t.Fatalf("NewProvider returned error: %v", err)
	}
	if p.Name() != "heuristic" {
		t.Fatalf("unexpected provider name %q", p.Name())
	}

	if _, err := NewProvider("unknown"); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}
