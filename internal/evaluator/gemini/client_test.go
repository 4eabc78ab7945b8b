package gemini

import "testing"

func TestParseEvaluation(t *testing.T) {
	eval, err := parseEvaluation("SCORE: 7\nFEEDBACK: Solid answer with examples.")
	if err != nil {
		t.Fatalf("parseEvaluation returned error: %v", err)
	}
	if eval.Score != 7 {
		t.Fatalf("expected score 7, got %v", eval.Score)
	}
	if eval.Feedback != "Solid answer with examples." {
		t.Fatalf("unexpected feedback: %q", eval.Feedback)
	}
}

func TestParseEvaluationClampsScore(t *testing.T) {
	eval, err := parseEvaluation("SCORE: 14\nFEEDBACK: over-enthusiastic model")
	if err != nil {
		t.Fatalf("parseEvaluation returned error: %v", err)
	}
	if eval.Score != 10 {
		t.Fatalf("expected score clamped to 10, got %v", eval.Score)
	}

	eval, err = parseEvaluation("SCORE: -2\nFEEDBACK: harsh")
	if err != nil {
		t.Fatalf("parseEvaluation returned error: %v", err)
	}
	if eval.Score != 0 {
		t.Fatalf("expected score clamped to 0, got %v", eval.Score)
	}
}

func TestParseEvaluationMissingScore(t *testing.T) {
	if _, err := parseEvaluation("the model rambled instead"); err == nil {
		t.Fatal("expected error for response without SCORE line")
	}
}

func TestParseEvaluationDefaultsFeedback(t *testing.T) {
	eval, err := parseEvaluation("SCORE: 5")
	if err != nil {
		t.Fatalf("parseEvaluation returned error: %v", err)
	}
	if eval.Feedback == "" {
		t.Fatal("expected non-empty fallback feedback")
	}
}
