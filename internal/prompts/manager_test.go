package prompts

import (
	"strings"
	"testing"
)

func TestBuildEvaluatePrompt(t *testing.T) {
	m, err := NewManager()
	if err != nil {
		t.Fatalf("NewManager returned error: %v", err)
	}

	prompt, err := m.BuildPrompt("evaluate", "default", map[string]string{
		"Difficulty": "easy",
		"TimeLimit":  "20",
		"Category":   "React",
		"Question":   "What is a component?",
		"Answer":     "A reusable piece of UI.",
		"TimeSpent":  "12",
	})
	if err != nil {
		t.Fatalf("BuildPrompt returned error: %v", err)
	}

	for _, want := range []string{
		"What is a component?",
		"A reusable piece of UI.",
		"20 second limit",
		"SCORE:",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
	if strings.Contains(prompt, "{{.") {
		t.Fatalf("prompt has unresolved placeholders:\n%s", prompt)
	}
}

func TestBuildPromptUnknownTemplate(t *testing.T) {
	m, err := NewManager()
	if err != nil {
		t.Fatalf("NewManager returned error: %v", err)
	}

	if _, err := m.BuildPrompt("missing", "default", nil); err == nil {
		t.Fatal("expected error for unknown template")
	}
	if _, err := m.BuildPrompt("evaluate", "missing", nil); err == nil {
		t.Fatal("expected error for unknown variant")
	}
}
