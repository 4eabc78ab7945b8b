// Package questions assigns the fixed six-question set for a session:
// two easy, two medium, two hard, in that order. Questions come from an
// embedded bank, personalized against the candidate's resume content when
// available.
package questions

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/CodingManiac11/ai-interview-assistant/internal/models"
)

//go:embed bank.yaml
var bankFS embed.FS

// bankEntry is a question as stored in the YAML bank. Time limits are
// derived from difficulty, not stored.
type bankEntry struct {
	ID         string            `yaml:"id"`
	Text       string            `yaml:"text"`
	Difficulty models.Difficulty `yaml:"difficulty"`
	Category   string            `yaml:"category"`
	Skills     []string          `yaml:"skills"`
	Seniority  string            `yaml:"seniority"`
}

type bankFile struct {
	SkillKeywords []string    `yaml:"skill_keywords"`
	Generic       []bankEntry `yaml:"generic"`
	Personalized  []bankEntry `yaml:"personalized"`
}

// Bank is the loaded question bank.
type Bank struct {
	skillKeywords []string
	generic       []bankEntry
	personalized  []bankEntry
}

// LoadBank parses and validates the embedded question bank.
func LoadBank() (*Bank, error) {
	data, err := bankFS.ReadFile("bank.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read question bank: %w", err)
	}

	var file bankFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse question bank: %w", err)
	}

	if err := validateBank(&file); err != nil {
		return nil, fmt.Errorf("invalid question bank: %w", err)
	}

	return &Bank{
		skillKeywords: file.SkillKeywords,
		generic:       file.Generic,
		personalized:  file.Personalized,
	}, nil
}

func validateBank(file *bankFile) error {
	counts := make(map[models.Difficulty]int)
	for _, entry := range append(append([]bankEntry{}, file.Generic...), file.Personalized...) {
		if entry.ID == "" || entry.Text == "" {
			return fmt.Errorf("question %q must have id and text", entry.ID)
		}
		if models.TimeLimitFor(entry.Difficulty) == 0 {
			return fmt.Errorf("question %q has unknown difficulty %q", entry.ID, entry.Difficulty)
		}
	}
	for _, entry := range file.Generic {
		counts[entry.Difficulty]++
	}
	for _, d := range models.Difficulties() {
		if counts[d] < models.QuestionsPerDifficulty {
			return fmt.Errorf("generic bank needs at least %d %s questions, has %d",
				models.QuestionsPerDifficulty, d, counts[d])
		}
	}
	return nil
}

func (e bankEntry) toQuestion() models.Question {
	return models.Question{
		ID:         e.ID,
		Text:       e.Text,
		Difficulty: e.Difficulty,
		TimeLimit:  models.TimeLimitFor(e.Difficulty),
		Category:   e.Category,
	}
}
