package questions

import (
	"strings"

	"github.com/CodingManiac11/ai-interview-assistant/internal/models"
)

// Seniority buckets inferred from resume content.
const (
	seniorityJunior = "junior"
	seniorityMid    = "mid"
	senioritySenior = "senior"
)

// Generator assembles the six-question set for one session. Output is
// deterministic for a given resume content, so the same questions can be
// re-derived when a session is resumed after a restart.
type Generator struct {
	bank *Bank
}

func NewGenerator(bank *Bank) *Generator {
	return &Generator{bank: bank}
}

// Generate returns exactly six questions in easy, easy, medium, medium,
// hard, hard order. When resume content is present, personalized questions
// matching its skills and seniority are preferred; the generic bank tops up
// any difficulty bucket that falls short.
func (g *Generator) Generate(resumeContent string) []models.Question {
	var candidates []bankEntry
	if strings.TrimSpace(resumeContent) != "" {
		skills := g.extractSkills(resumeContent)
		seniority := extractSeniority(resumeContent)
		candidates = g.personalizedFor(skills, seniority)
	}

	result := make([]models.Question, 0, models.TotalQuestions)
	for _, d := range models.Difficulties() {
		picked := 0
		for _, entry := range candidates {
			if picked == models.QuestionsPerDifficulty {
				break
			}
			if entry.Difficulty == d {
				result = append(result, entry.toQuestion())
				picked++
			}
		}
		for _, entry := range g.bank.generic {
			if picked == models.QuestionsPerDifficulty {
				break
			}
			if entry.Difficulty == d && !containsQuestion(result, entry.ID) {
				result = append(result, entry.toQuestion())
				picked++
			}
		}
	}

	return result
}

// extractSkills reports which bank skill keywords appear in the resume.
func (g *Generator) extractSkills(resumeContent string) map[string]bool {
	text := strings.ToLower(resumeContent)
	skills := make(map[string]bool)
	for _, keyword := range g.bank.skillKeywords {
		if strings.Contains(text, keyword) {
			skills[keyword] = true
		}
	}
	return skills
}

func extractSeniority(resumeContent string) string {
	text := strings.ToLower(resumeContent)
	switch {
	case strings.Contains(text, "senior") || strings.Contains(text, "lead") || strings.Contains(text, "architect"):
		return senioritySenior
	case strings.Contains(text, "junior") || strings.Contains(text, "entry") || strings.Contains(text, "intern"):
		return seniorityJunior
	default:
		return seniorityMid
	}
}

func (g *Generator) personalizedFor(skills map[string]bool, seniority string) []bankEntry {
	var matched []bankEntry
	for _, entry := range g.bank.personalized {
		if entry.Seniority != "" {
			if entry.Seniority == seniority {
				matched = append(matched, entry)
			}
			continue
		}
		for _, skill := range entry.Skills {
			if skills[skill] {
				matched = append(matched, entry)
				break
			}
		}
	}
	return matched
}

func containsQuestion(qs []models.Question, id string) bool {
	for _, q := range qs {
		if q.ID == id {
			return true
		}
	}
	return false
}
