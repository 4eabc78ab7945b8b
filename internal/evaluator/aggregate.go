package evaluator

import (
	"fmt"
	"math"
	"strings"

	"github.com/CodingManiac11/ai-interview-assistant/internal/models"
)

// Aggregate folds a completed answer set into the final score and summary.
// The score is the mean of the per-answer scores rounded to one decimal; a
// difficulty bucket with no answered questions contributes 0 instead of
// dividing by zero.
func Aggregate(answers []models.Answer) (float64, string) {
	if len(answers) == 0 {
		return 0, "No answers were provided during the interview."
	}

	var total float64
	for _, a := range answers {
		total += a.Score
	}
	average := round1(total / float64(len(answers)))

	var summary string
	switch {
	case average >= 8:
		summary = "Excellent performance! The candidate demonstrated strong technical knowledge across all areas. They showed good problem-solving skills and provided comprehensive answers within the time limits. Highly recommended for the full-stack developer position."
	case average >= 6:
		summary = "Good performance overall. The candidate has a solid foundation in full-stack development concepts. Some areas could use improvement, but they show promise and would benefit from mentoring. Recommended for the position with additional training."
	case average >= 4:
		summary = "Average performance. The candidate has basic knowledge but lacks depth in several areas. Would need significant training and mentoring to be effective in the role. Consider for junior positions or with extended onboarding."
	default:
		summary = "Below expectations. The candidate struggled with fundamental concepts and time management. Would not recommend for the current position. Consider recommending additional study and reapplication in the future."
	}

	var b strings.Builder
	b.WriteString(summary)
	b.WriteString("\n\nDetailed Analysis:\n")
	fmt.Fprintf(&b, "- Basic Concepts (Easy): %.1f/10\n", bucketMean(answers, models.DifficultyEasy))
	fmt.Fprintf(&b, "- Intermediate Skills (Medium): %.1f/10\n", bucketMean(answers, models.DifficultyMedium))
	fmt.Fprintf(&b, "- Advanced Knowledge (Hard): %.1f/10\n", bucketMean(answers, models.DifficultyHard))

	var totalTime int
	for _, a := range answers {
		totalTime += a.TimeSpent
	}
	fmt.Fprintf(&b, "- Average Time Management: %.0f seconds per question", float64(totalTime)/float64(len(answers)))

	return average, b.String()
}

func bucketMean(answers []models.Answer, d models.Difficulty) float64 {
	var sum float64
	var n int
	for _, a := range answers {
		if a.Difficulty == d {
			sum += a.Score
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
