package gemini

import (
	"context"
	"strconv"
	"strings"

	"google.golang.org/genai"

	"github.com/CodingManiac11/ai-interview-assistant/internal/evaluator"
	"github.com/CodingManiac11/ai-interview-assistant/internal/models"
	"github.com/CodingManiac11/ai-interview-assistant/internal/prompts"
)

// Client scores answers with the Gemini API. It honors the same provider
// contract as the heuristic backend: bounded score, non-empty feedback.
type Client struct {
	client  *genai.Client
	config  *Config
	prompts *prompts.Manager
}

func NewClient(config *Config) (*Client, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, &evaluator.ProviderError{
			Provider: "gemini",
			Code:     evaluator.ErrCodeAPIKey,
			Message:  "Failed to create Gemini client",
			Err:      err,
		}
	}

	promptManager, err := prompts.NewManager()
	if err != nil {
		return nil, &evaluator.ProviderError{
			Provider: "gemini",
			Code:     evaluator.ErrCodeInvalidInput,
			Message:  "Failed to load prompt templates",
			Err:      err,
		}
	}

	return &Client{client: client, config: config, prompts: promptManager}, nil
}

func (c *Client) Name() string {
	return "gemini"
}

func (c *Client) Evaluate(ctx context.Context, question models.Question, answer string, timeSpent int) (*evaluator.Evaluation, error) {
	prompt, err := c.prompts.BuildPrompt("evaluate", "default", map[string]string{
		"Difficulty": string(question.Difficulty),
		"TimeLimit":  strconv.Itoa(question.TimeLimit),
		"Category":   question.Category,
		"Question":   question.Text,
		"Answer":     answer,
		"TimeSpent":  strconv.Itoa(timeSpent),
	})
	if err != nil {
		return nil, &evaluator.ProviderError{
			Provider: "gemini",
			Code:     evaluator.ErrCodeInvalidInput,
			Message:  "Failed to build evaluation prompt",
			Err:      err,
		}
	}

	result, err := c.client.Models.GenerateContent(ctx, c.config.Model, genai.Text(prompt), nil)
	if err != nil {
		return nil, &evaluator.ProviderError{
			Provider: "gemini",
			Code:     evaluator.ErrCodeServiceDown,
			Message:  "Failed to generate evaluation",
			Err:      err,
		}
	}
	if result == nil {
		return nil, &evaluator.ProviderError{
			Provider: "gemini",
			Code:     evaluator.ErrCodeInvalidInput,
			Message:  "No response generated",
		}
	}

	text, err := result.Text()
	if err != nil {
		return nil, &evaluator.ProviderError{
			Provider: "gemini",
			Code:     evaluator.ErrCodeInvalidInput,
			Message:  "Failed to extract response text",
			Err:      err,
		}
	}

	eval, err := parseEvaluation(text)
	if err != nil {
		return nil, &evaluator.ProviderError{
			Provider: "gemini",
			Code:     evaluator.ErrCodeInvalidInput,
			Message:  "Malformed evaluation response",
			Err:      err,
		}
	}
	return eval, nil
}

// parseEvaluation extracts the SCORE/FEEDBACK lines the prompt asks for and
// clamps the score into [0, 10].
func parseEvaluation(text string) (*evaluator.Evaluation, error) {
	var scoreLine, feedback string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "SCORE:"):
			scoreLine = strings.TrimSpace(strings.TrimPrefix(line, "SCORE:"))
		case strings.HasPrefix(line, "FEEDBACK:"):
			feedback = strings.TrimSpace(strings.TrimPrefix(line, "FEEDBACK:"))
		}
	}

	if scoreLine == "" {
		return nil, strconv.ErrSyntax
	}
	score, err := strconv.ParseFloat(scoreLine, 64)
	if err != nil {
		return nil, err
	}
	if score < 0 {
		score = 0
	}
	if score > 10 {
		score = 10
	}
	if feedback == "" {
		feedback = "No feedback provided."
	}

	return &evaluator.Evaluation{Score: score, Feedback: feedback}, nil
}
