// Package codecheck judges code submissions against a question's reference
// answer by asking the generation service for a verdict. Nothing is executed
// locally.
package codecheck

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/learnpb/internal/llm"
)

// EmptySubmissionFeedback is returned without contacting the service when
// the learner submits nothing.
const EmptySubmissionFeedback = "Please enter some code to check."

// Result is the verdict for one submission. It is transient: every check
// recomputes it, nothing is cached across submissions.
type Result struct {
	IsCorrect bool
	Feedback  string
}

// Checker validates code submissions via an llm.Provider.
type Checker struct {
	provider llm.Provider
	config   Config
}

// Config controls the Checker.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the recommended checker settings. Temperature is
// kept low: verdicts should be stable across identical submissions.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   512,
		Temperature: 0.2,
	}
}

// New creates a Checker.
func New(provider llm.Provider, cfg Config) *Checker {
	return &Checker{provider: provider, config: cfg}
}

// resultOutput is the raw wire shape of a verdict.
type resultOutput struct {
	IsCorrect *bool   `json:"isCorrect"`
	Feedback  *string `json:"feedback"`
}

// Check judges userCode against the question and its reference answer.
// An empty or whitespace-only submission short-circuits to an incorrect
// verdict without calling the service.
func (c *Checker) Check(ctx context.Context, questionText, referenceAnswer, userCode string) (*Result, error) {
	if strings.TrimSpace(userCode) == "" {
		return &Result{IsCorrect: false, Feedback: EmptySubmissionFeedback}, nil
	}

	ctx = llm.WithPurpose(ctx, "code-check")

	req := llm.Request{
		System: checkSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildCheckMessage(questionText, referenceAnswer, userCode)},
		},
		Schema:      VerdictSchema,
		MaxTokens:   c.config.MaxTokens,
		Temperature: c.config.Temperature,
	}

	resp, err := c.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("code validation failed: %w", err)
	}

	var out resultOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, &llm.ErrInvalidResponse{
			Content: resp.Content,
			Err:     fmt.Errorf("parse verdict: %w", err),
		}
	}
	if out.IsCorrect == nil || out.Feedback == nil {
		return nil, &llm.ErrInvalidResponse{
			Content: resp.Content,
			Err:     fmt.Errorf("verdict missing isCorrect or feedback"),
		}
	}

	return &Result{IsCorrect: *out.IsCorrect, Feedback: *out.Feedback}, nil
}
