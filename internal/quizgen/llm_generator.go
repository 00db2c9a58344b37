package quizgen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/learnpb/internal/llm"
)

// LLMGenerator implements Generator using an llm.Provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates an LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// questionOutput is the raw wire shape before validation.
type questionOutput struct {
	ID            string   `json:"id"`
	Type          string   `json:"type"`
	QuestionText  string   `json:"questionText"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// Generate requests a question set and runs the validator chain on it.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) ([]Question, error) {
	ctx = llm.WithPurpose(ctx, "question-gen")

	count := input.Count
	if count <= 0 {
		count = g.config.QuestionCount
	}

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input, count)},
		},
		Schema:      QuestionSetSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("question generation failed: %w", err)
	}

	var raw []questionOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, &llm.ErrInvalidResponse{
			Content: resp.Content,
			Err:     fmt.Errorf("response is not a question array: %w", err),
		}
	}

	questions := make([]Question, len(raw))
	for i, r := range raw {
		questions[i] = Question{
			ID:          r.ID,
			Type:        QuestionType(r.Type),
			Text:        r.QuestionText,
			Options:     r.Options,
			Answer:      r.CorrectAnswer,
			Explanation: r.Explanation,
			Level:       input.Level,
			Language:    input.Language,
		}
	}

	for _, v := range g.config.Validators {
		if verr := v.Validate(questions); verr != nil {
			return nil, verr
		}
	}

	return questions, nil
}
