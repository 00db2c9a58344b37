// Package guide generates module learning guides: a structured HTML fragment
// per catalog module, sanitized against a strict allow-list before it ever
// reaches the terminal renderer.
package guide

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/learnpb/internal/llm"
)

// Guide is a generated learning guide for one module. Content holds the
// sanitized HTML fragment; guides are never cached, every open regenerates.
type Guide struct {
	Module  string
	Content string
}

// Config controls guide generation.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the recommended guide settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   4096,
		Temperature: 0.7,
	}
}

// Service generates learning guides via an llm.Provider.
type Service struct {
	provider llm.Provider
	config   Config
}

// NewService creates a guide Service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, config: cfg}
}

type guideOutput struct {
	Content *string `json:"content"`
}

// Generate produces a guide for moduleName. The returned content is
// already sanitized.
func (s *Service) Generate(ctx context.Context, moduleName string) (*Guide, error) {
	ctx = llm.WithPurpose(ctx, "module-guide")

	req := llm.Request{
		System: guideSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildGuideMessage(moduleName)},
		},
		Schema:      GuideSchema,
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("guide generation failed: %w", err)
	}

	var out guideOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, &llm.ErrInvalidResponse{
			Content: resp.Content,
			Err:     fmt.Errorf("parse guide: %w", err),
		}
	}
	if out.Content == nil || *out.Content == "" {
		return nil, &llm.ErrInvalidResponse{
			Content: resp.Content,
			Err:     fmt.Errorf("guide content missing or empty"),
		}
	}

	return &Guide{
		Module:  moduleName,
		Content: Sanitize(*out.Content),
	}, nil
}
