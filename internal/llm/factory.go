package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/learnpb/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped with event
// logging. Retries are off unless configured: every operation in this app
// is user-triggered, a failure surfaces as an error banner, and the user
// re-triggers manually.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Logging sits inside retry so every attempt is recorded.
	logged := WithLogging(base, eventRepo)
	if cfg.Retry.MaxAttempts > 1 {
		return WithRetry(logged, cfg.Retry), nil
	}
	return logged, nil
}

// NewProviderFromEnv builds a Provider from LEARNPB_* env config, falling
// back to key auto-discovery (GEMINI_API_KEY etc.) when nothing explicit is
// set.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo) (Provider, error) {
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, err
		}
		cfg = discovered
	}
	return NewProvider(ctx, cfg, eventRepo)
}
