package llm

import (
	"testing"
	"time"
)

// clearProviderEnv unsets every env var the config layer reads so tests
// start from a clean slate regardless of the host environment.
func clearProviderEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"LEARNPB_LLM_PROVIDER",
		"LEARNPB_GEMINI_API_KEY", "LEARNPB_GEMINI_MODEL",
		"LEARNPB_ANTHROPIC_API_KEY", "LEARNPB_ANTHROPIC_MODEL",
		"LEARNPB_OPENAI_API_KEY", "LEARNPB_OPENAI_MODEL", "LEARNPB_OPENAI_BASE_URL",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Provider != "gemini" {
		t.Errorf("expected default provider gemini, got %q", cfg.Provider)
	}
	if cfg.Gemini.Model != "gemini-flash" {
		t.Errorf("expected default gemini model, got %q", cfg.Gemini.Model)
	}
	if cfg.Timeout != 60*time.Second {
		t.Errorf("expected 60s timeout, got %s", cfg.Timeout)
	}
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("LEARNPB_LLM_PROVIDER", "openai")
	t.Setenv("LEARNPB_OPENAI_API_KEY", "sk-test")
	t.Setenv("LEARNPB_OPENAI_MODEL", "gpt-test")
	t.Setenv("LEARNPB_OPENAI_BASE_URL", "https://openrouter.ai/api/v1")

	cfg := ConfigFromEnv()
	if cfg.Provider != "openai" {
		t.Errorf("expected provider openai, got %q", cfg.Provider)
	}
	if cfg.OpenAI.APIKey != "sk-test" || cfg.OpenAI.Model != "gpt-test" {
		t.Errorf("openai config not picked up: %+v", cfg.OpenAI)
	}
	if cfg.OpenAI.BaseURL != "https://openrouter.ai/api/v1" {
		t.Errorf("base URL not picked up: %q", cfg.OpenAI.BaseURL)
	}
	// Unset values keep their defaults.
	if cfg.Gemini.Model != "gemini-flash" {
		t.Errorf("expected default gemini model, got %q", cfg.Gemini.Model)
	}
}

func TestDiscoverConfig_PriorityOrder(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("OPENAI_API_KEY", "o-key")

	cfg, ok := DiscoverConfig()
	if !ok {
		t.Fatal("expected discovery to succeed")
	}
	if cfg.Provider != "gemini" {
		t.Errorf("gemini should win when both keys are set, got %q", cfg.Provider)
	}
	if cfg.Gemini.APIKey != "g-key" {
		t.Errorf("expected g-key, got %q", cfg.Gemini.APIKey)
	}
}

func TestDiscoverConfig_FallsBackToAnthropic(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("ANTHROPIC_API_KEY", "a-key")

	cfg, ok := DiscoverConfig()
	if !ok {
		t.Fatal("expected discovery to succeed")
	}
	if cfg.Provider != "anthropic" || cfg.Anthropic.APIKey != "a-key" {
		t.Errorf("expected anthropic config, got %+v", cfg)
	}
}

func TestDiscoverConfig_NoKeys(t *testing.T) {
	clearProviderEnv(t)
	if _, ok := DiscoverConfig(); ok {
		t.Error("expected no discovery with no keys set")
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"gemini with key", Config{Provider: "gemini", Gemini: GeminiConfig{APIKey: "k"}}, false},
		{"gemini without key", Config{Provider: "gemini"}, true},
		{"anthropic without key", Config{Provider: "anthropic"}, true},
		{"openai without key", Config{Provider: "openai"}, true},
		{"mock needs no key", Config{Provider: "mock"}, false},
		{"unknown provider", Config{Provider: "cohere"}, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.cfg.Validate()
			if (err != nil) != c.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, c.wantErr)
			}
		})
	}
}
