package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnpb/internal/app"
	"github.com/abhisek/learnpb/internal/codecheck"
	"github.com/abhisek/learnpb/internal/guide"
	"github.com/abhisek/learnpb/internal/llm"
	"github.com/abhisek/learnpb/internal/quizgen"
	"github.com/abhisek/learnpb/internal/store"
)

// runApp opens the store, builds the services, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	eventRepo := st.EventRepo()
	deps := app.Deps{
		Events: eventRepo,
	}

	provider, err := llm.NewProviderFromEnv(ctx, eventRepo)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Set GEMINI_API_KEY (or OPENAI_API_KEY / ANTHROPIC_API_KEY) to enable generation.")
	} else {
		deps.Generator = quizgen.New(provider, quizgen.DefaultConfig())
		deps.Checker = codecheck.New(provider, codecheck.DefaultConfig())
		deps.Guides = guide.NewService(provider, guide.DefaultConfig())
	}

	return app.Run(deps)
}
