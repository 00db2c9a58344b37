package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/learnpb/internal/ui/layout"
)

// Screen is one full-window view managed by the router.
type Screen interface {
	// Init returns the command to run when the screen first appears.
	Init() tea.Cmd

	// Update handles a message and returns the updated screen plus a command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen body. Header and footer are drawn around it.
	View(width, height int) string

	// Title is shown in the header bar.
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// ScoreProvider lets a screen surface a running score in the header.
type ScoreProvider interface {
	Score() (correct, total int)
}
