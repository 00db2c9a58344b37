package placeholder

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnpb/internal/router"
	"github.com/abhisek/learnpb/internal/screen"
	"github.com/abhisek/learnpb/internal/ui/theme"
)

// PlaceholderScreen stands in for a feature that needs a configured
// generation provider.
type PlaceholderScreen struct {
	title string
}

var _ screen.Screen = (*PlaceholderScreen)(nil)

// New creates a PlaceholderScreen with the given title.
func New(title string) *PlaceholderScreen {
	return &PlaceholderScreen{title: title}
}

func (p *PlaceholderScreen) Init() tea.Cmd {
	return nil
}

func (p *PlaceholderScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "esc" {
		return p, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return p, nil
}

func (p *PlaceholderScreen) View(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render("╌╌ No provider configured ╌╌\n\nSet GEMINI_API_KEY (or OPENAI_API_KEY /\nANTHROPIC_API_KEY) and restart to enable\nAI features.")
}

func (p *PlaceholderScreen) Title() string {
	return p.title
}
