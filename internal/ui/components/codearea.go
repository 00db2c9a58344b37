package components

import (
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/learnpb/internal/ui/theme"
)

// CodeArea wraps bubbles/textarea for code entry.
type CodeArea struct {
	Model textarea.Model
}

// NewCodeArea creates a focused code editor sized for short snippets.
func NewCodeArea(width int) CodeArea {
	ta := textarea.New()
	ta.Placeholder = "Write your code here..."
	ta.ShowLineNumbers = true
	ta.SetWidth(width)
	ta.SetHeight(8)
	ta.Focus()

	styles := ta.Styles()
	styles.Focused.CursorLine = styles.Focused.CursorLine.Background(theme.BgCard)
	styles.Focused.Text = styles.Focused.Text.Foreground(theme.Text)
	ta.SetStyles(styles)

	return CodeArea{Model: ta}
}

// Init returns the initial command.
func (c CodeArea) Init() tea.Cmd {
	return textarea.Blink
}

// Update forwards messages to the editor.
func (c CodeArea) Update(msg tea.Msg) (CodeArea, tea.Cmd) {
	var cmd tea.Cmd
	c.Model, cmd = c.Model.Update(msg)
	return c, cmd
}

// View renders the editor.
func (c CodeArea) View() string {
	return c.Model.View()
}

// Value returns the current buffer contents.
func (c CodeArea) Value() string {
	return c.Model.Value()
}

// Blur removes focus so keystrokes stop editing the buffer.
func (c *CodeArea) Blur() {
	c.Model.Blur()
}

// Focus returns focus to the editor.
func (c *CodeArea) Focus() tea.Cmd {
	return c.Model.Focus()
}
