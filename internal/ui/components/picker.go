package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnpb/internal/ui/theme"
)

// Picker is a horizontal single-value selector, used for the level and
// language choices on the practice form.
type Picker struct {
	Label    string
	Options  []string
	Selected int
	Focused  bool
}

// NewPicker creates a picker with the first option selected.
func NewPicker(label string, options []string) Picker {
	return Picker{Label: label, Options: options}
}

// Update handles left/right cycling while focused.
func (p Picker) Update(msg tea.Msg) (Picker, tea.Cmd) {
	if !p.Focused {
		return p, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch kmsg.String() {
	case "left", "h":
		if p.Selected > 0 {
			p.Selected--
		}
	case "right", "l":
		if p.Selected < len(p.Options)-1 {
			p.Selected++
		}
	}

	return p, nil
}

// View renders the label and options on one line.
func (p Picker) View() string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if p.Focused {
		labelStyle = labelStyle.Foreground(theme.Text).Bold(true)
	}

	parts := make([]string, 0, len(p.Options))
	for i, opt := range p.Options {
		switch {
		case i == p.Selected && p.Focused:
			parts = append(parts, theme.Selected.Render("[ "+opt+" ]"))
		case i == p.Selected:
			parts = append(parts, lipgloss.NewStyle().Foreground(theme.Secondary).Render("[ "+opt+" ]"))
		default:
			parts = append(parts, lipgloss.NewStyle().Foreground(theme.TextDim).Render("  "+opt+"  "))
		}
	}

	return labelStyle.Render(p.Label+": ") + strings.Join(parts, " ")
}

// Value returns the selected option.
func (p Picker) Value() string {
	if p.Selected < 0 || p.Selected >= len(p.Options) {
		return ""
	}
	return p.Options[p.Selected]
}
