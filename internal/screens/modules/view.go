package modules

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnpb/internal/catalog"
	"github.com/abhisek/learnpb/internal/guide"
	"github.com/abhisek/learnpb/internal/session"
	"github.com/abhisek/learnpb/internal/ui/theme"
)

func (s *ModulesScreen) View(width, height int) string {
	if s.view.Phase() != session.GuideClosed {
		return s.viewModal(width, height)
	}
	return s.viewGrid(width, height)
}

func (s *ModulesScreen) viewGrid(width, height int) string {
	cardWidth := 22

	var rows []string
	for start := 0; start < len(catalog.Modules); start += gridColumns {
		end := start + gridColumns
		if end > len(catalog.Modules) {
			end = len(catalog.Modules)
		}

		var cards []string
		for i := start; i < end; i++ {
			cards = append(cards, s.renderCard(catalog.Modules[i], i == s.cursor, cardWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	heading := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Render("Pick a module to generate its learning guide")

	content := heading + "\n\n" + strings.Join(rows, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *ModulesScreen) renderCard(m catalog.Module, selected bool, width int) string {
	icon := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.Color)).
		Render(m.Icon)

	label := icon + "  " + m.Name

	style := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Padding(1, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Foreground(theme.Text)

	if selected {
		style = style.
			BorderForeground(theme.Primary).
			Foreground(theme.Primary).
			Bold(true)
	}

	return style.Render(label)
}

func (s *ModulesScreen) viewModal(width, height int) string {
	modalWidth := width * 3 / 4
	if modalWidth > 90 {
		modalWidth = 90
	}
	innerWidth := modalWidth - 6

	title := ""
	if s.view.Selected != nil {
		title = s.view.Selected.Name + " Learning Guide"
	}

	var body string
	switch s.view.Phase() {
	case session.GuideLoading:
		body = theme.Hint.Render("Generating guide...")
	case session.GuideFailed:
		body = theme.Incorrect.Render("Could not generate the guide.") + "\n" +
			theme.Hint.Render("Press r to retry, Esc to close.")
	case session.GuideReady:
		body = s.scrolled(guide.Render(s.view.Content, innerWidth), height-8)
	}

	content := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render(title) + "\n\n" + body

	modal := theme.Card.
		Width(modalWidth).
		Render(content)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, modal)
}

// scrolled clips rendered guide text to the visible window, honoring the
// scroll offset and clamping it at the bottom.
func (s *ModulesScreen) scrolled(text string, visible int) string {
	if visible < 4 {
		visible = 4
	}

	lines := strings.Split(text, "\n")
	maxScroll := len(lines) - visible
	if maxScroll < 0 {
		maxScroll = 0
	}
	if s.scroll > maxScroll {
		s.scroll = maxScroll
	}

	end := s.scroll + visible
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[s.scroll:end], "\n")
}
