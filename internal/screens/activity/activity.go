// Package activity shows the persisted LLM call log and per-purpose
// usage totals.
package activity

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnpb/internal/router"
	"github.com/abhisek/learnpb/internal/screen"
	"github.com/abhisek/learnpb/internal/store"
	"github.com/abhisek/learnpb/internal/ui/layout"
	"github.com/abhisek/learnpb/internal/ui/theme"
)

type activityLoadedMsg struct {
	events []store.LLMRequestEvent
	stats  []store.LLMUsageStat
	err    error
}

// ActivityScreen lists recent generation-service calls with per-purpose
// totals above them.
type ActivityScreen struct {
	events store.EventRepo

	rows     []store.LLMRequestEvent
	stats    []store.LLMUsageStat
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*ActivityScreen)(nil)
var _ screen.KeyHintProvider = (*ActivityScreen)(nil)

// New creates the activity screen.
func New(events store.EventRepo) *ActivityScreen {
	return &ActivityScreen{
		events:   events,
		expanded: make(map[int]bool),
	}
}

func (s *ActivityScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		events, err := s.events.QueryLLMEvents(ctx, store.QueryOpts{Limit: 50})
		if err != nil {
			return activityLoadedMsg{err: err}
		}
		stats, err := s.events.LLMUsageByPurpose(ctx)
		if err != nil {
			return activityLoadedMsg{events: events}
		}
		return activityLoadedMsg{events: events, stats: stats}
	}
}

func (s *ActivityScreen) Title() string {
	return "LLM Activity"
}

func (s *ActivityScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ActivityScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case activityLoadedMsg:
		if msg.err != nil {
			s.errMsg = msg.err.Error()
		} else {
			s.rows = msg.events
			s.stats = msg.stats
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.rows)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
		return s, nil
	}

	return s, nil
}

func (s *ActivityScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Incorrect.Render("Could not load activity: "+s.errMsg))
	}
	if !s.loaded {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("Loading..."))
	}
	if len(s.rows) == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("No LLM activity yet. Generate some questions first!"))
	}

	var sections []string
	sections = append(sections, s.renderStats())
	sections = append(sections, s.renderRows(width))

	content := strings.Join(sections, "\n\n")
	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

func (s *ActivityScreen) renderStats() string {
	if len(s.stats) == 0 {
		return ""
	}

	head := lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("%-14s %6s %10s %10s %10s", "PURPOSE", "CALLS", "TOKENS IN", "TOKENS OUT", "AVG MS"))

	lines := []string{head}
	for _, st := range s.stats {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Text).Render(
			fmt.Sprintf("%-14s %6d %10d %10d %10d",
				st.Purpose, st.Calls, st.InputTokens, st.OutputTokens, st.AvgLatencyMs)))
	}

	return theme.Card.Render(strings.Join(lines, "\n"))
}

func (s *ActivityScreen) renderRows(width int) string {
	var lines []string
	for i, ev := range s.rows {
		status := theme.Correct.Render("ok")
		if !ev.Success {
			status = theme.Incorrect.Render("err")
		}

		line := fmt.Sprintf("%s  %-12s %-22s %5dms  %s",
			ev.Timestamp.Format(time.DateTime),
			ev.Purpose,
			ev.Model,
			ev.LatencyMs,
			status,
		)

		if i == s.selected {
			lines = append(lines, theme.Selected.Render("▸ "+line))
		} else {
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.Text).Render("  "+line))
		}

		if s.expanded[i] {
			lines = append(lines, s.renderDetail(ev, width))
		}
	}
	return strings.Join(lines, "\n")
}

func (s *ActivityScreen) renderDetail(ev store.LLMRequestEvent, width int) string {
	detailWidth := width - 10
	if detailWidth > 100 {
		detailWidth = 100
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("provider: %s   tokens: %d in / %d out",
		ev.Provider, ev.InputTokens, ev.OutputTokens))
	if ev.ErrorMessage != "" {
		parts = append(parts, "error: "+ev.ErrorMessage)
	}
	if ev.ResponseBody != "" {
		body := ev.ResponseBody
		if len(body) > 400 {
			body = body[:400] + "..."
		}
		parts = append(parts, "response: "+body)
	}

	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(detailWidth).
		PaddingLeft(4).
		Render(strings.Join(parts, "\n"))
}
