// Package home is the main menu screen.
package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnpb/internal/codecheck"
	"github.com/abhisek/learnpb/internal/guide"
	"github.com/abhisek/learnpb/internal/quizgen"
	"github.com/abhisek/learnpb/internal/router"
	"github.com/abhisek/learnpb/internal/screen"
	"github.com/abhisek/learnpb/internal/screens/activity"
	"github.com/abhisek/learnpb/internal/screens/modules"
	"github.com/abhisek/learnpb/internal/screens/placeholder"
	"github.com/abhisek/learnpb/internal/screens/practice"
	"github.com/abhisek/learnpb/internal/store"
	"github.com/abhisek/learnpb/internal/ui/components"
	"github.com/abhisek/learnpb/internal/ui/theme"
)

// Deps are the services the home screen hands to its children.
type Deps struct {
	Generator quizgen.Generator
	Checker   *codecheck.Checker
	Guides    *guide.Service
	Events    store.EventRepo
}

// HomeScreen is the main menu.
type HomeScreen struct {
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen.
func New(deps Deps) *HomeScreen {
	items := []components.MenuItem{
		{Label: "PRACTICE ZONE", Action: func() tea.Cmd {
			if deps.Generator == nil || deps.Checker == nil {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: placeholder.New("Practice Zone")}
				}
			}
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: practice.New(deps.Generator, deps.Checker, deps.Events),
				}
			}
		}},
		{Label: "LEARNING MODULES", Action: func() tea.Cmd {
			if deps.Guides == nil {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: placeholder.New("Learning Modules")}
				}
			}
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: modules.New(deps.Guides)}
			}
		}},
		{Label: "LLM ACTIVITY", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: activity.New(deps.Events)}
			}
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{menu: components.NewMenu(items)}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	title := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("Learn With PB")

	subtitle := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("practice questions, learning guides and code feedback")

	sections := []string{title, subtitle, "", h.menu.View()}
	content := strings.Join(sections, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
