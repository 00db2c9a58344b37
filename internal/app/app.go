// Package app wires the services into the root Bubble Tea model and runs
// the program.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnpb/internal/codecheck"
	"github.com/abhisek/learnpb/internal/guide"
	"github.com/abhisek/learnpb/internal/quizgen"
	"github.com/abhisek/learnpb/internal/router"
	"github.com/abhisek/learnpb/internal/screen"
	"github.com/abhisek/learnpb/internal/screens/home"
	"github.com/abhisek/learnpb/internal/screens/welcome"
	"github.com/abhisek/learnpb/internal/store"
	"github.com/abhisek/learnpb/internal/ui/layout"
)

// Deps are the services the screens need.
type Deps struct {
	Generator quizgen.Generator
	Checker   *codecheck.Checker
	Guides    *guide.Service
	Events    store.EventRepo
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

func newAppModel(deps Deps) AppModel {
	splash := welcome.New(func() screen.Screen {
		return home.New(home.Deps{
			Generator: deps.Generator,
			Checker:   deps.Checker,
			Guides:    deps.Guides,
			Events:    deps.Events,
		})
	})
	return AppModel{
		router: router.New(splash),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Esc is left to the screens: the modules screen closes its modal
		// with it, everything else pops itself.
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	var correct, total int
	if sp, ok := active.(screen.ScoreProvider); ok {
		correct, total = sp.Score()
	}

	header := layout.RenderHeader(title, correct, total, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(deps Deps) error {
	p := tea.NewProgram(newAppModel(deps))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
