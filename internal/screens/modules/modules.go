// Package modules is the learning-module grid and its guide modal.
package modules

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/learnpb/internal/catalog"
	"github.com/abhisek/learnpb/internal/guide"
	"github.com/abhisek/learnpb/internal/router"
	"github.com/abhisek/learnpb/internal/screen"
	"github.com/abhisek/learnpb/internal/session"
	"github.com/abhisek/learnpb/internal/ui/layout"
)

const gridColumns = 3

type guideReadyMsg struct {
	token session.Token
	guide *guide.Guide
}

type guideFailedMsg struct {
	token session.Token
	err   error
}

// ModulesScreen shows the module grid. Selecting a card opens a modal
// that generates and displays the module's learning guide. Guides are
// never cached: every open regenerates.
type ModulesScreen struct {
	guides *guide.Service
	view   *session.ModuleView

	cursor int
	scroll int
}

var _ screen.Screen = (*ModulesScreen)(nil)
var _ screen.KeyHintProvider = (*ModulesScreen)(nil)

// New creates the modules screen.
func New(guides *guide.Service) *ModulesScreen {
	return &ModulesScreen{
		guides: guides,
		view:   session.NewModuleView(),
	}
}

func (s *ModulesScreen) Init() tea.Cmd {
	return nil
}

func (s *ModulesScreen) Title() string {
	return "Learning Modules"
}

func (s *ModulesScreen) KeyHints() []layout.KeyHint {
	if s.view.Phase() != session.GuideClosed {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Scroll"},
			{Key: "Esc", Description: "Close"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓←→", Description: "Navigate"},
		{Key: "Enter", Description: "Open guide"},
		{Key: "Esc", Description: "Back"},
	}
}

// openGuide clears the modal, issues a request token and starts guide
// generation. A completion carrying a stale token is dropped in Update.
func (s *ModulesScreen) openGuide(module catalog.Module) tea.Cmd {
	token := s.view.Select(module)
	s.scroll = 0
	return func() tea.Msg {
		g, err := s.guides.Generate(context.Background(), module.Name)
		if err != nil {
			return guideFailedMsg{token: token, err: err}
		}
		return guideReadyMsg{token: token, guide: g}
	}
}

func (s *ModulesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case guideReadyMsg:
		s.view.ApplyGuide(msg.token, msg.guide)
		return s, nil

	case guideFailedMsg:
		s.view.ApplyError(msg.token, msg.err)
		return s, nil

	case tea.KeyMsg:
		if s.view.Phase() != session.GuideClosed {
			return s.updateModal(msg)
		}
		return s.updateGrid(msg)
	}

	return s, nil
}

func (s *ModulesScreen) updateGrid(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	count := len(catalog.Modules)

	switch msg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "left", "h":
		if s.cursor%gridColumns > 0 {
			s.cursor--
		}
	case "right", "l":
		if s.cursor%gridColumns < gridColumns-1 && s.cursor+1 < count {
			s.cursor++
		}
	case "up", "k":
		if s.cursor-gridColumns >= 0 {
			s.cursor -= gridColumns
		}
	case "down", "j":
		if s.cursor+gridColumns < count {
			s.cursor += gridColumns
		}
	case "enter":
		return s, s.openGuide(catalog.Modules[s.cursor])
	}

	return s, nil
}

func (s *ModulesScreen) updateModal(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		s.view.Close()
		s.scroll = 0
	case "up", "k":
		if s.scroll > 0 {
			s.scroll--
		}
	case "down", "j":
		s.scroll++
	case "r":
		// retry after a failure
		if s.view.Phase() == session.GuideFailed && s.view.Selected != nil {
			return s, s.openGuide(*s.view.Selected)
		}
	}

	return s, nil
}
