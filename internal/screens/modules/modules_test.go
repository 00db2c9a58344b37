package modules

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/learnpb/internal/guide"
	"github.com/abhisek/learnpb/internal/llm"
	"github.com/abhisek/learnpb/internal/session"
)

func newTestScreen(responses ...string) (*ModulesScreen, *llm.MockProvider) {
	mock := llm.NewMockProvider(responses...)
	svc := guide.NewService(mock, guide.DefaultConfig())
	return New(svc), mock
}

func key(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	default:
		return tea.KeyPressMsg{Code: rune(k[0])}
	}
}

func TestOpenGuideShowsLoading(t *testing.T) {
	s, _ := newTestScreen(`{"content": "<h2>Introduction</h2>"}`)

	_, cmd := s.Update(key("enter"))
	if cmd == nil {
		t.Fatal("enter on a card should start generation")
	}
	if s.view.Phase() != session.GuideLoading {
		t.Fatalf("phase = %v, want loading", s.view.Phase())
	}

	view := s.View(100, 30)
	if !strings.Contains(view, "Generating guide") {
		t.Errorf("loading view missing spinner text:\n%s", view)
	}

	msg := cmd()
	s.Update(msg)
	if s.view.Phase() != session.GuideReady {
		t.Fatalf("phase = %v after completion, want ready", s.view.Phase())
	}
	if !strings.Contains(s.View(100, 30), "Introduction") {
		t.Error("guide content not rendered")
	}
}

func TestReopenClearsPreviousGuide(t *testing.T) {
	s, _ := newTestScreen(
		`{"content": "<h2>First Guide</h2>"}`,
		`{"content": "<h2>Second Guide</h2>"}`,
	)

	_, cmd := s.Update(key("enter"))
	s.Update(cmd())

	// close, move to the next card, reopen
	s.Update(key("esc"))
	s.Update(key("right"))
	_, cmd = s.Update(key("enter"))

	view := s.View(100, 30)
	if strings.Contains(view, "First Guide") {
		t.Error("stale guide visible after reopen")
	}
	if !strings.Contains(view, "Generating guide") {
		t.Error("reopened modal not in loading state")
	}

	s.Update(cmd())
	if !strings.Contains(s.View(100, 30), "Second Guide") {
		t.Error("fresh guide not rendered")
	}
}

func TestCloseDropsInFlightGuide(t *testing.T) {
	s, _ := newTestScreen(`{"content": "<h2>Late Guide</h2>"}`)

	_, cmd := s.Update(key("enter"))
	s.Update(key("esc"))

	// completion lands after close
	s.Update(cmd())

	if s.view.Phase() != session.GuideClosed {
		t.Fatalf("phase = %v, want closed", s.view.Phase())
	}
	if strings.Contains(s.View(100, 30), "Late Guide") {
		t.Error("discarded guide rendered")
	}
}

func TestFailureOffersRetry(t *testing.T) {
	s, mock := newTestScreen()
	mock.AddError(&llm.ErrProviderUnavailable{})
	mock.AddResponse(`{"content": "<h2>Recovered</h2>"}`)

	_, cmd := s.Update(key("enter"))
	s.Update(cmd())

	if s.view.Phase() != session.GuideFailed {
		t.Fatalf("phase = %v, want failed", s.view.Phase())
	}
	if !strings.Contains(s.View(100, 30), "retry") {
		t.Error("failure view missing retry hint")
	}

	_, cmd = s.Update(key("r"))
	if cmd == nil {
		t.Fatal("r should retry generation")
	}
	s.Update(cmd())
	if s.view.Phase() != session.GuideReady {
		t.Fatalf("phase = %v after retry, want ready", s.view.Phase())
	}
}

func TestGridNavigationBounds(t *testing.T) {
	s, _ := newTestScreen()

	s.Update(key("down"))
	s.Update(key("right"))
	if s.cursor != gridColumns+1 {
		t.Errorf("cursor = %d, want %d", s.cursor, gridColumns+1)
	}

	for i := 0; i < 10; i++ {
		s.Update(key("down"))
	}
	if s.cursor >= 9 {
		t.Errorf("cursor = %d walked off the 9-card grid", s.cursor)
	}
}
