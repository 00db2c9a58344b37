package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/learnpb/internal/screen"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title   string
	initRan bool
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

func TestPushRunsInit(t *testing.T) {
	r := New(&stubScreen{title: "first"})

	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	if r.Depth() != 2 {
		t.Errorf("depth = %d, want 2", r.Depth())
	}
	if r.Active().Title() != "second" {
		t.Errorf("active = %q, want second", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("Init did not run on pushed screen")
	}
}

func TestPopReturnsToPrevious(t *testing.T) {
	r := New(&stubScreen{title: "first"})
	r.Push(&stubScreen{title: "second"})
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("depth = %d, want 1", r.Depth())
	}
	if r.Active().Title() != "first" {
		t.Errorf("active = %q, want first", r.Active().Title())
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	r := New(&stubScreen{title: "only"})
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("depth = %d after pop at bottom, want 1", r.Depth())
	}
}

func TestReplaceKeepsDepth(t *testing.T) {
	r := New(&stubScreen{title: "splash"})

	s2 := &stubScreen{title: "home"}
	r.Replace(s2)

	if r.Depth() != 1 {
		t.Errorf("depth = %d after replace, want 1", r.Depth())
	}
	if r.Active().Title() != "home" {
		t.Errorf("active = %q, want home", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("Init did not run on replacement screen")
	}
}

func TestNavigationMessages(t *testing.T) {
	r := New(&stubScreen{title: "first"})

	s2 := &stubScreen{title: "second"}
	r.Update(PushScreenMsg{Screen: s2})
	if r.Active().Title() != "second" {
		t.Errorf("active = %q after push msg, want second", r.Active().Title())
	}

	r.Update(PopScreenMsg{})
	if r.Active().Title() != "first" {
		t.Errorf("active = %q after pop msg, want first", r.Active().Title())
	}

	s3 := &stubScreen{title: "third"}
	r.Update(ReplaceScreenMsg{Screen: s3})
	if r.Active().Title() != "third" {
		t.Errorf("active = %q after replace msg, want third", r.Active().Title())
	}
	if r.Depth() != 1 {
		t.Errorf("depth = %d after replace msg, want 1", r.Depth())
	}
}
