package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/learnpb/internal/router"
	"github.com/abhisek/learnpb/internal/screen"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "home" }
func (s *stubScreen) Title() string                           { return "Home" }

func newTestWelcome() (*WelcomeScreen, *int) {
	callCount := 0
	factory := func() screen.Screen {
		callCount++
		return &stubScreen{}
	}
	return New(factory), &callCount
}

func sendTicks(w *WelcomeScreen, n int) tea.Cmd {
	var cmd tea.Cmd
	for i := 0; i < n; i++ {
		_, cmd = w.Update(tickMsg(time.Now()))
	}
	return cmd
}

func TestBannerAppearsOverTime(t *testing.T) {
	w, _ := newTestWelcome()

	if strings.Contains(w.View(100, 30), "learning companion") {
		t.Error("tagline visible before its phase")
	}

	sendTicks(w, 15)

	view := w.View(100, 30)
	if !strings.Contains(view, "learning companion") {
		t.Error("tagline missing after animation")
	}
	if !strings.Contains(view, "press any key") {
		t.Error("key hint missing after animation")
	}
}

func TestAutoHandoffAfterSplash(t *testing.T) {
	w, callCount := newTestWelcome()

	// 40 ticks is the full 4 second splash
	cmd := sendTicks(w, 40)
	if cmd == nil {
		t.Fatal("no command at end of splash")
	}
	msg := cmd()
	if _, ok := msg.(router.ReplaceScreenMsg); !ok {
		t.Fatalf("message = %T, want ReplaceScreenMsg", msg)
	}
	if *callCount != 1 {
		t.Errorf("factory called %d times, want 1", *callCount)
	}
}

func TestKeypressSkipsWait(t *testing.T) {
	w, callCount := newTestWelcome()
	sendTicks(w, 10)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("keypress after banner should trigger handoff")
	}
	if msg := cmd(); msg == nil {
		t.Fatal("handoff command returned nil message")
	} else if _, ok := msg.(router.ReplaceScreenMsg); !ok {
		t.Fatalf("message = %T, want ReplaceScreenMsg", msg)
	}
	if *callCount != 1 {
		t.Errorf("factory called %d times, want 1", *callCount)
	}
}

func TestEarlyKeypressIgnored(t *testing.T) {
	w, callCount := newTestWelcome()
	sendTicks(w, 2)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd != nil {
		t.Error("keypress before banner should not transition")
	}
	if *callCount != 0 {
		t.Errorf("factory called %d times, want 0", *callCount)
	}
}

func TestHandoffHappensOnce(t *testing.T) {
	w, callCount := newTestWelcome()
	sendTicks(w, 40)

	sendTicks(w, 5)
	w.Update(tea.KeyPressMsg{Code: 'a'})

	if *callCount != 1 {
		t.Errorf("factory called %d times, want 1", *callCount)
	}
}
