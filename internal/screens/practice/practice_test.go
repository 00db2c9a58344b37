package practice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/learnpb/internal/codecheck"
	"github.com/abhisek/learnpb/internal/llm"
	"github.com/abhisek/learnpb/internal/quizgen"
	"github.com/abhisek/learnpb/internal/session"
	"github.com/abhisek/learnpb/internal/store"
)

// stubGenerator returns queued results in order.
type stubGenerator struct {
	results []stubResult
	calls   int
}

type stubResult struct {
	questions []quizgen.Question
	err       error
}

func (g *stubGenerator) Generate(context.Context, quizgen.GenerateInput) ([]quizgen.Question, error) {
	g.calls++
	if len(g.results) == 0 {
		return nil, errors.New("no stubbed result")
	}
	r := g.results[0]
	g.results = g.results[1:]
	return r.questions, r.err
}

func mcqQuestions(n int) []quizgen.Question {
	qs := make([]quizgen.Question, n)
	for i := range qs {
		qs[i] = quizgen.Question{
			ID:          fmt.Sprintf("q%d", i+1),
			Type:        quizgen.TypeMCQ,
			Text:        fmt.Sprintf("Question %d?", i+1),
			Options:     []string{"right", "wrong1", "wrong2", "wrong3"},
			Answer:      "right",
			Explanation: "because",
		}
	}
	return qs
}

func codeQuestion(id string) quizgen.Question {
	return quizgen.Question{
		ID:          id,
		Type:        quizgen.TypeCode,
		Text:        "Write a loop",
		Answer:      "for i in range(10): pass",
		Explanation: "loops repeat",
	}
}

func newTestScreen(gen *stubGenerator, checkerResponses ...string) (*PracticeScreen, *llm.MockProvider) {
	mock := llm.NewMockProvider(checkerResponses...)
	checker := codecheck.New(mock, codecheck.DefaultConfig())
	return New(gen, checker, nil), mock
}

// captureEvents records appended events without a database.
type captureEvents struct {
	store.EventRepo
	sessions []store.SessionEventData
	answers  []store.AnswerEventData
}

func (c *captureEvents) AppendSessionEvent(_ context.Context, data store.SessionEventData) error {
	c.sessions = append(c.sessions, data)
	return nil
}

func (c *captureEvents) AppendAnswerEvent(_ context.Context, data store.AnswerEventData) error {
	c.answers = append(c.answers, data)
	return nil
}

// runCmd executes a command, unrolling batches, and feeds any resulting
// message back into the screen.
func runCmd(t *testing.T, s *PracticeScreen, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			runCmd(t, s, c)
		}
		return
	}
	if msg != nil {
		s.Update(msg)
	}
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// generate drives the form through one generation round trip.
func generate(t *testing.T, s *PracticeScreen) {
	t.Helper()
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("enter on form should start generation")
	}
	if !s.ctrl.Loading() {
		t.Fatal("controller not loading after start")
	}
	s.Update(cmd())
}

func TestGenerateSuccess(t *testing.T) {
	gen := &stubGenerator{results: []stubResult{{questions: mcqQuestions(10)}}}
	s, _ := newTestScreen(gen)

	generate(t, s)

	if s.ctrl.Phase() != session.PhaseReady {
		t.Fatalf("phase = %v, want ready", s.ctrl.Phase())
	}
	if len(s.widgets) != 10 {
		t.Fatalf("widgets = %d, want 10", len(s.widgets))
	}
	if s.onForm {
		t.Error("focus still on form after questions arrived")
	}
	if !strings.Contains(s.View(100, 40), "Question 1 of 10") {
		t.Error("first question not shown")
	}
}

func TestGenerateFailureKeepsForm(t *testing.T) {
	gen := &stubGenerator{results: []stubResult{
		{err: &llm.ErrProviderUnavailable{}},
		{questions: mcqQuestions(10)},
	}}
	s, _ := newTestScreen(gen)

	generate(t, s)

	if s.ctrl.Phase() != session.PhaseFailed {
		t.Fatalf("phase = %v, want failed", s.ctrl.Phase())
	}
	if !strings.Contains(s.View(100, 40), "Could not generate") {
		t.Error("failure message not shown")
	}

	// form is still live: a second enter retries
	generate(t, s)
	if s.ctrl.Phase() != session.PhaseReady {
		t.Fatalf("phase = %v after retry, want ready", s.ctrl.Phase())
	}
}

func TestRegenerateDiscardsStaleSet(t *testing.T) {
	gen := &stubGenerator{results: []stubResult{
		{questions: mcqQuestions(3)},
		{questions: mcqQuestions(10)},
	}}
	s, _ := newTestScreen(gen)

	_, cmd1 := s.Update(specialKey(tea.KeyEnter))
	stale := cmd1()

	// user regenerates before the first set lands
	_, cmd2 := s.Update(specialKey(tea.KeyEnter))
	if cmd2 == nil {
		t.Fatal("second enter should regenerate")
	}
	fresh := cmd2()

	s.Update(stale)
	if s.ctrl.Phase() == session.PhaseReady {
		t.Fatal("stale question set installed")
	}

	s.Update(fresh)
	if s.ctrl.Phase() != session.PhaseReady {
		t.Fatalf("phase = %v, want ready after fresh set", s.ctrl.Phase())
	}
	if len(s.widgets) != 10 {
		t.Errorf("widgets = %d, want 10 from the fresh set", len(s.widgets))
	}
}

func TestMCQAnswerLocksAndScoresOnce(t *testing.T) {
	gen := &stubGenerator{results: []stubResult{{questions: mcqQuestions(2)}}}
	s, _ := newTestScreen(gen)
	generate(t, s)

	// answer correctly: first option is the right one
	s.Update(specialKey(tea.KeyEnter))

	correct, total := s.Score()
	if correct != 1 || total != 2 {
		t.Fatalf("score = %d/%d, want 1/2", correct, total)
	}

	w := s.widgets[0].(*mcqWidget)
	if !w.choice.Submitted {
		t.Fatal("widget not submitted")
	}

	// the widget is locked: more keys change nothing
	s.Update(specialKey(tea.KeyDown))
	s.Update(specialKey(tea.KeyEnter))

	if correct, _ := s.Score(); correct != 1 {
		t.Errorf("score = %d after re-answering, want 1", correct)
	}
	if w.choice.ChosenIndex != 0 {
		t.Error("locked widget changed its choice")
	}
}

func TestMCQWrongAnswerShowsExplanation(t *testing.T) {
	gen := &stubGenerator{results: []stubResult{{questions: mcqQuestions(1)}}}
	s, _ := newTestScreen(gen)
	generate(t, s)

	s.Update(specialKey(tea.KeyDown))
	s.Update(specialKey(tea.KeyEnter))

	if correct, _ := s.Score(); correct != 0 {
		t.Errorf("score = %d after wrong answer, want 0", correct)
	}
	view := s.View(100, 40)
	if !strings.Contains(view, "because") {
		t.Error("explanation not shown after answering")
	}
}

func TestCodeCheckCorrectLocksWidget(t *testing.T) {
	gen := &stubGenerator{results: []stubResult{
		{questions: []quizgen.Question{codeQuestion("c1")}},
	}}
	s, mock := newTestScreen(gen, `{"isCorrect": true, "feedback": "Well done."}`)
	generate(t, s)

	w := s.widgets[0].(*codeWidget)
	w.editor.Model.SetValue("for i in range(10): pass")

	_, cmd := s.Update(tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("ctrl+s should start a check")
	}
	if w.phase != codeChecking {
		t.Fatalf("phase = %v, want checking", w.phase)
	}

	s.Update(cmd())

	if !w.locked() {
		t.Fatal("correct verdict should lock the widget")
	}
	if correct, _ := s.Score(); correct != 1 {
		t.Errorf("score = %d, want 1", correct)
	}
	if mock.CallCount() != 1 {
		t.Errorf("checker called %d times, want 1", mock.CallCount())
	}

	// locked: further submissions are ignored
	if _, cmd := s.Update(tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl}); cmd != nil {
		t.Error("locked widget accepted another check")
	}
}

func TestCodeCheckEmptySubmissionSkipsService(t *testing.T) {
	gen := &stubGenerator{results: []stubResult{
		{questions: []quizgen.Question{codeQuestion("c1")}},
	}}
	s, mock := newTestScreen(gen)
	generate(t, s)

	_, cmd := s.Update(tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("ctrl+s should produce a verdict command")
	}
	s.Update(cmd())

	w := s.widgets[0].(*codeWidget)
	if w.verdict == nil || w.verdict.IsCorrect {
		t.Fatal("empty submission should produce an incorrect verdict")
	}
	if w.verdict.Feedback != codecheck.EmptySubmissionFeedback {
		t.Errorf("feedback = %q", w.verdict.Feedback)
	}
	if mock.CallCount() != 0 {
		t.Errorf("provider called %d times for empty code, want 0", mock.CallCount())
	}
}

func TestCodeCheckIncorrectAllowsRetry(t *testing.T) {
	gen := &stubGenerator{results: []stubResult{
		{questions: []quizgen.Question{codeQuestion("c1")}},
	}}
	s, _ := newTestScreen(gen,
		`{"isCorrect": false, "feedback": "Loop never runs."}`,
		`{"isCorrect": true, "feedback": "Fixed."}`,
	)
	generate(t, s)

	w := s.widgets[0].(*codeWidget)
	w.editor.Model.SetValue("for i in range(0): pass")

	_, cmd := s.Update(tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl})
	s.Update(cmd())

	if w.locked() {
		t.Fatal("incorrect verdict must not lock the widget")
	}
	if correct, _ := s.Score(); correct != 0 {
		t.Errorf("score = %d, want 0", correct)
	}

	// back to editing, fix, re-check
	s.Update(specialKey(tea.KeyEnter))
	if w.phase != codeEditing {
		t.Fatalf("phase = %v after enter, want editing", w.phase)
	}
	w.editor.Model.SetValue("for i in range(10): pass")

	_, cmd = s.Update(tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl})
	s.Update(cmd())

	if !w.locked() {
		t.Fatal("correct verdict after retry should lock")
	}
	if correct, _ := s.Score(); correct != 1 {
		t.Errorf("score = %d, want 1", correct)
	}
}

func TestStaleVerdictDropped(t *testing.T) {
	gen := &stubGenerator{results: []stubResult{
		{questions: []quizgen.Question{codeQuestion("c1")}},
	}}
	s, _ := newTestScreen(gen, `{"isCorrect": true, "feedback": "ok"}`)
	generate(t, s)

	w := s.widgets[0].(*codeWidget)
	w.editor.Model.SetValue("code")

	_, cmd := s.Update(tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl})
	stale := cmd()

	// a newer submission supersedes the in-flight one
	w.check++

	s.Update(stale)

	if w.phase != codeChecking {
		t.Errorf("phase = %v, want still checking", w.phase)
	}
	if correct, _ := s.Score(); correct != 0 {
		t.Errorf("score = %d from stale verdict, want 0", correct)
	}
}

func TestCheckErrorReturnsEditorFocus(t *testing.T) {
	gen := &stubGenerator{results: []stubResult{
		{questions: []quizgen.Question{codeQuestion("c1")}},
	}}
	s, mock := newTestScreen(gen)
	mock.AddError(&llm.ErrRateLimit{})
	generate(t, s)

	w := s.widgets[0].(*codeWidget)
	w.editor.Model.SetValue("while True: pass")

	_, cmd := s.Update(tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl})
	s.Update(cmd())

	if w.phase != codeEditing {
		t.Fatalf("phase = %v after check error, want editing", w.phase)
	}
	if w.checkErr == nil {
		t.Fatal("check error not surfaced")
	}
	if !w.editor.Model.Focused() {
		t.Fatal("editor not refocused after check error")
	}

	// the learner can keep typing straight away
	s.Update(keyPress('x'))
	if !strings.Contains(w.editor.Value(), "x") {
		t.Error("keystroke after check error did not reach the editor")
	}
}

func TestVerdictFromReplacedSetDropped(t *testing.T) {
	gen := &stubGenerator{results: []stubResult{
		{questions: []quizgen.Question{codeQuestion("c1")}},
		{questions: []quizgen.Question{codeQuestion("c2")}},
	}}
	s, _ := newTestScreen(gen, `{"isCorrect": true, "feedback": "ok"}`)
	generate(t, s)

	w1 := s.widgets[0].(*codeWidget)
	w1.editor.Model.SetValue("old code")
	_, cmd := s.Update(tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl})
	oldVerdict := cmd()

	// regenerate while that check is in flight
	s.Update(specialKey(tea.KeyTab))
	generate(t, s)

	// one submission on the new set's widget brings its counter level
	// with the superseded one
	w2 := s.widgets[0].(*codeWidget)
	w2.editor.Model.SetValue("new code")
	s.Update(tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl})

	s.Update(oldVerdict)

	if w2.verdict != nil || w2.phase != codeChecking {
		t.Fatal("verdict from the replaced set reached the new widget")
	}
	if correct, _ := s.Score(); correct != 0 {
		t.Errorf("score = %d credited by a replaced set's verdict, want 0", correct)
	}
}

func TestSessionEventsOnRegenerate(t *testing.T) {
	gen := &stubGenerator{results: []stubResult{
		{questions: mcqQuestions(2)},
		{questions: mcqQuestions(2)},
	}}
	events := &captureEvents{}
	checker := codecheck.New(llm.NewMockProvider(), codecheck.DefaultConfig())
	s := New(gen, checker, events)

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	runCmd(t, s, cmd)
	if len(events.sessions) != 1 || events.sessions[0].Action != "start" {
		t.Fatalf("events after first generation = %+v, want one start", events.sessions)
	}
	firstID := events.sessions[0].SessionID

	// answer the first question correctly, then regenerate
	_, cmd = s.Update(specialKey(tea.KeyEnter))
	runCmd(t, s, cmd)
	s.Update(specialKey(tea.KeyTab))
	_, cmd = s.Update(specialKey(tea.KeyEnter))
	runCmd(t, s, cmd)

	if len(events.sessions) != 3 {
		t.Fatalf("session events = %d, want start/end/start", len(events.sessions))
	}
	end := events.sessions[1]
	if end.Action != "end" || end.SessionID != firstID {
		t.Fatalf("second event = %+v, want end of session %s", end, firstID)
	}
	if end.CorrectAnswers != 1 || end.QuestionCount != 2 {
		t.Errorf("end event score = %d/%d, want 1/2", end.CorrectAnswers, end.QuestionCount)
	}
	if events.sessions[2].Action != "start" || events.sessions[2].SessionID == firstID {
		t.Error("regeneration did not start a fresh session")
	}
}

func TestSessionEndEventOnLeave(t *testing.T) {
	gen := &stubGenerator{results: []stubResult{{questions: mcqQuestions(2)}}}
	events := &captureEvents{}
	checker := codecheck.New(llm.NewMockProvider(), codecheck.DefaultConfig())
	s := New(gen, checker, events)

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	runCmd(t, s, cmd)

	_, cmd = s.Update(specialKey(tea.KeyEscape))
	runCmd(t, s, cmd)

	if len(events.sessions) != 2 {
		t.Fatalf("session events = %d, want start then end", len(events.sessions))
	}
	if events.sessions[1].Action != "end" ||
		events.sessions[1].SessionID != events.sessions[0].SessionID {
		t.Fatalf("leaving did not end the open session: %+v", events.sessions)
	}
}

type failingEvents struct {
	store.EventRepo
}

func (failingEvents) AppendSessionEvent(context.Context, store.SessionEventData) error {
	return errors.New("disk full")
}

func (failingEvents) AppendAnswerEvent(context.Context, store.AnswerEventData) error {
	return errors.New("disk full")
}

func TestEventFailuresDoNotDisturbRun(t *testing.T) {
	gen := &stubGenerator{results: []stubResult{{questions: mcqQuestions(1)}}}
	checker := codecheck.New(llm.NewMockProvider(), codecheck.DefaultConfig())
	s := New(gen, checker, failingEvents{})

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	runCmd(t, s, cmd)
	if s.ctrl.Phase() != session.PhaseReady {
		t.Fatalf("phase = %v, want ready despite event failures", s.ctrl.Phase())
	}

	_, cmd = s.Update(specialKey(tea.KeyEnter))
	runCmd(t, s, cmd)
	if correct, _ := s.Score(); correct != 1 {
		t.Errorf("score = %d, want 1", correct)
	}
}

func TestShowAnswerToggle(t *testing.T) {
	gen := &stubGenerator{results: []stubResult{
		{questions: []quizgen.Question{codeQuestion("c1")}},
	}}
	s, _ := newTestScreen(gen)
	generate(t, s)

	if strings.Contains(s.View(100, 40), "Reference answer") {
		t.Fatal("answer visible before toggle")
	}

	s.Update(tea.KeyPressMsg{Code: 'a', Mod: tea.ModCtrl})
	if !strings.Contains(s.View(100, 40), "Reference answer") {
		t.Error("answer not shown after toggle")
	}

	s.Update(tea.KeyPressMsg{Code: 'a', Mod: tea.ModCtrl})
	if strings.Contains(s.View(100, 40), "Reference answer") {
		t.Error("answer still shown after second toggle")
	}
}

func TestQuestionNavigation(t *testing.T) {
	gen := &stubGenerator{results: []stubResult{{questions: mcqQuestions(3)}}}
	s, _ := newTestScreen(gen)
	generate(t, s)

	s.Update(keyPress('n'))
	s.Update(keyPress('n'))
	if s.current != 2 {
		t.Fatalf("current = %d, want 2", s.current)
	}
	s.Update(keyPress('n'))
	if s.current != 2 {
		t.Errorf("current = %d walked past the last question", s.current)
	}
	s.Update(keyPress('p'))
	if s.current != 1 {
		t.Errorf("current = %d, want 1", s.current)
	}
}
