// Package practice is the practice zone: a level/language form, a
// generated question set, and per-question answer widgets.
package practice

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/abhisek/learnpb/internal/catalog"
	"github.com/abhisek/learnpb/internal/codecheck"
	"github.com/abhisek/learnpb/internal/quizgen"
	"github.com/abhisek/learnpb/internal/router"
	"github.com/abhisek/learnpb/internal/screen"
	"github.com/abhisek/learnpb/internal/session"
	"github.com/abhisek/learnpb/internal/store"
	"github.com/abhisek/learnpb/internal/ui/components"
	"github.com/abhisek/learnpb/internal/ui/layout"
)

const (
	focusLevel = iota
	focusLanguage
	focusStart
)

// PracticeScreen drives a practice run. The form stays visible so the
// learner can regenerate with new settings at any time; regeneration
// resets the run through the controller.
type PracticeScreen struct {
	generator quizgen.Generator
	checker   *codecheck.Checker
	events    store.EventRepo

	ctrl      *session.Controller
	run       session.Token
	sessionID string

	levelPicker    components.Picker
	languagePicker components.Picker
	formFocus      int
	onForm         bool

	widgets []answerWidget
	current int
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)
var _ screen.ScoreProvider = (*PracticeScreen)(nil)

// New creates the practice screen with the form focused.
func New(generator quizgen.Generator, checker *codecheck.Checker, events store.EventRepo) *PracticeScreen {
	levels := make([]string, len(catalog.Levels))
	for i, l := range catalog.Levels {
		levels[i] = string(l)
	}
	languages := make([]string, len(catalog.Languages))
	for i, l := range catalog.Languages {
		languages[i] = string(l)
	}

	lp := components.NewPicker("Level", levels)
	lp.Focused = true

	return &PracticeScreen{
		generator:      generator,
		checker:        checker,
		events:         events,
		ctrl:           session.NewController(),
		levelPicker:    lp,
		languagePicker: components.NewPicker("Language", languages),
		onForm:         true,
	}
}

func (s *PracticeScreen) Init() tea.Cmd {
	return nil
}

func (s *PracticeScreen) Title() string {
	return "Practice Zone"
}

// Score feeds the header.
func (s *PracticeScreen) Score() (int, int) {
	return s.ctrl.Score, s.ctrl.Total()
}

func (s *PracticeScreen) KeyHints() []layout.KeyHint {
	if s.onForm {
		return []layout.KeyHint{
			{Key: "←→", Description: "Choose"},
			{Key: "Tab", Description: "Next field"},
			{Key: "Enter", Description: "Generate"},
			{Key: "Esc", Description: "Back"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "PgUp/PgDn", Description: "Question"},
		{Key: "Tab", Description: "Settings"},
	}
	if s.current < len(s.widgets) {
		hints = append(hints, s.widgets[s.current].keyHints()...)
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

// startGeneration resets the run and launches the async request. The
// token issued here travels with the completion message, so a set from
// an abandoned request can never land. A superseded run gets its end
// event before the reset wipes its score.
func (s *PracticeScreen) startGeneration() tea.Cmd {
	level := catalog.Level(s.levelPicker.Value())
	language := catalog.Language(s.languagePicker.Value())

	endCmd := s.endSession()

	token := s.ctrl.StartGeneration(level, language)
	s.widgets = nil
	s.current = 0
	s.sessionID = uuid.New().String()

	sessionID := s.sessionID
	gen := s.generator
	events := s.events

	genCmd := func() tea.Msg {
		ctx := context.Background()

		if events != nil {
			appendSessionEvent(events, ctx, store.SessionEventData{
				SessionID: sessionID,
				Action:    "start",
				Level:     string(level),
				Language:  string(language),
			})
		}

		questions, err := gen.Generate(ctx, quizgen.GenerateInput{
			Level:    level,
			Language: language,
		})
		if err != nil {
			return questionsFailedMsg{token: token, err: err}
		}
		return questionsReadyMsg{token: token, questions: questions}
	}

	if endCmd != nil {
		return tea.Batch(endCmd, genCmd)
	}
	return genCmd
}

// endSession persists the end of the current run with its final score.
// No-op when no run has started.
func (s *PracticeScreen) endSession() tea.Cmd {
	if s.events == nil || s.sessionID == "" {
		return nil
	}

	events := s.events
	data := store.SessionEventData{
		SessionID:      s.sessionID,
		Action:         "end",
		Level:          string(s.ctrl.Level),
		Language:       string(s.ctrl.Language),
		QuestionCount:  s.ctrl.Total(),
		CorrectAnswers: s.ctrl.Score,
	}
	s.sessionID = ""

	return func() tea.Msg {
		appendSessionEvent(events, context.Background(), data)
		return nil
	}
}

// appendSessionEvent logs a session event; a persistence failure must not
// disturb the run, so it only warns.
func appendSessionEvent(events store.EventRepo, ctx context.Context, data store.SessionEventData) {
	if err := events.AppendSessionEvent(ctx, data); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log session event: %v\n", err)
	}
}

func (s *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionsReadyMsg:
		if s.ctrl.ApplyQuestions(msg.token, msg.questions) {
			s.run = msg.token
			s.widgets = buildWidgets(msg.questions)
			s.current = 0
			s.onForm = false
		}
		return s, nil

	case questionsFailedMsg:
		s.ctrl.ApplyError(msg.token, msg.err)
		return s, nil

	case verdictMsg:
		return s, s.applyVerdict(msg)

	case tea.KeyMsg:
		if s.onForm {
			return s.updateForm(msg)
		}
		return s.updateQuestions(msg)
	}

	// Blink and similar component messages go to the focused widget.
	if !s.onForm && s.current < len(s.widgets) {
		cmd := s.widgets[s.current].update(msg)
		return s, cmd
	}

	return s, nil
}

func (s *PracticeScreen) updateForm(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return s, s.leave()
	case "tab", "down", "j":
		s.setFormFocus((s.formFocus + 1) % 3)
		return s, nil
	case "shift+tab", "up", "k":
		s.setFormFocus((s.formFocus + 2) % 3)
		return s, nil
	case "enter":
		// regenerating while a request is in flight simply supersedes
		// it; the old completion arrives with a stale token and is
		// dropped
		return s, s.startGeneration()
	}

	var cmd tea.Cmd
	switch s.formFocus {
	case focusLevel:
		s.levelPicker, cmd = s.levelPicker.Update(msg)
	case focusLanguage:
		s.languagePicker, cmd = s.languagePicker.Update(msg)
	}
	return s, cmd
}

// leave closes the current run and pops the screen.
func (s *PracticeScreen) leave() tea.Cmd {
	pop := func() tea.Msg { return router.PopScreenMsg{} }
	if end := s.endSession(); end != nil {
		return tea.Batch(end, pop)
	}
	return pop
}

func (s *PracticeScreen) setFormFocus(focus int) {
	s.formFocus = focus
	s.levelPicker.Focused = focus == focusLevel
	s.languagePicker.Focused = focus == focusLanguage
}

func (s *PracticeScreen) updateQuestions(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	w := s.widgets[s.current]

	// Navigation keys are handled here unless the widget is capturing
	// raw input (the code editor).
	if !w.capturesInput() {
		switch msg.String() {
		case "esc":
			return s, s.leave()
		case "tab":
			s.onForm = true
			s.setFormFocus(focusLevel)
			return s, nil
		case "pgup", "p":
			if s.current > 0 {
				s.current--
			}
			return s, nil
		case "pgdown", "n":
			if s.current < len(s.widgets)-1 {
				s.current++
			}
			return s, nil
		}
	} else {
		switch msg.String() {
		case "esc":
			return s, s.leave()
		case "pgup":
			if s.current > 0 {
				s.current--
			}
			return s, nil
		case "pgdown":
			if s.current < len(s.widgets)-1 {
				s.current++
			}
			return s, nil
		}
	}

	cmd := w.handleKey(msg, s)
	return s, cmd
}

// reportAnswer credits the score and persists the answer event.
func (s *PracticeScreen) reportAnswer(q quizgen.Question, learnerAnswer string, correct bool) tea.Cmd {
	if correct {
		s.ctrl.ReportCorrect(q.ID)
	}

	if s.events == nil {
		return nil
	}

	sessionID := s.sessionID
	events := s.events
	return func() tea.Msg {
		err := events.AppendAnswerEvent(context.Background(), store.AnswerEventData{
			SessionID:     sessionID,
			QuestionID:    q.ID,
			QuestionType:  string(q.Type),
			QuestionText:  q.Text,
			CorrectAnswer: q.Answer,
			LearnerAnswer: learnerAnswer,
			Correct:       correct,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to log answer event: %v\n", err)
		}
		return nil
	}
}

func (s *PracticeScreen) applyVerdict(msg verdictMsg) tea.Cmd {
	// a verdict submitted under a replaced question set must never touch
	// the new set's widgets, even when index and counter happen to line up
	if msg.run != s.run || msg.index >= len(s.widgets) {
		return nil
	}
	cw, ok := s.widgets[msg.index].(*codeWidget)
	if !ok {
		return nil
	}
	return cw.applyVerdict(msg, s)
}
