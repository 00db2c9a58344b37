package practice

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/learnpb/internal/codecheck"
	"github.com/abhisek/learnpb/internal/quizgen"
	"github.com/abhisek/learnpb/internal/ui/components"
	"github.com/abhisek/learnpb/internal/ui/layout"
)

// answerWidget is the per-question interaction state machine.
type answerWidget interface {
	// handleKey processes a key press; scr gives access to scoring and
	// the checker.
	handleKey(msg tea.KeyMsg, scr *PracticeScreen) tea.Cmd
	// update receives non-key messages (cursor blink and the like).
	update(msg tea.Msg) tea.Cmd
	// view renders the widget body.
	view(width int) string
	// capturesInput reports whether plain keystrokes belong to the
	// widget instead of screen navigation.
	capturesInput() bool
	// keyHints contributes footer hints.
	keyHints() []layout.KeyHint
}

func buildWidgets(questions []quizgen.Question) []answerWidget {
	widgets := make([]answerWidget, len(questions))
	for i, q := range questions {
		if q.Type == quizgen.TypeMCQ {
			widgets[i] = newMCQWidget(q)
		} else {
			widgets[i] = newCodeWidget(i, q)
		}
	}
	return widgets
}

// mcqWidget wraps a MultiChoice. Submission locks it for good: the
// verdict and explanation stay on screen and input is ignored.
type mcqWidget struct {
	question quizgen.Question
	choice   components.MultiChoice
}

func newMCQWidget(q quizgen.Question) *mcqWidget {
	correct := 0
	for i, opt := range q.Options {
		if opt == q.Answer {
			correct = i
			break
		}
	}
	return &mcqWidget{
		question: q,
		choice:   components.NewMultiChoice(q.Options, correct),
	}
}

func (w *mcqWidget) capturesInput() bool { return false }

func (w *mcqWidget) keyHints() []layout.KeyHint {
	if w.choice.Submitted {
		return nil
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Option"},
		{Key: "Enter", Description: "Answer"},
	}
}

func (w *mcqWidget) handleKey(msg tea.KeyMsg, scr *PracticeScreen) tea.Cmd {
	wasSubmitted := w.choice.Submitted
	w.choice, _ = w.choice.Update(msg)

	if !wasSubmitted && w.choice.Submitted {
		chosen := ""
		if w.choice.ChosenIndex >= 0 && w.choice.ChosenIndex < len(w.question.Options) {
			chosen = w.question.Options[w.choice.ChosenIndex]
		}
		return scr.reportAnswer(w.question, chosen, w.choice.IsCorrect())
	}
	return nil
}

func (w *mcqWidget) update(tea.Msg) tea.Cmd { return nil }

// codePhase is the code widget's lifecycle.
type codePhase int

const (
	codeEditing codePhase = iota
	codeChecking
	codeChecked
)

// codeWidget pairs the editor with the async verdict flow. A correct
// verdict locks the widget; an incorrect one returns it to editing so
// the learner can fix the code and re-check.
type codeWidget struct {
	index    int
	question quizgen.Question
	editor   components.CodeArea

	phase      codePhase
	check      uint64
	verdict    *codecheck.Result
	checkErr   error
	showAnswer bool
}

func newCodeWidget(index int, q quizgen.Question) *codeWidget {
	return &codeWidget{
		index:    index,
		question: q,
		editor:   components.NewCodeArea(70),
	}
}

func (w *codeWidget) capturesInput() bool {
	return w.phase == codeEditing
}

func (w *codeWidget) locked() bool {
	return w.phase == codeChecked && w.verdict != nil && w.verdict.IsCorrect
}

func (w *codeWidget) keyHints() []layout.KeyHint {
	switch {
	case w.locked():
		return nil
	case w.phase == codeChecking:
		return []layout.KeyHint{{Key: "...", Description: "Checking"}}
	case w.phase == codeChecked:
		return []layout.KeyHint{{Key: "Enter", Description: "Edit again"}}
	default:
		return []layout.KeyHint{
			{Key: "Ctrl+S", Description: "Check code"},
			{Key: "Ctrl+A", Description: "Show answer"},
		}
	}
}

func (w *codeWidget) handleKey(msg tea.KeyMsg, scr *PracticeScreen) tea.Cmd {
	if w.locked() || w.phase == codeChecking {
		return nil
	}

	switch msg.String() {
	case "ctrl+s":
		return w.submit(scr)
	case "ctrl+a":
		w.showAnswer = !w.showAnswer
		return nil
	}

	if w.phase == codeChecked {
		// an incorrect verdict stays on screen until the learner
		// explicitly goes back to editing
		if msg.String() == "enter" || msg.String() == "e" {
			w.phase = codeEditing
			return w.editor.Focus()
		}
		return nil
	}

	var cmd tea.Cmd
	w.editor, cmd = w.editor.Update(msg)
	return cmd
}

// submit starts an async code check. The widget locks until the verdict
// lands; the check counter discards verdicts from superseded submissions.
func (w *codeWidget) submit(scr *PracticeScreen) tea.Cmd {
	w.phase = codeChecking
	w.verdict = nil
	w.checkErr = nil
	w.check++
	w.editor.Blur()

	run := scr.run
	index := w.index
	check := w.check
	checker := scr.checker
	q := w.question
	code := w.editor.Value()

	return func() tea.Msg {
		result, err := checker.Check(context.Background(), q.Text, q.Answer, code)
		return verdictMsg{run: run, index: index, check: check, result: result, err: err}
	}
}

// applyVerdict installs a verdict. Stale checks are dropped.
func (w *codeWidget) applyVerdict(msg verdictMsg, scr *PracticeScreen) tea.Cmd {
	if msg.check != w.check || w.phase != codeChecking {
		return nil
	}

	if msg.err != nil {
		w.checkErr = msg.err
		w.phase = codeEditing
		// submit blurred the editor; give it back its focus so the
		// learner can keep typing
		return w.editor.Focus()
	}

	w.verdict = msg.result
	w.phase = codeChecked

	// every submission is persisted as an attempt; the controller keeps
	// the score idempotent per question
	return scr.reportAnswer(w.question, w.editor.Value(), msg.result.IsCorrect)
}

func (w *codeWidget) update(msg tea.Msg) tea.Cmd {
	if w.phase != codeEditing {
		return nil
	}
	var cmd tea.Cmd
	w.editor, cmd = w.editor.Update(msg)
	return cmd
}
