package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnpb/internal/quizgen"
	"github.com/abhisek/learnpb/internal/session"
	"github.com/abhisek/learnpb/internal/ui/theme"
)

func (s *PracticeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, s.renderForm(width))

	switch s.ctrl.Phase() {
	case session.PhaseLoading:
		sections = append(sections, theme.Hint.Render("Generating questions..."))
	case session.PhaseFailed:
		sections = append(sections,
			theme.Incorrect.Render("Could not generate questions.")+"\n"+
				theme.Hint.Render("Check your connection and press Enter on the form to try again."))
	case session.PhaseReady:
		if s.current < len(s.widgets) {
			sections = append(sections, s.renderQuestion(width))
		}
	}

	content := strings.Join(sections, "\n\n")
	return lipgloss.NewStyle().Padding(1, 2).Width(width).Render(content)
}

func (s *PracticeScreen) renderForm(width int) string {
	form := s.levelPicker.View() + "\n" + s.languagePicker.View()

	button := "  Generate Questions  "
	if s.onForm && s.formFocus == focusStart {
		button = theme.ButtonActive.Render(button)
	} else {
		button = theme.ButtonInactive.Render(button)
	}

	style := theme.Card
	if !s.onForm {
		style = style.BorderForeground(theme.Border).Faint(true)
	}

	return style.Render(form + "\n\n" + button)
}

func (s *PracticeScreen) renderQuestion(width int) string {
	q := s.widgets[s.current]

	var question quizgen.Question
	switch w := q.(type) {
	case *mcqWidget:
		question = w.question
	case *codeWidget:
		question = w.question
	}

	header := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Question %d of %d", s.current+1, len(s.widgets)))

	text := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Width(width - 8).
		Render(question.Text)

	body := q.view(width - 8)

	return strings.Join([]string{header, text, "", body}, "\n")
}

func (w *mcqWidget) view(width int) string {
	out := w.choice.View()

	if w.choice.Submitted {
		if w.choice.IsCorrect() {
			out += "\n" + theme.Correct.Render("Correct!")
		} else {
			out += "\n" + theme.Incorrect.Render("Not quite.")
		}
		out += "\n" + lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Width(width).
			Render(w.question.Explanation)
	}

	return out
}

func (w *codeWidget) view(width int) string {
	var parts []string
	parts = append(parts, w.editor.View())

	switch {
	case w.phase == codeChecking:
		parts = append(parts, theme.Hint.Render("Checking your code..."))
	case w.checkErr != nil:
		parts = append(parts, theme.Incorrect.Render("Check failed, please try again."))
	case w.phase == codeChecked && w.verdict != nil:
		if w.verdict.IsCorrect {
			parts = append(parts, theme.Correct.Render("✓ "+w.verdict.Feedback))
		} else {
			parts = append(parts, theme.Incorrect.Render("✗ "+w.verdict.Feedback))
		}
	}

	if w.showAnswer {
		answer := theme.CodeBlock.Width(width).Render(w.question.Answer)
		parts = append(parts,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Reference answer:")+"\n"+answer)
	}

	return strings.Join(parts, "\n")
}
