package session

import (
	"errors"
	"testing"

	"github.com/abhisek/learnpb/internal/catalog"
	"github.com/abhisek/learnpb/internal/quizgen"
)

func sampleQuestions(ids ...string) []quizgen.Question {
	qs := make([]quizgen.Question, len(ids))
	for i, id := range ids {
		qs[i] = quizgen.Question{
			ID:          id,
			Type:        quizgen.TypeMCQ,
			Text:        "q" + id,
			Options:     []string{"a", "b", "c", "d"},
			Answer:      "a",
			Explanation: "because",
		}
	}
	return qs
}

func TestStartGenerationResetsState(t *testing.T) {
	c := NewController()
	token := c.StartGeneration(catalog.LevelBeginner, catalog.LanguagePython)
	c.ApplyQuestions(token, sampleQuestions("1", "2"))
	c.ReportCorrect("1")

	if c.Score != 1 {
		t.Fatalf("score = %d, want 1", c.Score)
	}

	c.StartGeneration(catalog.LevelAdvanced, catalog.LanguageJava)

	if c.Score != 0 {
		t.Errorf("score = %d after restart, want 0", c.Score)
	}
	if len(c.Questions) != 0 {
		t.Errorf("questions = %d after restart, want 0", len(c.Questions))
	}
	if c.Answered("1") {
		t.Error("answered set survived restart")
	}
	if c.Err != nil {
		t.Errorf("err = %v after restart, want nil", c.Err)
	}
	if c.Phase() != PhaseLoading {
		t.Errorf("phase = %v after restart, want loading", c.Phase())
	}
	if c.Level != catalog.LevelAdvanced || c.Language != catalog.LanguageJava {
		t.Errorf("inputs = %s/%s, want advanced/java", c.Level, c.Language)
	}
}

func TestReportCorrectIdempotent(t *testing.T) {
	c := NewController()
	token := c.StartGeneration(catalog.LevelBeginner, catalog.LanguageC)
	c.ApplyQuestions(token, sampleQuestions("1", "2", "3"))

	c.ReportCorrect("1")
	c.ReportCorrect("1")
	c.ReportCorrect("1")
	c.ReportCorrect("2")

	if c.Score != 2 {
		t.Errorf("score = %d, want 2", c.Score)
	}
}

func TestReportCorrectUnknownID(t *testing.T) {
	c := NewController()
	token := c.StartGeneration(catalog.LevelBeginner, catalog.LanguageC)
	c.ApplyQuestions(token, sampleQuestions("1", "2"))

	c.ReportCorrect("99")
	c.ReportCorrect("")

	if c.Score != 0 {
		t.Errorf("score = %d after unknown ids, want 0", c.Score)
	}
	if c.Answered("99") {
		t.Error("unknown id entered the answered set")
	}

	// Known ids still credit normally.
	c.ReportCorrect("2")
	if c.Score != 1 {
		t.Errorf("score = %d, want 1", c.Score)
	}
}

func TestApplyQuestionsStaleToken(t *testing.T) {
	c := NewController()
	old := c.StartGeneration(catalog.LevelBeginner, catalog.LanguageC)
	fresh := c.StartGeneration(catalog.LevelBeginner, catalog.LanguagePython)

	if c.ApplyQuestions(old, sampleQuestions("stale")) {
		t.Error("stale ApplyQuestions accepted")
	}
	if len(c.Questions) != 0 {
		t.Errorf("stale completion installed %d questions", len(c.Questions))
	}
	if c.Phase() != PhaseLoading {
		t.Errorf("phase = %v after stale apply, want loading", c.Phase())
	}

	if !c.ApplyQuestions(fresh, sampleQuestions("1")) {
		t.Error("fresh ApplyQuestions rejected")
	}
	if c.Phase() != PhaseReady {
		t.Errorf("phase = %v, want ready", c.Phase())
	}
}

func TestApplyErrorStaleToken(t *testing.T) {
	c := NewController()
	old := c.StartGeneration(catalog.LevelBeginner, catalog.LanguageC)
	fresh := c.StartGeneration(catalog.LevelBeginner, catalog.LanguageC)
	c.ApplyQuestions(fresh, sampleQuestions("1"))

	if c.ApplyError(old, errors.New("boom")) {
		t.Error("stale ApplyError accepted")
	}
	if c.Err != nil {
		t.Errorf("stale error installed: %v", c.Err)
	}
	if c.Phase() != PhaseReady {
		t.Errorf("phase = %v after stale error, want ready", c.Phase())
	}
}

func TestApplyErrorKeepsInputs(t *testing.T) {
	c := NewController()
	token := c.StartGeneration(catalog.LevelIntermediate, catalog.LanguageCSharp)

	if !c.ApplyError(token, errors.New("service down")) {
		t.Fatal("ApplyError rejected")
	}
	if c.Phase() != PhaseFailed {
		t.Errorf("phase = %v, want failed", c.Phase())
	}
	if c.Level != catalog.LevelIntermediate || c.Language != catalog.LanguageCSharp {
		t.Error("inputs lost on failure, re-trigger would use wrong settings")
	}
}
