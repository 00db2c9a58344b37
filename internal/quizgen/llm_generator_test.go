package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/abhisek/learnpb/internal/catalog"
	"github.com/abhisek/learnpb/internal/llm"
)

// questionSetJSON builds a valid wire-format set of the given size,
// alternating mcq and code questions.
func questionSetJSON(t *testing.T, n int) string {
	t.Helper()
	items := make([]map[string]any, n)
	for i := range items {
		q := map[string]any{
			"id":          fmt.Sprintf("q%d", i+1),
			"explanation": "Because it is.",
		}
		if i%2 == 0 {
			q["type"] = "mcq"
			q["questionText"] = fmt.Sprintf("Question %d?", i+1)
			q["options"] = []string{"a", "b", "c", "d"}
			q["correctAnswer"] = "b"
		} else {
			q["type"] = "code"
			q["questionText"] = fmt.Sprintf("Write function %d.", i+1)
			q["correctAnswer"] = "def f():\n    pass"
		}
		items[i] = q
	}
	b, err := json.Marshal(items)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	return string(b)
}

func TestGenerate_Success(t *testing.T) {
	mock := llm.NewMockProvider(questionSetJSON(t, 10))
	gen := New(mock, DefaultConfig())

	input := GenerateInput{Level: catalog.LevelBeginner, Language: catalog.LanguagePython}
	questions, err := gen.Generate(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 10 {
		t.Fatalf("expected 10 questions, got %d", len(questions))
	}

	first := questions[0]
	if first.ID != "q1" {
		t.Errorf("expected id q1, got %q", first.ID)
	}
	if first.Type != TypeMCQ {
		t.Errorf("expected type mcq, got %q", first.Type)
	}
	if first.Answer != "b" {
		t.Errorf("expected answer b, got %q", first.Answer)
	}
	if first.Level != catalog.LevelBeginner || first.Language != catalog.LanguagePython {
		t.Errorf("expected level and language stamped on questions, got %q %q", first.Level, first.Language)
	}
	if questions[1].Type != TypeCode {
		t.Errorf("expected second question type code, got %q", questions[1].Type)
	}
}

func TestGenerate_TagsPurpose(t *testing.T) {
	mock := llm.NewMockProvider(questionSetJSON(t, 10))
	gen := New(mock, DefaultConfig())

	if _, err := gen.Generate(context.Background(), GenerateInput{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mock.Calls) != 1 {
		t.Fatalf("expected 1 provider call, got %d", len(mock.Calls))
	}
	if purpose := llm.PurposeFrom(mock.Calls[0].Ctx); purpose != "question-gen" {
		t.Errorf("expected purpose question-gen, got %q", purpose)
	}
}

func TestGenerate_CountDefaultsInPrompt(t *testing.T) {
	mock := llm.NewMockProvider(questionSetJSON(t, 10))
	gen := New(mock, DefaultConfig())

	if _, err := gen.Generate(context.Background(), GenerateInput{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	msg := mock.Calls[0].Request.Messages[0].Content
	if !strings.Contains(msg, "10") {
		t.Errorf("expected default count 10 in user message, got %q", msg)
	}
}

func TestGenerate_NonArrayResponse(t *testing.T) {
	mock := llm.NewMockProvider(`{"questions": []}`)
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), GenerateInput{})
	if err == nil {
		t.Fatal("expected error for non-array response")
	}
	var invalid *llm.ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse, got %T", err)
	}
}

func TestGenerate_ValidatorRejection(t *testing.T) {
	// Two questions sharing an id pass structural and choice checks but
	// fail unique-id.
	set := questionSetJSON(t, 2)
	set = strings.Replace(set, `"q2"`, `"q1"`, 1)

	mock := llm.NewMockProvider(set)
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), GenerateInput{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if verr.Validator != "unique-id" {
		t.Errorf("expected unique-id validator, got %q", verr.Validator)
	}
}

func TestGenerate_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddError(&llm.ErrRateLimit{})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), GenerateInput{})
	if err == nil {
		t.Fatal("expected error")
	}
	var rateLimit *llm.ErrRateLimit
	if !errors.As(err, &rateLimit) {
		t.Fatalf("expected ErrRateLimit, got %T", err)
	}
}
