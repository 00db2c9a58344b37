package quizgen

import (
	"fmt"
	"testing"
)

func validSet() []Question {
	return []Question{
		{
			ID:          "q1",
			Type:        TypeMCQ,
			Text:        "What does len() return for a string in Python?",
			Options:     []string{"byte count", "character count", "word count", "line count"},
			Answer:      "character count",
			Explanation: "len() counts characters in a str.",
		},
		{
			ID:          "q2",
			Type:        TypeCode,
			Text:        "Write a function that returns the square of its argument.",
			Answer:      "def square(x):\n    return x * x",
			Explanation: "Multiply the argument by itself.",
		},
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Validator: "structural", Index: 3, Message: "id is empty"}
	want := `validator "structural": question 3: id is empty`
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}

	setErr := &ValidationError{Validator: "structural", Index: -1, Message: "question set is empty"}
	want = `validator "structural": question set is empty`
	if setErr.Error() != want {
		t.Errorf("got %q, want %q", setErr.Error(), want)
	}
}

func TestDefaultConfig_ValidatorChain(t *testing.T) {
	cfg := DefaultConfig()
	if len(cfg.Validators) != 3 {
		t.Fatalf("expected 3 validators, got %d", len(cfg.Validators))
	}
	names := []string{"structural", "choices", "unique-id"}
	for i, v := range cfg.Validators {
		if v.Name() != names[i] {
			t.Errorf("validator %d: expected %q, got %q", i, names[i], v.Name())
		}
	}
	if cfg.QuestionCount != 10 {
		t.Errorf("expected QuestionCount 10, got %d", cfg.QuestionCount)
	}
}

func TestStructural_ValidSet(t *testing.T) {
	v := &StructuralValidator{}
	if err := v.Validate(validSet()); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestStructural_EmptySet(t *testing.T) {
	v := &StructuralValidator{}
	err := v.Validate(nil)
	if err == nil {
		t.Fatal("expected error for empty set")
	}
	if err.Index != -1 {
		t.Errorf("expected set-level index -1, got %d", err.Index)
	}
}

func TestStructural_MissingFields(t *testing.T) {
	mutations := []struct {
		name   string
		mutate func(*Question)
	}{
		{"empty id", func(q *Question) { q.ID = "" }},
		{"empty text", func(q *Question) { q.Text = "" }},
		{"empty answer", func(q *Question) { q.Answer = "" }},
		{"empty explanation", func(q *Question) { q.Explanation = "" }},
		{"unknown type", func(q *Question) { q.Type = "essay" }},
	}

	for _, m := range mutations {
		t.Run(m.name, func(t *testing.T) {
			set := validSet()
			m.mutate(&set[1])
			err := (&StructuralValidator{}).Validate(set)
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Index != 1 {
				t.Errorf("expected index 1, got %d", err.Index)
			}
		})
	}
}

func TestChoices_MCQOptionCount(t *testing.T) {
	v := &ChoiceValidator{}

	for _, n := range []int{0, 1, 3, 5} {
		set := validSet()
		opts := make([]string, n)
		for i := range opts {
			opts[i] = fmt.Sprintf("option %d", i)
		}
		set[0].Options = opts
		if n > 0 {
			set[0].Answer = opts[0]
		}
		if err := v.Validate(set); err == nil {
			t.Errorf("expected error for %d options", n)
		}
	}
}

func TestChoices_AnswerMustBeAnOption(t *testing.T) {
	v := &ChoiceValidator{}
	set := validSet()
	set[0].Answer = "not among the options"
	err := v.Validate(set)
	if err == nil {
		t.Fatal("expected error when answer is not an option")
	}
	if err.Validator != "choices" {
		t.Errorf("expected validator %q, got %q", "choices", err.Validator)
	}
}

func TestChoices_CodeQuestionWithOptions(t *testing.T) {
	v := &ChoiceValidator{}
	set := validSet()
	set[1].Options = []string{"a", "b", "c", "d"}
	if err := v.Validate(set); err == nil {
		t.Fatal("expected error for code question with options")
	}
}

func TestChoices_ValidSet(t *testing.T) {
	v := &ChoiceValidator{}
	if err := v.Validate(validSet()); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestUniqueID_Duplicate(t *testing.T) {
	v := &UniqueIDValidator{}
	set := validSet()
	set[1].ID = set[0].ID
	err := v.Validate(set)
	if err == nil {
		t.Fatal("expected error for duplicate id")
	}
	if err.Index != 1 {
		t.Errorf("expected index 1, got %d", err.Index)
	}
}

func TestUniqueID_ValidSet(t *testing.T) {
	v := &UniqueIDValidator{}
	if err := v.Validate(validSet()); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}
