package codecheck

import (
	"context"
	"errors"
	"testing"

	"github.com/abhisek/learnpb/internal/llm"
)

func TestCheckEmptySubmissionShortCircuits(t *testing.T) {
	mock := llm.NewMockProvider()
	checker := New(mock, DefaultConfig())

	for _, code := range []string{"", "   ", "\n\t  \n"} {
		res, err := checker.Check(context.Background(), "Write a loop", "for {}", code)
		if err != nil {
			t.Fatalf("Check(%q) error: %v", code, err)
		}
		if res.IsCorrect {
			t.Errorf("Check(%q) verdict correct, want incorrect", code)
		}
		if res.Feedback != EmptySubmissionFeedback {
			t.Errorf("Check(%q) feedback = %q, want %q", code, res.Feedback, EmptySubmissionFeedback)
		}
	}

	if mock.CallCount() != 0 {
		t.Errorf("provider called %d times for empty submissions, want 0", mock.CallCount())
	}
}

func TestCheckCorrectVerdict(t *testing.T) {
	mock := llm.NewMockProvider(`{"isCorrect": true, "feedback": "Nice work, clean solution."}`)
	checker := New(mock, DefaultConfig())

	res, err := checker.Check(context.Background(), "Print hello", "print('hello')", "print('hello')")
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if !res.IsCorrect {
		t.Error("verdict incorrect, want correct")
	}
	if res.Feedback == "" {
		t.Error("feedback empty")
	}
	if mock.CallCount() != 1 {
		t.Errorf("provider called %d times, want 1", mock.CallCount())
	}
	if mock.Calls[0].Request.Schema != VerdictSchema {
		t.Error("request did not carry the verdict schema")
	}
}

func TestCheckIncorrectVerdict(t *testing.T) {
	mock := llm.NewMockProvider(`{"isCorrect": false, "feedback": "Your loop never terminates."}`)
	checker := New(mock, DefaultConfig())

	res, err := checker.Check(context.Background(), "Count to 10", "for i := 1; i <= 10; i++ {}", "for {}")
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if res.IsCorrect {
		t.Error("verdict correct, want incorrect")
	}
}

func TestCheckMissingFields(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing isCorrect", `{"feedback": "looks fine"}`},
		{"missing feedback", `{"isCorrect": true}`},
		{"not an object", `[true, "feedback"]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mock := llm.NewMockProvider(tc.body)
			checker := New(mock, DefaultConfig())

			_, err := checker.Check(context.Background(), "q", "a", "some code")
			var invalid *llm.ErrInvalidResponse
			if !errors.As(err, &invalid) {
				t.Errorf("error = %v, want ErrInvalidResponse", err)
			}
		})
	}
}

func TestCheckPropagatesProviderError(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddError(&llm.ErrProviderUnavailable{Err: errors.New("down")})
	checker := New(mock, DefaultConfig())

	_, err := checker.Check(context.Background(), "q", "a", "code")
	var unavailable *llm.ErrProviderUnavailable
	if !errors.As(err, &unavailable) {
		t.Errorf("error = %v, want ErrProviderUnavailable", err)
	}
}

func TestCheckTagsPurpose(t *testing.T) {
	mock := llm.NewMockProvider(`{"isCorrect": true, "feedback": "ok"}`)
	checker := New(mock, DefaultConfig())

	if _, err := checker.Check(context.Background(), "q", "a", "code"); err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if len(mock.Calls) != 1 {
		t.Fatalf("recorded %d calls, want 1", len(mock.Calls))
	}
	if got := llm.PurposeFrom(mock.Calls[0].Ctx); got != "code-check" {
		t.Errorf("purpose = %q, want %q", got, "code-check")
	}
}
