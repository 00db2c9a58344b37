package quizgen

import "fmt"

// StructuralValidator checks that every question has its required fields and
// a known type. The declared response schema asserts most of this already;
// re-verifying locally means a provider that ignores the schema still can't
// push a malformed set into the session.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(questions []Question) *ValidationError {
	if len(questions) == 0 {
		return &ValidationError{
			Validator: v.Name(),
			Index:     -1,
			Message:   "question set is empty",
		}
	}

	for i, q := range questions {
		switch {
		case q.ID == "":
			return v.fail(i, "id is empty")
		case q.Text == "":
			return v.fail(i, "questionText is empty")
		case q.Answer == "":
			return v.fail(i, "correctAnswer is empty")
		case q.Explanation == "":
			return v.fail(i, "explanation is empty")
		case q.Type != TypeMCQ && q.Type != TypeCode:
			return v.fail(i, fmt.Sprintf("unknown question type %q", q.Type))
		}
	}
	return nil
}

func (v *StructuralValidator) fail(i int, msg string) *ValidationError {
	return &ValidationError{Validator: v.Name(), Index: i, Message: msg}
}

// ChoiceValidator enforces the per-type option rules: mcq questions carry
// exactly 4 options with the answer among them, code questions carry none.
type ChoiceValidator struct{}

func (v *ChoiceValidator) Name() string { return "choices" }

func (v *ChoiceValidator) Validate(questions []Question) *ValidationError {
	for i, q := range questions {
		switch q.Type {
		case TypeMCQ:
			if len(q.Options) != 4 {
				return &ValidationError{
					Validator: v.Name(),
					Index:     i,
					Message:   fmt.Sprintf("mcq question has %d options, want 4", len(q.Options)),
				}
			}
			if !contains(q.Options, q.Answer) {
				return &ValidationError{
					Validator: v.Name(),
					Index:     i,
					Message:   "correctAnswer is not one of the options",
				}
			}
		case TypeCode:
			if len(q.Options) != 0 {
				return &ValidationError{
					Validator: v.Name(),
					Index:     i,
					Message:   "code question must not carry options",
				}
			}
		}
	}
	return nil
}

// UniqueIDValidator rejects sets with duplicate question IDs: the score
// ledger is keyed by ID, so duplicates would make correct answers collide.
type UniqueIDValidator struct{}

func (v *UniqueIDValidator) Name() string { return "unique-id" }

func (v *UniqueIDValidator) Validate(questions []Question) *ValidationError {
	seen := make(map[string]bool, len(questions))
	for i, q := range questions {
		if seen[q.ID] {
			return &ValidationError{
				Validator: v.Name(),
				Index:     i,
				Message:   fmt.Sprintf("duplicate question id %q", q.ID),
			}
		}
		seen[q.ID] = true
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
