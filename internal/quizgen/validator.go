package quizgen

import "fmt"

// Validator checks a parsed question set before it reaches the session.
// Implementations are stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for error messages, e.g. "structural".
	Name() string

	// Validate returns nil if the set passes, a ValidationError otherwise.
	Validate(questions []Question) *ValidationError
}

// ValidationError describes why a generated set was rejected. It belongs to
// the parse-failure class of errors: the declared schema was satisfied but a
// per-item invariant was not.
type ValidationError struct {
	Validator string // which validator failed
	Index     int    // offending question index, -1 for set-level failures
	Message   string
}

func (e *ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("validator %q: question %d: %s", e.Validator, e.Index, e.Message)
	}
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}
