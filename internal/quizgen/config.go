package quizgen

// Config controls the LLMGenerator.
type Config struct {
	// Validators run in order on every generated set; the first failure
	// rejects the set.
	Validators []Validator

	// QuestionCount is the default set size when GenerateInput.Count is 0.
	QuestionCount int

	// MaxTokens is the token budget for the whole set.
	MaxTokens int

	// Temperature controls output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns a Config with the standard validator chain.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&ChoiceValidator{},
			&UniqueIDValidator{},
		},
		QuestionCount: 10,
		MaxTokens:     4096,
		Temperature:   0.8,
	}
}
