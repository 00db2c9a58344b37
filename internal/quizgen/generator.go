package quizgen

import "context"

// Generator produces practice question sets using the generation service.
type Generator interface {
	// Generate produces a full question set for the given input. All
	// configured validators run before the set is returned; a set that
	// fails validation is rejected wholesale.
	Generate(ctx context.Context, input GenerateInput) ([]Question, error)
}
