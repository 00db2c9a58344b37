package quizgen

import "github.com/abhisek/learnpb/internal/catalog"

// QuestionType distinguishes the two question variants.
type QuestionType string

const (
	// TypeMCQ is a multiple-choice question with exactly four options.
	TypeMCQ QuestionType = "mcq"

	// TypeCode is an open question answered with a code submission, judged
	// by the generation service rather than by local execution.
	TypeCode QuestionType = "code"
)

// Question is one generated practice question. Questions are immutable once
// parsed; a new generation request replaces the whole set.
type Question struct {
	// ID is unique within one generated set.
	ID string

	// Type selects the widget: mcq or code.
	Type QuestionType

	// Text is the question prompt.
	Text string

	// Options holds exactly 4 choices when Type is mcq, and is nil for code
	// questions.
	Options []string

	// Answer is the correct option text (mcq) or a reference code snippet
	// (code).
	Answer string

	// Explanation is a one-sentence account of why the answer is correct.
	Explanation string

	// Level and Language record what the set was generated for.
	Level    catalog.Level
	Language catalog.Language
}

// GenerateInput holds the learner's selection for one generation request.
type GenerateInput struct {
	Level    catalog.Level
	Language catalog.Language

	// Count is the number of questions to request. Zero means the default
	// set size of 10.
	Count int
}
