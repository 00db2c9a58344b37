package practice

import (
	"github.com/abhisek/learnpb/internal/codecheck"
	"github.com/abhisek/learnpb/internal/quizgen"
	"github.com/abhisek/learnpb/internal/session"
)

// questionsReadyMsg delivers a generated question set. The token ties it
// to the request that started it.
type questionsReadyMsg struct {
	token     session.Token
	questions []quizgen.Question
}

// questionsFailedMsg delivers a generation failure.
type questionsFailedMsg struct {
	token session.Token
	err   error
}

// verdictMsg delivers a code-check outcome for one question. run ties the
// verdict to the question set it was submitted under; check is the widget's
// own submission counter. A verdict for a replaced set or an older
// submission is dropped.
type verdictMsg struct {
	run    session.Token
	index  int
	check  uint64
	result *codecheck.Result
	err    error
}
