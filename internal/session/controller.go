// Package session owns the mutable state of a practice run and of the
// module guide view. All mutation goes through the controllers here; async
// completions carry a request token and stale ones are discarded, so a
// completion from an abandoned request can never clobber newer state.
package session

import (
	"github.com/abhisek/learnpb/internal/catalog"
	"github.com/abhisek/learnpb/internal/quizgen"
)

// Token identifies one generation request. Zero is never issued.
type Token uint64

// Phase is the lifecycle of the practice question set.
type Phase int

const (
	// PhaseIdle means no questions have been requested yet, or the last
	// set was cleared.
	PhaseIdle Phase = iota
	// PhaseLoading means a generation request is in flight.
	PhaseLoading
	// PhaseReady means questions are loaded and answerable.
	PhaseReady
	// PhaseFailed means the last request errored. The inputs are still
	// set, so the user can re-trigger.
	PhaseFailed
)

// Controller is the single writer for practice state. It is not
// goroutine-safe: all calls happen on the UI update loop, async work
// reports back through Apply with the token it was issued.
type Controller struct {
	Level    catalog.Level
	Language catalog.Language

	Questions []quizgen.Question
	Score     int
	Err       error

	phase    Phase
	token    Token
	answered map[string]bool
}

// NewController creates an idle practice controller.
func NewController() *Controller {
	return &Controller{
		Level:    catalog.LevelBeginner,
		Language: catalog.LanguageC,
		answered: make(map[string]bool),
	}
}

// Phase returns the current lifecycle phase.
func (c *Controller) Phase() Phase { return c.phase }

// Loading reports whether a generation request is in flight.
func (c *Controller) Loading() bool { return c.phase == PhaseLoading }

// StartGeneration resets the run (questions, score, answered set, error)
// and issues a new token. Any in-flight completion holding an older token
// becomes stale.
func (c *Controller) StartGeneration(level catalog.Level, language catalog.Language) Token {
	c.Level = level
	c.Language = language
	c.Questions = nil
	c.Score = 0
	c.Err = nil
	c.answered = make(map[string]bool)
	c.phase = PhaseLoading
	c.token++
	return c.token
}

// ApplyQuestions installs a completed question set. Returns false and
// changes nothing if token is stale.
func (c *Controller) ApplyQuestions(token Token, questions []quizgen.Question) bool {
	if token != c.token {
		return false
	}
	c.Questions = questions
	c.Err = nil
	c.phase = PhaseReady
	return true
}

// ApplyError records a failed generation. Returns false and changes
// nothing if token is stale.
func (c *Controller) ApplyError(token Token, err error) bool {
	if token != c.token {
		return false
	}
	c.Err = err
	c.phase = PhaseFailed
	return true
}

// ReportCorrect credits a correct answer for questionID. IDs not in the
// current set are ignored, and the score increments at most once per
// question regardless of how many times the same verdict is reported.
func (c *Controller) ReportCorrect(questionID string) {
	if c.answered[questionID] || !c.inSet(questionID) {
		return
	}
	c.answered[questionID] = true
	c.Score++
}

func (c *Controller) inSet(questionID string) bool {
	for _, q := range c.Questions {
		if q.ID == questionID {
			return true
		}
	}
	return false
}

// Answered reports whether questionID has already been credited.
func (c *Controller) Answered(questionID string) bool {
	return c.answered[questionID]
}

// Total returns the number of questions in the current set.
func (c *Controller) Total() int { return len(c.Questions) }
