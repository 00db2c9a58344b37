package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries.
type QueryOpts struct {
	Limit int // max results (0 = unlimited)
}

// LLMRequestEventData captures a single generation-service call.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string // question-gen, module-guide, code-check
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a persisted LLM call event as read back from the store.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageStat aggregates token usage per purpose.
type LLMUsageStat struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// SessionEventData records the start or end of a practice session.
type SessionEventData struct {
	SessionID      string
	Action         string // "start" or "end"
	Level          string
	Language       string
	QuestionCount  int
	CorrectAnswers int
}

// AnswerEventData records a single answered question.
type AnswerEventData struct {
	SessionID     string
	QuestionID    string
	QuestionType  string // mcq or code
	QuestionText  string
	CorrectAnswer string
	LearnerAnswer string
	Correct       bool
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendLLMRequest records a generation-service call.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns a single LLM event by ID, or nil if not found.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	// LLMUsageByPurpose aggregates token usage grouped by purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStat, error)

	// AppendSessionEvent records a practice session start/end.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendAnswerEvent records an answered question.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error
}
