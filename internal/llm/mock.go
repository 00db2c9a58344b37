package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// mockResult is a canned outcome for the MockProvider.
type mockResult struct {
	content json.RawMessage
	err     error
}

// RecordedCall is one Generate invocation captured by the MockProvider.
type RecordedCall struct {
	Ctx     context.Context
	Request Request
}

// MockProvider is a deterministic Provider for tests. It returns canned
// results in FIFO order and records every call, so tests can assert on
// prompt content, on the request context, and on call counts (including
// zero).
type MockProvider struct {
	mu      sync.Mutex
	results []mockResult
	Calls   []RecordedCall
}

// NewMockProvider creates a MockProvider whose queue starts with the given
// JSON response bodies.
func NewMockProvider(responses ...string) *MockProvider {
	m := &MockProvider{}
	for _, r := range responses {
		m.results = append(m.results, mockResult{content: json.RawMessage(r)})
	}
	return m
}

// Generate records the call and returns the next canned result, or
// ErrProviderUnavailable once the queue is exhausted.
func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, RecordedCall{Ctx: ctx, Request: req})

	if len(m.results) == 0 {
		return nil, &ErrProviderUnavailable{}
	}

	res := m.results[0]
	m.results = m.results[1:]

	if res.err != nil {
		return nil, res.err
	}

	return &Response{
		Content: res.content,
		Usage: Usage{
			InputTokens:  len(req.Messages),
			OutputTokens: len(res.content),
		},
		Model:      "mock",
		StopReason: "end",
	}, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends a canned JSON response body to the queue.
func (m *MockProvider) AddResponse(content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, mockResult{content: json.RawMessage(content)})
}

// AddError appends a canned error to the queue.
func (m *MockProvider) AddError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, mockResult{err: err})
}

// CallCount returns the number of Generate calls made so far.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
