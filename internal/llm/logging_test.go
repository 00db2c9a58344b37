package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/learnpb/internal/store"
)

// captureRepo records AppendLLMRequest calls and no-ops everything else.
type captureRepo struct {
	store.EventRepo
	appended []store.LLMRequestEventData
	fail     error
}

func (r *captureRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	if r.fail != nil {
		return r.fail
	}
	r.appended = append(r.appended, data)
	return nil
}

func TestLogging_RecordsSuccess(t *testing.T) {
	mock := NewMockProvider(`{"ok": true}`)
	repo := &captureRepo{}
	p := WithLogging(mock, repo)

	ctx := WithPurpose(context.Background(), "question-gen")
	req := Request{
		System:   "You are a tutor.",
		Messages: []Message{{Role: RoleUser, Content: "generate"}},
	}

	resp, err := p.Generate(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"ok": true}` {
		t.Errorf("response passed through wrong: %s", resp.Content)
	}

	if len(repo.appended) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.appended))
	}
	ev := repo.appended[0]
	if !ev.Success {
		t.Error("expected success event")
	}
	if ev.Purpose != "question-gen" {
		t.Errorf("expected purpose question-gen, got %q", ev.Purpose)
	}
	if ev.ResponseBody != `{"ok": true}` {
		t.Errorf("response body not captured: %q", ev.ResponseBody)
	}
	if ev.RequestBody == "" {
		t.Error("expected serialized request body")
	}
}

func TestLogging_RecordsFailureAndRethrows(t *testing.T) {
	mock := NewMockProvider()
	mock.AddError(&ErrRateLimit{Err: errors.New("429")})
	repo := &captureRepo{}
	p := WithLogging(mock, repo)

	_, err := p.Generate(context.Background(), Request{})
	var rateLimit *ErrRateLimit
	if !errors.As(err, &rateLimit) {
		t.Fatalf("expected ErrRateLimit, got %v", err)
	}

	if len(repo.appended) != 1 {
		t.Fatalf("expected failure event, got %d events", len(repo.appended))
	}
	ev := repo.appended[0]
	if ev.Success {
		t.Error("expected failed event")
	}
	if ev.ErrorMessage == "" {
		t.Error("expected error message on event")
	}
	if ev.Purpose != "unknown" {
		t.Errorf("untagged context should log purpose unknown, got %q", ev.Purpose)
	}
}

func TestLogging_RepoFailureDoesNotFailRequest(t *testing.T) {
	mock := NewMockProvider(`[]`)
	repo := &captureRepo{fail: errors.New("disk full")}
	p := WithLogging(mock, repo)

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("logging failure must not surface: %v", err)
	}
	if resp == nil {
		t.Fatal("expected response despite logging failure")
	}
}

func TestSerializeRequest(t *testing.T) {
	req := Request{
		System:   "system text",
		Messages: []Message{{Role: RoleUser, Content: "user text"}},
		Schema:   testSchema(),
	}

	out := serializeRequest(req)
	for _, want := range []string{"[system]", "system text", "[user]", "user text", "[schema: test-verdict]"} {
		if !strings.Contains(out, want) {
			t.Errorf("serialized request missing %q:\n%s", want, out)
		}
	}
}
