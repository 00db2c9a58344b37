package store

import (
	"context"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Client() == nil {
		t.Fatal("expected non-nil ent client")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is only meaningful with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sc, err := newSequenceCounter(s.DB())
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestAppendAndQueryLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, purpose := range []string{"question-gen", "module-guide", "code-check"} {
		err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider:     "gemini",
			Model:        "gemini-2.5-flash",
			Purpose:      purpose,
			InputTokens:  100,
			OutputTokens: 200,
			LatencyMs:    750,
			Success:      true,
			RequestBody:  "[user]\ngenerate",
			ResponseBody: `[]`,
		})
		if err != nil {
			t.Fatalf("append %s: %v", purpose, err)
		}
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}

	// Newest first.
	if events[0].Purpose != "code-check" {
		t.Errorf("expected newest event first, got purpose %q", events[0].Purpose)
	}
	if events[0].Sequence <= events[1].Sequence {
		t.Errorf("expected descending sequence, got %d then %d", events[0].Sequence, events[1].Sequence)
	}
	if events[0].Provider != "gemini" || events[0].InputTokens != 100 {
		t.Errorf("event fields not round-tripped: %+v", events[0])
	}
}

func TestQueryLLMEventsLimit(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider: "mock", Model: "mock", Purpose: "question-gen", Success: true,
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("expected 2 events with limit, got %d", len(events))
	}
}

func TestGetLLMEvent(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "mock", Model: "mock", Purpose: "code-check",
		Success: false, ErrorMessage: "rate limited",
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}

	ev, err := repo.GetLLMEvent(ctx, events[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ev == nil {
		t.Fatal("expected event")
	}
	if ev.ErrorMessage != "rate limited" {
		t.Errorf("error message not round-tripped: %q", ev.ErrorMessage)
	}

	missing, err := repo.GetLLMEvent(ctx, 99999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for unknown id")
	}
}

func TestLLMUsageByPurpose(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	appends := []struct {
		purpose string
		in, out int
	}{
		{"question-gen", 100, 400},
		{"question-gen", 120, 380},
		{"code-check", 50, 30},
	}
	for _, a := range appends {
		err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider: "mock", Model: "mock", Purpose: a.purpose,
			InputTokens: a.in, OutputTokens: a.out, LatencyMs: 500, Success: true,
		})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	stats, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected 2 purposes, got %d", len(stats))
	}

	// Ordered by purpose, so code-check comes first.
	if stats[0].Purpose != "code-check" || stats[0].Calls != 1 {
		t.Errorf("unexpected first stat: %+v", stats[0])
	}
	if stats[1].Purpose != "question-gen" || stats[1].Calls != 2 {
		t.Errorf("unexpected second stat: %+v", stats[1])
	}
	if stats[1].InputTokens != 220 || stats[1].OutputTokens != 780 {
		t.Errorf("token sums wrong: %+v", stats[1])
	}
}

func TestSessionAndAnswerEventsShareSequence(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.AppendSessionEvent(ctx, SessionEventData{
		SessionID: "s1", Action: "start",
		Level: "beginner", Language: "python", QuestionCount: 10,
	})
	if err != nil {
		t.Fatalf("append session: %v", err)
	}

	err = repo.AppendAnswerEvent(ctx, AnswerEventData{
		SessionID: "s1", QuestionID: "q1", QuestionType: "mcq",
		QuestionText: "What is a tuple?", CorrectAnswer: "an immutable sequence",
		LearnerAnswer: "an immutable sequence", Correct: true,
	})
	if err != nil {
		t.Fatalf("append answer: %v", err)
	}

	var sessionSeq, answerSeq int64
	if err := s.DB().QueryRow("SELECT sequence FROM session_events").Scan(&sessionSeq); err != nil {
		t.Fatalf("read session sequence: %v", err)
	}
	if err := s.DB().QueryRow("SELECT sequence FROM answer_events").Scan(&answerSeq); err != nil {
		t.Fatalf("read answer sequence: %v", err)
	}
	if answerSeq <= sessionSeq {
		t.Errorf("expected answer sequence after session sequence, got %d <= %d", answerSeq, sessionSeq)
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"llm_request_events", "session_events", "answer_events"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("query sqlite_master for %s: %v", table, err)
		}
	}
}
