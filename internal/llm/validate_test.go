package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name: "test-verdict",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"isCorrect": map[string]any{"type": "boolean"},
				"feedback":  map[string]any{"type": "string"},
			},
			"required":             []string{"isCorrect", "feedback"},
			"additionalProperties": false,
		},
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`not even json`)); err != nil {
		t.Errorf("nil schema should skip validation, got %v", err)
	}
}

func TestValidateResponse_Valid(t *testing.T) {
	raw := json.RawMessage(`{"isCorrect": true, "feedback": "Looks right."}`)
	if err := validateResponse(testSchema(), raw); err != nil {
		t.Errorf("expected valid, got %v", err)
	}
}

func TestValidateResponse_InvalidJSON(t *testing.T) {
	err := validateResponse(testSchema(), json.RawMessage(`{"isCorrect":`))
	if err == nil {
		t.Fatal("expected error for truncated JSON")
	}
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse, got %T", err)
	}
}

func TestValidateResponse_SchemaViolation(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"missing required field", `{"isCorrect": true}`},
		{"wrong type", `{"isCorrect": "yes", "feedback": "ok"}`},
		{"extra property", `{"isCorrect": true, "feedback": "ok", "score": 1}`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := validateResponse(testSchema(), json.RawMessage(c.raw))
			if err == nil {
				t.Fatal("expected schema violation")
			}
			var invalid *ErrInvalidResponse
			if !errors.As(err, &invalid) {
				t.Fatalf("expected ErrInvalidResponse, got %T", err)
			}
		})
	}
}

func TestValidateResponse_CachesCompiledSchema(t *testing.T) {
	schema := testSchema()
	raw := json.RawMessage(`{"isCorrect": false, "feedback": "Off by one."}`)

	if err := validateResponse(schema, raw); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, ok := schemaCache.Load(schema.Name); !ok {
		t.Fatal("expected compiled schema in cache after first use")
	}
	if err := validateResponse(schema, raw); err != nil {
		t.Fatalf("second call: %v", err)
	}
}
