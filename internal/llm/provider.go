package llm

import (
	"context"
	"encoding/json"
)

// Provider is the single abstraction over the external generation service.
// Everything the application asks an LLM to do (authoring practice
// questions, writing a module guide, judging submitted code) goes through
// Generate.
type Provider interface {
	// Generate sends a prompt to the LLM and returns its output. When the
	// request carries a Schema, the provider uses its native structured
	// output mechanism and the returned Content is JSON validated against
	// that schema. When Schema is nil, Content is the raw text response.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured with.
	ModelID() string
}

// Request describes a single call to the generation service.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Messages is the conversation. Every operation in this app is
	// single-turn, so this holds one user message.
	Messages []Message

	// Schema, when set, constrains the response to JSON conforming to it.
	Schema *Schema

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature controls randomness, 0.0-1.0. Zero means deterministic.
	Temperature float64
}

// Message is one entry in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role identifies the message sender.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema declares the JSON shape the response must take.
type Schema struct {
	// Name identifies the schema, kebab-case, e.g. "practice-questions".
	Name string

	// Description tells the model what the schema represents.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the model's output.
type Response struct {
	// Content is the generated output. With a Schema in the request this is
	// the schema-validated JSON value; otherwise the raw text.
	Content json.RawMessage

	// Usage reports token consumption for this call.
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end", "max_tokens", or "error".
	StopReason string
}

// Usage tracks token consumption for a single call.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
