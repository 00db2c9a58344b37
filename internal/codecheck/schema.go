package codecheck

import "github.com/abhisek/learnpb/internal/llm"

// VerdictSchema constrains the service to a two-field verdict object.
var VerdictSchema = &llm.Schema{
	Name:        "code_verdict",
	Description: "Verdict for a learner's code submission",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"isCorrect": map[string]any{
				"type":        "boolean",
				"description": "Whether the submission is a valid solution",
			},
			"feedback": map[string]any{
				"type":        "string",
				"description": "One or two sentences of concise, encouraging feedback",
			},
		},
		"required":             []string{"isCorrect", "feedback"},
		"additionalProperties": false,
	},
}
