package guide

import "github.com/abhisek/learnpb/internal/llm"

// GuideSchema constrains the service to a single content field holding the
// HTML fragment.
var GuideSchema = &llm.Schema{
	Name:        "module_guide",
	Description: guideSchemaDescription,
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"content": map[string]any{
				"type":        "string",
				"description": "HTML fragment using only h2, h3, p, ul, li, pre and code tags",
			},
		},
		"required":             []string{"content"},
		"additionalProperties": false,
	},
}
