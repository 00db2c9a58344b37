package quizgen

import "github.com/abhisek/learnpb/internal/llm"

// QuestionSetSchema declares the JSON shape of a generated question set: a
// top-level array of question objects. options is optional because code
// questions must not carry it; the validator chain enforces the per-type
// rules the schema alone can't express.
var QuestionSetSchema = &llm.Schema{
	Name:        "practice-questions",
	Description: "A set of programming practice questions with answers and explanations",
	Definition: map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"id": map[string]any{
					"type":        "string",
					"description": "A unique identifier for the question",
				},
				"type": map[string]any{
					"type":        "string",
					"enum":        []any{"mcq", "code"},
					"description": "multiple-choice (mcq) or code-writing (code)",
				},
				"questionText": map[string]any{
					"type":        "string",
					"description": "The main text of the question",
				},
				"options": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "string",
					},
					"description": "Exactly 4 distinct choices for mcq questions. Absent for code questions.",
				},
				"correctAnswer": map[string]any{
					"type":        "string",
					"description": "For mcq, one of the options verbatim. For code, a correct example snippet.",
				},
				"explanation": map[string]any{
					"type":        "string",
					"description": "A brief, one-sentence explanation of why the correct answer is correct",
				},
			},
			"required": []any{"id", "type", "questionText", "correctAnswer", "explanation"},
		},
	},
}
