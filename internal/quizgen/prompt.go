package quizgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a programming tutor creating practice questions for self-directed learners.

Rules:
- Generate a mix of multiple-choice (mcq) and code-writing (code) questions for the requested language and level.
- For "mcq" questions, you MUST provide an "options" array with 4 distinct choices.
- For "code" questions, you MUST NOT provide an "options" array.
- The "correctAnswer" for an "mcq" question must be one of the strings from its "options" array, verbatim.
- The "correctAnswer" for a "code" question must be a valid code snippet that answers the question.
- Ensure each question has a unique "id".
- For EVERY question, provide a brief, one-sentence "explanation" of why the correct answer is correct.
- Respond ONLY with a valid JSON array conforming to the provided schema. No markdown, no text outside the array.`

// buildUserMessage constructs the user message for one generation request.
func buildUserMessage(input GenerateInput, count int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate %d practice questions for a %s programmer learning %s.\n",
		count, input.Level, input.Language)
	b.WriteString("Mix conceptual mcq questions with hands-on code questions.\n")
	fmt.Fprintf(&b, "Keep difficulty consistent with the %s level throughout the set.\n", input.Level)

	return b.String()
}
