package codecheck

import (
	"fmt"
	"strings"
)

const checkSystemPrompt = `You are a strict but encouraging programming tutor grading a learner's code submission.

Rules:
- Judge whether the submission solves the question. Accept any correct approach, not only the reference answer. Minor stylistic differences are fine.
- Syntax errors, wrong output, or an incomplete solution mean the submission is incorrect.
- Feedback is one or two short sentences. If incorrect, point at the core problem without giving away the full solution.
- Respond with JSON only.`

func buildCheckMessage(questionText, referenceAnswer, userCode string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question:\n%s\n\n", questionText)
	fmt.Fprintf(&b, "Reference answer:\n%s\n\n", referenceAnswer)
	fmt.Fprintf(&b, "Learner's submission:\n%s\n", userCode)
	return b.String()
}
