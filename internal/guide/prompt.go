package guide

import (
	"fmt"
	"strings"
)

const guideSystemPrompt = `You are an expert technical writer producing a concise learning guide for a programming topic.

Rules:
- The guide has exactly four sections, in this order: Introduction, Key Concepts, Intermediate Topics, Advanced Topics.
- Output a single HTML fragment. Use only these tags: <h2> for section titles, <h3> for sub-topics, <p> for prose, <ul> and <li> for lists, <pre><code> for code samples, <code> for inline identifiers.
- No <html>, <head>, <body> or other wrapper elements. No attributes on any tag. No inline styles, no scripts, no links.
- Keep each section short and practical. Code samples stay under ten lines.
- Respond with JSON only.`

const guideSchemaDescription = "Learning guide as a restricted HTML fragment"

func buildGuideMessage(moduleName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Topic: %s\n\n", moduleName)
	b.WriteString("Write the four-section learning guide for this topic.")
	return b.String()
}
