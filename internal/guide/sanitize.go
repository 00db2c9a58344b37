package guide

import (
	"github.com/microcosm-cc/bluemonday"
)

// guidePolicy allows only the tags the prompt permits, with no attributes.
// Everything else, scripts and event handlers included, is stripped.
var guidePolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("h2", "h3", "p", "ul", "li", "pre", "code")
	return p
}()

// Sanitize strips every tag and attribute outside the guide allow-list.
// Model output is untrusted regardless of what the schema promises.
func Sanitize(html string) string {
	return guidePolicy.Sanitize(html)
}
