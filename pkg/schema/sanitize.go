package schema

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	markupPolicyOnce sync.Once
	markupPolicy     *bluemonday.Policy
)

// StripMarkup removes any HTML from the text. The sanitizer escapes what it
// keeps, so the result is unescaped again to preserve characters such as
// apostrophes in names.
func StripMarkup() Rule {
	return Rule{
		Name: RuleStripMarkup,
		Normalize: func(v Value) Value {
			v.Text = stripMarkup(v.Text)
			return v
		},
	}
}

func stripMarkup(raw string) string {
	if !strings.ContainsAny(raw, "<>&") {
		return raw
	}
	return html.UnescapeString(markupSanitizer().Sanitize(raw))
}

func markupSanitizer() *bluemonday.Policy {
	markupPolicyOnce.Do(func() {
		markupPolicy = bluemonday.StrictPolicy()
	})
	return markupPolicy
}
