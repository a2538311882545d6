package directive

import (
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-sidenote/pkg/interfaces"
)

// Sanitizer guards the two trust boundaries of a directive render: rendered
// output is checked for script injection without being rewritten (fragment
// bytes are a published contract), while raw author text is scrubbed through
// a bluemonday policy that keeps inline formatting only.
type Sanitizer struct {
	inner *bluemonday.Policy
}

// NewSanitizer returns a sanitizer with an inline-formatting bluemonday policy.
func NewSanitizer() *Sanitizer {
	policy := bluemonday.NewPolicy()
	policy.AllowElements("em", "strong", "b", "i", "code", "small", "sup", "sub", "br", "span")
	policy.AllowAttrs("href").OnElements("a")
	policy.AllowStandardURLs()
	policy.RequireNoFollowOnLinks(false)

	return &Sanitizer{inner: policy}
}

// Sanitize rejects obvious script injections while preserving the markup
// byte-for-byte.
func (s *Sanitizer) Sanitize(html string) (string, error) {
	lower := strings.ToLower(html)
	if strings.Contains(lower, "<script") {
		return "", fmt.Errorf("directive: script tags are not allowed")
	}
	return html, nil
}

// SanitizeInner scrubs raw author text destined for interpolation without
// escaping, keeping inline formatting and dropping everything else.
func (s *Sanitizer) SanitizeInner(text string) string {
	return s.inner.Sanitize(text)
}

var _ interfaces.DirectiveSanitizer = (*Sanitizer)(nil)
