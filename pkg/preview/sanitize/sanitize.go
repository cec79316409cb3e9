// Package sanitize strips executable and unsafe markup from rendered preview
// HTML. The policy is bluemonday's user generated content policy plus the
// math span class the markdown converter emits.
package sanitize

import (
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	defaultOnce   sync.Once
	defaultPolicy *Sanitizer

	mathClass     = regexp.MustCompile(`^math$`)
	languageClass = regexp.MustCompile(`^language-[\w+#-]+$`)
)

// Sanitizer wraps a bluemonday policy. A policy is safe for concurrent use
// once built.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// Default returns the shared preview sanitizer.
func Default() *Sanitizer {
	defaultOnce.Do(func() {
		defaultPolicy = New()
	})
	return defaultPolicy
}

// New builds a preview sanitizer.
func New() *Sanitizer {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Matching(mathClass).OnElements("span")
	policy.AllowAttrs("class").Matching(languageClass).OnElements("code")
	policy.AllowAttrs("checked", "disabled").OnElements("input")
	policy.AllowAttrs("type").Matching(regexp.MustCompile(`^checkbox$`)).OnElements("input")
	policy.AllowElements("input")
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	return &Sanitizer{policy: policy}
}

// Sanitize returns html with unsafe content removed.
func (s *Sanitizer) Sanitize(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	return s.policy.Sanitize(html)
}
