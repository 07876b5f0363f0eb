// File: internal/calculated/resolve.go
package calculated

import (
	"regexp"
	"strings"

	"github.com/xkilldash9x/scientist-cli/internal/question"
	"github.com/xkilldash9x/scientist-cli/internal/sentence"
)

const ambiguousMagnitude = "magnitude"

// Resolver finds the given object and requested value of a question using a
// template's descriptors. It holds no per-question state.
type Resolver struct {
	pattern *regexp.Regexp
}

// NewResolver binds a resolver to the template regex used by regex_group
// descriptors.
func NewResolver(pattern *regexp.Regexp) Resolver {
	return Resolver{pattern: pattern}
}

// ResolveGiven returns the given-object word.
func (r Resolver) ResolveGiven(q string, root sentence.Element, d question.Descriptor) (string, bool) {
	if d.UsesRegex() {
		return r.capture(q, *d.RegexGroup)
	}
	return firstWord(root, sentence.Query{Coarse: deref(d.Coarse), Fine: deref(d.Fine)})
}

// ResolveRequested returns the requested-value word. The word "magnitude" is
// narrowed to x, y or r by DisambiguateMagnitude.
func (r Resolver) ResolveRequested(q string, root sentence.Element, d question.Descriptor) (string, bool) {
	var (
		word string
		ok   bool
	)
	if d.UsesRegex() {
		word, ok = r.capture(q, *d.RegexGroup)
	} else {
		word, ok = firstWord(root, sentence.Query{
			Coarse:  deref(d.Coarse),
			Fine:    deref(d.Fine),
			CCoarse: deref(d.CCoarse),
		})
	}
	if !ok {
		return "", false
	}
	if strings.EqualFold(word, ambiguousMagnitude) {
		return string(DisambiguateMagnitude(q)), true
	}
	return word, true
}

// capture returns capture group n (0-based over the groups) of the first
// match against the lower-cased question.
func (r Resolver) capture(q string, n int) (string, bool) {
	if r.pattern == nil {
		return "", false
	}
	m := r.pattern.FindStringSubmatch(strings.ToLower(q))
	if m == nil || n+1 >= len(m) || m[n+1] == "" {
		return "", false
	}
	return m[n+1], true
}

// DisambiguateMagnitude reads what follows the last "magnitude" in q: a
// horizontal component asks for x, a vertical component for y, anything else
// for the total magnitude.
func DisambiguateMagnitude(q string) ValueKind {
	lower := strings.ToLower(q)
	tail := lower
	if i := strings.LastIndex(lower, ambiguousMagnitude); i >= 0 {
		tail = lower[i+len(ambiguousMagnitude):]
	}
	switch {
	case strings.Contains(tail, "horizontal component"):
		return ValueX
	case strings.Contains(tail, "vertical component"):
		return ValueY
	}
	return ValueMagnitude
}

func firstWord(root sentence.Element, q sentence.Query) (string, bool) {
	if root == nil {
		return "", false
	}
	found := root.FindElements(q)
	if len(found) == 0 || found[0].Word() == "" {
		return "", false
	}
	return found[0].Word(), true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
