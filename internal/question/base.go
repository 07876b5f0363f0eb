// File: internal/question/base.go
package question

import (
	"strings"

	"github.com/xkilldash9x/scientist-cli/internal/sentence"
)

// Gate is the coarse pre-check every question model runs before its own
// classification.
type Gate interface {
	Matches(question string, root sentence.Element) bool
}

// Base is the template-regex gate shared by all template-backed models.
type Base struct {
	Template *Template
}

// NewBase wraps a loaded template.
func NewBase(tpl *Template) Base { return Base{Template: tpl} }

// Matches reports whether the template regex finds the lower-cased question.
func (b Base) Matches(question string, _ sentence.Element) bool {
	if b.Template == nil || b.Template.compiled == nil {
		return false
	}
	return b.Template.compiled.MatchString(strings.ToLower(question))
}
