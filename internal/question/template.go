// File: internal/question/template.go
package question

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	json "github.com/json-iterator/go"
)

// ErrMalformedTemplate marks a template file that cannot back a model.
var ErrMalformedTemplate = errors.New("malformed question template")

// Descriptor says where a model finds one attribute of a question: either a
// category lookup on the parse tree or a capture group of the template regex.
type Descriptor struct {
	Coarse     *string `json:"coarse,omitempty"`
	Fine       *string `json:"fine,omitempty"`
	CCoarse    *string `json:"ccoarse,omitempty"`
	RegexGroup *int    `json:"regex_group,omitempty"`
}

// UsesRegex reports whether the descriptor has the capture-group shape.
func (d Descriptor) UsesRegex() bool { return d.RegexGroup != nil }

// Validate enforces that exactly one shape is present.
func (d Descriptor) Validate(field string) error {
	lookup := d.Coarse != nil || d.Fine != nil || d.CCoarse != nil
	switch {
	case d.RegexGroup != nil && lookup:
		return fmt.Errorf("%w: %s mixes regex_group with a category lookup", ErrMalformedTemplate, field)
	case d.RegexGroup != nil:
		if *d.RegexGroup < 0 {
			return fmt.Errorf("%w: %s.regex_group must be >= 0", ErrMalformedTemplate, field)
		}
		return nil
	case d.Coarse == nil || d.Fine == nil:
		return fmt.Errorf("%w: %s needs regex_group or both coarse and fine", ErrMalformedTemplate, field)
	}
	return nil
}

// String renders the descriptor for listings.
func (d Descriptor) String() string {
	if d.RegexGroup != nil {
		return fmt.Sprintf("regex_group=%d", *d.RegexGroup)
	}
	s := fmt.Sprintf("coarse=%s fine=%s", deref(d.Coarse), deref(d.Fine))
	if d.CCoarse != nil {
		s += " ccoarse=" + *d.CCoarse
	}
	return s
}

// Template is the on-disk definition of one question model.
type Template struct {
	Name           string      `json:"name"`
	Regex          string      `json:"regex"`
	GivenObject    *Descriptor `json:"given_object"`
	RequestedValue *Descriptor `json:"requested_value"`

	compiled *regexp.Regexp
}

// Pattern returns the compiled template regex.
func (t *Template) Pattern() *regexp.Regexp { return t.compiled }

// LoadTemplate reads <dir>/<name> (".json" appended when missing), validates
// it and compiles its regex. Any defect is fatal for the model.
func LoadTemplate(dir, name string) (*Template, error) {
	file := name
	if filepath.Ext(file) == "" {
		file += ".json"
	}
	path := filepath.Join(dir, file)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template %s: %w", path, err)
	}
	tpl, err := ParseTemplate(data)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", path, err)
	}
	if tpl.Name == "" {
		tpl.Name = strings.TrimSuffix(file, filepath.Ext(file))
	}
	return tpl, nil
}

// ParseTemplate decodes and validates a template document.
func ParseTemplate(data []byte) (*Template, error) {
	var tpl Template
	if err := json.Unmarshal(data, &tpl); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTemplate, err)
	}
	if tpl.GivenObject == nil {
		return nil, fmt.Errorf("%w: missing given_object", ErrMalformedTemplate)
	}
	if tpl.RequestedValue == nil {
		return nil, fmt.Errorf("%w: missing requested_value", ErrMalformedTemplate)
	}
	if err := tpl.GivenObject.Validate("given_object"); err != nil {
		return nil, err
	}
	if err := tpl.RequestedValue.Validate("requested_value"); err != nil {
		return nil, err
	}
	if tpl.Regex == "" {
		return nil, fmt.Errorf("%w: missing regex", ErrMalformedTemplate)
	}
	re, err := regexp.Compile(tpl.Regex)
	if err != nil {
		return nil, fmt.Errorf("%w: regex: %v", ErrMalformedTemplate, err)
	}
	fields := []struct {
		name string
		d    *Descriptor
	}{{"given_object", tpl.GivenObject}, {"requested_value", tpl.RequestedValue}}
	for _, f := range fields {
		if f.d.UsesRegex() && *f.d.RegexGroup >= re.NumSubexp() {
			return nil, fmt.Errorf("%w: %s.regex_group %d but regex has %d group(s)",
				ErrMalformedTemplate, f.name, *f.d.RegexGroup, re.NumSubexp())
		}
	}
	tpl.compiled = re
	return &tpl, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
