// File: internal/calculated/values.go
package calculated

import (
	"fmt"
	"strconv"

	"github.com/xkilldash9x/scientist-cli/internal/physics"
)

// Value is one extracted quantity. Text keeps the number as written in the
// question; computed values (e.g. an angle already in radians) carry Number
// instead.
type Value struct {
	Text    string
	Number  float64
	Numeric bool
}

// Raw wraps a number exactly as written.
func Raw(text string) Value { return Value{Text: text} }

// Number wraps an already computed number.
func Number(f float64) Value { return Value{Number: f, Numeric: true} }

// Float returns the numeric value, parsing Text when needed.
func (v Value) Float() (float64, error) {
	if v.Numeric {
		return v.Number, nil
	}
	return strconv.ParseFloat(v.Text, 64)
}

func (v Value) String() string {
	if v.Numeric {
		return strconv.FormatFloat(v.Number, 'g', -1, 64)
	}
	return v.Text
}

// Attributes holds the extracted attributes of one vector.
type Attributes map[physics.Attribute]Value

// ValueMap maps vector identifiers to their attributes and remembers the order
// in which identifiers were first seen.
type ValueMap struct {
	order  []string
	values map[string]Attributes
}

// NewValueMap returns an empty map.
func NewValueMap() *ValueMap {
	return &ValueMap{values: map[string]Attributes{}}
}

// Set records one attribute, replacing any earlier value for the same key.
func (m *ValueMap) Set(id string, attr physics.Attribute, v Value) {
	attrs, ok := m.values[id]
	if !ok {
		attrs = Attributes{}
		m.values[id] = attrs
		m.order = append(m.order, id)
	}
	attrs[attr] = v
}

// Get returns one attribute.
func (m *ValueMap) Get(id string, attr physics.Attribute) (Value, bool) {
	v, ok := m.values[id][attr]
	return v, ok
}

// IDs returns the identifiers in first-seen order.
func (m *ValueMap) IDs() []string {
	return append([]string(nil), m.order...)
}

// Attributes returns the attributes recorded for id.
func (m *ValueMap) Attributes(id string) Attributes { return m.values[id] }

// Len is the number of identifiers.
func (m *ValueMap) Len() int { return len(m.order) }

// Merge folds src into m identifier by identifier. Attributes accumulate and,
// on a clash, src wins.
func (m *ValueMap) Merge(src *ValueMap) {
	if src == nil {
		return
	}
	for _, id := range src.order {
		for attr, v := range src.values[id] {
			m.Set(id, attr, v)
		}
	}
}

// Map returns a plain copy, mostly for comparisons and logging.
func (m *ValueMap) Map() map[string]map[physics.Attribute]string {
	out := make(map[string]map[physics.Attribute]string, len(m.values))
	for id, attrs := range m.values {
		inner := make(map[physics.Attribute]string, len(attrs))
		for a, v := range attrs {
			inner[a] = v.String()
		}
		out[id] = inner
	}
	return out
}

// Floats converts the attributes of id to numbers.
func (m *ValueMap) Floats(id string) (map[physics.Attribute]float64, error) {
	attrs := m.values[id]
	out := make(map[physics.Attribute]float64, len(attrs))
	for a, v := range attrs {
		f, err := v.Float()
		if err != nil {
			return nil, &ExtractionError{Identifier: id, Attribute: a, Text: v.Text, Err: err}
		}
		out[a] = f
	}
	return out, nil
}

// ExtractionError reports an extracted quantity that is not a usable number.
type ExtractionError struct {
	Identifier string
	Attribute  physics.Attribute
	Text       string
	Err        error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("value %s(%s) = %q is not a number: %v", e.Identifier, e.Attribute, e.Text, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }
