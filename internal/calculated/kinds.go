// File: internal/calculated/kinds.go
package calculated

// ObjectKind is the physical entity a question talks about.
type ObjectKind string

// ObjectVector is the only object kind with closed-form relations.
const ObjectVector ObjectKind = "vector"

// ValueKind is the attribute a question asks for.
type ValueKind string

const (
	ValueAngle     ValueKind = "angle"
	ValueMagnitude ValueKind = "r"
	ValueX         ValueKind = "x"
	ValueY         ValueKind = "y"
)

// ParseValueKind maps a word from a question to a value kind. "magnitude" is
// ambiguous and needs DisambiguateMagnitude instead.
func ParseValueKind(word string) (ValueKind, bool) {
	switch ValueKind(word) {
	case ValueAngle, ValueMagnitude, ValueX, ValueY:
		return ValueKind(word), true
	}
	switch word {
	case "theta", "direction":
		return ValueAngle, true
	case "length":
		return ValueMagnitude, true
	}
	return "", false
}

// Classification is the immutable outcome of classifying one question. Both
// fields are non-empty whenever a model claims the question.
type Classification struct {
	GivenObject    ObjectKind
	RequestedValue ValueKind
}

// Complete reports whether both kinds were resolved.
func (c Classification) Complete() bool {
	return c.GivenObject != "" && c.RequestedValue != ""
}
