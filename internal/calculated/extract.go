// File: internal/calculated/extract.go
package calculated

import (
	"regexp"
	"strconv"

	"github.com/xkilldash9x/scientist-cli/internal/physics"
)

// ImplicitIdentifier labels the vector in questions that never name one.
const ImplicitIdentifier = "A"

var (
	// equalityRegex finds "A(x) = 2.5": a key, an equals sign and a number
	// with at most one decimal point.
	equalityRegex = regexp.MustCompile(`([A-Za-z0-9()]+)\s*=\s*([0-9]+(?:\.[0-9]+)?)`)
	// equalityKeyRegex splits the key into identifier and attribute name.
	equalityKeyRegex = regexp.MustCompile(`([A-Za-z])\(([A-Za-z]+)\)`)
)

// wordedPattern is a fixed prose phrasing that carries one attribute.
type wordedPattern struct {
	attr    physics.Attribute
	re      *regexp.Regexp
	convert func(string) (Value, bool)
}

var wordedPatterns = []wordedPattern{
	{attr: physics.AttrR, re: regexp.MustCompile(`a magnitude of (\d+)`), convert: rawValue},
	{attr: physics.AttrTheta, re: regexp.MustCompile(`an angle of (\d+)`), convert: degreesValue},
}

func rawValue(s string) (Value, bool) { return Raw(s), true }

func degreesValue(s string) (Value, bool) {
	deg, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Value{}, false
	}
	return Number(physics.Radians(deg)), true
}

// ExtractEquality collects "<id>(<attr>) = <number>" assignments. Numbers stay
// as written; a later assignment to the same key replaces an earlier one.
func ExtractEquality(question string) *ValueMap {
	out := NewValueMap()
	for _, m := range equalityRegex.FindAllStringSubmatch(question, -1) {
		key := equalityKeyRegex.FindStringSubmatch(m[1])
		if key == nil {
			continue
		}
		attr, ok := physics.ParseAttribute(key[2])
		if !ok {
			continue
		}
		out.Set(key[1], attr, Raw(m[2]))
	}
	return out
}

// ExtractWorded collects values phrased in prose, e.g. "a magnitude of 17
// units" or "an angle of 30 degrees". Angles are stored in radians. All
// worded values belong to ImplicitIdentifier.
func ExtractWorded(question string) *ValueMap {
	out := NewValueMap()
	for _, p := range wordedPatterns {
		m := p.re.FindStringSubmatch(question)
		if m == nil {
			continue
		}
		v, ok := p.convert(m[1])
		if !ok {
			continue
		}
		out.Set(ImplicitIdentifier, p.attr, v)
	}
	return out
}

// MergePolicy decides which extraction strategy wins when both produce the
// same identifier and attribute.
type MergePolicy int

const (
	// WordedWins applies equality values first and worded values over them.
	WordedWins MergePolicy = iota
	// EqualityWins applies worded values first and equality values over them.
	EqualityWins
)

// Extract runs both strategies and merges them under WordedWins.
func Extract(question string) *ValueMap {
	return ExtractWithPolicy(question, WordedWins)
}

// ExtractWithPolicy runs both strategies and merges them under p.
func ExtractWithPolicy(question string, p MergePolicy) *ValueMap {
	first, second := ExtractEquality(question), ExtractWorded(question)
	if p == EqualityWins {
		first, second = second, first
	}
	out := NewValueMap()
	out.Merge(first)
	out.Merge(second)
	return out
}
