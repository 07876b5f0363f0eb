// File: internal/calculated/solve.go
package calculated

import (
	"fmt"
	"math"

	"github.com/xkilldash9x/scientist-cli/internal/physics"
)

// relation is one closed-form answer read off a vector.
type relation struct {
	attr    physics.Attribute
	convert func(float64) float64
	unit    string
}

var relations = map[ValueKind]relation{
	ValueAngle:     {attr: physics.AttrTheta, convert: physics.Degrees, unit: "degrees"},
	ValueMagnitude: {attr: physics.AttrR, unit: "units"},
	ValueX:         {attr: physics.AttrX, unit: "units"},
	ValueY:         {attr: physics.AttrY, unit: "units"},
}

// Supported reports whether k has a closed-form relation.
func Supported(k ValueKind) bool {
	_, ok := relations[k]
	return ok
}

// Attribute is the vector attribute behind k.
func (k ValueKind) Attribute() (physics.Attribute, bool) {
	rel, ok := relations[k]
	return rel.attr, ok
}

// SolveValues evaluates the relation for cls.RequestedValue on the first
// vector in values. ok is false when the question is outside what the
// relations cover; err is set only when the extracted values are unusable.
func SolveValues(cls Classification, values *ValueMap) (answer string, ok bool, err error) {
	if cls.GivenObject != ObjectVector {
		return "", false, nil
	}
	rel, found := relations[cls.RequestedValue]
	if !found || values == nil || values.Len() == 0 {
		return "", false, nil
	}

	operand, err := buildOperand(values)
	if err != nil {
		return "", false, err
	}

	v, _ := operand.Get(rel.attr)
	if rel.convert != nil {
		v = rel.convert(v)
	}
	return fmt.Sprintf("%d %s", int64(math.Round(v)), rel.unit), true, nil
}

// buildOperand builds the vector of the first identifier. Later identifiers
// are not needed by any relation and may be incomplete.
func buildOperand(values *ValueMap) (physics.Vector, error) {
	id := values.IDs()[0]
	attrs, err := values.Floats(id)
	if err != nil {
		return physics.Vector{}, err
	}
	v, err := physics.FromAttributes(attrs)
	if err != nil {
		return physics.Vector{}, fmt.Errorf("vector %s: %w", id, err)
	}
	return v, nil
}
