// File: internal/physics/vector.go
package physics

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnderdetermined is returned when the supplied attributes do not pin down a vector.
var ErrUnderdetermined = errors.New("vector is underdetermined")

// Attribute names one scalar property of a 2-D vector.
type Attribute string

const (
	AttrX     Attribute = "x"
	AttrY     Attribute = "y"
	AttrR     Attribute = "r"
	AttrTheta Attribute = "theta"
)

// ParseAttribute maps a written attribute name to an Attribute.
func ParseAttribute(s string) (Attribute, bool) {
	switch Attribute(s) {
	case AttrX, AttrY, AttrR, AttrTheta:
		return Attribute(s), true
	}
	return "", false
}

// Vector is a 2-D vector carrying both its Cartesian and polar forms.
// Theta is in radians, measured counter-clockwise from the positive x axis.
type Vector struct {
	X, Y  float64
	R     float64
	Theta float64
}

// FromCartesian builds a vector from its components.
func FromCartesian(x, y float64) Vector {
	return Vector{X: x, Y: y, R: math.Hypot(x, y), Theta: math.Atan2(y, x)}
}

// FromPolar builds a vector from its magnitude and direction.
func FromPolar(r, theta float64) Vector {
	return Vector{X: r * math.Cos(theta), Y: r * math.Sin(theta), R: r, Theta: theta}
}

// FromAttributes builds a vector from any two attributes that determine it.
// When more than two are present, the Cartesian pair wins, then the polar pair.
func FromAttributes(attrs map[Attribute]float64) (Vector, error) {
	x, hasX := attrs[AttrX]
	y, hasY := attrs[AttrY]
	r, hasR := attrs[AttrR]
	theta, hasTheta := attrs[AttrTheta]

	switch {
	case hasX && hasY:
		return FromCartesian(x, y), nil
	case hasR && hasTheta:
		return FromPolar(r, theta), nil
	case hasX && hasR:
		if math.Abs(x) > r {
			return Vector{}, fmt.Errorf("component x=%g exceeds magnitude r=%g", x, r)
		}
		return FromCartesian(x, math.Sqrt(r*r-x*x)), nil
	case hasY && hasR:
		if math.Abs(y) > r {
			return Vector{}, fmt.Errorf("component y=%g exceeds magnitude r=%g", y, r)
		}
		return FromCartesian(math.Sqrt(r*r-y*y), y), nil
	case hasX && hasTheta:
		c := math.Cos(theta)
		if nearZero(c) {
			return Vector{}, fmt.Errorf("x component cannot fix a vertical vector: %w", ErrUnderdetermined)
		}
		return FromPolar(x/c, theta), nil
	case hasY && hasTheta:
		s := math.Sin(theta)
		if nearZero(s) {
			return Vector{}, fmt.Errorf("y component cannot fix a horizontal vector: %w", ErrUnderdetermined)
		}
		return FromPolar(y/s, theta), nil
	}
	return Vector{}, fmt.Errorf("%w: have %d attribute(s), need a determining pair", ErrUnderdetermined, len(attrs))
}

// Get returns the value of one attribute.
func (v Vector) Get(a Attribute) (float64, bool) {
	switch a {
	case AttrX:
		return v.X, true
	case AttrY:
		return v.Y, true
	case AttrR:
		return v.R, true
	case AttrTheta:
		return v.Theta, true
	}
	return 0, false
}

// With returns a copy of v with one attribute replaced. Changing a Cartesian
// component holds the other component fixed; changing a polar attribute holds
// the other polar attribute fixed.
func (v Vector) With(a Attribute, value float64) (Vector, error) {
	switch a {
	case AttrX:
		return FromCartesian(value, v.Y), nil
	case AttrY:
		return FromCartesian(v.X, value), nil
	case AttrR:
		return FromPolar(value, v.Theta), nil
	case AttrTheta:
		return FromPolar(v.R, value), nil
	}
	return Vector{}, fmt.Errorf("unknown vector attribute %q", a)
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 { return rad * 180 / math.Pi }

// Radians converts degrees to radians.
func Radians(deg float64) float64 { return deg * math.Pi / 180 }

func nearZero(f float64) bool { return math.Abs(f) < 1e-12 }
