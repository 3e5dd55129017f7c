// Package geometry resolves line definitions into data-space segments
// clipped to a rectangle built from the axis ranges and optional clamps.
package geometry

import (
	"errors"
	"fmt"
	"math"

	"lineplot/pkg/graphics"
)

// Reasons a definition resolves to nothing. Neither is fatal: the line is
// simply not drawn.
var (
	ErrDegenerate       = errors.New("line does not cross the clamp rectangle")
	ErrInvalidParameter = errors.New("invalid line parameter")
)

// Kind selects how a line is defined.
type Kind int

const (
	LinearEquation Kind = iota
	TwoPoint
	Horizontal
	Vertical
)

var kindNames = [...]string{
	LinearEquation: "linear",
	TwoPoint:       "twopoint",
	Horizontal:     "horizontal",
	Vertical:       "vertical",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Definition describes an infinite line. Which fields apply depends on
// Kind: Slope and Intercept for LinearEquation, Points for TwoPoint, Y for
// Horizontal and X for Vertical.
type Definition struct {
	Kind      Kind
	Slope     float64
	Intercept float64
	X         float64
	Y         float64
	Points    [2]graphics.Point
}

// Linear returns y = slope*x + intercept.
func Linear(slope, intercept float64) Definition {
	return Definition{Kind: LinearEquation, Slope: slope, Intercept: intercept}
}

// ThroughPoint returns the line with the given slope passing through (x, y).
func ThroughPoint(x, y, slope float64) Definition {
	return Linear(slope, y-slope*x)
}

// Through returns the line through two points.
func Through(p1, p2 graphics.Point) Definition {
	return Definition{Kind: TwoPoint, Points: [2]graphics.Point{p1, p2}}
}

// HorizontalAt returns the horizontal line y = v.
func HorizontalAt(v float64) Definition {
	return Definition{Kind: Horizontal, Y: v}
}

// VerticalAt returns the vertical line x = v.
func VerticalAt(v float64) Definition {
	return Definition{Kind: Vertical, X: v}
}

// Normalize reduces a definition to LinearEquation, Horizontal or
// Vertical. A LinearEquation with zero slope becomes Horizontal and a
// TwoPoint definition is converted according to its points.
func (d Definition) Normalize() (Definition, error) {
	switch d.Kind {
	case LinearEquation:
		if !finite(d.Slope) || !finite(d.Intercept) {
			return Definition{}, fmt.Errorf("%w: slope %g, intercept %g", ErrInvalidParameter, d.Slope, d.Intercept)
		}
		if d.Slope == 0 {
			return HorizontalAt(d.Intercept), nil
		}
		return d, nil

	case TwoPoint:
		p1, p2 := d.Points[0], d.Points[1]
		if !p1.IsFinite() || !p2.IsFinite() {
			return Definition{}, fmt.Errorf("%w: points %v, %v", ErrInvalidParameter, p1, p2)
		}
		dx, dy := p2.X-p1.X, p2.Y-p1.Y
		switch {
		case dx == 0 && dy == 0:
			return Definition{}, fmt.Errorf("%w: coincident points %v", ErrInvalidParameter, p1)
		case dx == 0:
			return VerticalAt(p1.X), nil
		}
		slope := dy / dx
		intercept := p1.Y - slope*p1.X
		if !finite(slope) || !finite(intercept) {
			return Definition{}, fmt.Errorf("%w: points %v, %v", ErrInvalidParameter, p1, p2)
		}
		return Linear(slope, intercept).Normalize()

	case Horizontal:
		if !finite(d.Y) {
			return Definition{}, fmt.Errorf("%w: y %g", ErrInvalidParameter, d.Y)
		}
		return HorizontalAt(d.Y), nil

	case Vertical:
		if !finite(d.X) {
			return Definition{}, fmt.Errorf("%w: x %g", ErrInvalidParameter, d.X)
		}
		return VerticalAt(d.X), nil
	}
	return Definition{}, fmt.Errorf("%w: kind %v", ErrInvalidParameter, d.Kind)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
