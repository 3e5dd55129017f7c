package geometry

import (
	"math"

	"lineplot/pkg/axis"
	"lineplot/pkg/graphics"
)

// Bound is an optional clamp value. The zero value is unset, which means
// "unbounded": the axis range applies.
type Bound struct {
	value float64
	set   bool
}

// At returns a Bound set to v.
func At(v float64) Bound {
	return Bound{value: v, set: true}
}

// Unbounded returns an unset Bound.
func Unbounded() Bound {
	return Bound{}
}

// Get returns the value and whether it is set.
func (b Bound) Get() (float64, bool) {
	return b.value, b.set
}

// IsSet reports whether the bound carries a value.
func (b Bound) IsSet() bool {
	return b.set
}

// Or returns the bound's value, or fallback when unset.
func (b Bound) Or(fallback float64) float64 {
	if b.set {
		return b.value
	}
	return fallback
}

// Clamps restrict where a line may be drawn, in data units.
type Clamps struct {
	MinimumX, MaximumX Bound
	MinimumY, MaximumY Bound
}

func (c Clamps) finite() bool {
	for _, b := range []Bound{c.MinimumX, c.MaximumX, c.MinimumY, c.MaximumY} {
		if b.set && !finite(b.value) {
			return false
		}
	}
	return true
}

// Bounds is an axis-aligned rectangle in data space.
type Bounds struct {
	XMin, XMax float64
	YMin, YMax float64
}

// Empty reports whether the rectangle has no area. Degenerate rectangles
// (zero width or height) count as empty.
func (b Bounds) Empty() bool {
	return !(b.XMax > b.XMin) || !(b.YMax > b.YMin)
}

// Contains reports whether p lies inside b, allowing tol slack on every
// edge.
func (b Bounds) Contains(p graphics.Point, tol float64) bool {
	return p.X >= b.XMin-tol && p.X <= b.XMax+tol &&
		p.Y >= b.YMin-tol && p.Y <= b.YMax+tol
}

// Rect intersects the axis ranges with the clamps. ok is false when the
// inputs are not finite or the intersection is empty.
func (c Clamps) Rect(x, y axis.Range) (Bounds, bool) {
	if !c.finite() || !x.Valid() || !y.Valid() {
		return Bounds{}, false
	}
	b := Bounds{
		XMin: math.Max(x.Min, c.MinimumX.Or(x.Min)),
		XMax: math.Min(x.Max, c.MaximumX.Or(x.Max)),
		YMin: math.Max(y.Min, c.MinimumY.Or(y.Min)),
		YMax: math.Min(y.Max, c.MaximumY.Or(y.Max)),
	}
	if b.Empty() {
		return Bounds{}, false
	}
	return b, true
}
