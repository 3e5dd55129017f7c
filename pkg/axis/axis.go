// Package axis maps chart data coordinates to screen coordinates.
//
// An Axis owns the visible data range of one dimension and supports the
// zoom and pan edits a host performs on it. A Transform combines the two
// axes of a chart with the screen rectangle of the plot area.
package axis

import (
	"errors"
	"math"
)

// ErrUnavailable is returned when a transform cannot be built yet, e.g. an
// axis range has not been established or the plot area has no size.
var ErrUnavailable = errors.New("axis range unavailable")

// Range is the actual minimum and maximum of an axis in data units.
type Range struct {
	Min, Max float64
}

// Valid reports whether the range is finite and has positive span.
func (r Range) Valid() bool {
	return finite(r.Min) && finite(r.Max) && r.Max > r.Min
}

// Span returns Max - Min.
func (r Range) Span() float64 {
	return r.Max - r.Min
}

// Contains reports whether v lies within the closed range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Position tells which screen dimension an axis runs along.
type Position int

const (
	Horizontal Position = iota
	Vertical
)

func (p Position) String() string {
	if p == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Axis is the state of one chart axis.
type Axis struct {
	Position Position
	// Reversed flips the direction in which data values grow on screen.
	Reversed bool

	current  Range
	defaults Range
}

// New creates an axis showing r. The range is also remembered as the
// target of Reset.
func New(pos Position, r Range) *Axis {
	return &Axis{
		Position: pos,
		current:  r,
		defaults: r,
	}
}

// Range returns the currently visible data range.
func (a *Axis) Range() Range {
	return a.current
}

// SetRange replaces the visible range without touching the default.
func (a *Axis) SetRange(r Range) {
	a.current = r
}

// SetDefault replaces both the default and the visible range.
func (a *Axis) SetDefault(r Range) {
	a.defaults = r
	a.current = r
}

// Reset restores the default range.
func (a *Axis) Reset() {
	a.current = a.defaults
}

// Zoom scales the visible span around the data value at, which keeps its
// relative position. factor > 1 zooms in, factor < 1 zooms out.
// Non-positive or non-finite factors are ignored.
func (a *Axis) Zoom(factor, at float64) {
	if !(factor > 0) || !finite(factor) || !finite(at) || !a.current.Valid() {
		return
	}
	r := Range{
		Min: at - (at-a.current.Min)/factor,
		Max: at + (a.current.Max-at)/factor,
	}
	if r.Valid() {
		a.current = r
	}
}

// Pan shifts the visible range by delta data units.
func (a *Axis) Pan(delta float64) {
	if !finite(delta) || !a.current.Valid() {
		return
	}
	a.current = Range{a.current.Min + delta, a.current.Max + delta}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
