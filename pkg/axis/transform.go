package axis

import (
	"lineplot/pkg/graphics"
)

// Transform converts between data space and screen space for one plot
// area. It is a value: building it captures the axis ranges of that
// moment, later zoom or pan edits need a new Transform.
type Transform struct {
	area   graphics.Rect
	toScr  graphics.Matrix
	toData graphics.Matrix
	xRange Range
	yRange Range
}

// NewTransform builds the transform for a plot area given the horizontal
// axis x and the vertical axis y.
func NewTransform(area graphics.Rect, x, y *Axis) (Transform, error) {
	if x == nil || y == nil || area.IsEmpty() {
		return Transform{}, ErrUnavailable
	}
	xr, yr := x.Range(), y.Range()
	if !xr.Valid() || !yr.Valid() {
		return Transform{}, ErrUnavailable
	}

	sx, ox := axisTerms(xr, area.X, area.Right(), x.Reversed)
	// Screen Y grows downward, so data minimum sits at the bottom edge.
	sy, oy := axisTerms(yr, area.Bottom(), area.Y, y.Reversed)

	m := graphics.Matrix{sx, 0, 0, sy, ox, oy}
	inv, ok := m.Inverse()
	if !ok {
		return Transform{}, ErrUnavailable
	}

	return Transform{
		area:   area,
		toScr:  m,
		toData: inv,
		xRange: xr,
		yRange: yr,
	}, nil
}

// axisTerms returns scale and offset mapping [r.Min, r.Max] onto
// [from, to] (or [to, from] when reversed).
func axisTerms(r Range, from, to float64, reversed bool) (scale, offset float64) {
	if reversed {
		from, to = to, from
	}
	scale = (to - from) / r.Span()
	offset = from - r.Min*scale
	return scale, offset
}

// ToScreen maps a data point to screen space.
func (t Transform) ToScreen(p graphics.Point) graphics.Point {
	return t.toScr.TransformPoint(p)
}

// ToData maps a screen point to data space.
func (t Transform) ToData(p graphics.Point) graphics.Point {
	return t.toData.TransformPoint(p)
}

// Area returns the plot area in screen space.
func (t Transform) Area() graphics.Rect {
	return t.area
}

// Ranges returns the axis ranges the transform was built from.
func (t Transform) Ranges() (x, y Range) {
	return t.xRange, t.yRange
}

// Matrix returns the data-to-screen matrix.
func (t Transform) Matrix() graphics.Matrix {
	return t.toScr
}

// IsZero reports whether t is the zero Transform (never built).
func (t Transform) IsZero() bool {
	return t.toScr == graphics.Matrix{}
}

// PixelsPerUnit returns the absolute screen length of one data unit along
// each axis.
func (t Transform) PixelsPerUnit() (x, y float64) {
	x, y = t.toScr[0], t.toScr[3]
	if x < 0 {
		x = -x
	}
	if y < 0 {
		y = -y
	}
	return x, y
}
