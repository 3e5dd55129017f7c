package geometry

import (
	"fmt"
	"math"

	"lineplot/pkg/axis"
	"lineplot/pkg/graphics"
)

// relTol is the relative slack used when deciding whether an intersection
// computed in floating point lies on the rectangle.
const relTol = 1e-9

// Segment is a resolved line piece in data space. Start has the smaller x
// (the smaller y for vertical lines).
type Segment struct {
	Start, End graphics.Point
}

// Midpoint returns the point halfway between Start and End.
func (s Segment) Midpoint() graphics.Point {
	return s.Start.Lerp(s.End, 0.5)
}

// Resolve clips the line d to the intersection of the axis ranges and the
// clamps. On success both endpoints lie inside that rectangle. The error
// explains why nothing should be drawn: ErrInvalidParameter,
// ErrDegenerate or axis.ErrUnavailable.
func Resolve(d Definition, c Clamps, x, y axis.Range) (Segment, error) {
	if err := checkRange(x); err != nil {
		return Segment{}, fmt.Errorf("x axis: %w", err)
	}
	if err := checkRange(y); err != nil {
		return Segment{}, fmt.Errorf("y axis: %w", err)
	}
	if !c.finite() {
		return Segment{}, fmt.Errorf("%w: clamp is not finite", ErrInvalidParameter)
	}

	line, err := d.Normalize()
	if err != nil {
		return Segment{}, err
	}

	rect, ok := c.Rect(x, y)
	if !ok {
		return Segment{}, fmt.Errorf("%w: clamps leave no area", ErrDegenerate)
	}

	switch line.Kind {
	case Horizontal:
		if line.Y < rect.YMin || line.Y > rect.YMax {
			return Segment{}, fmt.Errorf("%w: y=%g outside [%g, %g]", ErrDegenerate, line.Y, rect.YMin, rect.YMax)
		}
		return Segment{
			Start: graphics.Pt(rect.XMin, line.Y),
			End:   graphics.Pt(rect.XMax, line.Y),
		}, nil

	case Vertical:
		if line.X < rect.XMin || line.X > rect.XMax {
			return Segment{}, fmt.Errorf("%w: x=%g outside [%g, %g]", ErrDegenerate, line.X, rect.XMin, rect.XMax)
		}
		return Segment{
			Start: graphics.Pt(line.X, rect.YMin),
			End:   graphics.Pt(line.X, rect.YMax),
		}, nil
	}

	return clipLinear(line.Slope, line.Intercept, rect)
}

func checkRange(r axis.Range) error {
	switch {
	case r.Valid():
		return nil
	case finite(r.Min) && r.Min == r.Max:
		return fmt.Errorf("%w: zero-length range at %g", ErrDegenerate, r.Min)
	}
	return axis.ErrUnavailable
}

// clipLinear intersects y = m*x + b (m != 0) with the rectangle edges and
// keeps the two extreme hits along the line direction.
func clipLinear(m, b float64, r Bounds) (Segment, error) {
	tolX := relTol * math.Max(r.XMax-r.XMin, math.Max(math.Abs(r.XMin), math.Abs(r.XMax)))
	tolY := relTol * math.Max(r.YMax-r.YMin, math.Max(math.Abs(r.YMin), math.Abs(r.YMax)))

	candidates := [4]graphics.Point{
		{X: r.XMin, Y: m*r.XMin + b},
		{X: r.XMax, Y: m*r.XMax + b},
		{X: (r.YMin - b) / m, Y: r.YMin},
		{X: (r.YMax - b) / m, Y: r.YMax},
	}

	var (
		lo, hi     graphics.Point
		loP, hiP   float64
		found      int
		dirX, dirY = 1.0, m
	)
	for _, p := range candidates {
		if !p.IsFinite() {
			continue
		}
		if p.X < r.XMin-tolX || p.X > r.XMax+tolX || p.Y < r.YMin-tolY || p.Y > r.YMax+tolY {
			continue
		}
		p = graphics.Pt(clampTo(p.X, r.XMin, r.XMax), clampTo(p.Y, r.YMin, r.YMax))

		proj := p.X*dirX + p.Y*dirY
		if found == 0 || proj < loP {
			lo, loP = p, proj
		}
		if found == 0 || proj > hiP {
			hi, hiP = p, proj
		}
		found++
	}

	if found < 2 || lo == hi {
		return Segment{}, fmt.Errorf("%w: y=%g*x%+g misses [%g, %g]x[%g, %g]",
			ErrDegenerate, m, b, r.XMin, r.XMax, r.YMin, r.YMax)
	}
	return Segment{Start: lo, End: hi}, nil
}

func clampTo(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
