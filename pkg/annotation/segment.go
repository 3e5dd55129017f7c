package annotation

import (
	"math"

	"lineplot/pkg/geometry"
	"lineplot/pkg/graphics"
)

// ScreenSegment is the output of one render pass: a line in screen space
// with its stroke and optional label. It is recomputed on every
// parameter or axis change and never persisted.
type ScreenSegment struct {
	Start, End graphics.Point
	// Data holds the same endpoints in data space.
	Data  geometry.Segment
	Style graphics.LineStyle
	Label *Label
	Layer Layer
	Name  string
}

// clone returns a copy that shares no dash slice or label with s.
func (s ScreenSegment) clone() ScreenSegment {
	s.Style = s.Style.Clone()
	if s.Label != nil {
		label := *s.Label
		s.Label = &label
	}
	return s
}

// Length returns the screen length of the segment.
func (s ScreenSegment) Length() float64 {
	return s.Start.Distance(s.End)
}

// DistanceToSegment returns the distance from p to the closed segment
// a-b. The projection of p is clamped to the segment, so points beyond
// either end measure to that endpoint.
func DistanceToSegment(p, a, b graphics.Point) float64 {
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq == 0 {
		return p.Distance(a)
	}
	t := p.Sub(a).Dot(ab) / lenSq
	t = math.Max(0, math.Min(1, t))
	return p.Distance(a.Add(ab.Scale(t)))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
