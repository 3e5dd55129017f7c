package path

import (
	"math"

	"lineplot/pkg/graphics"
)

// curveSteps is the number of chords used per cubic when flattening.
const curveSteps = 16

// A pattern shorter than minDashPeriod, or one that would cut a path into
// more than maxDashPeriods repetitions, is drawn solid.
const (
	minDashPeriod  = 0.1
	maxDashPeriods = 1 << 16
)

// Flatten returns a copy of p where every cubic is replaced by line
// chords. Subpaths and close operations are kept.
func Flatten(p *graphics.Path) *graphics.Path {
	out := graphics.NewPath()
	var cur graphics.Point
	for _, seg := range p.Segments {
		switch seg.Op {
		case graphics.PathOpMoveTo:
			cur = seg.Points[0]
			out.MoveTo(cur.X, cur.Y)
		case graphics.PathOpLineTo:
			cur = seg.Points[0]
			out.LineTo(cur.X, cur.Y)
		case graphics.PathOpCurveTo:
			c1, c2, end := seg.Points[0], seg.Points[1], seg.Points[2]
			for i := 1; i <= curveSteps; i++ {
				pt := cubicAt(cur, c1, c2, end, float64(i)/curveSteps)
				out.LineTo(pt.X, pt.Y)
			}
			cur = end
		case graphics.PathOpClose:
			out.Close()
			cur = out.CurrentPoint()
		}
	}
	return out
}

func cubicAt(p0, p1, p2, p3 graphics.Point, t float64) graphics.Point {
	u := 1 - t
	a := u * u * u
	b := 3 * u * u * t
	c := 3 * u * t * t
	d := t * t * t
	return graphics.Pt(
		a*p0.X+b*p1.X+c*p2.X+d*p3.X,
		a*p0.Y+b*p1.Y+c*p2.Y+d*p3.Y,
	)
}

// Dash splits p into the "on" pieces of pattern. Pattern lengths are in
// path units and alternate on, off, on... An odd-length pattern is
// repeated once so that on and off swap on the second pass. The dash
// phase restarts at every subpath. A nil, empty or all-zero pattern
// returns p unchanged as the only element, and so does a pattern too fine
// to see or one that would produce an unbounded number of dashes.
func Dash(p *graphics.Path, pattern []float64) []*graphics.Path {
	total := 0.0
	for _, v := range pattern {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return []*graphics.Path{p}
		}
		total += v
	}
	if !(total >= minDashPeriod) || math.IsInf(total, 0) {
		return []*graphics.Path{p}
	}

	polys := polylines(Flatten(p))
	length := 0.0
	for _, poly := range polys {
		for i := 1; i < len(poly); i++ {
			length += poly[i-1].Distance(poly[i])
		}
	}
	if !(length/total <= maxDashPeriods) {
		return []*graphics.Path{p}
	}

	if len(pattern)%2 == 1 {
		pattern = append(append([]float64(nil), pattern...), pattern...)
	}
	var out []*graphics.Path
	for _, poly := range polys {
		out = append(out, dashPolyline(poly, pattern)...)
	}
	return out
}

// polylines returns the vertex lists of each subpath, with closed
// subpaths ending on their start point.
func polylines(p *graphics.Path) [][]graphics.Point {
	var out [][]graphics.Point
	var cur []graphics.Point
	flush := func() {
		if len(cur) > 1 {
			out = append(out, cur)
		}
		cur = nil
	}
	for _, seg := range p.Segments {
		switch seg.Op {
		case graphics.PathOpMoveTo:
			flush()
			cur = []graphics.Point{seg.Points[0]}
		case graphics.PathOpLineTo:
			cur = append(cur, seg.Points[0])
		case graphics.PathOpClose:
			if len(cur) > 0 {
				start := cur[0]
				cur = append(cur, start)
				flush()
				cur = []graphics.Point{start}
			}
		}
	}
	flush()
	return out
}

func dashPolyline(pts []graphics.Point, pattern []float64) []*graphics.Path {
	var (
		out   []*graphics.Path
		piece *graphics.Path
		idx   int
		left  = pattern[0]
	)
	on := func() bool { return idx%2 == 0 }
	if on() && left > 0 {
		piece = graphics.NewPath()
		piece.MoveTo(pts[0].X, pts[0].Y)
	}

	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		segLen := a.Distance(b)
		pos := 0.0
		for segLen-pos > left {
			pos += left
			pt := a.Lerp(b, pos/segLen)
			if piece != nil {
				piece.LineTo(pt.X, pt.Y)
				out = append(out, piece)
				piece = nil
			}
			idx = (idx + 1) % len(pattern)
			left = pattern[idx]
			if on() && left > 0 {
				piece = graphics.NewPath()
				piece.MoveTo(pt.X, pt.Y)
			}
		}
		left -= segLen - pos
		if piece != nil {
			piece.LineTo(b.X, b.Y)
		}
	}
	if piece != nil && len(piece.Segments) > 1 {
		out = append(out, piece)
	}
	return out
}
