package graphics

import (
	"math"
)

// PathOp represents a path operation type.
type PathOp int

const (
	PathOpMoveTo PathOp = iota
	PathOpLineTo
	PathOpCurveTo // Cubic bezier
	PathOpClose
)

// PathSegment represents a single segment in a path.
type PathSegment struct {
	Op     PathOp
	Points []Point
}

// Path is a sequence of connected lines and curves, possibly made of
// several subpaths.
type Path struct {
	Segments []PathSegment
	current  Point
	start    Point // Start of current subpath
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{}
}

// MoveTo starts a new subpath at the given point.
func (p *Path) MoveTo(x, y float64) {
	pt := Point{x, y}
	p.Segments = append(p.Segments, PathSegment{
		Op:     PathOpMoveTo,
		Points: []Point{pt},
	})
	p.current = pt
	p.start = pt
}

// LineTo draws a line from the current point to the given point.
func (p *Path) LineTo(x, y float64) {
	pt := Point{x, y}
	p.Segments = append(p.Segments, PathSegment{
		Op:     PathOpLineTo,
		Points: []Point{pt},
	})
	p.current = pt
}

// CurveTo draws a cubic Bezier curve from the current point.
func (p *Path) CurveTo(cp1x, cp1y, cp2x, cp2y, endX, endY float64) {
	p.Segments = append(p.Segments, PathSegment{
		Op: PathOpCurveTo,
		Points: []Point{
			{cp1x, cp1y},
			{cp2x, cp2y},
			{endX, endY},
		},
	})
	p.current = Point{endX, endY}
}

// QuadTo draws a quadratic Bezier curve, stored as the equivalent cubic.
func (p *Path) QuadTo(cpx, cpy, endX, endY float64) {
	cur := p.current
	p.CurveTo(
		cur.X+2.0/3.0*(cpx-cur.X), cur.Y+2.0/3.0*(cpy-cur.Y),
		endX+2.0/3.0*(cpx-endX), endY+2.0/3.0*(cpy-endY),
		endX, endY,
	)
}

// Close closes the current subpath with a line back to the start.
func (p *Path) Close() {
	p.Segments = append(p.Segments, PathSegment{
		Op: PathOpClose,
	})
	p.current = p.start
}

// Rect adds a rectangle to the path.
func (p *Path) Rect(x, y, width, height float64) {
	p.MoveTo(x, y)
	p.LineTo(x+width, y)
	p.LineTo(x+width, y+height)
	p.LineTo(x, y+height)
	p.Close()
}

// Append copies all segments of other onto the end of p.
func (p *Path) Append(other *Path) {
	for _, seg := range other.Segments {
		pts := make([]Point, len(seg.Points))
		copy(pts, seg.Points)
		p.Segments = append(p.Segments, PathSegment{Op: seg.Op, Points: pts})
	}
	if len(other.Segments) > 0 {
		p.current = other.current
		p.start = other.start
	}
}

// Clear removes all segments from the path.
func (p *Path) Clear() {
	p.Segments = p.Segments[:0]
	p.current = Point{}
	p.start = Point{}
}

// IsEmpty returns true if the path has no segments.
func (p *Path) IsEmpty() bool {
	return len(p.Segments) == 0
}

// CurrentPoint returns the current point.
func (p *Path) CurrentPoint() Point {
	return p.current
}

// Bounds returns the bounding box of the path's points (control points
// included).
func (p *Path) Bounds() Rect {
	if len(p.Segments) == 0 {
		return Rect{}
	}

	minX := math.MaxFloat64
	minY := math.MaxFloat64
	maxX := -math.MaxFloat64
	maxY := -math.MaxFloat64

	for _, seg := range p.Segments {
		for _, pt := range seg.Points {
			minX = math.Min(minX, pt.X)
			minY = math.Min(minY, pt.Y)
			maxX = math.Max(maxX, pt.X)
			maxY = math.Max(maxY, pt.Y)
		}
	}

	if minX == math.MaxFloat64 {
		return Rect{}
	}

	return NewRect(minX, minY, maxX, maxY)
}

// Transform returns a copy of the path with m applied to every point.
func (p *Path) Transform(m Matrix) *Path {
	result := NewPath()
	for _, seg := range p.Segments {
		newSeg := PathSegment{
			Op:     seg.Op,
			Points: make([]Point, len(seg.Points)),
		}
		for i, pt := range seg.Points {
			newSeg.Points[i] = m.TransformPoint(pt)
		}
		result.Segments = append(result.Segments, newSeg)
	}
	if len(p.Segments) > 0 {
		result.current = m.TransformPoint(p.current)
		result.start = m.TransformPoint(p.start)
	}
	return result
}
