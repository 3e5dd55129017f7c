// Package path builds, dashes and flattens graphics paths and feeds them
// to the vector rasterizer.
package path

import (
	"lineplot/pkg/graphics"

	"golang.org/x/image/vector"
)

// ToVector converts a graphics.Path to a golang.org/x/image/vector path.
func ToVector(p *graphics.Path, rasterizer *vector.Rasterizer) {
	for _, seg := range p.Segments {
		switch seg.Op {
		case graphics.PathOpMoveTo:
			if len(seg.Points) >= 1 {
				rasterizer.MoveTo(
					float32(seg.Points[0].X),
					float32(seg.Points[0].Y),
				)
			}
		case graphics.PathOpLineTo:
			if len(seg.Points) >= 1 {
				rasterizer.LineTo(
					float32(seg.Points[0].X),
					float32(seg.Points[0].Y),
				)
			}
		case graphics.PathOpCurveTo:
			if len(seg.Points) >= 3 {
				rasterizer.CubeTo(
					float32(seg.Points[0].X), float32(seg.Points[0].Y),
					float32(seg.Points[1].X), float32(seg.Points[1].Y),
					float32(seg.Points[2].X), float32(seg.Points[2].Y),
				)
			}
		case graphics.PathOpClose:
			rasterizer.ClosePath()
		}
	}
}

// Builder provides a fluent interface for building paths.
type Builder struct {
	path *graphics.Path
}

// NewBuilder creates a new path builder.
func NewBuilder() *Builder {
	return &Builder{
		path: graphics.NewPath(),
	}
}

// MoveTo starts a new subpath.
func (b *Builder) MoveTo(x, y float64) *Builder {
	b.path.MoveTo(x, y)
	return b
}

// LineTo draws a line to the given point.
func (b *Builder) LineTo(x, y float64) *Builder {
	b.path.LineTo(x, y)
	return b
}

// CurveTo draws a cubic Bezier curve.
func (b *Builder) CurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64) *Builder {
	b.path.CurveTo(cp1x, cp1y, cp2x, cp2y, x, y)
	return b
}

// Close closes the current subpath.
func (b *Builder) Close() *Builder {
	b.path.Close()
	return b
}

// Rect adds a rectangle to the path.
func (b *Builder) Rect(x, y, w, h float64) *Builder {
	b.path.Rect(x, y, w, h)
	return b
}

// Line adds an open two-point subpath.
func (b *Builder) Line(p1, p2 graphics.Point) *Builder {
	b.path.MoveTo(p1.X, p1.Y)
	b.path.LineTo(p2.X, p2.Y)
	return b
}

// Build returns the constructed path.
func (b *Builder) Build() *graphics.Path {
	return b.path
}
