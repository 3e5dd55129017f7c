// Package raster draws annotation primitives into RGBA images.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"lineplot/pkg/font"
	"lineplot/pkg/graphics"
	pathpkg "lineplot/pkg/path"

	"golang.org/x/image/vector"
)

// Canvas is an image-backed drawing surface. It implements the
// render.Surface interface.
type Canvas struct {
	img    *image.RGBA
	width  int
	height int

	background graphics.Color
	fonts      map[string]*font.Renderer
}

// NewCanvas creates a white canvas with the given dimensions.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{
		img:        image.NewRGBA(image.Rect(0, 0, width, height)),
		width:      width,
		height:     height,
		background: graphics.White(),
		fonts:      make(map[string]*font.Renderer),
	}
	c.Clear()
	return c
}

// Image returns the underlying RGBA image.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int {
	return c.height
}

// Clear fills the canvas with the background color.
func (c *Canvas) Clear() {
	draw.Draw(c.img, c.img.Bounds(), &image.Uniform{c.background}, image.Point{}, draw.Src)
}

// SetBackground sets the background color used by Clear.
func (c *Canvas) SetBackground(col graphics.Color) {
	c.background = col
}

// At returns the pixel at (x, y), or transparent outside the canvas.
func (c *Canvas) At(x, y int) color.NRGBA {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return color.NRGBA{}
	}
	return color.NRGBAModel.Convert(c.img.At(x, y)).(color.NRGBA)
}

// Fill fills a path with the given color using the non-zero rule.
func (c *Canvas) Fill(path *graphics.Path, col color.Color) {
	if path.IsEmpty() || c.width <= 0 || c.height <= 0 {
		return
	}
	// Off-canvas or non-finite outlines cover no pixel.
	b := path.Bounds()
	if !graphics.Pt(b.X, b.Y).IsFinite() || !graphics.Pt(b.Right(), b.Bottom()).IsFinite() {
		return
	}
	if !b.Intersects(graphics.Rect{Width: float64(c.width), Height: float64(c.height)}) {
		return
	}

	r := vector.NewRasterizer(c.width, c.height)
	pathpkg.ToVector(path, r)
	r.Draw(c.img, c.img.Bounds(), &image.Uniform{col}, image.Point{})
}

// Stroke draws the outline of every subpath of path with the given style.
// Dashes are laid out in multiples of the stroke thickness.
func (c *Canvas) Stroke(path *graphics.Path, style graphics.LineStyle) {
	if path.IsEmpty() || !style.IsVisible() {
		return
	}

	pieces := []*graphics.Path{pathpkg.Flatten(path)}
	if len(style.Dash) > 0 {
		pattern := make([]float64, len(style.Dash))
		for i, v := range style.Dash {
			pattern[i] = v * style.Thickness
		}
		pieces = pathpkg.Dash(pieces[0], pattern)
	}

	outline := graphics.NewPath()
	for _, piece := range pieces {
		outline.Append(strokeToPath(piece, style.Thickness, style.Cap))
	}
	c.Fill(outline, style.Color)
}

// DrawLine implements render.Surface.
func (c *Canvas) DrawLine(p1, p2 graphics.Point, style graphics.LineStyle) {
	c.Stroke(pathpkg.NewBuilder().Line(p1, p2).Build(), style)
}

// DrawText implements render.Surface. Text is rotated around pos.
func (c *Canvas) DrawText(pos graphics.Point, text string, align graphics.TextAlign, style graphics.TextStyle) {
	if text == "" || style.Color.IsTransparent() {
		return
	}
	r, err := c.font(style.Family)
	if err != nil {
		return
	}
	size := style.Size
	if !(size > 0) {
		size = graphics.DefaultTextStyle().Size
	}
	r.SetSize(size)

	origin := r.Origin(text, align)
	glyphs := r.RenderString(text, origin.X, origin.Y)

	m := graphics.RotateDeg(style.Rotation).Multiply(graphics.Translate(pos.X, pos.Y))
	c.Fill(glyphs.Transform(m), style.Color)
}

func (c *Canvas) font(family string) (*font.Renderer, error) {
	if r, ok := c.fonts[family]; ok {
		return r, nil
	}
	r, err := font.Load(family)
	if err != nil {
		return nil, err
	}
	c.fonts[family] = r
	return r, nil
}

// DrawRect fills r with fill, when not transparent, and strokes its
// border with stroke.
func (c *Canvas) DrawRect(r graphics.Rect, fill graphics.Color, stroke graphics.LineStyle) {
	path := pathpkg.NewBuilder().Rect(r.X, r.Y, r.Width, r.Height).Build()

	if !fill.IsTransparent() {
		c.Fill(path, fill)
	}
	c.Stroke(path, stroke)
}

type strokeSegment struct {
	start, end graphics.Point
}

// strokeToPath converts the polyline subpaths of path into fillable
// outlines, one closed outline per subpath.
func strokeToPath(path *graphics.Path, width float64, cap graphics.LineCap) *graphics.Path {
	result := graphics.NewPath()

	var (
		segments       []strokeSegment
		current, start graphics.Point
	)
	flush := func() {
		outlineSegments(result, segments, width/2, cap)
		segments = nil
	}

	for _, seg := range path.Segments {
		switch seg.Op {
		case graphics.PathOpMoveTo:
			flush()
			current = seg.Points[0]
			start = current
		case graphics.PathOpLineTo, graphics.PathOpCurveTo:
			end := seg.Points[len(seg.Points)-1]
			if end != current {
				segments = append(segments, strokeSegment{start: current, end: end})
			}
			current = end
		case graphics.PathOpClose:
			if current != start {
				segments = append(segments, strokeSegment{start: current, end: start})
			}
			current = start
		}
	}
	flush()
	return result
}

func outlineSegments(result *graphics.Path, segments []strokeSegment, halfWidth float64, cap graphics.LineCap) {
	if len(segments) == 0 {
		return
	}

	// Left side
	for i, seg := range segments {
		n := normal(seg).Scale(halfWidth)
		a, b := seg.start.Add(n), seg.end.Add(n)
		if i == 0 {
			result.MoveTo(a.X, a.Y)
		} else {
			result.LineTo(a.X, a.Y)
		}
		result.LineTo(b.X, b.Y)
	}

	last := segments[len(segments)-1]
	addCap(result, last.end, last, halfWidth, cap, false)

	// Right side (reverse)
	for i := len(segments) - 1; i >= 0; i-- {
		seg := segments[i]
		n := normal(seg).Scale(-halfWidth)
		a, b := seg.end.Add(n), seg.start.Add(n)
		result.LineTo(a.X, a.Y)
		result.LineTo(b.X, b.Y)
	}

	addCap(result, segments[0].start, segments[0], halfWidth, cap, true)
	result.Close()
}

func normal(seg strokeSegment) graphics.Point {
	d := seg.end.Sub(seg.start).Normalize()
	return graphics.Pt(-d.Y, d.X)
}

func addCap(path *graphics.Path, pt graphics.Point, seg strokeSegment, halfWidth float64, cap graphics.LineCap, isStart bool) {
	d := seg.end.Sub(seg.start).Normalize()
	n := graphics.Pt(-d.Y, d.X)
	if isStart {
		d = d.Scale(-1)
	} else {
		n = n.Scale(-1)
	}

	switch cap {
	case graphics.LineCapRound:
		// Half circle from the current side to the other one.
		for i := 0; i <= 8; i++ {
			angle := float64(i) * math.Pi / 8
			p := pt.Add(n.Scale(-halfWidth * math.Cos(angle))).Add(d.Scale(halfWidth * math.Sin(angle)))
			path.LineTo(p.X, p.Y)
		}
	case graphics.LineCapSquare:
		ext := d.Scale(halfWidth)
		p1 := pt.Add(ext).Add(n.Scale(-halfWidth))
		p2 := pt.Add(ext).Add(n.Scale(halfWidth))
		path.LineTo(p1.X, p1.Y)
		path.LineTo(p2.X, p2.Y)
	}
}
