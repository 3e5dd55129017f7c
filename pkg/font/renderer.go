// Package font provides font loading and glyph rendering.
package font

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"lineplot/pkg/graphics"
)

// Built-in families.
const (
	Regular = "regular"
	Bold    = "bold"
	Mono    = "mono"
)

var families = map[string][]byte{
	Regular: goregular.TTF,
	Bold:    gobold.TTF,
	Mono:    gomono.TTF,
}

var (
	cacheMu sync.Mutex
	cache   = map[string]*sfnt.Font{}
)

// Load returns a renderer for one of the built-in families. An empty
// family selects Regular.
func Load(family string) (*Renderer, error) {
	if family == "" {
		family = Regular
	}
	cacheMu.Lock()
	defer cacheMu.Unlock()

	if f, ok := cache[family]; ok {
		return NewRenderer(f), nil
	}
	data, ok := families[family]
	if !ok {
		return nil, fmt.Errorf("unknown font family %q", family)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s font: %w", family, err)
	}
	cache[family] = f
	return NewRenderer(f), nil
}

// Renderer converts font glyphs to graphics paths. A Renderer is not safe
// for concurrent use; create one per goroutine.
type Renderer struct {
	font *sfnt.Font
	buf  sfnt.Buffer
	size float64
	ppem fixed.Int26_6
}

// NewRenderer creates a renderer at 12px.
func NewRenderer(f *sfnt.Font) *Renderer {
	r := &Renderer{font: f}
	r.SetSize(12)
	return r
}

// SetSize sets the font size in pixels per em. Non-positive sizes are
// ignored.
func (r *Renderer) SetSize(px float64) {
	if !(px > 0) {
		return
	}
	r.size = px
	r.ppem = fixed.Int26_6(px * 64)
}

// Size returns the font size in pixels.
func (r *Renderer) Size() float64 {
	return r.size
}

// GlyphToPath converts a glyph to a path with its origin on the baseline.
// Y grows downward.
func (r *Renderer) GlyphToPath(g sfnt.GlyphIndex) (*graphics.Path, error) {
	segs, err := r.font.LoadGlyph(&r.buf, g, r.ppem, nil)
	if err != nil {
		return nil, err
	}

	path := graphics.NewPath()
	open := false
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				path.Close()
			}
			p := toPoint(seg.Args[0])
			path.MoveTo(p.X, p.Y)
			open = true
		case sfnt.SegmentOpLineTo:
			p := toPoint(seg.Args[0])
			path.LineTo(p.X, p.Y)
		case sfnt.SegmentOpQuadTo:
			c, p := toPoint(seg.Args[0]), toPoint(seg.Args[1])
			path.QuadTo(c.X, c.Y, p.X, p.Y)
		case sfnt.SegmentOpCubeTo:
			c1, c2, p := toPoint(seg.Args[0]), toPoint(seg.Args[1]), toPoint(seg.Args[2])
			path.CurveTo(c1.X, c1.Y, c2.X, c2.Y, p.X, p.Y)
		}
	}
	if open {
		path.Close()
	}
	return path, nil
}

func toPoint(p fixed.Point26_6) graphics.Point {
	return graphics.Pt(float64(p.X)/64, float64(p.Y)/64)
}

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// RenderString renders s with its first glyph origin at (x, y), y being
// the baseline. Runes missing from the font advance like the notdef glyph.
func (r *Renderer) RenderString(s string, x, y float64) *graphics.Path {
	result := graphics.NewPath()
	pen := x
	prev, hasPrev := sfnt.GlyphIndex(0), false

	for _, ch := range s {
		g, err := r.font.GlyphIndex(&r.buf, ch)
		if err != nil {
			continue
		}
		if hasPrev {
			pen += r.kern(prev, g)
		}

		glyphPath, err := r.GlyphToPath(g)
		if err == nil && !glyphPath.IsEmpty() {
			result.Append(glyphPath.Transform(graphics.Translate(pen, y)))
		}

		pen += r.advance(g)
		prev, hasPrev = g, true
	}

	return result
}

// StringWidth returns the advance width of s in pixels, kerning included.
func (r *Renderer) StringWidth(s string) float64 {
	var width float64
	prev, hasPrev := sfnt.GlyphIndex(0), false

	for _, ch := range s {
		g, err := r.font.GlyphIndex(&r.buf, ch)
		if err != nil {
			continue
		}
		if hasPrev {
			width += r.kern(prev, g)
		}
		width += r.advance(g)
		prev, hasPrev = g, true
	}

	return width
}

func (r *Renderer) advance(g sfnt.GlyphIndex) float64 {
	adv, err := r.font.GlyphAdvance(&r.buf, g, r.ppem, font.HintingNone)
	if err != nil {
		return 0
	}
	return toFloat(adv)
}

// kern returns zero for pairs without an entry, which sfnt reports as
// ErrNotFound, and for fonts without a kern table.
func (r *Renderer) kern(a, b sfnt.GlyphIndex) float64 {
	k, err := r.font.Kern(&r.buf, a, b, r.ppem, font.HintingNone)
	if err != nil {
		return 0
	}
	return toFloat(k)
}

// Metrics holds font metrics in pixels. Ascender and Descender are both
// positive distances from the baseline.
type Metrics struct {
	Ascender   float64
	Descender  float64
	LineHeight float64
	XHeight    float64
	CapHeight  float64
}

// Metrics returns the font metrics at the current size.
func (r *Renderer) Metrics() Metrics {
	m, err := r.font.Metrics(&r.buf, r.ppem, font.HintingNone)
	if err != nil {
		return Metrics{Ascender: r.size * 0.8, Descender: r.size * 0.2, LineHeight: r.size}
	}
	return Metrics{
		Ascender:   toFloat(m.Ascent),
		Descender:  toFloat(m.Descent),
		LineHeight: toFloat(m.Height),
		XHeight:    toFloat(m.XHeight),
		CapHeight:  toFloat(m.CapHeight),
	}
}

// Origin returns where the first glyph origin of s goes, relative to an
// anchor that sits on the given edges of the text box. The box spans
// ascender to descender vertically.
func (r *Renderer) Origin(s string, align graphics.TextAlign) graphics.Point {
	var dx float64
	switch align.H {
	case graphics.AlignCenter:
		dx = -r.StringWidth(s) / 2
	case graphics.AlignRight:
		dx = -r.StringWidth(s)
	}

	m := r.Metrics()
	var dy float64
	switch align.V {
	case graphics.AlignBottom:
		dy = -m.Descender
	case graphics.AlignMiddle:
		dy = (m.Ascender - m.Descender) / 2
	case graphics.AlignTop:
		dy = m.Ascender
	}
	return graphics.Pt(dx, dy)
}
