// Package render turns registered line annotations into drawing
// primitives on an abstract Surface.
package render

import (
	"io"
	"log/slog"

	"lineplot/pkg/annotation"
	"lineplot/pkg/axis"
	"lineplot/pkg/graphics"
)

// Stats summarises one render pass.
type Stats struct {
	Drawn   int
	Skipped int
}

// Pipeline is the ordered set of annotations of a chart.
// Annotations are drawn below-series layer first, then above-series,
// each layer in registration order.
type Pipeline struct {
	lines  []*annotation.Line
	logger *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger used to report skipped annotations.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewPipeline creates an empty pipeline.
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Add registers annotations at the end of the draw order. Adding a line
// that is already registered is a no-op.
func (p *Pipeline) Add(lines ...*annotation.Line) {
	for _, l := range lines {
		if l == nil || p.index(l) >= 0 {
			continue
		}
		p.lines = append(p.lines, l)
	}
}

// Remove unregisters a line, keeping the order of the others.
func (p *Pipeline) Remove(l *annotation.Line) bool {
	i := p.index(l)
	if i < 0 {
		return false
	}
	p.lines = append(p.lines[:i], p.lines[i+1:]...)
	return true
}

func (p *Pipeline) index(l *annotation.Line) int {
	for i, cur := range p.lines {
		if cur == l {
			return i
		}
	}
	return -1
}

// Annotations returns the registered lines in registration order.
func (p *Pipeline) Annotations() []*annotation.Line {
	out := make([]*annotation.Line, len(p.lines))
	copy(out, p.lines)
	return out
}

// Len returns the number of registered lines.
func (p *Pipeline) Len() int {
	return len(p.lines)
}

// Render draws every annotation onto s.
func (p *Pipeline) Render(s Surface, x, y axis.Range, t axis.Transform) Stats {
	f := p.Resolve(x, y, t)
	f.Draw(s, annotation.BelowSeries)
	f.Draw(s, annotation.AboveSeries)
	return f.Stats
}

// RenderLayer draws only the annotations of one layer. Skips are logged
// for that layer only, so calling it once per layer reports each skip
// once.
func (p *Pipeline) RenderLayer(s Surface, layer annotation.Layer, x, y axis.Range, t axis.Transform) Stats {
	f := p.resolve(x, y, t, func(l *annotation.Line) bool { return l.Layer() == layer })
	drawn := f.Draw(s, layer)
	return Stats{Drawn: drawn}
}

// Frame is the outcome of one resolve pass. Its layers can be drawn
// separately, with series painted in between.
type Frame struct {
	segs  []resolved
	Stats Stats
}

type resolved struct {
	annotation.ScreenSegment
	ok bool
}

// Resolve renders every annotation for the given axes and logs the
// skipped ones. A zero Transform marks every annotation as not rendered.
func (p *Pipeline) Resolve(x, y axis.Range, t axis.Transform) *Frame {
	return p.resolve(x, y, t, nil)
}

func (p *Pipeline) resolve(x, y axis.Range, t axis.Transform, logged func(*annotation.Line) bool) *Frame {
	f := &Frame{segs: make([]resolved, len(p.lines))}
	for i, l := range p.lines {
		seg, ok := l.Render(x, y, t)
		f.segs[i] = resolved{seg, ok}
		if ok {
			f.Stats.Drawn++
			continue
		}
		f.Stats.Skipped++
		if logged == nil || logged(l) {
			p.logger.Debug("annotation skipped", "index", i, "name", l.Name(), "reason", l.LastError())
		}
	}
	return f
}

// Draw emits the primitives of one layer and returns how many
// annotations it drew.
func (f *Frame) Draw(s Surface, layer annotation.Layer) int {
	drawn := 0
	for _, seg := range f.segs {
		if !seg.ok || seg.Layer != layer {
			continue
		}
		drawn++
		s.DrawLine(seg.Start, seg.End, seg.Style)

		layout, ok := LayoutLabel(seg.ScreenSegment)
		if !ok {
			continue
		}
		style := seg.Label.Font
		if style.Color.IsTransparent() {
			style.Color = seg.Style.Color
		}
		style.Rotation = layout.Rotation
		s.DrawText(layout.Anchor, seg.Label.Text, layout.Align, style)
	}
	return drawn
}

// HitTest returns the topmost annotation whose rendered segment lies
// within tolerance pixels of pt.
func (p *Pipeline) HitTest(pt graphics.Point, tolerance float64) (*annotation.Line, bool) {
	for _, layer := range []annotation.Layer{annotation.AboveSeries, annotation.BelowSeries} {
		for i := len(p.lines) - 1; i >= 0; i-- {
			l := p.lines[i]
			seg, ok := l.Rendered()
			if !ok || seg.Layer != layer {
				continue
			}
			if l.HitTest(pt, tolerance) {
				return l, true
			}
		}
	}
	return nil, false
}
