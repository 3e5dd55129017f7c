// Package annotation implements the line annotation model: a parameter
// set edited by the host and a render contract that turns it into a
// screen-space segment.
//
// Setters never compute anything. They write pending parameters and mark
// the line dirty; the pending set is committed as a whole at the start of
// the next Render. A Line is not safe for concurrent use.
package annotation

import (
	"errors"
	"fmt"

	"lineplot/pkg/axis"
	"lineplot/pkg/geometry"
	"lineplot/pkg/graphics"
)

// ErrHidden is the skip reason of a line that is not visible.
var ErrHidden = errors.New("annotation hidden")

// Line is a line annotation.
type Line struct {
	pending Params
	active  Params
	dirty   bool

	computed bool
	key      renderKey
	segment  ScreenSegment
	drawn    bool
	lastErr  error
}

type renderKey struct {
	x, y axis.Range
	m    graphics.Matrix
	area graphics.Rect
}

// NewLine creates a line with DefaultParams adjusted by opts.
func NewLine(opts ...Option) *Line {
	p := DefaultParams()
	for _, opt := range opts {
		opt(&p)
	}
	return &Line{
		pending: p,
		active:  p.clone(),
	}
}

// Params returns a copy of the pending parameters.
func (l *Line) Params() Params {
	return l.pending.clone()
}

// Synchronize replaces all pending parameters at once.
func (l *Line) Synchronize(p Params) {
	l.pending = p.clone()
	l.dirty = true
}

// Update edits the pending parameters in one batch.
func (l *Line) Update(fn func(*Params)) {
	fn(&l.pending)
	l.dirty = true
}

// Dirty reports whether there are parameter changes not yet rendered.
func (l *Line) Dirty() bool {
	return l.dirty
}

// Name returns the line's identifier.
func (l *Line) Name() string { return l.pending.Name }

// SetName sets the line's identifier.
func (l *Line) SetName(name string) { l.Update(func(p *Params) { p.Name = name }) }

// Type returns the definition kind.
func (l *Line) Type() geometry.Kind { return l.pending.Line.Kind }

// SetType changes the definition kind, keeping the other line fields.
func (l *Line) SetType(k geometry.Kind) { l.Update(func(p *Params) { p.Line.Kind = k }) }

// Slope returns the slope used by LinearEquation.
func (l *Line) Slope() float64 { return l.pending.Line.Slope }

// SetSlope sets the slope used by LinearEquation.
func (l *Line) SetSlope(v float64) { l.Update(func(p *Params) { p.Line.Slope = v }) }

// Intercept returns the intercept used by LinearEquation.
func (l *Line) Intercept() float64 { return l.pending.Line.Intercept }

// SetIntercept sets the intercept used by LinearEquation.
func (l *Line) SetIntercept(v float64) { l.Update(func(p *Params) { p.Line.Intercept = v }) }

// X returns the position of a Vertical line.
func (l *Line) X() float64 { return l.pending.Line.X }

// SetX sets the position of a Vertical line.
func (l *Line) SetX(v float64) { l.Update(func(p *Params) { p.Line.X = v }) }

// Y returns the position of a Horizontal line.
func (l *Line) Y() float64 { return l.pending.Line.Y }

// SetY sets the position of a Horizontal line.
func (l *Line) SetY(v float64) { l.Update(func(p *Params) { p.Line.Y = v }) }

// Points returns the points of a TwoPoint line.
func (l *Line) Points() (graphics.Point, graphics.Point) {
	return l.pending.Line.Points[0], l.pending.Line.Points[1]
}

// SetPoints sets the points of a TwoPoint line.
func (l *Line) SetPoints(p1, p2 graphics.Point) {
	l.Update(func(p *Params) { p.Line.Points = [2]graphics.Point{p1, p2} })
}

// MinimumX returns the lower x clamp.
func (l *Line) MinimumX() geometry.Bound { return l.pending.Clamps.MinimumX }

// SetMinimumX sets the lower x clamp.
func (l *Line) SetMinimumX(v float64) { l.setClamp(&l.pending.Clamps.MinimumX, geometry.At(v)) }

// ClearMinimumX removes the lower x clamp.
func (l *Line) ClearMinimumX() { l.setClamp(&l.pending.Clamps.MinimumX, geometry.Unbounded()) }

// MaximumX returns the upper x clamp.
func (l *Line) MaximumX() geometry.Bound { return l.pending.Clamps.MaximumX }

// SetMaximumX sets the upper x clamp.
func (l *Line) SetMaximumX(v float64) { l.setClamp(&l.pending.Clamps.MaximumX, geometry.At(v)) }

// ClearMaximumX removes the upper x clamp.
func (l *Line) ClearMaximumX() { l.setClamp(&l.pending.Clamps.MaximumX, geometry.Unbounded()) }

// MinimumY returns the lower y clamp.
func (l *Line) MinimumY() geometry.Bound { return l.pending.Clamps.MinimumY }

// SetMinimumY sets the lower y clamp.
func (l *Line) SetMinimumY(v float64) { l.setClamp(&l.pending.Clamps.MinimumY, geometry.At(v)) }

// ClearMinimumY removes the lower y clamp.
func (l *Line) ClearMinimumY() { l.setClamp(&l.pending.Clamps.MinimumY, geometry.Unbounded()) }

// MaximumY returns the upper y clamp.
func (l *Line) MaximumY() geometry.Bound { return l.pending.Clamps.MaximumY }

// SetMaximumY sets the upper y clamp.
func (l *Line) SetMaximumY(v float64) { l.setClamp(&l.pending.Clamps.MaximumY, geometry.At(v)) }

// ClearMaximumY removes the upper y clamp.
func (l *Line) ClearMaximumY() { l.setClamp(&l.pending.Clamps.MaximumY, geometry.Unbounded()) }

func (l *Line) setClamp(dst *geometry.Bound, b geometry.Bound) {
	*dst = b
	l.dirty = true
}

// Stroke returns the stroke style.
func (l *Line) Stroke() graphics.LineStyle { return l.pending.Stroke.Clone() }

// SetStroke sets the stroke style.
func (l *Line) SetStroke(s graphics.LineStyle) {
	s = s.Clone()
	l.Update(func(p *Params) { p.Stroke = s })
}

// Label returns the label text.
func (l *Line) Label() string { return l.pending.Label.Text }

// SetLabel sets the label text.
func (l *Line) SetLabel(text string) { l.Update(func(p *Params) { p.Label.Text = text }) }

// LabelPlacement returns where the label is anchored.
func (l *Line) LabelPlacement() Placement { return l.pending.Label.Placement }

// SetLabelPlacement sets where the label is anchored.
func (l *Line) SetLabelPlacement(pl Placement) {
	l.Update(func(p *Params) { p.Label.Placement = pl })
}

// Layer returns the drawing layer.
func (l *Line) Layer() Layer { return l.pending.Layer }

// SetLayer sets the drawing layer.
func (l *Line) SetLayer(layer Layer) { l.Update(func(p *Params) { p.Layer = layer }) }

// Visible reports whether the line is drawn at all.
func (l *Line) Visible() bool { return !l.pending.Hidden }

// SetVisible shows or hides the line.
func (l *Line) SetVisible(v bool) { l.Update(func(p *Params) { p.Hidden = !v }) }

// Render resolves the line for the given axis ranges and transform.
// It returns false when there is nothing to draw; LastError then tells
// why. Calling Render again with the same inputs and no parameter change
// returns the identical segment.
func (l *Line) Render(x, y axis.Range, t axis.Transform) (ScreenSegment, bool) {
	if l.dirty {
		l.active = l.pending.clone()
		l.dirty = false
		l.computed = false
	}

	key := renderKey{x: x, y: y, m: t.Matrix(), area: t.Area()}
	if l.computed && key == l.key {
		return l.segment.clone(), l.drawn
	}

	seg, err := l.compute(x, y, t)
	l.key = key
	l.computed = true
	l.lastErr = err
	l.drawn = err == nil
	if err != nil {
		seg = ScreenSegment{}
	}
	l.segment = seg
	return l.segment.clone(), l.drawn
}

func (l *Line) compute(x, y axis.Range, t axis.Transform) (ScreenSegment, error) {
	p := l.active
	if p.Hidden {
		return ScreenSegment{}, ErrHidden
	}
	if t.IsZero() {
		return ScreenSegment{}, axis.ErrUnavailable
	}

	data, err := geometry.Resolve(p.Line, p.Clamps, x, y)
	if err != nil {
		return ScreenSegment{}, err
	}

	start, end := t.ToScreen(data.Start), t.ToScreen(data.End)
	if !start.IsFinite() || !end.IsFinite() {
		return ScreenSegment{}, fmt.Errorf("%w: screen mapping overflowed", geometry.ErrInvalidParameter)
	}

	seg := ScreenSegment{
		Start: start,
		End:   end,
		Data:  data,
		Style: p.Stroke.Clone(),
		Layer: p.Layer,
		Name:  p.Name,
	}
	if p.Label.Visible() {
		if !finite(p.Label.Offset) || !finite(p.Label.Position) {
			return ScreenSegment{}, fmt.Errorf("%w: label offset %g, position %g",
				geometry.ErrInvalidParameter, p.Label.Offset, p.Label.Position)
		}
		label := p.Label
		seg.Label = &label
	}
	return seg, nil
}

// LastError returns why the last Render drew nothing, or nil.
func (l *Line) LastError() error {
	return l.lastErr
}

// Rendered returns the segment of the last Render, if one was drawn.
func (l *Line) Rendered() (ScreenSegment, bool) {
	return l.segment.clone(), l.computed && l.drawn
}

// HitTest reports whether p lies within tolerance pixels of the currently
// rendered segment. It is false when nothing is rendered.
func (l *Line) HitTest(p graphics.Point, tolerance float64) bool {
	seg, ok := l.Rendered()
	if !ok {
		return false
	}
	if tolerance < 0 {
		tolerance = 0
	}
	return DistanceToSegment(p, seg.Start, seg.End) <= tolerance
}
