// Package api provides a clean public API for line annotations on a 2D
// chart. This is the main entry point for external consumers.
package api

import (
	"fmt"
	"image"
	"io"
	"log/slog"

	"lineplot/pkg/annotation"
	"lineplot/pkg/axis"
	"lineplot/pkg/graphics"
	"lineplot/pkg/raster"
	"lineplot/pkg/render"
)

// Chart owns two axes, a plot area and the annotations drawn over it.
// A Chart is not safe for concurrent use.
type Chart struct {
	opts     Options
	x, y     *axis.Axis
	pipeline *render.Pipeline
	logger   *slog.Logger

	// OnInvalidate is called whenever the chart needs a redraw.
	OnInvalidate func()
}

// NewChart creates a chart showing the data ranges x and y.
func NewChart(x, y axis.Range, opts ...Option) *Chart {
	o := NewOptions(opts...)
	return &Chart{
		opts:     o,
		x:        axis.New(axis.Horizontal, x),
		y:        axis.New(axis.Vertical, y),
		pipeline: render.NewPipeline(render.WithLogger(o.Logger)),
		logger:   o.Logger,
	}
}

// XAxis returns the horizontal axis.
func (c *Chart) XAxis() *axis.Axis {
	return c.x
}

// YAxis returns the vertical axis.
func (c *Chart) YAxis() *axis.Axis {
	return c.y
}

// Options returns a copy of the chart options.
func (c *Chart) Options() Options {
	return c.opts
}

// AddLine creates a line annotation and registers it on top of the
// existing ones.
func (c *Chart) AddLine(opts ...annotation.Option) *annotation.Line {
	l := annotation.NewLine(opts...)
	c.Add(l)
	return l
}

// Add registers existing annotations.
func (c *Chart) Add(lines ...*annotation.Line) {
	c.pipeline.Add(lines...)
	c.Invalidate()
}

// Remove unregisters an annotation.
func (c *Chart) Remove(l *annotation.Line) bool {
	if !c.pipeline.Remove(l) {
		return false
	}
	c.Invalidate()
	return true
}

// Lines returns the registered annotations in draw order.
func (c *Chart) Lines() []*annotation.Line {
	return c.pipeline.Annotations()
}

// Invalidate requests a redraw. Parameter setters on lines do not call
// it; hosts call it after a batch of edits.
func (c *Chart) Invalidate() {
	if c.OnInvalidate != nil {
		c.OnInvalidate()
	}
}

// SetSize changes the image size.
func (c *Chart) SetSize(width, height int) {
	if width == c.opts.Width && height == c.opts.Height {
		return
	}
	c.opts.Width, c.opts.Height = width, height
	c.Invalidate()
}

// SetMargins changes the gaps around the plot area.
func (c *Chart) SetMargins(m Margins) {
	if m == c.opts.Margins {
		return
	}
	c.opts.Margins = m
	c.Invalidate()
}

// Size returns the image size in pixels.
func (c *Chart) Size() (width, height int) {
	return c.opts.Width, c.opts.Height
}

// PlotArea returns the pixel rectangle the axes map onto.
func (c *Chart) PlotArea() graphics.Rect {
	m := c.opts.Margins
	full := graphics.Rect{Width: float64(c.opts.Width), Height: float64(c.opts.Height)}
	return full.Inset(m.Left, m.Top, m.Right, m.Bottom)
}

// Transform returns the data to screen mapping for the current ranges.
func (c *Chart) Transform() (axis.Transform, error) {
	return axis.NewTransform(c.PlotArea(), c.x, c.y)
}

// Render draws every annotation onto s. The error reports an unusable
// axis setup; every line is then marked as not rendered. Skipped
// annotations are only counted.
func (c *Chart) Render(s render.Surface) (render.Stats, error) {
	t, err := c.Transform()
	if err != nil {
		return c.unavailable(), fmt.Errorf("chart transform: %w", err)
	}
	stats := c.pipeline.Render(s, c.x.Range(), c.y.Range(), t)
	c.logger.Debug("chart rendered", "drawn", stats.Drawn, "skipped", stats.Skipped)
	return stats, nil
}

// unavailable resolves every line against no transform so that none of
// them stays hit-testable from an earlier pass.
func (c *Chart) unavailable() render.Stats {
	return c.pipeline.Resolve(c.x.Range(), c.y.Range(), axis.Transform{}).Stats
}

// RenderImage rasterizes the chart: background, annotations below the
// series layer, the plot frame, then annotations above it.
func (c *Chart) RenderImage() (*image.RGBA, render.Stats, error) {
	if c.opts.Width <= 0 || c.opts.Height <= 0 {
		return nil, c.unavailable(), fmt.Errorf("invalid image size %dx%d", c.opts.Width, c.opts.Height)
	}
	canvas := raster.NewCanvas(c.opts.Width, c.opts.Height)
	canvas.SetBackground(c.opts.Background)
	canvas.Clear()

	t, err := c.Transform()
	if err != nil {
		return canvas.Image(), c.unavailable(), fmt.Errorf("chart transform: %w", err)
	}

	frame := c.pipeline.Resolve(c.x.Range(), c.y.Range(), t)
	frame.Draw(canvas, annotation.BelowSeries)
	canvas.DrawRect(c.PlotArea(), graphics.Color{}, c.opts.Frame)
	frame.Draw(canvas, annotation.AboveSeries)

	c.logger.Debug("chart rasterized", "width", c.opts.Width, "height", c.opts.Height,
		"drawn", frame.Stats.Drawn, "skipped", frame.Stats.Skipped)
	return canvas.Image(), frame.Stats, nil
}

// Export renders the chart and encodes it to w.
func (c *Chart) Export(w io.Writer, opts raster.ExportOptions) error {
	img, _, err := c.RenderImage()
	if err != nil {
		return err
	}
	if err := raster.Encode(w, img, opts); err != nil {
		return fmt.Errorf("encode chart: %w", err)
	}
	return nil
}

// HitTest returns the topmost annotation drawn within tolerance pixels
// of p by the last render. Points farther than tolerance outside the
// plot area never hit.
func (c *Chart) HitTest(p graphics.Point, tolerance float64) (*annotation.Line, bool) {
	if tolerance < 0 {
		tolerance = 0
	}
	if !c.PlotArea().Inset(-tolerance, -tolerance, -tolerance, -tolerance).Contains(p) {
		return nil, false
	}
	return c.pipeline.HitTest(p, tolerance)
}

// ZoomAt zooms both axes around the screen point p. factor > 1 zooms in.
func (c *Chart) ZoomAt(p graphics.Point, factor float64) error {
	t, err := c.Transform()
	if err != nil {
		return err
	}
	at := t.ToData(p)
	c.x.Zoom(factor, at.X)
	c.y.Zoom(factor, at.Y)
	c.Invalidate()
	return nil
}

// PanBy moves the visible ranges so that content follows a drag of
// (dx, dy) pixels.
func (c *Chart) PanBy(dx, dy float64) error {
	t, err := c.Transform()
	if err != nil {
		return err
	}
	origin := c.PlotArea().Center()
	delta := t.ToData(origin).Sub(t.ToData(origin.Add(graphics.Pt(dx, dy))))
	c.x.Pan(delta.X)
	c.y.Pan(delta.Y)
	c.Invalidate()
	return nil
}

// ResetView restores the initial axis ranges.
func (c *Chart) ResetView() {
	c.x.Reset()
	c.y.Reset()
	c.Invalidate()
}
