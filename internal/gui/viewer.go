package gui

import (
	"image"
	"log/slog"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"lineplot/pkg/annotation"
	"lineplot/pkg/api"
	"lineplot/pkg/graphics"
)

// ChartViewer is a custom widget showing a chart with pan/zoom and
// tap-to-select.
type ChartViewer struct {
	widget.BaseWidget

	chart     *api.Chart
	image     *canvas.Image
	logger    *slog.Logger
	tolerance float64

	// OnSelect is called after a tap with the annotation under the
	// pointer, or nil.
	OnSelect func(l *annotation.Line)
	// OnViewChanged is called after every pan, zoom or reset.
	OnViewChanged func()
}

// NewChartViewer creates a viewer for chart. tolerance is the hit radius
// in pixels.
func NewChartViewer(chart *api.Chart, tolerance float64, logger *slog.Logger) *ChartViewer {
	v := &ChartViewer{
		chart:     chart,
		logger:    logger,
		tolerance: tolerance,
	}
	v.ExtendBaseWidget(v)

	v.image = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	v.image.FillMode = canvas.ImageFillStretch
	v.image.ScaleMode = canvas.ImageScaleSmooth

	chart.OnInvalidate = v.Refresh
	return v
}

// CreateRenderer creates the renderer for this widget.
func (v *ChartViewer) CreateRenderer() fyne.WidgetRenderer {
	return &chartViewerRenderer{viewer: v}
}

// redraw rasterizes the chart at its current size.
func (v *ChartViewer) redraw() {
	img, stats, err := v.chart.RenderImage()
	if err != nil {
		v.logger.Warn("render chart", "error", err)
	}
	if img == nil {
		return
	}
	v.logger.Debug("chart redrawn", "drawn", stats.Drawn, "skipped", stats.Skipped)
	v.image.Image = img
	v.image.Refresh()
}

// Dragged handles drag events for panning.
func (v *ChartViewer) Dragged(event *fyne.DragEvent) {
	if err := v.chart.PanBy(float64(event.Dragged.DX), float64(event.Dragged.DY)); err != nil {
		return
	}
	v.viewChanged()
}

// DragEnd handles the end of a drag.
func (v *ChartViewer) DragEnd() {}

// Scrolled handles scroll events for zooming toward the cursor.
func (v *ChartViewer) Scrolled(event *fyne.ScrollEvent) {
	delta := float64(event.Scrolled.DY) / 100
	factor := math.Max(0.5, math.Min(2, 1+delta))
	v.zoomAt(toPoint(event.Position), factor)
}

// Tapped selects the annotation under the pointer.
func (v *ChartViewer) Tapped(event *fyne.PointEvent) {
	l, ok := v.chart.HitTest(toPoint(event.Position), v.tolerance)
	if !ok {
		l = nil
	}
	if v.OnSelect != nil {
		v.OnSelect(l)
	}
}

// ZoomIn zooms around the plot center.
func (v *ChartViewer) ZoomIn() {
	v.zoomAt(v.chart.PlotArea().Center(), 1.25)
}

// ZoomOut zooms out around the plot center.
func (v *ChartViewer) ZoomOut() {
	v.zoomAt(v.chart.PlotArea().Center(), 1/1.25)
}

// Pan moves the view by whole pixels, as a drag would.
func (v *ChartViewer) Pan(dx, dy float64) {
	if err := v.chart.PanBy(dx, dy); err != nil {
		return
	}
	v.viewChanged()
}

// ResetView restores the initial ranges.
func (v *ChartViewer) ResetView() {
	v.chart.ResetView()
	v.viewChanged()
}

func (v *ChartViewer) zoomAt(p graphics.Point, factor float64) {
	if err := v.chart.ZoomAt(p, factor); err != nil {
		return
	}
	v.viewChanged()
}

func (v *ChartViewer) viewChanged() {
	if v.OnViewChanged != nil {
		v.OnViewChanged()
	}
}

func toPoint(p fyne.Position) graphics.Point {
	return graphics.Pt(float64(p.X), float64(p.Y))
}

// chartViewerRenderer renders the chart viewer.
type chartViewerRenderer struct {
	viewer *ChartViewer
}

func (r *chartViewerRenderer) Layout(size fyne.Size) {
	r.viewer.image.Move(fyne.NewPos(0, 0))
	r.viewer.image.Resize(size)

	w, h := int(size.Width), int(size.Height)
	if w > 0 && h > 0 {
		// SetSize invalidates the chart, which redraws through Refresh.
		r.viewer.chart.SetSize(w, h)
	}
}

func (r *chartViewerRenderer) MinSize() fyne.Size {
	return fyne.NewSize(200, 200)
}

func (r *chartViewerRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.viewer.image}
}

func (r *chartViewerRenderer) Refresh() {
	r.viewer.redraw()
}

func (r *chartViewerRenderer) Destroy() {}
