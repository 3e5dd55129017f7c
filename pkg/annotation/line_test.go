package annotation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lineplot/pkg/axis"
	"lineplot/pkg/geometry"
	"lineplot/pkg/graphics"
)

// chart10 maps [0,10]x[0,10] onto a 100x100 pixel area at the origin.
func chart10(t *testing.T) (axis.Range, axis.Range, axis.Transform) {
	t.Helper()
	x := axis.New(axis.Horizontal, axis.Range{Min: 0, Max: 10})
	y := axis.New(axis.Vertical, axis.Range{Min: 0, Max: 10})
	tr, err := axis.NewTransform(graphics.Rect{Width: 100, Height: 100}, x, y)
	require.NoError(t, err)
	return x.Range(), y.Range(), tr
}

func TestRenderDiagonal(t *testing.T) {
	xr, yr, tr := chart10(t)
	l := NewLine(WithDefinition(geometry.Linear(1, 0)))

	seg, ok := l.Render(xr, yr, tr)
	require.True(t, ok)
	assert.InDelta(t, 0.0, seg.Start.X, 1e-9)
	assert.InDelta(t, 100.0, seg.Start.Y, 1e-9)
	assert.InDelta(t, 100.0, seg.End.X, 1e-9)
	assert.InDelta(t, 0.0, seg.End.Y, 1e-9)
	assert.Equal(t, graphics.Pt(0, 0), seg.Data.Start)
	assert.Nil(t, seg.Label)
	assert.NoError(t, l.LastError())
}

func TestSettersAreLazy(t *testing.T) {
	xr, yr, tr := chart10(t)
	l := NewLine()
	_, ok := l.Render(xr, yr, tr)
	require.True(t, ok)
	assert.False(t, l.Dirty())

	l.SetType(geometry.Vertical)
	l.SetX(4)
	assert.True(t, l.Dirty())

	// The last rendered segment is untouched until the next render.
	seg, ok := l.Rendered()
	require.True(t, ok)
	assert.Equal(t, geometry.Segment{Start: graphics.Pt(0, 0), End: graphics.Pt(10, 0)}, seg.Data)

	seg, ok = l.Render(xr, yr, tr)
	require.True(t, ok)
	assert.False(t, l.Dirty())
	assert.Equal(t, geometry.Segment{Start: graphics.Pt(4, 0), End: graphics.Pt(4, 10)}, seg.Data)
}

func TestSynchronizeAppliesBatch(t *testing.T) {
	xr, yr, tr := chart10(t)
	l := NewLine()

	p := l.Params()
	p.Line = geometry.Through(graphics.Pt(0, 2), graphics.Pt(10, 2))
	p.Clamps = geometry.Clamps{MinimumX: geometry.At(3), MaximumX: geometry.At(6)}
	p.Label = Label{Text: "limit", Placement: LabelEnd}
	l.Synchronize(p)

	// Mutating the caller's copy after Synchronize must not leak in.
	p.Clamps.MaximumX = geometry.At(9)

	seg, ok := l.Render(xr, yr, tr)
	require.True(t, ok)
	assert.Equal(t, geometry.Segment{Start: graphics.Pt(3, 2), End: graphics.Pt(6, 2)}, seg.Data)
	require.NotNil(t, seg.Label)
	assert.Equal(t, "limit", seg.Label.Text)
}

func TestParameterSurface(t *testing.T) {
	l := NewLine(WithName("a"))
	l.SetSlope(2)
	l.SetIntercept(-1)
	l.SetY(3)
	l.SetPoints(graphics.Pt(1, 2), graphics.Pt(3, 4))
	l.SetMinimumX(1)
	l.SetMaximumX(2)
	l.SetMinimumY(3)
	l.SetMaximumY(4)
	l.SetLabel("x")
	l.SetLabelPlacement(LabelMiddle)
	l.SetLayer(BelowSeries)
	l.SetVisible(false)

	assert.Equal(t, "a", l.Name())
	assert.Equal(t, geometry.LinearEquation, l.Type())
	assert.Equal(t, 2.0, l.Slope())
	assert.Equal(t, -1.0, l.Intercept())
	assert.Equal(t, 3.0, l.Y())
	p1, p2 := l.Points()
	assert.Equal(t, graphics.Pt(1, 2), p1)
	assert.Equal(t, graphics.Pt(3, 4), p2)
	assert.Equal(t, geometry.At(1), l.MinimumX())
	assert.Equal(t, geometry.At(2), l.MaximumX())
	assert.Equal(t, geometry.At(3), l.MinimumY())
	assert.Equal(t, geometry.At(4), l.MaximumY())
	assert.Equal(t, "x", l.Label())
	assert.Equal(t, LabelMiddle, l.LabelPlacement())
	assert.Equal(t, BelowSeries, l.Layer())
	assert.False(t, l.Visible())

	l.ClearMinimumX()
	l.ClearMaximumX()
	l.ClearMinimumY()
	l.ClearMaximumY()
	assert.False(t, l.MinimumX().IsSet())
	assert.False(t, l.MaximumX().IsSet())
	assert.False(t, l.MinimumY().IsSet())
	assert.False(t, l.MaximumY().IsSet())
}

func TestStrokeIsCopied(t *testing.T) {
	style := graphics.DefaultLineStyle()
	style.Dash = []float64{2, 2}
	l := NewLine()
	l.SetStroke(style)
	style.Dash[0] = 99

	assert.Equal(t, []float64{2, 2}, l.Stroke().Dash)
}

func TestRenderIsIdempotent(t *testing.T) {
	xr, yr, tr := chart10(t)
	l := NewLine(
		WithDefinition(geometry.Linear(0.37, 1.3)),
		WithLabel("trend", LabelMiddle),
		WithStroke(graphics.LineStyle{Color: graphics.NewRGB(1, 0, 0), Thickness: 2, Dash: []float64{3, 1}}),
	)

	first, ok := l.Render(xr, yr, tr)
	require.True(t, ok)
	for i := 0; i < 5; i++ {
		again, ok := l.Render(xr, yr, tr)
		require.True(t, ok)
		assert.Equal(t, first, again)
	}

	// A fresh line with the same inputs computes the same output.
	other := NewLine(
		WithDefinition(geometry.Linear(0.37, 1.3)),
		WithLabel("trend", LabelMiddle),
		WithStroke(graphics.LineStyle{Color: graphics.NewRGB(1, 0, 0), Thickness: 2, Dash: []float64{3, 1}}),
	)
	fresh, ok := other.Render(xr, yr, tr)
	require.True(t, ok)
	assert.Equal(t, first, fresh)
}

func TestRenderFollowsAxisChanges(t *testing.T) {
	area := graphics.Rect{Width: 100, Height: 100}
	x := axis.New(axis.Horizontal, axis.Range{Min: 0, Max: 10})
	y := axis.New(axis.Vertical, axis.Range{Min: 0, Max: 10})
	l := NewLine(WithDefinition(geometry.HorizontalAt(5)))

	tr, err := axis.NewTransform(area, x, y)
	require.NoError(t, err)
	seg, ok := l.Render(x.Range(), y.Range(), tr)
	require.True(t, ok)
	assert.InDelta(t, 50.0, seg.Start.Y, 1e-9)

	y.Pan(-4)
	tr, err = axis.NewTransform(area, x, y)
	require.NoError(t, err)
	seg, ok = l.Render(x.Range(), y.Range(), tr)
	require.True(t, ok)
	assert.InDelta(t, 10.0, seg.Start.Y, 1e-9)

	y.Pan(-2)
	tr, err = axis.NewTransform(area, x, y)
	require.NoError(t, err)
	_, ok = l.Render(x.Range(), y.Range(), tr)
	assert.False(t, ok)
	assert.ErrorIs(t, l.LastError(), geometry.ErrDegenerate)
}

func TestRenderSkips(t *testing.T) {
	xr, yr, tr := chart10(t)

	tests := []struct {
		name string
		line *Line
		x, y axis.Range
		tr   axis.Transform
		want error
	}{
		{"hidden", func() *Line { l := NewLine(); l.SetVisible(false); return l }(), xr, yr, tr, ErrHidden},
		{"outside", NewLine(WithDefinition(geometry.Linear(2, 20))), xr, yr, tr, geometry.ErrDegenerate},
		{"nan slope", NewLine(WithDefinition(geometry.Linear(math.NaN(), 0))), xr, yr, tr, geometry.ErrInvalidParameter},
		{"no transform", NewLine(), xr, yr, axis.Transform{}, axis.ErrUnavailable},
		{"no range", NewLine(), axis.Range{}, yr, tr, geometry.ErrDegenerate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seg, ok := tt.line.Render(tt.x, tt.y, tt.tr)
			assert.False(t, ok)
			assert.Equal(t, ScreenSegment{}, seg)
			assert.ErrorIs(t, tt.line.LastError(), tt.want)
			_, ok = tt.line.Rendered()
			assert.False(t, ok)
			assert.False(t, tt.line.HitTest(graphics.Pt(50, 50), 1000))
		})
	}
}

func TestHitTest(t *testing.T) {
	xr, yr, tr := chart10(t)
	l := NewLine(WithDefinition(geometry.HorizontalAt(5)), WithClamps(geometry.Clamps{
		MinimumX: geometry.At(2),
		MaximumX: geometry.At(8),
	}))
	assert.False(t, l.HitTest(graphics.Pt(50, 50), 5), "nothing rendered yet")

	seg, ok := l.Render(xr, yr, tr)
	require.True(t, ok)
	mid := seg.Start.Lerp(seg.End, 0.5)

	assert.True(t, l.HitTest(mid, 0))
	assert.True(t, l.HitTest(mid, -1), "negative tolerance acts as zero")
	assert.True(t, l.HitTest(graphics.Pt(50, 53), 3))
	assert.False(t, l.HitTest(graphics.Pt(50, 53.5), 3))
	// Colinear with the infinite line but beyond the clamped end.
	assert.False(t, l.HitTest(graphics.Pt(95, 50), 3))
	assert.True(t, l.HitTest(graphics.Pt(82, 50), 2))
}

func TestDistanceToSegment(t *testing.T) {
	a, b := graphics.Pt(0, 0), graphics.Pt(10, 0)
	tests := []struct {
		p    graphics.Point
		want float64
	}{
		{graphics.Pt(5, 0), 0},
		{graphics.Pt(5, 3), 3},
		{graphics.Pt(-3, 4), 5},
		{graphics.Pt(13, -4), 5},
		{graphics.Pt(10, 0), 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, DistanceToSegment(tt.p, a, b), 1e-12, "%v", tt.p)
	}
	assert.InDelta(t, 5.0, DistanceToSegment(graphics.Pt(3, 4), a, a), 1e-12)
}

func TestParsePlacement(t *testing.T) {
	p, ok := ParsePlacement("middle")
	assert.True(t, ok)
	assert.Equal(t, LabelMiddle, p)
	assert.Equal(t, "end", LabelEnd.String())

	_, ok = ParsePlacement("sideways")
	assert.False(t, ok)
}

func TestRenderReturnsCopies(t *testing.T) {
	xr, yr, tr := chart10(t)
	l := NewLine(
		WithDefinition(geometry.HorizontalAt(5)),
		WithLabel("limit", LabelEnd),
		WithStroke(graphics.LineStyle{Color: graphics.Black(), Thickness: 1, Dash: []float64{3, 1}}),
	)

	first, ok := l.Render(xr, yr, tr)
	require.True(t, ok)
	first.Style.Dash[0] = 99
	first.Label.Text = "changed"

	again, ok := l.Render(xr, yr, tr)
	require.True(t, ok)
	assert.Equal(t, []float64{3, 1}, again.Style.Dash)
	assert.Equal(t, "limit", again.Label.Text)

	rendered, ok := l.Rendered()
	require.True(t, ok)
	rendered.Style.Dash[1] = 42
	again, _ = l.Render(xr, yr, tr)
	assert.Equal(t, []float64{3, 1}, again.Style.Dash)
}

func TestRenderRejectsNonFiniteLabel(t *testing.T) {
	xr, yr, tr := chart10(t)

	tests := []struct {
		name string
		edit func(*Params)
	}{
		{"nan offset", func(p *Params) { p.Label.Offset = math.NaN() }},
		{"inf offset", func(p *Params) { p.Label.Offset = math.Inf(-1) }},
		{"nan position", func(p *Params) { p.Label.Placement = LabelCustom; p.Label.Position = math.NaN() }},
		{"inf position", func(p *Params) { p.Label.Placement = LabelCustom; p.Label.Position = math.Inf(1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLine(WithDefinition(geometry.HorizontalAt(5)), WithLabel("m", LabelMiddle))
			l.Update(tt.edit)

			_, ok := l.Render(xr, yr, tr)
			assert.False(t, ok)
			assert.ErrorIs(t, l.LastError(), geometry.ErrInvalidParameter)
		})
	}

	// Without visible text the offset is never used.
	l := NewLine(WithDefinition(geometry.HorizontalAt(5)))
	l.Update(func(p *Params) { p.Label.Offset = math.NaN() })
	_, ok := l.Render(xr, yr, tr)
	assert.True(t, ok)
}
