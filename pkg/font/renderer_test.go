package font

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lineplot/pkg/graphics"
)

func TestLoadFamilies(t *testing.T) {
	for _, family := range []string{"", Regular, Bold, Mono} {
		r, err := Load(family)
		require.NoError(t, err, family)
		assert.Equal(t, 12.0, r.Size())
		assert.Greater(t, r.StringWidth("Hello"), 0.0)
	}

	_, err := Load("comic")
	assert.ErrorContains(t, err, "unknown font family")
}

func TestStringWidth(t *testing.T) {
	r, err := Load(Regular)
	require.NoError(t, err)

	assert.Equal(t, 0.0, r.StringWidth(""))
	assert.Greater(t, r.StringWidth("ab"), r.StringWidth("a"))
	assert.Greater(t, r.StringWidth("WWW"), r.StringWidth("iii"))

	small := r.StringWidth("threshold")
	r.SetSize(24)
	assert.InEpsilon(t, 2*small, r.StringWidth("threshold"), 0.02)

	r.SetSize(-1)
	assert.Equal(t, 24.0, r.Size(), "invalid size is ignored")
}

func TestMonoIsFixedWidth(t *testing.T) {
	r, err := Load(Mono)
	require.NoError(t, err)
	assert.InDelta(t, r.StringWidth("WWW"), r.StringWidth("iii"), 1e-9)
}

func TestRenderString(t *testing.T) {
	r, err := Load(Regular)
	require.NoError(t, err)
	r.SetSize(20)

	p := r.RenderString("Hx", 10, 50)
	require.False(t, p.IsEmpty())

	b := p.Bounds()
	m := r.Metrics()
	assert.GreaterOrEqual(t, b.X, 10.0)
	assert.LessOrEqual(t, b.Right(), 10+r.StringWidth("Hx")+1)
	// Glyphs sit above the baseline in a y-down space.
	assert.Less(t, b.Y, 50.0)
	assert.GreaterOrEqual(t, b.Y, 50-m.Ascender-1)
	assert.LessOrEqual(t, b.Bottom(), 50.5)

	// Every contour is closed before the next one starts.
	moves, closes := 0, 0
	for _, seg := range p.Segments {
		switch seg.Op {
		case graphics.PathOpMoveTo:
			moves++
		case graphics.PathOpClose:
			closes++
		}
	}
	assert.Equal(t, moves, closes)

	assert.True(t, r.RenderString(" ", 0, 0).IsEmpty())
}

func TestMetrics(t *testing.T) {
	r, err := Load(Regular)
	require.NoError(t, err)
	r.SetSize(10)

	m := r.Metrics()
	assert.Greater(t, m.Ascender, 0.0)
	assert.Greater(t, m.Descender, 0.0)
	assert.GreaterOrEqual(t, m.LineHeight, m.Ascender)
	assert.GreaterOrEqual(t, m.CapHeight, m.XHeight)
}

func TestOrigin(t *testing.T) {
	r, err := Load(Regular)
	require.NoError(t, err)
	w := r.StringWidth("label")
	m := r.Metrics()

	tests := []struct {
		align graphics.TextAlign
		want  graphics.Point
	}{
		{graphics.TextAlign{H: graphics.AlignLeft, V: graphics.AlignBottom}, graphics.Pt(0, -m.Descender)},
		{graphics.TextAlign{H: graphics.AlignCenter, V: graphics.AlignMiddle}, graphics.Pt(-w/2, (m.Ascender-m.Descender)/2)},
		{graphics.TextAlign{H: graphics.AlignRight, V: graphics.AlignTop}, graphics.Pt(-w, m.Ascender)},
	}
	for _, tt := range tests {
		got := r.Origin("label", tt.align)
		assert.InDelta(t, tt.want.X, got.X, 1e-9)
		assert.InDelta(t, tt.want.Y, got.Y, 1e-9)
	}
}
