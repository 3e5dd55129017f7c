package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lineplot/pkg/graphics"
	pathpkg "lineplot/pkg/path"
	"lineplot/pkg/render"
)

var _ render.Surface = (*Canvas)(nil)

var (
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	red   = color.NRGBA{R: 255, A: 255}
)

func redStroke(thickness float64) graphics.LineStyle {
	return graphics.LineStyle{Color: graphics.NewRGB(1, 0, 0), Thickness: thickness}
}

// inked returns the bounding box of all non-white pixels.
func inked(c *Canvas) image.Rectangle {
	var box image.Rectangle
	for y := 0; y < c.Height(); y++ {
		for x := 0; x < c.Width(); x++ {
			if c.At(x, y) != white {
				box = box.Union(image.Rect(x, y, x+1, y+1))
			}
		}
	}
	return box
}

func TestNewCanvasIsWhite(t *testing.T) {
	c := NewCanvas(8, 4)
	assert.Equal(t, 8, c.Width())
	assert.Equal(t, 4, c.Height())
	assert.Equal(t, white, c.At(0, 0))
	assert.Equal(t, white, c.At(7, 3))
	assert.Equal(t, color.NRGBA{}, c.At(8, 0))

	c.SetBackground(graphics.Black())
	c.Clear()
	assert.Equal(t, color.NRGBA{A: 255}, c.At(3, 3))
}

func TestDrawLine(t *testing.T) {
	c := NewCanvas(30, 20)
	c.DrawLine(graphics.Pt(2, 10), graphics.Pt(18, 10), redStroke(2))

	assert.Equal(t, red, c.At(10, 9))
	assert.Equal(t, red, c.At(10, 10))
	assert.Equal(t, white, c.At(10, 12))
	assert.Equal(t, white, c.At(20, 10), "butt cap stops at the end point")
	assert.Equal(t, image.Rect(2, 9, 18, 11), inked(c))
}

func TestDrawLineInvisible(t *testing.T) {
	c := NewCanvas(10, 10)
	c.DrawLine(graphics.Pt(0, 5), graphics.Pt(10, 5), graphics.LineStyle{Color: graphics.Black()})
	c.DrawLine(graphics.Pt(0, 5), graphics.Pt(10, 5), graphics.LineStyle{Thickness: 3})
	assert.True(t, inked(c).Empty())
}

func TestDrawLineDashed(t *testing.T) {
	c := NewCanvas(40, 10)
	style := redStroke(2)
	style.Dash = graphics.DashDash

	c.DrawLine(graphics.Pt(0, 5), graphics.Pt(40, 5), style)

	// On 8px, off 2px.
	assert.Equal(t, red, c.At(4, 5))
	assert.Equal(t, white, c.At(9, 5))
	assert.Equal(t, red, c.At(14, 5))
	assert.Equal(t, white, c.At(19, 5))
}

func TestDrawLineFineDashIsSolid(t *testing.T) {
	c := NewCanvas(30, 20)
	style := redStroke(2)
	style.Dash = []float64{1e-6, 1e-6}

	c.DrawLine(graphics.Pt(2, 10), graphics.Pt(18, 10), style)

	assert.Equal(t, red, c.At(10, 10))
	assert.Equal(t, image.Rect(2, 9, 18, 11), inked(c))
}

func TestFillSkipsUnreachableOutlines(t *testing.T) {
	tests := []struct {
		name string
		path *graphics.Path
	}{
		{"off canvas", pathpkg.NewBuilder().Rect(100, 100, 5, 5).Build()},
		{"left of canvas", pathpkg.NewBuilder().Rect(-20, 2, 5, 5).Build()},
		{"not finite", pathpkg.NewBuilder().Rect(math.NaN(), 2, 5, 5).Build()},
		{"infinite", pathpkg.NewBuilder().Rect(2, 2, math.Inf(1), 5).Build()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(10, 10)
			c.Fill(tt.path, red)
			assert.True(t, inked(c).Empty())
		})
	}

	c := NewCanvas(10, 10)
	c.Fill(pathpkg.NewBuilder().Rect(-5, -5, 8, 8).Build(), red)
	assert.Equal(t, image.Rect(0, 0, 3, 3), inked(c), "partly visible outlines are clipped")
}

func TestDrawLineCaps(t *testing.T) {
	tests := []struct {
		cap  graphics.LineCap
		want color.NRGBA
	}{
		{graphics.LineCapButt, white},
		{graphics.LineCapRound, red},
		{graphics.LineCapSquare, red},
	}
	for _, tt := range tests {
		c := NewCanvas(30, 20)
		style := redStroke(4)
		style.Cap = tt.cap
		c.DrawLine(graphics.Pt(10, 10), graphics.Pt(20, 10), style)
		assert.Equal(t, tt.want, c.At(9, 9), "cap %d", tt.cap)
		assert.Equal(t, tt.want, c.At(20, 10), "cap %d", tt.cap)
	}
}

func TestDrawText(t *testing.T) {
	style := graphics.DefaultTextStyle()
	style.Size = 16

	c := NewCanvas(100, 100)
	c.DrawText(graphics.Pt(10, 50), "HHHH", graphics.TextAlign{H: graphics.AlignLeft, V: graphics.AlignBottom}, style)
	box := inked(c)
	require.False(t, box.Empty())
	assert.Greater(t, box.Dx(), box.Dy())
	assert.GreaterOrEqual(t, box.Min.X, 10)
	assert.LessOrEqual(t, box.Max.Y, 50)

	c = NewCanvas(100, 100)
	style.Rotation = 90
	c.DrawText(graphics.Pt(50, 10), "HHHH", graphics.TextAlign{H: graphics.AlignLeft, V: graphics.AlignBottom}, style)
	box = inked(c)
	require.False(t, box.Empty())
	assert.Greater(t, box.Dy(), box.Dx())
	assert.GreaterOrEqual(t, box.Min.Y, 10)
	assert.GreaterOrEqual(t, box.Min.X, 50)
}

func TestDrawTextAlignment(t *testing.T) {
	style := graphics.DefaultTextStyle()
	style.Size = 16

	c := NewCanvas(100, 40)
	c.DrawText(graphics.Pt(90, 30), "HH", graphics.TextAlign{H: graphics.AlignRight, V: graphics.AlignBottom}, style)
	box := inked(c)
	require.False(t, box.Empty())
	assert.LessOrEqual(t, box.Max.X, 90)
	assert.Greater(t, box.Min.X, 50)

	c = NewCanvas(100, 40)
	c.DrawText(graphics.Pt(50, 5), "HH", graphics.TextAlign{H: graphics.AlignCenter, V: graphics.AlignTop}, style)
	box = inked(c)
	require.False(t, box.Empty())
	assert.GreaterOrEqual(t, box.Min.Y, 5)
	assert.InDelta(t, 50, (box.Min.X+box.Max.X)/2, 2)
}

func TestDrawTextSkipsUnknownFamilyAndEmpty(t *testing.T) {
	c := NewCanvas(20, 20)
	style := graphics.DefaultTextStyle()
	c.DrawText(graphics.Pt(0, 15), "", graphics.TextAlign{}, style)
	style.Family = "comic"
	c.DrawText(graphics.Pt(0, 15), "x", graphics.TextAlign{}, style)
	assert.True(t, inked(c).Empty())
}

func TestDrawRect(t *testing.T) {
	c := NewCanvas(20, 20)
	c.DrawRect(graphics.Rect{X: 5, Y: 5, Width: 10, Height: 10}, graphics.NewRGB(0, 0, 1), redStroke(2))

	assert.Equal(t, color.NRGBA{B: 255, A: 255}, c.At(10, 10))
	assert.Equal(t, red, c.At(5, 10))
	assert.Equal(t, white, c.At(2, 2))
}

func TestEncode(t *testing.T) {
	c := NewCanvas(12, 7)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, c.Image(), DefaultExportOptions()))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 12, 7), img.Bounds())

	buf.Reset()
	require.NoError(t, Encode(&buf, c.Image(), ExportOptions{Format: JPEG, Quality: 500}))
	_, format, err := image.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)

	assert.Error(t, Encode(&buf, c.Image(), ExportOptions{Format: "gif"}))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("JPG")
	require.NoError(t, err)
	assert.Equal(t, JPEG, f)

	_, err = ParseFormat("bmp")
	assert.Error(t, err)

	assert.Equal(t, JPEG, FormatFromPath("out/chart.jpeg"))
	assert.Equal(t, PNG, FormatFromPath("chart.png"))
	assert.Equal(t, PNG, FormatFromPath("chart"))
}

func TestSaveFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "chart.png")
	require.NoError(t, SaveFile(name, NewCanvas(3, 3).Image(), DefaultExportOptions()))

	data, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))

	assert.Error(t, SaveFile(filepath.Join(t.TempDir(), "missing", "x.png"), NewCanvas(1, 1).Image(), DefaultExportOptions()))
}
