package graphics

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color is a non-premultiplied RGBA color with components in [0, 1].
// The zero value is transparent black; use Black() for opaque black.
type Color struct {
	R, G, B, A float64
}

// NewGray creates an opaque grayscale color.
func NewGray(gray float64) Color {
	g := clamp(gray, 0, 1)
	return Color{g, g, g, 1}
}

// NewRGB creates an opaque RGB color.
func NewRGB(r, g, b float64) Color {
	return Color{clamp(r, 0, 1), clamp(g, 0, 1), clamp(b, 0, 1), 1}
}

// NewRGBA creates an RGB color with alpha.
func NewRGBA(r, g, b, a float64) Color {
	return Color{clamp(r, 0, 1), clamp(g, 0, 1), clamp(b, 0, 1), clamp(a, 0, 1)}
}

// Black returns a black color.
func Black() Color {
	return NewGray(0)
}

// White returns a white color.
func White() Color {
	return NewGray(1)
}

var named = map[string]Color{
	"black":     NewGray(0),
	"white":     NewGray(1),
	"gray":      NewGray(0.5),
	"lightgray": NewGray(0.83),
	"red":       NewRGB(1, 0, 0),
	"green":     NewRGB(0, 0.5, 0),
	"blue":      NewRGB(0, 0, 1),
	"orange":    NewRGB(1, 0.65, 0),
	"purple":    NewRGB(0.5, 0, 0.5),
	"teal":      NewRGB(0, 0.5, 0.5),
}

// ParseColor parses a color name ("red", "gray", ...) or a hex string in
// the forms #rgb, #rrggbb or #rrggbbaa.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if c, ok := named[s]; ok {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") {
		return Color{}, fmt.Errorf("unknown color %q", s)
	}

	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return Color{}, fmt.Errorf("invalid hex color %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}

// ToNRGBA converts the color to an 8-bit non-premultiplied color.
func (c Color) ToNRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp(c.R, 0, 1)*255 + 0.5),
		G: uint8(clamp(c.G, 0, 1)*255 + 0.5),
		B: uint8(clamp(c.B, 0, 1)*255 + 0.5),
		A: uint8(clamp(c.A, 0, 1)*255 + 0.5),
	}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.ToNRGBA().RGBA()
}

// WithAlpha returns a copy of the color with the given alpha.
func (c Color) WithAlpha(alpha float64) Color {
	c.A = clamp(alpha, 0, 1)
	return c
}

// IsTransparent reports whether the color has no coverage.
func (c Color) IsTransparent() bool {
	return c.A <= 0
}

// String returns the #rrggbbaa form.
func (c Color) String() string {
	n := c.ToNRGBA()
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
