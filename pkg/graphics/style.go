package graphics

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// LineCap represents the line cap style.
type LineCap int

const (
	LineCapButt LineCap = iota
	LineCapRound
	LineCapSquare
)

// Dash presets, in multiples of the stroke thickness.
var (
	DashSolid    []float64
	DashDash     = []float64{4, 1}
	DashDot      = []float64{1, 1}
	DashDashDot  = []float64{4, 1, 1, 1}
	DashLongDash = []float64{10, 1}
)

// ParseDash resolves a preset name (solid, dash, dot, dashdot, longdash)
// or a comma separated list of lengths.
func ParseDash(s string) ([]float64, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "solid":
		return DashSolid, nil
	case "dash":
		return DashDash, nil
	case "dot":
		return DashDot, nil
	case "dashdot":
		return DashDashDot, nil
	case "longdash":
		return DashLongDash, nil
	}

	var out []float64
	for _, part := range strings.Split(s, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid dash length %q: %w", part, err)
		}
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("invalid dash length %g", v)
		}
		out = append(out, v)
	}
	return out, nil
}

// LineStyle describes how a line primitive is stroked.
type LineStyle struct {
	Color     Color
	Thickness float64
	// Dash alternates on/off lengths in multiples of Thickness.
	// Empty means solid.
	Dash []float64
	Cap  LineCap
}

// DefaultLineStyle returns a solid one-pixel black stroke.
func DefaultLineStyle() LineStyle {
	return LineStyle{
		Color:     Black(),
		Thickness: 1,
		Cap:       LineCapButt,
	}
}

// Clone returns a deep copy of the style.
func (s LineStyle) Clone() LineStyle {
	if s.Dash != nil {
		dash := make([]float64, len(s.Dash))
		copy(dash, s.Dash)
		s.Dash = dash
	}
	return s
}

// Equal reports whether two styles are identical.
func (s LineStyle) Equal(other LineStyle) bool {
	if s.Color != other.Color || s.Thickness != other.Thickness || s.Cap != other.Cap {
		return false
	}
	if len(s.Dash) != len(other.Dash) {
		return false
	}
	for i := range s.Dash {
		if s.Dash[i] != other.Dash[i] {
			return false
		}
	}
	return true
}

// IsVisible reports whether stroking with this style produces any ink.
func (s LineStyle) IsVisible() bool {
	return s.Thickness > 0 && !s.Color.IsTransparent()
}

// HAlign is horizontal text alignment relative to the anchor.
type HAlign int

const (
	AlignLeft HAlign = iota
	AlignCenter
	AlignRight
)

// VAlign is vertical text alignment relative to the anchor.
type VAlign int

const (
	AlignBottom VAlign = iota
	AlignMiddle
	AlignTop
)

// TextAlign anchors a text run: the anchor point sits at the given
// horizontal and vertical edge of the text box.
type TextAlign struct {
	H HAlign
	V VAlign
}

// TextStyle describes how a text primitive is drawn.
type TextStyle struct {
	Color Color
	// Size is the font size in pixels.
	Size float64
	// Family selects a font face; empty means the surface default.
	Family string
	// Rotation in degrees, clockwise in screen space.
	Rotation float64
}

// DefaultTextStyle returns black 12px text.
func DefaultTextStyle() TextStyle {
	return TextStyle{
		Color: Black(),
		Size:  12,
	}
}
