package render

import (
	"math"

	"lineplot/pkg/annotation"
	"lineplot/pkg/graphics"
)

// LabelLayout is the resolved position of a label.
type LabelLayout struct {
	Anchor graphics.Point
	Align  graphics.TextAlign
	// Rotation in degrees, clockwise in screen space.
	Rotation float64
}

// LayoutLabel places the label of seg. ok is false when the segment has
// no visible label, no length or an anchor that is not finite.
//
// The anchor sits at the placement fraction along Start->End and is moved
// by the label offset along the upward normal of the reading direction.
// The reading direction is the segment direction turned to point right
// (up, for vertical segments), so rotated text is never upside down.
func LayoutLabel(seg annotation.ScreenSegment) (LabelLayout, bool) {
	lbl := seg.Label
	if lbl == nil || !lbl.Visible() {
		return LabelLayout{}, false
	}
	dir := seg.End.Sub(seg.Start)
	if dir.Length() == 0 {
		return LabelLayout{}, false
	}

	var (
		t float64
		h graphics.HAlign
	)
	switch lbl.Placement {
	case annotation.LabelStart:
		t, h = 0, graphics.AlignLeft
	case annotation.LabelEnd:
		t, h = 1, graphics.AlignRight
	case annotation.LabelCustom:
		t, h = clampUnit(lbl.Position), graphics.AlignCenter
	default:
		t, h = 0.5, graphics.AlignCenter
	}

	flipped := dir.X < 0 || (dir.X == 0 && dir.Y > 0)
	if flipped {
		dir = dir.Scale(-1)
		switch h {
		case graphics.AlignLeft:
			h = graphics.AlignRight
		case graphics.AlignRight:
			h = graphics.AlignLeft
		}
	}
	unit := dir.Normalize()
	// Screen Y grows downward: rotating the reading direction by -90°
	// gives the normal pointing up the screen.
	normal := graphics.Pt(unit.Y, -unit.X)

	anchor := seg.Start.Lerp(seg.End, t).Add(normal.Scale(lbl.Offset))
	if !anchor.IsFinite() {
		return LabelLayout{}, false
	}

	v := graphics.AlignBottom
	if lbl.Offset < 0 {
		v = graphics.AlignTop
	}

	out := LabelLayout{
		Anchor: anchor,
		Align:  graphics.TextAlign{H: h, V: v},
	}
	if lbl.Orientation == annotation.TextAlongLine {
		out.Rotation = math.Atan2(unit.Y, unit.X) * 180 / math.Pi
	}
	return out, true
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) {
		return 0.5
	}
	return math.Max(0, math.Min(1, v))
}
