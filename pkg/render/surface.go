package render

import (
	"fmt"
	"strings"

	"lineplot/pkg/graphics"
)

// Surface receives drawing primitives. Implementations own rasterization;
// the pipeline only ever calls these two methods.
type Surface interface {
	DrawLine(p1, p2 graphics.Point, style graphics.LineStyle)
	DrawText(pos graphics.Point, text string, align graphics.TextAlign, style graphics.TextStyle)
}

// OpKind identifies a recorded primitive.
type OpKind int

const (
	OpLine OpKind = iota
	OpText
)

// Op is one recorded primitive.
type Op struct {
	Kind   OpKind
	Points []graphics.Point
	Text   string
	Align  graphics.TextAlign
	Line   graphics.LineStyle
	Font   graphics.TextStyle
}

func (op Op) String() string {
	switch op.Kind {
	case OpLine:
		return fmt.Sprintf("line (%.2f, %.2f) -> (%.2f, %.2f) %s w=%g",
			op.Points[0].X, op.Points[0].Y, op.Points[1].X, op.Points[1].Y,
			op.Line.Color, op.Line.Thickness)
	case OpText:
		return fmt.Sprintf("text %q at (%.2f, %.2f) rot=%.1f", op.Text,
			op.Points[0].X, op.Points[0].Y, op.Font.Rotation)
	}
	return "unknown op"
}

// Recorder is a Surface that keeps every primitive it receives.
type Recorder struct {
	Ops []Op
}

// DrawLine implements Surface.
func (r *Recorder) DrawLine(p1, p2 graphics.Point, style graphics.LineStyle) {
	r.Ops = append(r.Ops, Op{
		Kind:   OpLine,
		Points: []graphics.Point{p1, p2},
		Line:   style.Clone(),
	})
}

// DrawText implements Surface.
func (r *Recorder) DrawText(pos graphics.Point, text string, align graphics.TextAlign, style graphics.TextStyle) {
	r.Ops = append(r.Ops, Op{
		Kind:   OpText,
		Points: []graphics.Point{pos},
		Text:   text,
		Align:  align,
		Font:   style,
	})
}

// Reset drops all recorded primitives.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}

// String lists the recorded primitives one per line.
func (r *Recorder) String() string {
	var b strings.Builder
	for i, op := range r.Ops {
		fmt.Fprintf(&b, "%4d: %s\n", i+1, op)
	}
	return b.String()
}
