package annotation

import (
	"lineplot/pkg/geometry"
	"lineplot/pkg/graphics"
)

// Placement tells where along the segment a label is anchored.
type Placement int

const (
	LabelNone Placement = iota
	LabelStart
	LabelEnd
	LabelMiddle
	// LabelCustom anchors at Label.Position, a fraction of the segment.
	LabelCustom
)

// ParsePlacement accepts none, start, end, middle or custom.
func ParsePlacement(s string) (Placement, bool) {
	for i, name := range placementNames {
		if name == s {
			return Placement(i), true
		}
	}
	return LabelNone, false
}

var placementNames = [...]string{"none", "start", "end", "middle", "custom"}

func (p Placement) String() string {
	if p >= 0 && int(p) < len(placementNames) {
		return placementNames[p]
	}
	return "unknown"
}

// Orientation of label text.
type Orientation int

const (
	TextHorizontal Orientation = iota
	// TextAlongLine rotates the text to follow the segment.
	TextAlongLine
)

// Layer groups annotations relative to plotted series.
type Layer int

const (
	AboveSeries Layer = iota
	BelowSeries
)

// Label describes optional text attached to a line.
type Label struct {
	Text      string
	Placement Placement
	// Position is the fraction of the segment used by LabelCustom.
	Position float64
	// Offset moves the anchor perpendicular to the line, in pixels.
	// Positive values move it above the line.
	Offset      float64
	Orientation Orientation
	Font        graphics.TextStyle
}

// Visible reports whether the label produces any text.
func (l Label) Visible() bool {
	return l.Text != "" && l.Placement != LabelNone
}

// Params is the full parameter set of a line annotation.
type Params struct {
	Name   string
	Line   geometry.Definition
	Clamps geometry.Clamps
	Stroke graphics.LineStyle
	Label  Label
	Layer  Layer
	Hidden bool
}

// DefaultParams returns the horizontal line y = 0 with a solid black
// stroke, no clamps and no label.
func DefaultParams() Params {
	return Params{
		Line:   geometry.Linear(0, 0),
		Stroke: graphics.DefaultLineStyle(),
		Label: Label{
			Placement: LabelNone,
			Position:  0.5,
			Offset:    4,
			Font:      graphics.DefaultTextStyle(),
		},
		Layer: AboveSeries,
	}
}

func (p Params) clone() Params {
	p.Stroke = p.Stroke.Clone()
	return p
}

// Option configures the parameters of a new line.
type Option func(*Params)

// WithDefinition sets the line definition.
func WithDefinition(d geometry.Definition) Option {
	return func(p *Params) {
		p.Line = d
	}
}

// WithClamps sets the clamp rectangle.
func WithClamps(c geometry.Clamps) Option {
	return func(p *Params) {
		p.Clamps = c
	}
}

// WithStroke sets the stroke style.
func WithStroke(s graphics.LineStyle) Option {
	return func(p *Params) {
		p.Stroke = s.Clone()
	}
}

// WithLabel sets label text and placement.
func WithLabel(text string, placement Placement) Option {
	return func(p *Params) {
		p.Label.Text = text
		p.Label.Placement = placement
	}
}

// WithLayer sets the drawing layer.
func WithLayer(l Layer) Option {
	return func(p *Params) {
		p.Layer = l
	}
}

// WithName sets an identifier used in logs and hit reports.
func WithName(name string) Option {
	return func(p *Params) {
		p.Name = name
	}
}
