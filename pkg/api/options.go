package api

import (
	"io"
	"log/slog"

	"lineplot/pkg/graphics"
)

// Margins are the gaps between the image border and the plot area, in
// pixels.
type Margins struct {
	Left, Top, Right, Bottom float64
}

// Options configures a Chart.
type Options struct {
	// Width and Height set the image size in pixels.
	// Default: 800x600
	Width  int
	Height int

	// Margins around the plot area.
	// Default: 50 left, 20 top, 20 right, 40 bottom
	Margins Margins

	// Background fills the whole image.
	// Default: white
	Background graphics.Color

	// Frame strokes the plot area border. A zero thickness disables it.
	// Default: 1px gray
	Frame graphics.LineStyle

	// Logger receives render diagnostics.
	// Default: discard
	Logger *slog.Logger
}

// DefaultOptions returns chart options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Width:      800,
		Height:     600,
		Margins:    Margins{Left: 50, Top: 20, Right: 20, Bottom: 40},
		Background: graphics.White(),
		Frame:      graphics.LineStyle{Color: graphics.NewGray(0.5), Thickness: 1},
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Option is a functional option for configuring a Chart.
type Option func(*Options)

// Size sets the image size.
func Size(width, height int) Option {
	return func(o *Options) {
		o.Width = width
		o.Height = height
	}
}

// Margin sets the plot area margins.
func Margin(left, top, right, bottom float64) Option {
	return func(o *Options) {
		o.Margins = Margins{Left: left, Top: top, Right: right, Bottom: bottom}
	}
}

// Background sets the background color.
func Background(c graphics.Color) Option {
	return func(o *Options) {
		o.Background = c
	}
}

// Frame sets the plot area border style.
func Frame(style graphics.LineStyle) Option {
	return func(o *Options) {
		o.Frame = style.Clone()
	}
}

// NoFrame disables the plot area border.
func NoFrame() Option {
	return func(o *Options) {
		o.Frame = graphics.LineStyle{}
	}
}

// Logger sets the logger used for render diagnostics.
func Logger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// NewOptions creates options from functional options.
func NewOptions(opts ...Option) Options {
	o := DefaultOptions()
	o.Apply(opts...)
	return o
}

// Apply applies functional options to existing options.
func (o *Options) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(o)
	}
}
