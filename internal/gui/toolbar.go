package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"lineplot/pkg/axis"
)

// Toolbar provides zoom and export controls.
type Toolbar struct {
	container *fyne.Container

	// Callbacks
	OnZoomIn  func()
	OnZoomOut func()
	OnReset   func()
	OnExport  func()
}

// NewToolbar creates a new toolbar.
func NewToolbar() *Toolbar {
	t := &Toolbar{}
	t.build()
	return t
}

func (t *Toolbar) build() {
	exportBtn := widget.NewButtonWithIcon("Export", theme.DocumentSaveIcon(), func() {
		if t.OnExport != nil {
			t.OnExport()
		}
	})

	zoomOutBtn := widget.NewButtonWithIcon("", theme.ZoomOutIcon(), func() {
		if t.OnZoomOut != nil {
			t.OnZoomOut()
		}
	})

	zoomInBtn := widget.NewButtonWithIcon("", theme.ZoomInIcon(), func() {
		if t.OnZoomIn != nil {
			t.OnZoomIn()
		}
	})

	resetBtn := widget.NewButtonWithIcon("Reset", theme.ViewRestoreIcon(), func() {
		if t.OnReset != nil {
			t.OnReset()
		}
	})

	t.container = container.NewHBox(
		exportBtn,
		widget.NewSeparator(),
		zoomOutBtn,
		zoomInBtn,
		resetBtn,
	)
}

// Container returns the toolbar container.
func (t *Toolbar) Container() *fyne.Container {
	return t.container
}

// StatusBar shows the selection and the visible ranges.
type StatusBar struct {
	container  *fyne.Container
	label      *widget.Label
	rangeLabel *widget.Label
}

// NewStatusBar creates a new status bar.
func NewStatusBar() *StatusBar {
	s := &StatusBar{
		label:      widget.NewLabel("Ready"),
		rangeLabel: widget.NewLabel(""),
	}

	s.container = container.NewHBox(
		s.label,
		widget.NewSeparator(),
		s.rangeLabel,
	)

	return s
}

// Container returns the status bar container.
func (s *StatusBar) Container() *fyne.Container {
	return s.container
}

// SetStatus sets the status message.
func (s *StatusBar) SetStatus(msg string) {
	s.label.SetText(msg)
}

// SetRanges shows the visible data ranges.
func (s *StatusBar) SetRanges(x, y axis.Range) {
	s.rangeLabel.SetText(fmt.Sprintf("x [%.4g, %.4g]  y [%.4g, %.4g]", x.Min, x.Max, y.Min, y.Max))
}
