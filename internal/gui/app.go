// Package gui provides a native desktop chart preview using Fyne.
package gui

import (
	"fmt"
	"io"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"

	"lineplot/pkg/annotation"
	"lineplot/pkg/api"
	"lineplot/pkg/raster"
)

// App is the chart preview application.
type App struct {
	fyneApp    fyne.App
	mainWindow fyne.Window
	chart      *api.Chart
	logger     *slog.Logger

	// UI components
	viewer  *ChartViewer
	toolbar *Toolbar
	status  *StatusBar
}

// NewApp creates a preview window for chart. tolerance is the tap hit
// radius in pixels.
func NewApp(chart *api.Chart, tolerance float64, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	a := &App{
		fyneApp: app.New(),
		chart:   chart,
		logger:  logger,
	}

	a.fyneApp.Settings().SetTheme(theme.DarkTheme())
	a.mainWindow = a.fyneApp.NewWindow("lineplot")
	w, h := chart.Size()
	a.mainWindow.Resize(fyne.NewSize(float32(w), float32(h)))

	a.viewer = NewChartViewer(chart, tolerance, logger)
	return a
}

// Run starts the application and blocks until the window closes.
func (a *App) Run() {
	a.buildUI()
	a.mainWindow.ShowAndRun()
}

// buildUI constructs the user interface.
func (a *App) buildUI() {
	a.toolbar = NewToolbar()
	a.toolbar.OnZoomIn = a.viewer.ZoomIn
	a.toolbar.OnZoomOut = a.viewer.ZoomOut
	a.toolbar.OnReset = a.viewer.ResetView
	a.toolbar.OnExport = a.exportFile

	a.status = NewStatusBar()
	a.viewer.OnSelect = a.selected
	a.viewer.OnViewChanged = a.updateRanges
	a.updateRanges()

	content := container.NewBorder(
		container.NewPadded(a.toolbar.Container()), // Top
		a.status.Container(),                       // Bottom
		nil,                                        // Left
		nil,                                        // Right
		a.viewer,                                   // Center
	)

	a.mainWindow.SetContent(content)
	a.mainWindow.Canvas().SetOnTypedKey(a.handleKey)
}

// handleKey handles keyboard navigation.
func (a *App) handleKey(key *fyne.KeyEvent) {
	const step = 20
	switch key.Name {
	case fyne.KeyLeft:
		a.viewer.Pan(step, 0)
	case fyne.KeyRight:
		a.viewer.Pan(-step, 0)
	case fyne.KeyUp:
		a.viewer.Pan(0, step)
	case fyne.KeyDown:
		a.viewer.Pan(0, -step)
	case fyne.KeyHome:
		a.viewer.ResetView()
	case fyne.KeyPlus, fyne.KeyEqual:
		a.viewer.ZoomIn()
	case fyne.KeyMinus:
		a.viewer.ZoomOut()
	}
}

func (a *App) selected(l *annotation.Line) {
	if l == nil {
		a.status.SetStatus("No annotation")
		return
	}
	name := l.Name()
	if name == "" {
		name = l.Type().String()
	}
	a.status.SetStatus(fmt.Sprintf("Selected %s", name))
	a.logger.Info("annotation selected", "name", l.Name(), "type", l.Type())
}

func (a *App) updateRanges() {
	a.status.SetRanges(a.chart.XAxis().Range(), a.chart.YAxis().Range())
}

// exportFile shows a save dialog and writes the chart as PNG or JPEG,
// chosen by extension.
func (a *App) exportFile() {
	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.mainWindow)
			return
		}
		if writer == nil {
			return // Cancelled
		}
		defer writer.Close()

		opts := raster.DefaultExportOptions()
		opts.Format = raster.FormatFromPath(writer.URI().Path())
		if err := a.chart.Export(writer, opts); err != nil {
			dialog.ShowError(fmt.Errorf("failed to export chart: %w", err), a.mainWindow)
			return
		}
		a.status.SetStatus("Exported " + writer.URI().Name())
	}, a.mainWindow)
}
