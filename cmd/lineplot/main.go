// Package main provides the CLI entry point for lineplot.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"lineplot/internal/config"
	"lineplot/internal/gui"
	"lineplot/pkg/annotation"
	"lineplot/pkg/api"
	"lineplot/pkg/raster"
	"lineplot/pkg/render"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := newRootCmd(cfg, logger).Execute(); err != nil {
		os.Exit(1)
	}
}

// chartFlags are shared by every command that builds a chart.
type chartFlags struct {
	lines  []string
	xRange string
	yRange string
	size   string
}

func (f *chartFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&f.lines, "line", "l", nil,
		"Line annotation: h:Y, v:X, eq:SLOPE,INTERCEPT or pts:X1,Y1,X2,Y2 plus ;key=value attributes (repeatable)")
	cmd.Flags().StringVar(&f.xRange, "x-range", "0,10", "Visible x range MIN,MAX")
	cmd.Flags().StringVar(&f.yRange, "y-range", "0,10", "Visible y range MIN,MAX")
	cmd.Flags().StringVar(&f.size, "size", "", "Image size WIDTHxHEIGHT (default from LINEPLOT_WIDTH/HEIGHT)")
}

func (f *chartFlags) build(cfg *config.Config, logger *slog.Logger) (*api.Chart, error) {
	xr, err := parseRange(f.xRange)
	if err != nil {
		return nil, fmt.Errorf("x-range: %w", err)
	}
	yr, err := parseRange(f.yRange)
	if err != nil {
		return nil, fmt.Errorf("y-range: %w", err)
	}

	w, h := cfg.Width, cfg.Height
	if f.size != "" {
		if w, h, err = parseSize(f.size); err != nil {
			return nil, err
		}
	}
	bg, err := cfg.BackgroundColor()
	if err != nil {
		return nil, err
	}

	chart := api.NewChart(xr, yr, api.Size(w, h), api.Background(bg), api.Logger(logger))
	for i, spec := range f.lines {
		p, err := parseLine(spec)
		if err != nil {
			return nil, err
		}
		if p.Name == "" {
			p.Name = fmt.Sprintf("line%d", i+1)
		}
		l := annotation.NewLine()
		l.Synchronize(p)
		chart.Add(l)
	}
	return chart, nil
}

func newRootCmd(cfg *config.Config, logger *slog.Logger) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lineplot",
		Short: "Draw line annotations over a 2D chart",
		Long: `lineplot resolves horizontal, vertical and sloped reference lines
against the visible axis ranges and draws them with optional labels.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newRenderCmd(cfg, logger),
		newSegmentsCmd(cfg, logger),
		newHitCmd(cfg, logger),
		newViewCmd(cfg, logger),
	)
	return rootCmd
}

func newRenderCmd(cfg *config.Config, logger *slog.Logger) *cobra.Command {
	var (
		flags   chartFlags
		out     string
		format  string
		quality int
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the chart to a PNG or JPEG file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			chart, err := flags.build(cfg, logger)
			if err != nil {
				return err
			}

			opts := raster.DefaultExportOptions()
			opts.Format = raster.FormatFromPath(out)
			if format != "" {
				if opts.Format, err = raster.ParseFormat(format); err != nil {
					return err
				}
			}
			opts.Quality = quality

			img, stats, err := chart.RenderImage()
			if err != nil {
				return fmt.Errorf("render failed: %w", err)
			}
			if err := raster.SaveFile(out, img, opts); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d drawn, %d skipped)\n", out, stats.Drawn, stats.Skipped)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "chart.png", "Output file")
	cmd.Flags().StringVar(&format, "format", "", "Output format: png or jpeg (default from the file extension)")
	cmd.Flags().IntVar(&quality, "quality", 90, "JPEG quality (1-100)")
	return cmd
}

func newSegmentsCmd(cfg *config.Config, logger *slog.Logger) *cobra.Command {
	var flags chartFlags
	cmd := &cobra.Command{
		Use:   "segments",
		Short: "Print the drawing primitives produced for each line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			chart, err := flags.build(cfg, logger)
			if err != nil {
				return err
			}
			var rec render.Recorder
			stats, err := chart.Render(&rec)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprint(w, rec.String())
			for _, l := range chart.Lines() {
				if err := l.LastError(); err != nil {
					fmt.Fprintf(w, "skipped %s: %v\n", l.Name(), err)
				}
			}
			fmt.Fprintf(w, "%d drawn, %d skipped\n", stats.Drawn, stats.Skipped)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newHitCmd(cfg *config.Config, logger *slog.Logger) *cobra.Command {
	var (
		flags     chartFlags
		at        string
		tolerance float64
	)
	cmd := &cobra.Command{
		Use:   "hit",
		Short: "Report the topmost line under a screen point",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parsePoint(at)
			if err != nil {
				return fmt.Errorf("at: %w", err)
			}
			chart, err := flags.build(cfg, logger)
			if err != nil {
				return err
			}
			if _, err := chart.Render(&render.Recorder{}); err != nil {
				return err
			}

			if !cmd.Flags().Changed("tolerance") {
				tolerance = cfg.HitTolerance
			}
			l, ok := chart.HitTest(p, tolerance)
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "no line")
				return nil
			}
			seg, _ := l.Rendered()
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) %.2f px from (%.1f, %.1f)\n",
				l.Name(), l.Type(), annotation.DistanceToSegment(p, seg.Start, seg.End), p.X, p.Y)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&at, "at", "", "Screen point X,Y in pixels")
	cmd.Flags().Float64Var(&tolerance, "tolerance", 4, "Hit radius in pixels (default from LINEPLOT_HIT_TOLERANCE)")
	_ = cmd.MarkFlagRequired("at")
	return cmd
}

func newViewCmd(cfg *config.Config, logger *slog.Logger) *cobra.Command {
	var flags chartFlags
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Open the chart in a preview window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			chart, err := flags.build(cfg, logger)
			if err != nil {
				return err
			}
			gui.NewApp(chart, cfg.HitTolerance, logger).Run()
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
