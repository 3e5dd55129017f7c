package config

import (
	"fmt"
	"log/slog"

	"github.com/kelseyhightower/envconfig"

	"lineplot/pkg/graphics"
)

// Prefix is prepended to every variable name, e.g. LINEPLOT_WIDTH.
const Prefix = "LINEPLOT"

type Config struct {
	Width        int     `envconfig:"WIDTH" default:"800"`
	Height       int     `envconfig:"HEIGHT" default:"600"`
	Background   string  `envconfig:"BACKGROUND" default:"white"`
	LogLevel     string  `envconfig:"LOG_LEVEL" default:"info"`
	HitTolerance float64 `envconfig:"HIT_TOLERANCE" default:"4"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.HitTolerance < 0 {
		return nil, fmt.Errorf("negative hit tolerance %g", cfg.HitTolerance)
	}
	if _, err := cfg.Level(); err != nil {
		return nil, err
	}
	if _, err := cfg.BackgroundColor(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Level parses LogLevel (debug, info, warn, error).
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level: %w", err)
	}
	return l, nil
}

// BackgroundColor parses Background.
func (c *Config) BackgroundColor() (graphics.Color, error) {
	col, err := graphics.ParseColor(c.Background)
	if err != nil {
		return graphics.White(), fmt.Errorf("background: %w", err)
	}
	return col, nil
}
