package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lineplot/pkg/graphics"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 600, cfg.Height)
	assert.Equal(t, 4.0, cfg.HitTolerance)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)

	bg, err := cfg.BackgroundColor()
	require.NoError(t, err)
	assert.Equal(t, graphics.White(), bg)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("LINEPLOT_WIDTH", "320")
	t.Setenv("LINEPLOT_HEIGHT", "200")
	t.Setenv("LINEPLOT_BACKGROUND", "#102030")
	t.Setenv("LINEPLOT_LOG_LEVEL", "debug")
	t.Setenv("LINEPLOT_HIT_TOLERANCE", "2.5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 320, cfg.Width)
	assert.Equal(t, 200, cfg.Height)
	assert.Equal(t, 2.5, cfg.HitTolerance)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	bg, err := cfg.BackgroundColor()
	require.NoError(t, err)
	assert.Equal(t, "#102030ff", bg.String())
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"not a number", "LINEPLOT_WIDTH", "wide"},
		{"zero height", "LINEPLOT_HEIGHT", "0"},
		{"negative tolerance", "LINEPLOT_HIT_TOLERANCE", "-1"},
		{"unknown level", "LINEPLOT_LOG_LEVEL", "chatty"},
		{"unknown color", "LINEPLOT_BACKGROUND", "mauve-ish"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
