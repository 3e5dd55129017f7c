package main

import (
	"bytes"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lineplot/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Width:        800,
		Height:       600,
		Background:   "white",
		LogLevel:     "info",
		HitTolerance: 4,
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(testConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSegmentsCommand(t *testing.T) {
	out, err := run(t, "segments",
		"--line", "h:5;color=red;label=limit",
		"--line", "v:20")
	require.NoError(t, err)

	assert.Contains(t, out, "line (50.00, 290.00) -> (780.00, 290.00) #ff0000ff")
	assert.Contains(t, out, `text "limit"`)
	assert.Contains(t, out, "skipped line2:")
	assert.Contains(t, out, "1 drawn, 1 skipped")
}

func TestSegmentsCommandBadLine(t *testing.T) {
	_, err := run(t, "segments", "--line", "q:1")
	assert.Error(t, err)

	_, err = run(t, "segments", "--x-range", "3,1")
	assert.Error(t, err)
}

func TestHitCommand(t *testing.T) {
	out, err := run(t, "hit", "--line", "h:5;name=limit", "--at", "400,291")
	require.NoError(t, err)
	assert.Equal(t, "limit (horizontal) 1.00 px from (400.0, 291.0)\n", out)

	out, err = run(t, "hit", "--line", "h:5", "--at", "400,300")
	require.NoError(t, err)
	assert.Equal(t, "no line\n", out)

	out, err = run(t, "hit", "--line", "h:5", "--at", "400,300", "--tolerance", "12")
	require.NoError(t, err)
	assert.Contains(t, out, "line1 (horizontal)")
}

func TestHitCommandRequiresPoint(t *testing.T) {
	_, err := run(t, "hit", "--line", "h:5")
	assert.Error(t, err)
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chart.png")

	out, err := run(t, "render", "--line", "eq:1,0", "--size", "200x100", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "1 drawn, 0 skipped")

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 100, img.Bounds().Dy())
}

func TestRenderCommandBadFormat(t *testing.T) {
	_, err := run(t, "render", "--out", filepath.Join(t.TempDir(), "c.png"), "--format", "gif")
	assert.Error(t, err)
}
