package raster

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format is an image encoding.
type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
)

// ParseFormat accepts png, jpeg or jpg in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "png":
		return PNG, nil
	case "jpeg", "jpg":
		return JPEG, nil
	}
	return "", fmt.Errorf("unsupported image format %q", s)
}

// FormatFromPath guesses the format from a file extension, defaulting
// to PNG.
func FormatFromPath(name string) Format {
	f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(name), "."))
	if err != nil {
		return PNG
	}
	return f
}

// ExportOptions configures image encoding.
type ExportOptions struct {
	Format Format

	// Quality for JPEG (1-100).
	Quality int

	// Compression for PNG.
	Compression png.CompressionLevel
}

// DefaultExportOptions returns PNG with default compression.
func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		Format:      PNG,
		Quality:     90,
		Compression: png.DefaultCompression,
	}
}

// Encode writes img to w.
func Encode(w io.Writer, img image.Image, opts ExportOptions) error {
	switch opts.Format {
	case PNG, "":
		enc := png.Encoder{CompressionLevel: opts.Compression}
		return enc.Encode(w, img)
	case JPEG:
		q := opts.Quality
		if q < 1 {
			q = 1
		}
		if q > 100 {
			q = 100
		}
		return jpeg.Encode(w, img, &jpeg.Options{Quality: q})
	}
	return fmt.Errorf("unsupported image format %q", opts.Format)
}

// SaveFile encodes img into filename.
func SaveFile(filename string, img image.Image, opts ExportOptions) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := Encode(f, img, opts); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", filename, err)
	}
	return f.Close()
}
