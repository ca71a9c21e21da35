// Package export writes compositions to disk: flat rasters (PNG, JPEG,
// WebP), layered OpenRaster files and multi-size ICO favicons.
package export

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"

	"thumbforge/config"
)

// WriteRaster encodes img to path, choosing the codec from the (already
// normalized) extension.
func WriteRaster(img image.Image, path string, opts config.OutputConfig) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return atomicWrite(path, func(w io.Writer) error {
			return encodePNG(w, img, opts.PNGCompression)
		})
	case ".jpg", ".jpeg":
		return atomicWrite(path, func(w io.Writer) error {
			return jpeg.Encode(w, img, &jpeg.Options{Quality: opts.JPEGQuality})
		})
	case ".webp":
		return atomicWrite(path, func(w io.Writer) error {
			return encodeWebP(w, img, opts.WebPQuality)
		})
	default:
		return fmt.Errorf("unsupported raster extension %q", filepath.Ext(path))
	}
}

func encodePNG(w io.Writer, img image.Image, level string) error {
	enc := png.Encoder{CompressionLevel: pngLevel(level)}
	return enc.Encode(w, img)
}

func pngLevel(level string) png.CompressionLevel {
	switch level {
	case "speed":
		return png.BestSpeed
	case "best":
		return png.BestCompression
	case "none":
		return png.NoCompression
	default:
		return png.DefaultCompression
	}
}

func encodeWebP(w io.Writer, img image.Image, quality int) error {
	opts, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, float32(quality))
	if err != nil {
		return fmt.Errorf("failed to build webp options: %w", err)
	}
	return webp.Encode(w, img, opts)
}

// atomicWrite writes through a temp file in the target directory and
// renames into place, so readers never observe a partial file.
func atomicWrite(path string, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".thumbforge-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if err := write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to move %s into place: %w", filepath.Base(path), err)
	}
	return nil
}
