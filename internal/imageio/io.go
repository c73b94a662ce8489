// Package imageio loads and saves still images by file extension.
//
// Decoding auto-detects PNG, JPEG, GIF, BMP, TIFF and WebP. Encoding picks
// the format from the output extension; WebP is decode-only.
package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// JPEGQuality is the quality used when saving JPEG files.
const JPEGQuality = 95

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when the output extension has no encoder.
	ErrUnsupportedFormat = errors.New("imageio: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("imageio: empty data")
)

// Load decodes the image at path, auto-detecting the format from its content.
func Load(path string) (image.Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("imageio: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// LoadBytes decodes an image held in memory.
func LoadBytes(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	return Decode(bytes.NewReader(data))
}

// Decode decodes an image from the given reader, auto-detecting the format.
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("imageio: decode: %w", err)
	}
	return img, nil
}

// Format returns the canonical encoder name for path's extension, or ""
// when no encoder exists.
func Format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".gif":
		return "gif"
	case ".bmp":
		return "bmp"
	case ".tif", ".tiff":
		return "tiff"
	default:
		return ""
	}
}

// Save encodes img to path in the format named by its extension.
// The file is not created for an unsupported extension.
func Save(path string, img image.Image) error {
	format := Format(path)
	if format == "" {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("imageio: create file: %w", err)
	}

	if err := Encode(f, img, format); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Encode writes img to w in the named format.
func Encode(w io.Writer, img image.Image, format string) error {
	var err error
	switch format {
	case "png":
		err = png.Encode(w, img)
	case "jpeg":
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality})
	case "gif":
		err = gif.Encode(w, img, nil)
	case "bmp":
		err = bmp.Encode(w, img)
	case "tiff":
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return fmt.Errorf("imageio: encode %s: %w", strings.ToUpper(format), err)
	}
	return nil
}
