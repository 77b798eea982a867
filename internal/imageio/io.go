// Package imageio decodes working images and encodes rendered output.
package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	// Registered for Decode.
	_ "golang.org/x/image/webp"
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when the image format is not supported.
	ErrUnsupportedFormat = errors.New("imageio: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("imageio: empty data")
)

// DefaultQuality is the JPEG quality used when none is configured.
const DefaultQuality = 90

// Load decodes the image at path. The format is detected from content.
func Load(path string) (image.Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("imageio: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	img, _, err := Decode(f)
	return img, err
}

// LoadBytes decodes an image held in memory.
func LoadBytes(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	img, _, err := Decode(bytes.NewReader(data))
	return img, err
}

// Decode decodes an image from r and reports the detected format name.
// PNG, JPEG, WEBP, BMP and TIFF are recognized.
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, "", fmt.Errorf("imageio: decode: %w", ErrUnsupportedFormat)
		}
		return nil, "", fmt.Errorf("imageio: decode: %w", err)
	}
	return img, format, nil
}

// Encode writes img to w in the given format. Quality applies to JPEG
// only and is clamped to 1..100.
func Encode(w io.Writer, img image.Image, format Format, quality int) error {
	var err error
	switch format {
	case FormatPNG:
		err = png.Encode(w, img)
	case FormatJPEG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: clampQuality(quality)})
	case FormatBMP:
		err = bmp.Encode(w, img)
	case FormatTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("imageio: encode %s: %w", format, ErrUnsupportedFormat)
	}
	if err != nil {
		return fmt.Errorf("imageio: encode %s: %w", format, err)
	}
	return nil
}

// Save encodes img into the file at path.
func Save(path string, img image.Image, format Format, quality int) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("imageio: create file: %w", err)
	}

	if err := Encode(f, img, format, quality); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}

	return f.Close()
}

// PathFromURI converts a file URI (or a bare path) to a filesystem path.
func PathFromURI(uri string) (string, error) {
	if !strings.Contains(uri, "://") {
		return uri, nil
	}
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("imageio: parse uri: %w", err)
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("imageio: scheme %q: %w", u.Scheme, ErrUnsupportedFormat)
	}
	return filepath.FromSlash(u.Path), nil
}

// FileURI returns the file URI for path.
func FileURI(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()
}

func clampQuality(q int) int {
	if q == 0 {
		return DefaultQuality
	}
	return max(1, min(q, 100))
}
