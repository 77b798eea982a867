package imageio

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is an output image format.
type Format int

const (
	// FormatPNG is lossless PNG.
	FormatPNG Format = iota
	// FormatJPEG is lossy JPEG.
	FormatJPEG
	// FormatWEBP is WebP. It can be decoded but not encoded.
	FormatWEBP
	// FormatBMP is uncompressed BMP.
	FormatBMP
	// FormatTIFF is deflate-compressed TIFF.
	FormatTIFF
)

var formatNames = [...]string{"png", "jpeg", "webp", "bmp", "tiff"}

// String returns the lower-case format name.
func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

// Extension returns the file extension including the dot.
func (f Format) Extension() string {
	if f == FormatJPEG {
		return ".jpg"
	}
	return "." + f.String()
}

// Encodable reports whether Encode supports f.
func (f Format) Encodable() bool {
	return f != FormatWEBP && f >= 0 && int(f) < len(formatNames)
}

// ParseFormat parses a format name or extension ("jpg", ".PNG", "tif").
func ParseFormat(s string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".") {
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "webp":
		return FormatWEBP, nil
	case "bmp":
		return FormatBMP, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	}
	return FormatPNG, fmt.Errorf("imageio: format %q: %w", s, ErrUnsupportedFormat)
}

// FormatFromPath returns the format implied by path's extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}
