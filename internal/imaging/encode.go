package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"math"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

var (
	// ErrUnsupportedFormat is returned for output formats the encoder cannot write.
	ErrUnsupportedFormat = errors.New("unsupported output format")

	// ErrEmptyImage is returned when asked to encode an image with no pixels.
	ErrEmptyImage = errors.New("image has zero width or height")
)

// FormatOf returns the format name implied by a file path's extension:
// "jpeg", "png", "gif", "tiff", "bmp", "webp", or "unknown".
func FormatOf(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".webp" {
		return "webp"
	}
	f, err := imaging.FormatFromFilename(path)
	if err != nil {
		return "unknown"
	}
	return strings.ToLower(f.String())
}

// MimeType returns the MIME type for a format name, or "application/octet-stream".
func MimeType(format string) string {
	switch normalizeFormat(format) {
	case "jpeg", "jpg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "tif", "tiff":
		return "image/tiff"
	case "bmp":
		return "image/bmp"
	case "webp":
		return "image/webp"
	}
	return "application/octet-stream"
}

// Extension returns the canonical file extension (with dot) for a format name.
func Extension(format string) string {
	switch f := normalizeFormat(format); f {
	case "jpeg", "jpg":
		return ".jpg"
	case "tif", "tiff":
		return ".tiff"
	case "":
		return ""
	default:
		return "." + f
	}
}

func normalizeFormat(format string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(format)), ".")
}

// Encoder writes images with disintegration/imaging. It satisfies
// compress.Encoder.
//
// Quality in [0, 1] is mapped per format:
//   - JPEG: quality*100, clamped to 1-100
//   - GIF: palette size quality*256, clamped to 2-256
//   - PNG, TIFF, BMP: lossless; quality is ignored
//
// WebP decoding is supported but encoding is not; requesting "webp" output
// returns ErrUnsupportedFormat.
type Encoder struct{}

// Encode encodes img in the named format at the given quality.
func (Encoder) Encode(img image.Image, quality float64, format string) ([]byte, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}

	name := normalizeFormat(format)
	f, err := imaging.FormatFromExtension(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	var opts []imaging.EncodeOption
	switch f {
	case imaging.JPEG:
		opts = append(opts, imaging.JPEGQuality(clampInt(roundQuality(quality*100), 1, 100)))
	case imaging.GIF:
		opts = append(opts, imaging.GIFNumColors(clampInt(roundQuality(quality*256), 2, 256)))
	case imaging.PNG:
		opts = append(opts, imaging.PNGCompressionLevel(png.BestCompression))
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, f, opts...); err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func roundQuality(v float64) int {
	return int(math.Floor(v + 0.5))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
