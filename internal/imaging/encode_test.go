package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/disintegration/imaging"
)

// createNoiseImage creates a deterministic noisy image; noise makes JPEG
// output size respond strongly to quality.
func createNoiseImage(width, height int) *image.NRGBA {
	rng := rand.New(rand.NewSource(42))
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.NRGBA{uint8(rng.Intn(256)), uint8(rng.Intn(256)), uint8(rng.Intn(256)), 255})
		}
	}
	return img
}

func TestEncoder_JPEGQualityAffectsSize(t *testing.T) {
	img := createNoiseImage(128, 128)
	enc := Encoder{}

	low, err := enc.Encode(img, 0.2, "jpeg")
	if err != nil {
		t.Fatalf("Encode low failed: %v", err)
	}
	high, err := enc.Encode(img, 0.95, "jpg")
	if err != nil {
		t.Fatalf("Encode high failed: %v", err)
	}

	if len(low) >= len(high) {
		t.Errorf("expected low quality to be smaller: low=%d high=%d", len(low), len(high))
	}
}

func TestEncoder_LosslessIgnoresQuality(t *testing.T) {
	img := createNoiseImage(32, 32)
	enc := Encoder{}

	for _, format := range []string{"png", "bmp", "tiff"} {
		t.Run(format, func(t *testing.T) {
			a, err := enc.Encode(img, 0.1, format)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			b, err := enc.Encode(img, 1.0, format)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if !bytes.Equal(a, b) {
				t.Errorf("%s output changed with quality", format)
			}
		})
	}
}

func TestEncoder_RoundTripDimensions(t *testing.T) {
	img := createNoiseImage(40, 30)
	enc := Encoder{}

	for _, format := range []string{"jpeg", "png", "gif", "bmp", "tif", ".PNG"} {
		t.Run(format, func(t *testing.T) {
			data, err := enc.Encode(img, 0.5, format)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			decoded, err := imaging.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if decoded.Bounds().Dx() != 40 || decoded.Bounds().Dy() != 30 {
				t.Errorf("dimensions: got %dx%d, want 40x30", decoded.Bounds().Dx(), decoded.Bounds().Dy())
			}
		})
	}
}

func TestEncoder_UnsupportedFormat(t *testing.T) {
	img := createNoiseImage(8, 8)

	for _, format := range []string{"webp", "bogus", ""} {
		_, err := Encoder{}.Encode(img, 0.5, format)
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("format %q: expected ErrUnsupportedFormat, got %v", format, err)
		}
	}
}

func TestEncoder_EmptyImage(t *testing.T) {
	_, err := Encoder{}.Encode(image.NewRGBA(image.Rect(0, 0, 0, 10)), 0.5, "png")
	if !errors.Is(err, ErrEmptyImage) {
		t.Errorf("expected ErrEmptyImage, got %v", err)
	}

	_, err = Encoder{}.Encode(nil, 0.5, "png")
	if !errors.Is(err, ErrEmptyImage) {
		t.Errorf("expected ErrEmptyImage for nil image, got %v", err)
	}
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"a.png", "png"},
		{"a.PNG", "png"},
		{"a.jpg", "jpeg"},
		{"a.jpeg", "jpeg"},
		{"a.gif", "gif"},
		{"a.tif", "tiff"},
		{"a.bmp", "bmp"},
		{"a.webp", "webp"},
		{"a.xyz", "unknown"},
		{"noext", "unknown"},
	}

	for _, tt := range tests {
		if got := FormatOf(tt.path); got != tt.want {
			t.Errorf("FormatOf(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestMimeTypeAndExtension(t *testing.T) {
	tests := []struct {
		format, mime, ext string
	}{
		{"jpeg", "image/jpeg", ".jpg"},
		{"JPG", "image/jpeg", ".jpg"},
		{"png", "image/png", ".png"},
		{"gif", "image/gif", ".gif"},
		{"tif", "image/tiff", ".tiff"},
		{"webp", "image/webp", ".webp"},
		{"bin", "application/octet-stream", ".bin"},
	}

	for _, tt := range tests {
		if got := MimeType(tt.format); got != tt.mime {
			t.Errorf("MimeType(%q) = %q, want %q", tt.format, got, tt.mime)
		}
		if got := Extension(tt.format); got != tt.ext {
			t.Errorf("Extension(%q) = %q, want %q", tt.format, got, tt.ext)
		}
	}
}
