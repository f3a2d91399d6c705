package ocr

import (
	"image"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/effect"

	"github.com/ironsheep/minitools-mcp/internal/imaging"
)

const (
	// DefaultLanguage is the Tesseract language code used when none is set.
	DefaultLanguage = "eng"

	// MinSide is the shorter-side length small images are upscaled to.
	MinSide = 300

	// Contrast is the bild contrast change applied after grayscale.
	Contrast = 0.5
)

// Recognizer extracts the text found in an image.
type Recognizer interface {
	RecognizeText(img image.Image) (string, error)
}

// WordRecognizer also reports where each recognized word sits.
type WordRecognizer interface {
	Recognizer
	Recognize(img image.Image) (*Result, error)
}

// Bounds represents a rectangular bounding box in pixel coordinates.
type Bounds struct {
	X1 int `json:"x1"` // Left edge
	Y1 int `json:"y1"` // Top edge
	X2 int `json:"x2"` // Right edge
	Y2 int `json:"y2"` // Bottom edge
}

// Add translates b by p.
func (b Bounds) Add(p image.Point) Bounds {
	return Bounds{X1: b.X1 + p.X, Y1: b.Y1 + p.Y, X2: b.X2 + p.X, Y2: b.Y2 + p.Y}
}

// Word is a recognized word with its location and confidence (0-1).
type Word struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Bounds     Bounds  `json:"bounds"`
}

// Result is the full output of a recognition pass.
type Result struct {
	Text  string `json:"text"`
	Words []Word `json:"words"`
}

// Preprocess prepares img for recognition: upscale when small, grayscale,
// then contrast. The returned scale is the integer upscale factor applied.
func Preprocess(img image.Image) (image.Image, int) {
	up := imaging.Upscale(img, MinSide)
	scale := 1
	if w := img.Bounds().Dx(); w > 0 {
		scale = up.Bounds().Dx() / w
	}
	gray := effect.Grayscale(up)
	return adjust.Contrast(gray, Contrast), scale
}

// unscale maps a box from preprocessed coordinates back to the source image.
func unscale(r image.Rectangle, scale int, origin image.Point) Bounds {
	if scale < 1 {
		scale = 1
	}
	return Bounds{
		X1: r.Min.X/scale + origin.X,
		Y1: r.Min.Y/scale + origin.Y,
		X2: r.Max.X/scale + origin.X,
		Y2: r.Max.Y/scale + origin.Y,
	}
}
