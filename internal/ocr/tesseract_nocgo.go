//go:build !cgo

package ocr

import (
	"image"

	"github.com/ironsheep/minitools-mcp/internal/errs"
)

// Tesseract is unavailable in builds without cgo.
type Tesseract struct {
	Language       string
	TessdataPrefix string
}

// NewTesseract returns a recognizer that always reports errs.ErrUnavailable.
func NewTesseract(language string) *Tesseract {
	return &Tesseract{Language: language}
}

// RecognizeText always fails with errs.ErrUnavailable.
func (t *Tesseract) RecognizeText(image.Image) (string, error) {
	return "", errs.Unavailable("ocr.RecognizeText", "built without cgo; tesseract is not linked")
}

// Recognize always fails with errs.ErrUnavailable.
func (t *Tesseract) Recognize(image.Image) (*Result, error) {
	return nil, errs.Unavailable("ocr.Recognize", "built without cgo; tesseract is not linked")
}
