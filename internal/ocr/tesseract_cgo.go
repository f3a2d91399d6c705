//go:build cgo

package ocr

import (
	"fmt"
	"image"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/ironsheep/minitools-mcp/internal/errs"
	"github.com/ironsheep/minitools-mcp/internal/imaging"
)

// Tesseract is a Recognizer backed by the system Tesseract install.
// A zero value recognizes English using the default tessdata location.
type Tesseract struct {
	Language       string
	TessdataPrefix string
}

// NewTesseract returns a recognizer for the given Tesseract language code.
func NewTesseract(language string) *Tesseract {
	return &Tesseract{Language: language}
}

// RecognizeText returns the text found in img, trimmed of surrounding whitespace.
func (t *Tesseract) RecognizeText(img image.Image) (string, error) {
	res, err := t.recognize(img, false)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

// Recognize returns the text found in img along with word bounding boxes.
// If box extraction fails the text is still returned with no words.
func (t *Tesseract) Recognize(img image.Image) (*Result, error) {
	return t.recognize(img, true)
}

func (t *Tesseract) recognize(img image.Image, withWords bool) (*Result, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, errs.Invalid("ocr.Recognize", "image has no pixels")
	}

	prepared, scale := Preprocess(img)
	data, err := imaging.Encoder{}.Encode(prepared, 1, "png")
	if err != nil {
		return nil, fmt.Errorf("failed to encode image for OCR: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if t.TessdataPrefix != "" {
		if err := client.SetTessdataPrefix(t.TessdataPrefix); err != nil {
			return nil, fmt.Errorf("failed to set tessdata path: %w", err)
		}
	}
	if err := client.SetLanguage(t.language()); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImageFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	res := &Result{Text: strings.TrimSpace(text), Words: []Word{}}
	if !withWords {
		return res, nil
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return res, nil
	}
	origin := img.Bounds().Min
	for _, box := range boxes {
		if strings.TrimSpace(box.Word) == "" {
			continue
		}
		res.Words = append(res.Words, Word{
			Text:       box.Word,
			Confidence: box.Confidence / 100.0,
			Bounds:     unscale(box.Box, scale, origin),
		})
	}
	return res, nil
}

func (t *Tesseract) language() string {
	if t.Language == "" {
		return DefaultLanguage
	}
	return t.Language
}
