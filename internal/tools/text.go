package tools

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/google/uuid"

	"github.com/ironsheep/minitools-mcp/internal/errs"
	"github.com/ironsheep/minitools-mcp/internal/history"
	"github.com/ironsheep/minitools-mcp/internal/imaging"
	"github.com/ironsheep/minitools-mcp/internal/ocr"
	"github.com/ironsheep/minitools-mcp/internal/textstats"
)

const (
	// TextHistoryKey is the store key for recently analyzed texts.
	TextHistoryKey = "textHistory"

	// TextHistoryMinWords is the word count a text must exceed to be remembered.
	TextHistoryMinWords = 10

	// PreviewLength is the rune length of a remembered text's preview.
	PreviewLength = 100
)

// TextEntry is one remembered text.
type TextEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Preview   string    `json:"preview"`
	WordCount int       `json:"wordCount"`
}

// TextAnalysis is the outcome of Analyze.
type TextAnalysis struct {
	textstats.Stats
	Tidied   string `json:"tidied,omitempty"`
	Recorded bool   `json:"recorded"`
}

// TextTool analyzes text and extracts text from images.
type TextTool struct {
	history    *history.List[TextEntry]
	recognizer ocr.Recognizer
	cache      *imaging.ImageCache
	now        func() time.Time
}

// NewTextTool creates a TextTool. recognizer may be nil, in which case
// Recognize reports errs.ErrUnavailable.
func NewTextTool(store history.Store, limit int, recognizer ocr.Recognizer, cache *imaging.ImageCache) *TextTool {
	return &TextTool{
		history:    history.NewList[TextEntry](store, TextHistoryKey, limit, samePreview),
		recognizer: recognizer,
		cache:      cache,
		now:        time.Now,
	}
}

func samePreview(a, b TextEntry) bool {
	return a.Preview == b.Preview
}

// Analyze computes statistics for text. Texts longer than
// TextHistoryMinWords words are remembered; when tidy is set the tidied
// text is returned as well.
func (t *TextTool) Analyze(ctx context.Context, text string, tidy bool) (*TextAnalysis, error) {
	out := &TextAnalysis{Stats: textstats.Analyze(text)}
	if tidy {
		out.Tidied = textstats.Tidy(text)
	}
	if out.Words <= TextHistoryMinWords {
		return out, nil
	}

	entry := TextEntry{
		ID:        uuid.NewString(),
		Timestamp: t.now().UTC(),
		Preview:   textstats.Preview(text, PreviewLength),
		WordCount: out.Words,
	}
	if _, err := t.history.Push(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to record text history: %w", err)
	}
	out.Recorded = true
	return out, nil
}

// History returns recently analyzed texts, newest first.
func (t *TextTool) History(ctx context.Context) ([]TextEntry, error) {
	return t.history.Get(ctx)
}

// Recognize extracts text from the image at path. Word boxes are included
// when words is set and the recognizer can report them. A non-empty region
// names the part of the image to read (see imaging.RegionNames); word boxes
// stay in whole-image coordinates.
func (t *TextTool) Recognize(path string, words bool, region string) (*ocr.Result, error) {
	if t.recognizer == nil {
		return nil, errs.Unavailable("tools.ocr", "no text recognizer configured")
	}
	if path == "" {
		return nil, errs.Invalid("tools.ocr", "path is required")
	}

	img, err := t.cache.Load(path)
	if err != nil {
		return nil, err
	}

	var offset image.Point
	if region != "" {
		r, err := imaging.NamedRegion(img.Bounds(), region)
		if err != nil {
			return nil, err
		}
		if img, err = imaging.Crop(img, r); err != nil {
			return nil, err
		}
		offset = r.Min
	}

	if wr, ok := t.recognizer.(ocr.WordRecognizer); ok && words {
		res, err := wr.Recognize(img)
		if err != nil {
			return nil, err
		}
		for i := range res.Words {
			res.Words[i].Bounds = res.Words[i].Bounds.Add(offset)
		}
		return res, nil
	}
	text, err := t.recognizer.RecognizeText(img)
	if err != nil {
		return nil, err
	}
	return &ocr.Result{Text: text, Words: []ocr.Word{}}, nil
}
