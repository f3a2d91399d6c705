package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/ironsheep/minitools-mcp/internal/errs"
	"github.com/ironsheep/minitools-mcp/internal/history"
	"github.com/ironsheep/minitools-mcp/internal/textfmt"
	"github.com/ironsheep/minitools-mcp/internal/textstats"
)

const (
	// Base64HistoryKey is the store key for recent Base64 conversions.
	Base64HistoryKey = "base64History"

	// Base64PreviewLength is the rune length of remembered inputs and outputs.
	Base64PreviewLength = 50

	// MaxBase64FileBytes is the largest file Convert reads.
	MaxBase64FileBytes = 32 << 20
)

// Conversion directions and source types.
const (
	DirectionEncode = "encode"
	DirectionDecode = "decode"
	SourceText      = "text"
	SourceFile      = "file"
)

// Base64Record is one remembered conversion.
type Base64Record struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Input     string    `json:"input"`
	Output    string    `json:"output"`
	Direction string    `json:"direction"`
	Type      string    `json:"type"`
}

// Base64Request describes one conversion. Exactly one of Text and Path is
// the source. Results are written to OutputPath when it is set; decoded
// data that is not UTF-8 text can only be written to a file.
type Base64Request struct {
	Text       string
	Path       string
	OutputPath string
	Decode     bool
	URLSafe    bool
}

// Base64Result is the outcome of Convert.
type Base64Result struct {
	Output     string `json:"output,omitempty"`
	OutputPath string `json:"output_path,omitempty"`
	Bytes      int    `json:"bytes"` // length of the converted output
	Direction  string `json:"direction"`
	Type       string `json:"type"`
}

// Base64Tool converts text and files to and from Base64.
type Base64Tool struct {
	history *history.List[Base64Record]
	now     func() time.Time
}

// NewBase64Tool creates a Base64Tool keeping up to limit records in store.
func NewBase64Tool(store history.Store, limit int) *Base64Tool {
	return &Base64Tool{
		history: history.NewList[Base64Record](store, Base64HistoryKey, limit, nil),
		now:     time.Now,
	}
}

// Convert encodes or decodes req and records the conversion.
func (t *Base64Tool) Convert(ctx context.Context, req Base64Request) (*Base64Result, error) {
	const op = "tools.base64"

	var (
		input  []byte
		source = SourceText
		label  = req.Text
	)
	switch {
	case req.Text != "" && req.Path != "":
		return nil, errs.Invalid(op, "give either text or path, not both")
	case req.Path != "":
		data, err := readLimited(req.Path)
		if err != nil {
			return nil, err
		}
		input, source, label = data, SourceFile, filepath.Base(req.Path)
	case req.Text != "":
		input = []byte(req.Text)
	default:
		return nil, errs.Invalid(op, "text or path is required")
	}

	res := &Base64Result{Direction: DirectionEncode, Type: source}
	var output []byte
	if req.Decode {
		res.Direction = DirectionDecode
		var err error
		if req.OutputPath != "" {
			output, err = textfmt.DecodeBase64(string(input), req.URLSafe)
		} else {
			var text string
			text, err = textfmt.DecodeBase64Text(string(input), req.URLSafe)
			output = []byte(text)
		}
		if err != nil {
			return nil, err
		}
	} else {
		output = []byte(textfmt.EncodeBase64(input, req.URLSafe))
	}
	res.Bytes = len(output)

	var preview string
	if req.OutputPath != "" {
		if err := os.WriteFile(req.OutputPath, output, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write output: %w", err)
		}
		res.OutputPath = req.OutputPath
		preview = filepath.Base(req.OutputPath)
	} else {
		res.Output = string(output)
		preview = textstats.Preview(res.Output, Base64PreviewLength)
	}

	rec := Base64Record{
		ID:        uuid.NewString(),
		Timestamp: t.now().UTC(),
		Input:     textstats.Preview(label, Base64PreviewLength),
		Output:    preview,
		Direction: res.Direction,
		Type:      source,
	}
	if _, err := t.history.Push(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to record base64 history: %w", err)
	}
	return res, nil
}

// History returns recent conversions, newest first.
func (t *Base64Tool) History(ctx context.Context) ([]Base64Record, error) {
	return t.history.Get(ctx)
}

// Clear removes all remembered conversions.
func (t *Base64Tool) Clear(ctx context.Context) error {
	return t.history.Clear(ctx)
}

func readLimited(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, errs.Invalid("tools.base64", "%s is a directory", path)
	}
	if info.Size() > MaxBase64FileBytes {
		return nil, errs.Invalid("tools.base64", "%s is larger than %d bytes", path, MaxBase64FileBytes)
	}
	return os.ReadFile(path)
}
