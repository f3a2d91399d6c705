package tools

import (
	"strings"

	"github.com/ironsheep/minitools-mcp/internal/compress"
	"github.com/ironsheep/minitools-mcp/internal/errs"
	"github.com/ironsheep/minitools-mcp/internal/imaging"
)

// FormatOriginal keeps the source file's format.
const FormatOriginal = "original"

// CompressDefaults fill in request fields left at their zero value.
type CompressDefaults struct {
	Quality      float64
	TargetSizeKB float64
	Format       string
	MaxWidth     int
	MaxHeight    int
}

// CompressRequest describes one compression. Zero fields take the defaults;
// a zero Quality therefore means "use the default", not quality 0.
// TargetSizeKB is the exception: nil takes the default and an explicit 0
// selects fixed-quality mode.
type CompressRequest struct {
	Path         string
	Quality      float64
	TargetSizeKB *float64
	Format       string
	MaxWidth     int
	MaxHeight    int
}

// CompressOutput is a compression result with its savings and final size.
type CompressOutput struct {
	*compress.Result
	Savings  compress.Savings `json:"savings"`
	Width    int              `json:"width"`
	Height   int              `json:"height"`
	MimeType string           `json:"mime_type"`
}

// CompressTool loads, resizes and re-encodes image files.
type CompressTool struct {
	cache      *imaging.ImageCache
	compressor *compress.Compressor
	defaults   CompressDefaults
}

// NewCompressTool creates a CompressTool encoding through imaging.Encoder.
func NewCompressTool(cache *imaging.ImageCache, defaults CompressDefaults) *CompressTool {
	if defaults.Format == "" {
		defaults.Format = FormatOriginal
	}
	return &CompressTool{
		cache:      cache,
		compressor: compress.New(imaging.Encoder{}),
		defaults:   defaults,
	}
}

// Compress runs req against the file at req.Path.
func (t *CompressTool) Compress(req CompressRequest) (*CompressOutput, error) {
	if req.Path == "" {
		return nil, errs.Invalid("tools.compress", "path is required")
	}
	req = t.withDefaults(req)

	img, stat, err := t.cache.LoadFile(req.Path)
	if err != nil {
		return nil, err
	}

	img = imaging.Fit(img, req.MaxWidth, req.MaxHeight)
	format := resolveFormat(req.Format, req.Path)

	res, err := t.compressor.Compress(img, compress.Options{
		Quality:      req.Quality,
		TargetSizeKB: *req.TargetSizeKB,
		Format:       format,
	})
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	return &CompressOutput{
		Result:   res,
		Savings:  compress.Stats(stat.Size(), res),
		Width:    b.Dx(),
		Height:   b.Dy(),
		MimeType: imaging.MimeType(format),
	}, nil
}

func (t *CompressTool) withDefaults(req CompressRequest) CompressRequest {
	if req.Quality == 0 {
		req.Quality = t.defaults.Quality
	}
	if req.TargetSizeKB == nil {
		target := t.defaults.TargetSizeKB
		req.TargetSizeKB = &target
	}
	if req.Format == "" {
		req.Format = t.defaults.Format
	}
	if req.MaxWidth == 0 {
		req.MaxWidth = t.defaults.MaxWidth
	}
	if req.MaxHeight == 0 {
		req.MaxHeight = t.defaults.MaxHeight
	}
	return req
}

// resolveFormat maps "original" to the format of path.
func resolveFormat(format, path string) string {
	if strings.EqualFold(format, FormatOriginal) {
		return imaging.FormatOf(path)
	}
	return strings.ToLower(format)
}
