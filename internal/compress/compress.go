package compress

import (
	"fmt"
	"image"
	"math"

	"github.com/ironsheep/minitools-mcp/internal/errs"
)

// Search bounds and termination thresholds.
const (
	MinQuality       = 0.1
	MaxQuality       = 1.0
	ToleranceKB      = 5.0
	MinIntervalWidth = 0.05
)

// Encoder encodes an image at a quality in [0, 1] in the named format.
type Encoder interface {
	Encode(img image.Image, quality float64, format string) ([]byte, error)
}

// EncoderFunc adapts a function to the Encoder interface.
type EncoderFunc func(img image.Image, quality float64, format string) ([]byte, error)

// Encode calls f.
func (f EncoderFunc) Encode(img image.Image, quality float64, format string) ([]byte, error) {
	return f(img, quality, format)
}

// Options selects the compression mode.
type Options struct {
	// Quality is used in fixed-quality mode, in [0, 1].
	Quality float64
	// TargetSizeKB enables target-size mode when positive. Zero means none.
	TargetSizeKB float64
	// Format is the output format name passed to the encoder (e.g. "jpeg").
	Format string
}

// Result is a single compression outcome.
type Result struct {
	Bytes    []byte  `json:"-"`
	SizeKB   float64 `json:"size_kb"`
	Quality  float64 `json:"quality"`
	Format   string  `json:"format"`
	Attempts int     `json:"attempts"` // encoder calls made
}

// FailedError reports an encoder failure at a specific quality.
type FailedError struct {
	Quality float64
	Format  string
	Err     error
}

func (e *FailedError) Error() string {
	return fmt.Sprintf("compression failed at quality %.3f (%s): %v", e.Quality, e.Format, e.Err)
}

// Unwrap returns the encoder's error.
func (e *FailedError) Unwrap() error {
	return e.Err
}

// Is matches errs.ErrEncodeFailure.
func (e *FailedError) Is(target error) bool {
	return target == errs.ErrEncodeFailure
}

// Compressor drives an Encoder. It keeps no state between calls.
type Compressor struct {
	enc Encoder
}

// New creates a Compressor that encodes with enc.
func New(enc Encoder) *Compressor {
	return &Compressor{enc: enc}
}

// Compress encodes img according to opts.
//
// Parameters:
//   - img: decoded source image (must not be nil)
//   - opts: fixed quality, or a positive TargetSizeKB for target-size mode
//
// Returns the chosen encoding. Invalid options return an
// errs.ErrInvalidInput error; encoder failures return *FailedError.
func (c *Compressor) Compress(img image.Image, opts Options) (*Result, error) {
	if err := validate(img, opts); err != nil {
		return nil, err
	}

	if opts.TargetSizeKB == 0 {
		res, err := c.encode(img, opts.Quality, opts.Format)
		if err != nil {
			return nil, err
		}
		res.Attempts = 1
		return res, nil
	}
	return c.search(img, opts.TargetSizeKB, opts.Format)
}

func validate(img image.Image, opts Options) error {
	const op = "compress"

	switch {
	case img == nil:
		return errs.Invalid(op, "image is required")
	case math.IsNaN(opts.Quality) || opts.Quality < 0 || opts.Quality > 1:
		return errs.Invalid(op, "quality must be between 0 and 1, got %v", opts.Quality)
	case math.IsNaN(opts.TargetSizeKB) || math.IsInf(opts.TargetSizeKB, 0) || opts.TargetSizeKB < 0:
		return errs.Invalid(op, "target size must be a non-negative number of KB, got %v", opts.TargetSizeKB)
	case opts.Format == "":
		return errs.Invalid(op, "output format is required")
	}
	return nil
}

// search runs the satisficing binary search over quality.
func (c *Compressor) search(img image.Image, targetKB float64, format string) (*Result, error) {
	lo, hi := MinQuality, MaxQuality

	for attempts := 1; ; attempts++ {
		mid := (lo + hi) / 2
		res, err := c.encode(img, mid, format)
		if err != nil {
			return nil, err
		}
		res.Attempts = attempts

		if math.Abs(res.SizeKB-targetKB) < ToleranceKB || hi-lo < MinIntervalWidth {
			return res, nil
		}
		if res.SizeKB > targetKB {
			hi = mid
		} else {
			lo = mid
		}
	}
}

func (c *Compressor) encode(img image.Image, quality float64, format string) (*Result, error) {
	data, err := c.enc.Encode(img, quality, format)
	if err != nil {
		return nil, &FailedError{Quality: quality, Format: format, Err: err}
	}
	return &Result{
		Bytes:   data,
		SizeKB:  float64(len(data)) / 1024,
		Quality: quality,
		Format:  format,
	}, nil
}

// Savings summarizes a compression against the original file size.
type Savings struct {
	OriginalKB   float64 `json:"original_kb"`
	CompressedKB float64 `json:"compressed_kb"`
	SavedKB      float64 `json:"saved_kb"`
	SavedPercent float64 `json:"saved_percent"` // negative when the output grew
}

// Stats compares a result to the original size in bytes.
func Stats(originalBytes int64, r *Result) Savings {
	s := Savings{
		OriginalKB:   float64(originalBytes) / 1024,
		CompressedKB: r.SizeKB,
	}
	s.SavedKB = s.OriginalKB - s.CompressedKB
	if s.OriginalKB > 0 {
		s.SavedPercent = s.SavedKB / s.OriginalKB * 100
	}
	return s
}
