package compress

import (
	"errors"
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/minitools-mcp/internal/errs"
)

// recordingEncoder returns sizeKB(quality) KB of zeros and records each call.
type recordingEncoder struct {
	sizeKB    func(q float64) float64
	err       error
	qualities []float64
	formats   []string
}

func (e *recordingEncoder) Encode(img image.Image, quality float64, format string) ([]byte, error) {
	e.qualities = append(e.qualities, quality)
	e.formats = append(e.formats, format)
	if e.err != nil {
		return nil, e.err
	}
	return make([]byte, int(e.sizeKB(quality)*1024)), nil
}

func linear(q float64) float64 { return q * 1000 }

func testImage() image.Image {
	return image.NewRGBA(image.Rect(0, 0, 4, 4))
}

func TestCompress_ConvergesOnTarget(t *testing.T) {
	enc := &recordingEncoder{sizeKB: linear}

	res, err := New(enc).Compress(testImage(), Options{TargetSizeKB: 300, Format: "jpeg"})
	require.NoError(t, err)

	assert.InDelta(t, 300, res.SizeKB, ToleranceKB)
	assert.GreaterOrEqual(t, res.Quality, MinQuality)
	assert.LessOrEqual(t, res.Quality, MaxQuality)
	assert.Equal(t, len(enc.qualities), res.Attempts)
	assert.Equal(t, "jpeg", res.Format)

	// mid points: .55 -> .325 -> .2125 -> .26875 -> .296875
	assert.InDeltaSlice(t, []float64{0.55, 0.325, 0.2125, 0.26875, 0.296875}, enc.qualities, 1e-12)
	assert.InDelta(t, 0.296875, res.Quality, 1e-12)
}

func TestCompress_TargetsAcrossRange(t *testing.T) {
	for _, target := range []float64{120, 200, 450, 700, 950} {
		enc := &recordingEncoder{sizeKB: linear}
		res, err := New(enc).Compress(testImage(), Options{TargetSizeKB: target, Format: "jpeg"})
		require.NoError(t, err)

		assert.LessOrEqual(t, res.Attempts, 6, "target %v", target)
		assert.GreaterOrEqual(t, res.Quality, MinQuality)
		assert.LessOrEqual(t, res.Quality, MaxQuality)
	}
}

func TestCompress_UnreachableTargetStopsOnWidth(t *testing.T) {
	// Even the lowest quality is far above the target.
	enc := &recordingEncoder{sizeKB: func(q float64) float64 { return 5000 + q }}

	res, err := New(enc).Compress(testImage(), Options{TargetSizeKB: 10, Format: "jpeg"})
	require.NoError(t, err)
	assert.Equal(t, 6, res.Attempts)
	assert.Less(t, res.Quality, 0.15)
}

func TestCompress_QualityIndependentSizeRunsFullSearch(t *testing.T) {
	// Lossless encoders ignore quality, so only the interval width ends the search.
	enc := &recordingEncoder{sizeKB: func(float64) float64 { return 400 }}

	res, err := New(enc).Compress(testImage(), Options{TargetSizeKB: 100, Format: "png"})
	require.NoError(t, err)
	assert.Equal(t, 6, res.Attempts)
	assert.Len(t, enc.qualities, 6)
	assert.InDelta(t, 0.1140625, res.Quality, 1e-12)
}

func TestCompress_NonMonotonicEncoderTerminates(t *testing.T) {
	enc := &recordingEncoder{sizeKB: func(q float64) float64 {
		return 500 + 400*math.Sin(q*40)
	}}

	res, err := New(enc).Compress(testImage(), Options{TargetSizeKB: 1, Format: "jpeg"})
	require.NoError(t, err)
	assert.LessOrEqual(t, res.Attempts, 6)
}

func TestCompress_FixedQualitySingleCall(t *testing.T) {
	enc := &recordingEncoder{sizeKB: linear}

	res, err := New(enc).Compress(testImage(), Options{Quality: 0.8, Format: "webp"})
	require.NoError(t, err)

	assert.Equal(t, []float64{0.8}, enc.qualities)
	assert.Equal(t, []string{"webp"}, enc.formats)
	assert.Equal(t, 1, res.Attempts)
	assert.Equal(t, 0.8, res.Quality)
	assert.InDelta(t, 800, res.SizeKB, 1.0/1024)
}

func TestCompress_EncoderFailureNotRetried(t *testing.T) {
	cause := errors.New("unsupported format")
	enc := &recordingEncoder{err: cause}

	_, err := New(enc).Compress(testImage(), Options{TargetSizeKB: 300, Format: "bogus"})
	require.Error(t, err)

	assert.Len(t, enc.qualities, 1)
	assert.ErrorIs(t, err, errs.ErrEncodeFailure)
	assert.ErrorIs(t, err, cause)

	var failed *FailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, 0.55, failed.Quality)
	assert.Equal(t, "bogus", failed.Format)
}

func TestCompress_InvalidOptions(t *testing.T) {
	enc := &recordingEncoder{sizeKB: linear}
	c := New(enc)

	tests := []struct {
		name string
		img  image.Image
		opts Options
	}{
		{"nil image", nil, Options{Quality: 0.5, Format: "jpeg"}},
		{"quality above one", testImage(), Options{Quality: 1.5, Format: "jpeg"}},
		{"negative quality", testImage(), Options{Quality: -0.1, Format: "jpeg"}},
		{"NaN quality", testImage(), Options{Quality: math.NaN(), Format: "jpeg"}},
		{"negative target", testImage(), Options{TargetSizeKB: -10, Format: "jpeg"}},
		{"infinite target", testImage(), Options{TargetSizeKB: math.Inf(1), Format: "jpeg"}},
		{"missing format", testImage(), Options{Quality: 0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Compress(tt.img, tt.opts)
			assert.ErrorIs(t, err, errs.ErrInvalidInput)
		})
	}
	assert.Empty(t, enc.qualities)
}

func TestEncoderFunc(t *testing.T) {
	called := false
	enc := EncoderFunc(func(img image.Image, q float64, f string) ([]byte, error) {
		called = true
		return []byte{1, 2, 3}, nil
	})

	res, err := New(enc).Compress(testImage(), Options{Quality: 0.5, Format: "png"})
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, []byte{1, 2, 3}, res.Bytes)
}

func TestStats(t *testing.T) {
	s := Stats(2048*1024, &Result{SizeKB: 512})
	assert.Equal(t, 2048.0, s.OriginalKB)
	assert.Equal(t, 512.0, s.CompressedKB)
	assert.Equal(t, 1536.0, s.SavedKB)
	assert.Equal(t, 75.0, s.SavedPercent)

	grew := Stats(1024, &Result{SizeKB: 2})
	assert.Equal(t, -100.0, grew.SavedPercent)

	empty := Stats(0, &Result{SizeKB: 1})
	assert.Equal(t, 0.0, empty.SavedPercent)
}
