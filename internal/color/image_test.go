package color

import (
	"errors"
	"image"
	stdcolor "image/color"
	"testing"

	"github.com/ironsheep/minitools-mcp/internal/errs"
)

// solidImage creates an in-memory image filled with a single color.
func solidImage(width, height int, c stdcolor.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// quadrantImage creates an image with red, green, blue and white quadrants.
func quadrantImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c stdcolor.Color
			switch {
			case x < width/2 && y < height/2:
				c = stdcolor.RGBA{255, 0, 0, 255}
			case x >= width/2 && y < height/2:
				c = stdcolor.RGBA{0, 255, 0, 255}
			case x < width/2:
				c = stdcolor.RGBA{0, 0, 255, 255}
			default:
				c = stdcolor.RGBA{255, 255, 255, 255}
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func TestSampleAt(t *testing.T) {
	img := solidImage(100, 100, stdcolor.RGBA{255, 128, 64, 255})

	result, err := SampleAt(img, 50, 50)
	if err != nil {
		t.Fatalf("SampleAt failed: %v", err)
	}

	if result.Hex != "#ff8040" {
		t.Errorf("Hex: got %s, want #ff8040", result.Hex)
	}
	if result.RGB != (RGB{255, 128, 64}) {
		t.Errorf("RGB: got %+v, want (255,128,64)", result.RGB)
	}
	if result.RGBA != (RGBA{255, 128, 64, 255}) {
		t.Errorf("RGBA: got %+v, want (255,128,64,255)", result.RGBA)
	}
	if result.HSL != (HSL{20, 100, 63}) {
		t.Errorf("HSL: got %+v, want {20 100 63}", result.HSL)
	}
}

func TestSampleAt_OutOfBounds(t *testing.T) {
	img := solidImage(100, 100, stdcolor.RGBA{255, 0, 0, 255})

	tests := []struct {
		name string
		x, y int
	}{
		{"negative x", -1, 50},
		{"negative y", 50, -1},
		{"x too large", 100, 50},
		{"y too large", 50, 100},
		{"both too large", 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := SampleAt(img, tt.x, tt.y); !errors.Is(err, errs.ErrInvalidInput) {
				t.Errorf("SampleAt should fail with ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestSampleAt_EdgeCoordinates(t *testing.T) {
	img := solidImage(100, 100, stdcolor.RGBA{255, 0, 0, 255})

	for _, p := range [][2]int{{0, 0}, {99, 0}, {0, 99}, {99, 99}} {
		if _, err := SampleAt(img, p[0], p[1]); err != nil {
			t.Errorf("SampleAt failed for valid edge coordinate (%d,%d): %v", p[0], p[1], err)
		}
	}
}

func TestSampleMulti(t *testing.T) {
	img := quadrantImage(100, 100)

	points := []LabeledPoint{
		{X: 25, Y: 25, Label: "red"},
		{X: 75, Y: 25, Label: "green"},
		{X: 25, Y: 75, Label: "blue"},
		{X: 75, Y: 75, Label: "white"},
	}

	result, err := SampleMulti(img, points)
	if err != nil {
		t.Fatalf("SampleMulti failed: %v", err)
	}
	if len(result.Samples) != 4 {
		t.Fatalf("expected 4 samples, got %d", len(result.Samples))
	}

	expectedHex := []string{"#ff0000", "#00ff00", "#0000ff", "#ffffff"}
	for i, sample := range result.Samples {
		if sample.Label != points[i].Label {
			t.Errorf("sample %d label: got %s, want %s", i, sample.Label, points[i].Label)
		}
		if sample.Color.Hex != expectedHex[i] {
			t.Errorf("sample %d (%s) hex: got %s, want %s", i, sample.Label, sample.Color.Hex, expectedHex[i])
		}
	}
}

func TestSampleMulti_OutOfBounds(t *testing.T) {
	img := solidImage(100, 100, stdcolor.RGBA{255, 0, 0, 255})

	points := []LabeledPoint{
		{X: 50, Y: 50, Label: "valid"},
		{X: 200, Y: 50, Label: "invalid"},
	}

	if _, err := SampleMulti(img, points); err == nil {
		t.Error("SampleMulti should fail when any point is out of bounds")
	}
}

func TestDominant(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			if x < 80 {
				img.Set(x, y, stdcolor.RGBA{255, 0, 0, 255})
			} else {
				img.Set(x, y, stdcolor.RGBA{0, 255, 0, 255})
			}
		}
	}

	result, err := Dominant(img, 5, nil)
	if err != nil {
		t.Fatalf("Dominant failed: %v", err)
	}
	if len(result.Colors) != 2 {
		t.Fatalf("expected 2 colors, got %d", len(result.Colors))
	}

	// 255 quantizes down to 240.
	if result.Colors[0].Hex != "#f00000" || result.Colors[0].Percentage != 80 {
		t.Errorf("first color: got %s %.1f%%, want #f00000 80%%", result.Colors[0].Hex, result.Colors[0].Percentage)
	}
	if result.Colors[1].Hex != "#00f000" || result.Colors[1].Percentage != 20 {
		t.Errorf("second color: got %s %.1f%%, want #00f000 20%%", result.Colors[1].Hex, result.Colors[1].Percentage)
	}
}

func TestDominant_WithRegion(t *testing.T) {
	img := quadrantImage(100, 100)

	result, err := Dominant(img, 5, &Region{X1: 0, Y1: 0, X2: 50, Y2: 50})
	if err != nil {
		t.Fatalf("Dominant with region failed: %v", err)
	}
	if len(result.Colors) != 1 || result.Colors[0].Percentage != 100 {
		t.Fatalf("expected only red in top-left region, got %+v", result.Colors)
	}
}

func TestDominant_RegionOutsideImage(t *testing.T) {
	img := solidImage(10, 10, stdcolor.RGBA{0, 0, 0, 255})

	result, err := Dominant(img, 3, &Region{X1: 20, Y1: 20, X2: 30, Y2: 30})
	if err != nil {
		t.Fatalf("Dominant failed: %v", err)
	}
	if len(result.Colors) != 0 {
		t.Errorf("expected no colors, got %d", len(result.Colors))
	}
}

func TestDominant_CountLimitsAndTies(t *testing.T) {
	img := quadrantImage(100, 100)

	result, err := Dominant(img, 2, nil)
	if err != nil {
		t.Fatalf("Dominant failed: %v", err)
	}
	if len(result.Colors) != 2 {
		t.Fatalf("expected 2 colors, got %d", len(result.Colors))
	}
	// All four quadrants tie at 25%, so order falls back to hex.
	if result.Colors[0].Hex != "#0000f0" || result.Colors[1].Hex != "#00f000" {
		t.Errorf("unexpected tie order: %s, %s", result.Colors[0].Hex, result.Colors[1].Hex)
	}
}

func TestDominant_InvalidCount(t *testing.T) {
	img := solidImage(10, 10, stdcolor.RGBA{0, 0, 0, 255})
	if _, err := Dominant(img, 0, nil); !errors.Is(err, errs.ErrInvalidInput) {
		t.Errorf("Dominant should reject a zero count with ErrInvalidInput, got %v", err)
	}
}
