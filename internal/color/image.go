package color

import (
	"fmt"
	"image"
	"sort"

	"github.com/ironsheep/minitools-mcp/internal/errs"
)

// Sample contains a pixel's color in multiple representations.
type Sample struct {
	Hex  string `json:"hex"`  // Canonical "#rrggbb" (no alpha)
	RGB  RGB    `json:"rgb"`  // RGB components
	RGBA RGBA   `json:"rgba"` // RGBA components with alpha
	HSL  HSL    `json:"hsl"`  // HSL representation
}

// SampleAt extracts the color value at a specific pixel coordinate.
//
// Coordinates are 0-based with origin at the top-left of the image bounds.
// For 16-bit images, components are scaled down by right-shifting 8 bits.
// The Hex field excludes alpha; use RGBA.A for transparency.
func SampleAt(img image.Image, x, y int) (*Sample, error) {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return nil, errs.Invalid("color.SampleAt", "coordinates (%d,%d) outside image bounds", x, y)
	}

	r, g, b, a := img.At(x, y).RGBA()
	r8, g8, b8, a8 := uint8(r>>8), uint8(g>>8), uint8(b>>8), uint8(a>>8)

	return &Sample{
		Hex:  RGBToHex(r8, g8, b8),
		RGB:  RGB{R: r8, G: g8, B: b8},
		RGBA: RGBA{R: r8, G: g8, B: b8, A: a8},
		HSL:  RGBToHSL(r8, g8, b8),
	}, nil
}

// LabeledPoint is a pixel coordinate with an optional label such as
// "button_background".
type LabeledPoint struct {
	X     int
	Y     int
	Label string
}

// LabeledSample combines a color sample with its location and label.
type LabeledSample struct {
	Label string `json:"label,omitempty"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Color Sample `json:"color"`
}

// MultiSampleResult contains samples in the same order as the input points.
type MultiSampleResult struct {
	Samples []LabeledSample `json:"samples"`
}

// SampleMulti samples several points in one call. If any point is out of
// bounds the whole call fails and no partial results are returned.
func SampleMulti(img image.Image, points []LabeledPoint) (*MultiSampleResult, error) {
	results := make([]LabeledSample, 0, len(points))

	for _, p := range points {
		s, err := SampleAt(img, p.X, p.Y)
		if err != nil {
			return nil, fmt.Errorf("failed to sample point (%d,%d): %w", p.X, p.Y, err)
		}
		results = append(results, LabeledSample{Label: p.Label, X: p.X, Y: p.Y, Color: *s})
	}

	return &MultiSampleResult{Samples: results}, nil
}

// Region is a rectangle inside an image; (X1,Y1) inclusive, (X2,Y2) exclusive.
type Region struct {
	X1 int
	Y1 int
	X2 int
	Y2 int
}

// Frequency is a quantized color and its share of the analyzed pixels.
type Frequency struct {
	Hex        string  `json:"hex"`
	Percentage float64 `json:"percentage"` // 0-100
	RGB        RGB     `json:"rgb"`
}

// DominantResult lists colors by frequency, most common first.
type DominantResult struct {
	Colors []Frequency `json:"colors"`
}

// Dominant extracts the count most common colors from an image or region.
//
// Components are quantized to multiples of 16 before counting, so colors
// within 16 units per component are grouped together. A nil region analyzes
// the whole image; a region is intersected with the image bounds. Ties are
// broken by hex value so results are stable.
func Dominant(img image.Image, count int, region *Region) (*DominantResult, error) {
	if count <= 0 {
		return nil, errs.Invalid("color.Dominant", "count must be positive, got %d", count)
	}

	bounds := img.Bounds()
	if region != nil {
		bounds = image.Rect(region.X1, region.Y1, region.X2, region.Y2).Intersect(bounds)
	}
	if bounds.Empty() {
		return &DominantResult{Colors: []Frequency{}}, nil
	}

	counts := make(map[RGB]int)
	total := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			key := RGB{
				R: uint8((r >> 8) / 16 * 16),
				G: uint8((g >> 8) / 16 * 16),
				B: uint8((b >> 8) / 16 * 16),
			}
			counts[key]++
			total++
		}
	}

	colors := make([]Frequency, 0, len(counts))
	for rgb, n := range counts {
		colors = append(colors, Frequency{
			Hex:        RGBToHex(rgb.R, rgb.G, rgb.B),
			Percentage: float64(n) / float64(total) * 100,
			RGB:        rgb,
		})
	}

	sort.Slice(colors, func(i, j int) bool {
		if colors[i].Percentage != colors[j].Percentage {
			return colors[i].Percentage > colors[j].Percentage
		}
		return colors[i].Hex < colors[j].Hex
	})

	if len(colors) > count {
		colors = colors[:count]
	}
	return &DominantResult{Colors: colors}, nil
}
