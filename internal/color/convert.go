package color

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/minitools-mcp/internal/errs"
)

// RGB represents an RGB color with 8-bit components.
type RGB struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// RGBA represents an RGBA color with 8-bit components including alpha.
type RGBA struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"` // Alpha/opacity component (0 = transparent, 255 = opaque)
}

// HSL represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSL struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// CSS returns the color as a CSS rgb() function string.
func (c RGB) CSS() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// CSS returns the color as a CSS hsl() function string.
func (c HSL) CSS() string {
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", c.H, c.S, c.L)
}

var (
	hexPattern = regexp.MustCompile(`^#([0-9a-fA-F]{6}|[0-9a-fA-F]{3})$`)
	rgbPattern = regexp.MustCompile(`(?i)^rgb\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*\)$`)
	hslPattern = regexp.MustCompile(`(?i)^hsl\(\s*(\d+)\s*,\s*(\d+)%\s*,\s*(\d+)%\s*\)$`)
)

// Parse accepts a color in hex ("#abc", "#aabbcc"), rgb ("rgb(r, g, b)") or
// hsl ("hsl(h, s%, l%)") notation and returns it as canonical "#rrggbb".
//
// Matching is case-insensitive and surrounding whitespace is ignored.
// Channel ranges are r,g,b 0-255, h 0-360, s,l 0-100. ok is false when the
// input matches none of the notations or any channel is out of range.
func Parse(input string) (hex string, ok bool) {
	s := strings.TrimSpace(input)

	if m := hexPattern.FindStringSubmatch(s); m != nil {
		digits := strings.ToLower(m[1])
		if len(digits) == 3 {
			digits = string([]byte{digits[0], digits[0], digits[1], digits[1], digits[2], digits[2]})
		}
		return "#" + digits, true
	}

	if m := rgbPattern.FindStringSubmatch(s); m != nil {
		r, okR := channel(m[1], 255)
		g, okG := channel(m[2], 255)
		b, okB := channel(m[3], 255)
		if okR && okG && okB {
			return RGBToHex(uint8(r), uint8(g), uint8(b)), true
		}
		return "", false
	}

	if m := hslPattern.FindStringSubmatch(s); m != nil {
		h, okH := channel(m[1], 360)
		sat, okS := channel(m[2], 100)
		l, okL := channel(m[3], 100)
		if okH && okS && okL {
			return HSLToHex(h, sat, l), true
		}
		return "", false
	}

	return "", false
}

// channel parses a decimal component and checks it against [0, max].
func channel(s string, max int) (int, bool) {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 || v > max {
		return 0, false
	}
	return v, true
}

// RGBToHex packs 8-bit channels into "#rrggbb".
func RGBToHex(r, g, b uint8) string {
	return colorful.Color{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
	}.Hex()
}

// HexToRGB unpacks a "#rrggbb" or "#rgb" string (leading '#' optional).
// Malformed input returns an errs.ErrInvalidInput error.
func HexToRGB(hex string) (RGB, error) {
	s := strings.TrimSpace(hex)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if !hexPattern.MatchString(s) {
		return RGB{}, errs.Invalid("color.HexToRGB", "malformed hex color %q", hex)
	}
	c, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return RGB{}, errs.Invalid("color.HexToRGB", "malformed hex color %q", hex)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// RGBToHSL converts 8-bit RGB values to integer HSL.
//
// The conversion follows the standard algorithm:
//  1. Normalize RGB to 0-1 range
//  2. Find min and max components
//  3. Lightness is (max + min) / 2
//  4. Saturation depends on which half of the lightness range we are in
//  5. Hue is a piecewise-linear function of the max component's sector
//
// Each output is rounded to the nearest integer, halves rounding up.
func RGBToHSL(r, g, b uint8) HSL {
	rf := float64(r) / 255.0
	gf := float64(g) / 255.0
	bf := float64(b) / 255.0

	max := math.Max(rf, math.Max(gf, bf))
	min := math.Min(rf, math.Min(gf, bf))
	l := (max + min) / 2.0

	if max == min {
		return HSL{H: 0, S: 0, L: roundHalfUp(l * 100)}
	}

	d := max - min
	var s float64
	if l > 0.5 {
		s = d / (2.0 - max - min)
	} else {
		s = d / (max + min)
	}

	var h float64
	switch max {
	case rf:
		h = (gf - bf) / d
		if gf < bf {
			h += 6
		}
	case gf:
		h = (bf-rf)/d + 2
	default:
		h = (rf-gf)/d + 4
	}
	h /= 6

	return HSL{
		H: roundHalfUp(h * 360),
		S: roundHalfUp(s * 100),
		L: roundHalfUp(l * 100),
	}
}

// HSLToHex converts integer HSL to "#rrggbb" using the 6-sector model.
// Components outside their ranges are clamped (h to 0-360, s and l to 0-100).
func HSLToHex(h, s, l int) string {
	h = clamp(h, 0, 360)
	sf := float64(clamp(s, 0, 100)) / 100
	lf := float64(clamp(l, 0, 100)) / 100
	hf := float64(h)

	c := (1 - math.Abs(2*lf-1)) * sf
	x := c * (1 - math.Abs(math.Mod(hf/60, 2)-1))
	m := lf - c/2

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return RGBToHex(to8(r+m), to8(g+m), to8(b+m))
}

// ToRGB is HexToRGB for canonical hex values.
func ToRGB(hex string) (RGB, error) {
	return HexToRGB(hex)
}

// ToHSL converts a hex color to integer HSL.
func ToHSL(hex string) (HSL, error) {
	rgb, err := HexToRGB(hex)
	if err != nil {
		return HSL{}, err
	}
	return RGBToHSL(rgb.R, rgb.G, rgb.B), nil
}

func to8(v float64) uint8 {
	return uint8(clamp(roundHalfUp(v*255), 0, 255))
}

// roundHalfUp rounds to the nearest integer with halves going up (floor(x + 0.5)).
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
