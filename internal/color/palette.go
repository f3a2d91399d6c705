package color

// PaletteSize is the number of colors Palette returns.
const PaletteSize = 10

// paletteSteps lists the (hue, lightness) offsets applied to the base color,
// in output order. The zero step is the base color itself.
var paletteSteps = [PaletteSize]struct{ dh, dl int }{
	{0, -30}, {0, -15}, {0, 0}, {0, 15}, {0, 30}, // lightness variants
	{-30, 0}, {-15, 0}, {15, 0}, {30, 0}, // analogous
	{180, 0}, // complementary
}

// Palette generates the fixed 10-color palette for a base color:
// four lightness variants (-30, -15, +15, +30 points) around the base, four
// analogous hues (-30, -15, +15, +30 degrees), and the complementary hue
// (+180 degrees). Hue is clamped to 0-360 and lightness to 0-100, so the
// result is deterministic for a given input.
//
// Every entry, including the base, is re-encoded from integer HSL, so the
// base slot may differ from the input by rounding.
func Palette(baseHex string) ([PaletteSize]string, error) {
	var out [PaletteSize]string

	hsl, err := ToHSL(baseHex)
	if err != nil {
		return out, err
	}

	for i, step := range paletteSteps {
		h := clamp(hsl.H+step.dh, 0, 360)
		l := clamp(hsl.L+step.dl, 0, 100)
		out[i] = HSLToHex(h, hsl.S, l)
	}
	return out, nil
}
