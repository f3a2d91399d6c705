// Package color converts between HEX, RGB and HSL color representations,
// generates related-color palettes, and samples colors from images.
//
// # Canonical Form
//
// The canonical color value is a lowercase 6-digit hex string "#rrggbb".
// Three-digit shorthand ("#abc") is always expanded on parse. RGB and HSL
// values are derived from the canonical form:
//   - RGB: 8-bit components (0-255)
//   - HSL: Hue (0-360 degrees), Saturation (0-100), Lightness (0-100)
//
// # Rounding
//
// HSL components are integers, rounded half-up. Converting HSL to hex and
// back may therefore drift by one unit per component. This loss is inherent
// to integer HSL and is not treated as an error.
//
// # Invalid Input
//
// Parse reports malformed or out-of-range input with ok=false rather than an
// error, so callers can show a validation message without inspecting error
// types. HexToRGB returns an errs.ErrInvalidInput error for malformed hex.
package color
