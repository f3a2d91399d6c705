package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/ironsheep/minitools-mcp/internal/color"
	"github.com/ironsheep/minitools-mcp/internal/errs"
	"github.com/ironsheep/minitools-mcp/internal/history"
)

// ColorHistoryKey is the store key for recently applied colors.
const ColorHistoryKey = "colorHistory"

// ColorInfo describes a color in every supported notation.
type ColorInfo struct {
	Hex    string    `json:"hex"` // uppercase "#RRGGBB"
	RGB    color.RGB `json:"rgb"`
	HSL    color.HSL `json:"hsl"`
	RGBCSS string    `json:"rgb_css"`
	HSLCSS string    `json:"hsl_css"`
}

// PaletteResult is a generated palette for a base color.
type PaletteResult struct {
	Base   string   `json:"base"`
	Colors []string `json:"colors"`
}

// ColorTool parses colors and remembers the ones applied.
type ColorTool struct {
	history *history.List[string]
}

// NewColorTool creates a ColorTool keeping up to limit colors in store.
func NewColorTool(store history.Store, limit int) *ColorTool {
	return &ColorTool{
		history: history.NewList[string](store, ColorHistoryKey, limit, strings.EqualFold),
	}
}

// Describe converts a canonical hex color into a ColorInfo.
func Describe(hex string) (*ColorInfo, error) {
	rgb, err := color.ToRGB(hex)
	if err != nil {
		return nil, err
	}
	hsl := color.RGBToHSL(rgb.R, rgb.G, rgb.B)
	return &ColorInfo{
		Hex:    strings.ToUpper(hex),
		RGB:    rgb,
		HSL:    hsl,
		RGBCSS: rgb.CSS(),
		HSLCSS: hsl.CSS(),
	}, nil
}

// Apply parses input, records it in the history and describes it.
func (t *ColorTool) Apply(ctx context.Context, input string) (*ColorInfo, error) {
	hex, err := parse(input)
	if err != nil {
		return nil, err
	}
	info, err := Describe(hex)
	if err != nil {
		return nil, err
	}
	if _, err := t.history.Push(ctx, hex); err != nil {
		return nil, fmt.Errorf("failed to record color history: %w", err)
	}
	return info, nil
}

// Palette parses input and generates its palette. History is not touched.
func (t *ColorTool) Palette(input string) (*PaletteResult, error) {
	hex, err := parse(input)
	if err != nil {
		return nil, err
	}
	colors, err := color.Palette(hex)
	if err != nil {
		return nil, err
	}
	return &PaletteResult{Base: hex, Colors: colors[:]}, nil
}

// History returns recently applied colors, newest first.
func (t *ColorTool) History(ctx context.Context) ([]string, error) {
	return t.history.Get(ctx)
}

func parse(input string) (string, error) {
	hex, ok := color.Parse(input)
	if !ok {
		return "", errs.Invalid("tools.color", "unrecognized color %q", input)
	}
	return hex, nil
}
