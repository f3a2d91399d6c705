package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/minitools-mcp/internal/errs"
)

func TestPalette_BrandBlue(t *testing.T) {
	got, err := Palette("#4361ee")
	require.NoError(t, err)

	want := [PaletteSize]string{
		"#0d248c", "#1436d2", "#4463ee", "#8a9ef4", "#d0d8fb", // lightness
		"#44b8ee", "#448eee", "#5044ee", "#7a44ee", // analogous
		"#ee4444", // complementary, hue clamped at 360
	}
	assert.Equal(t, want, got)
}

func TestPalette_Deterministic(t *testing.T) {
	first, err := Palette("#4361ee")
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Palette("#4361ee")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestPalette_ClampsAtEdges(t *testing.T) {
	got, err := Palette("#ff0000")
	require.NoError(t, err)

	// Hue 0 cannot rotate below zero, so the -30/-15 analogous slots collapse
	// onto the base color.
	assert.Equal(t, "#ff0000", got[2])
	assert.Equal(t, "#ff0000", got[5])
	assert.Equal(t, "#ff0000", got[6])
	assert.Equal(t, "#00ffff", got[9])
	assert.Equal(t, "#660000", got[0])
	assert.Equal(t, "#ff9999", got[4])
}

func TestPalette_BlackAndWhite(t *testing.T) {
	black, err := Palette("#000000")
	require.NoError(t, err)
	assert.Equal(t, "#000000", black[0])
	assert.Equal(t, "#000000", black[1])
	assert.Equal(t, "#4d4d4d", black[4])

	white, err := Palette("#fff")
	require.NoError(t, err)
	assert.Equal(t, "#ffffff", white[4])
	assert.Equal(t, "#b3b3b3", white[0])
}

func TestPalette_InvalidBase(t *testing.T) {
	_, err := Palette("not-a-color")
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
}
