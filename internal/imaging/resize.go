package imaging

import (
	"image"

	"github.com/disintegration/imaging"
)

// Fit scales img down so it fits within maxWidth x maxHeight, preserving the
// aspect ratio. A zero bound leaves that dimension unconstrained. Images that
// already fit are returned unchanged; Fit never upscales.
func Fit(img image.Image, maxWidth, maxHeight int) image.Image {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	targetWidth, targetHeight := width, height

	if maxWidth > 0 && targetWidth > maxWidth {
		ratio := float64(maxWidth) / float64(targetWidth)
		targetWidth = maxWidth
		targetHeight = int(float64(targetHeight) * ratio)
	}
	if maxHeight > 0 && targetHeight > maxHeight {
		ratio := float64(maxHeight) / float64(targetHeight)
		targetHeight = maxHeight
		targetWidth = int(float64(targetWidth) * ratio)
	}

	if targetWidth == width && targetHeight == height {
		return img
	}
	return imaging.Resize(img, max(targetWidth, 1), max(targetHeight, 1), imaging.Lanczos)
}

// Upscale enlarges img by an integer factor when its shorter side is below
// minSide. It is used to give text recognition enough pixels to work with.
func Upscale(img image.Image, minSide int) image.Image {
	bounds := img.Bounds()
	shorter := min(bounds.Dx(), bounds.Dy())
	if shorter == 0 || shorter >= minSide {
		return img
	}
	factor := (minSide + shorter - 1) / shorter
	return imaging.Resize(img, bounds.Dx()*factor, bounds.Dy()*factor, imaging.Lanczos)
}
