package imaging

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/minitools-mcp/internal/errs"
)

// RegionNames lists the names accepted by NamedRegion.
var RegionNames = []string{
	"top-left", "top-right", "bottom-left", "bottom-right",
	"top-half", "bottom-half", "left-half", "right-half", "center",
}

// NamedRegion resolves a named area of bounds, such as "top-left" or
// "center" (the middle 50% in each direction).
func NamedRegion(bounds image.Rectangle, name string) (image.Rectangle, error) {
	w, h := bounds.Dx(), bounds.Dy()
	midX, midY := w/2, h/2

	var r image.Rectangle
	switch name {
	case "top-left":
		r = image.Rect(0, 0, midX, midY)
	case "top-right":
		r = image.Rect(midX, 0, w, midY)
	case "bottom-left":
		r = image.Rect(0, midY, midX, h)
	case "bottom-right":
		r = image.Rect(midX, midY, w, h)
	case "top-half":
		r = image.Rect(0, 0, w, midY)
	case "bottom-half":
		r = image.Rect(0, midY, w, h)
	case "left-half":
		r = image.Rect(0, 0, midX, h)
	case "right-half":
		r = image.Rect(midX, 0, w, h)
	case "center":
		r = image.Rect(w/4, h/4, w-w/4, h-h/4)
	default:
		return image.Rectangle{}, errs.Invalid("imaging.NamedRegion", "unknown region %q", name)
	}
	return r.Add(bounds.Min), nil
}

// Crop extracts r from img. The result's bounds start at (0,0).
func Crop(img image.Image, r image.Rectangle) (image.Image, error) {
	bounds := img.Bounds()
	if r.Empty() {
		return nil, errs.Invalid("imaging.Crop", "crop region %v is empty", r)
	}
	if !r.In(bounds) {
		return nil, errs.Invalid("imaging.Crop", "crop region %v outside image bounds %v", r, bounds)
	}
	return imaging.Crop(img, r), nil
}
