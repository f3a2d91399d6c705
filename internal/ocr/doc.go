// Package ocr recognizes text in raster images using Tesseract.
//
// The engine is reached through gosseract/v2, which needs cgo and a system
// Tesseract install with language data:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// Images are preprocessed before recognition. Small images are upscaled so
// the shorter side reaches MinSide, then converted to grayscale and given a
// contrast boost with bild. Word bounding boxes are reported in the
// coordinates of the original image, not the upscaled one.
//
// Builds without cgo still compile. Their Tesseract returns an error matching
// errs.ErrUnavailable from every call.
package ocr
