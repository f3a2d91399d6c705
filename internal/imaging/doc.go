// Package imaging is the raster collaborator for the image tools: it loads and
// caches source images, re-encodes them at a chosen quality, and resizes and
// crops them.
//
// All operations work with standard Go image.Image types. Pixel coordinates are
// 0-based with (0,0) at the top-left corner.
//
// # Formats
//
// Decoding supports PNG, JPEG, GIF, BMP, TIFF and WebP, with EXIF orientation
// applied on load. Encoding supports JPEG, PNG, GIF, BMP and TIFF; only JPEG
// and GIF change output with quality.
//
// # Caching
//
// ImageCache is a bounded LRU of decoded images. Entries are checked against
// the file's size and modification time on every Load.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Encoder and the resize and
// crop functions are stateless and can be called concurrently.
//
// # Error Handling
//
// Encoder returns ErrUnsupportedFormat for formats it cannot write and
// ErrEmptyImage for images with no pixels. Crop and NamedRegion return
// errs.ErrInvalidInput errors. Callers match them with errors.Is.
package imaging
