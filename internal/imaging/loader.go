package imaging

import (
	"fmt"
	"image"
	"os"
	"time"

	"github.com/disintegration/imaging"
	lru "github.com/hashicorp/golang-lru/v2"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// DefaultCacheSize is the number of decoded images NewImageCache keeps.
const DefaultCacheSize = 32

type cachedImage struct {
	img     image.Image
	modTime time.Time
	size    int64
}

// ImageCache keeps recently decoded source images keyed by file path. An
// entry is reused only while the file's size and modification time are
// unchanged, so edited or overwritten files are decoded again. The least
// recently used entry is dropped once the cache is full.
//
// Images are decoded with EXIF auto-orientation applied. Supported inputs
// are PNG, JPEG, GIF, BMP, TIFF and WebP. ImageCache is safe for concurrent
// use.
type ImageCache struct {
	images *lru.Cache[string, cachedImage]
}

// NewImageCache creates a cache holding up to DefaultCacheSize images.
func NewImageCache() *ImageCache {
	return NewImageCacheSize(DefaultCacheSize)
}

// NewImageCacheSize creates a cache holding up to size images; a
// non-positive size uses DefaultCacheSize.
func NewImageCacheSize(size int) *ImageCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	images, err := lru.New[string, cachedImage](size)
	if err != nil {
		panic(err) // only returned for a non-positive size
	}
	return &ImageCache{images: images}
}

// Load returns the decoded image at path.
//
// Different paths to the same file (e.g., relative vs absolute) are
// separate cache entries.
func (c *ImageCache) Load(path string) (image.Image, error) {
	img, _, err := c.LoadFile(path)
	return img, err
}

// LoadFile is Load that also returns the file's info.
func (c *ImageCache) LoadFile(path string) (image.Image, os.FileInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load image: %w", err)
	}

	if e, ok := c.images.Get(path); ok && e.size == stat.Size() && e.modTime.Equal(stat.ModTime()) {
		return e.img, stat, nil
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load image: %w", err)
	}
	c.images.Add(path, cachedImage{img: img, modTime: stat.ModTime(), size: stat.Size()})
	return img, stat, nil
}

// Len reports the number of cached images.
func (c *ImageCache) Len() int {
	return c.images.Len()
}

// Evict removes the image cached for path, if any.
func (c *ImageCache) Evict(path string) {
	c.images.Remove(path)
}

// Clear removes all cached images.
func (c *ImageCache) Clear() {
	c.images.Purge()
}

// ImageInfo contains metadata about an image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the format implied by the file extension, as returned by FormatOf.
	Format string `json:"format"`

	// ColorDepth indicates the bit depth per channel: "8-bit" or "16-bit".
	ColorDepth string `json:"color_depth"`

	// HasAlpha indicates whether the decoded image type carries alpha.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image through cache and describes it. Color depth
// follows the decoded Go image type: 16-bit types report "16-bit", every
// other type "8-bit".
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	img, stat, err := cache.LoadFile(path)
	if err != nil {
		return nil, err
	}

	hasAlpha := false
	colorDepth := "8-bit"
	switch img.(type) {
	case *image.RGBA, *image.NRGBA:
		hasAlpha = true
	case *image.RGBA64, *image.NRGBA64:
		hasAlpha = true
		colorDepth = "16-bit"
	case *image.Gray16:
		colorDepth = "16-bit"
	}

	bounds := img.Bounds()
	return &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        FormatOf(path),
		ColorDepth:    colorDepth,
		HasAlpha:      hasAlpha,
		FileSizeBytes: stat.Size(),
	}, nil
}
