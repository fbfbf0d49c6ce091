package service

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// Preview sizes
const (
	PreviewSizeThumb  = "thumb"
	PreviewSizeMedium = "medium"
)

const (
	// Quality settings
	qualityThumb  = 60
	qualityMedium = 75
	// Size settings (max dimension)
	maxSizeThumb  = 400
	maxSizeMedium = 1200
)

// PreviewCache stores optimized preview JPEGs on disk
type PreviewCache struct {
	dir string
}

// NewPreviewCache creates a PreviewCache rooted at dir, creating it if needed
func NewPreviewCache(dir string) (*PreviewCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &PreviewCache{dir: dir}, nil
}

// Path returns the cache file path for a design, its last update and size
func (c *PreviewCache) Path(designID int64, version int64, size string) string {
	filename := fmt.Sprintf("design_%d_%d_%s.jpg", designID, version, size)
	return filepath.Join(c.dir, filename)
}

// Read returns cached bytes, or false when the file does not exist
func (c *PreviewCache) Read(cachePath string) ([]byte, bool) {
	data, err := os.ReadFile(cachePath)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Write saves an image to the cache
func (c *PreviewCache) Write(cachePath string, imageData []byte) error {
	if err := os.WriteFile(cachePath, imageData, 0644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	log.Printf("✓ Preview cached: %s", cachePath)
	return nil
}

// OptimizeImage converts a screenshot to JPEG, downscaling it to fit the size's width.
// Tall pages are cropped from the top to a 4:3 frame before resizing.
func OptimizeImage(imageData []byte, size string) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	log.Printf("📸 Image decoded: format=%s, bounds=%v", format, img.Bounds())

	var maxDim int
	var quality int

	switch size {
	case PreviewSizeThumb:
		maxDim = maxSizeThumb
		quality = qualityThumb
	case PreviewSizeMedium:
		maxDim = maxSizeMedium
		quality = qualityMedium
	default:
		maxDim = maxSizeMedium
		quality = qualityMedium
		log.Printf("⚠️  Unknown size '%s', defaulting to medium", size)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if frameHeight := width * 3 / 4; height > frameHeight && frameHeight > 0 {
		img = imaging.CropAnchor(img, width, frameHeight, imaging.Top)
		height = frameHeight
	}

	if width > maxDim {
		newHeight := int(float64(height) * float64(maxDim) / float64(width))
		log.Printf("🔄 Resizing image: %dx%d -> %dx%d", width, height, maxDim, newHeight)
		img = imaging.Resize(img, maxDim, newHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}
	optimizedData := buf.Bytes()

	log.Printf("✓ Image optimized: size=%s, quality=%d, output_size=%d bytes", size, quality, len(optimizedData))
	return optimizedData, nil
}
