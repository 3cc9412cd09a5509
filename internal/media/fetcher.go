// Package media downloads and prepares inspection photos for embedding
// and formats video references as links.
package media

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"net/http"
	"time"

	// Decoders for the formats inspection photos arrive in.
	_ "image/gif"
	_ "image/png"

	"go.uber.org/zap"
	"golang.org/x/image/draw"
)

const (
	// DefaultMaxWidth and DefaultMaxHeight bound embedded photos in
	// points.
	DefaultMaxWidth  = 400
	DefaultMaxHeight = 300

	fetchTimeout = 10 * time.Second

	// jpegQuality is the re-encode quality for embedded photos.
	jpegQuality = 85
)

// Fetcher downloads, decodes, and resizes images. Downloads are cached
// per URL for the lifetime of one report run; the cache is unbounded,
// which is acceptable only because a run is short-lived and
// single-threaded. A long-running service would need a bounded cache.
type Fetcher struct {
	client    *http.Client
	maxWidth  int
	maxHeight int
	cache     map[string]image.Image
	logger    *zap.Logger
}

// NewFetcher creates a Fetcher with the given default size box.
func NewFetcher(maxWidth, maxHeight int, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		client:    &http.Client{Timeout: fetchTimeout},
		maxWidth:  maxWidth,
		maxHeight: maxHeight,
		cache:     make(map[string]image.Image),
		logger:    logger,
	}
}

// Fetch downloads and decodes the image at url, consulting the cache
// first. Failures are returned to the caller, who skips the single
// image and continues.
func (f *Fetcher) Fetch(url string) (image.Image, error) {
	if img, ok := f.cache[url]; ok {
		return img, nil
	}

	resp, err := f.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image body: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	f.cache[url] = img
	return img, nil
}

// Resize scales img down to fit within maxWidth x maxHeight, preserving
// aspect ratio. Images already inside the box are returned unchanged.
func Resize(img image.Image, maxWidth, maxHeight int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxWidth && h <= maxHeight {
		return img
	}

	scaleW := float64(maxWidth) / float64(w)
	scaleH := float64(maxHeight) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}

	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

// Processed is an image ready for embedding: JPEG bytes at quality 85
// plus the final pixel dimensions.
type Processed struct {
	JPEG   []byte
	Width  int
	Height int
}

// Process fetches the image at url, resizes it into the given box (or
// the fetcher defaults when zero), and re-encodes it as JPEG.
func (f *Fetcher) Process(url string, maxWidth, maxHeight int) (*Processed, error) {
	if maxWidth <= 0 {
		maxWidth = f.maxWidth
	}
	if maxHeight <= 0 {
		maxHeight = f.maxHeight
	}

	img, err := f.Fetch(url)
	if err != nil {
		return nil, err
	}

	img = Resize(img, maxWidth, maxHeight)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	bounds := img.Bounds()
	return &Processed{
		JPEG:   buf.Bytes(),
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}

// CacheSize returns the number of cached downloads.
func (f *Fetcher) CacheSize() int {
	return len(f.cache)
}
