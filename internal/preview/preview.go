// Package preview renders the framed image scaled into a fixed display box.
// Nothing here writes to disk.
package preview

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"sync"
	"time"

	"github.com/disintegration/imaging"

	"webpconv/internal/processor"
)

// DefaultBox matches the preview pane of the desktop tool.
const DefaultBox = 400

const defaultCacheEntries = 8

type Renderer struct {
	AutoOrient bool

	mu      sync.Mutex
	max     int
	entries map[cacheKey]*image.NRGBA
	order   []cacheKey
}

type cacheKey struct {
	path       string
	size       int64
	modTime    time.Time
	autoOrient bool
}

// NewRenderer returns a Renderer that keeps up to maxEntries decoded
// sources. Zero picks a small default; a negative value disables caching.
func NewRenderer(maxEntries int) *Renderer {
	if maxEntries == 0 {
		maxEntries = defaultCacheEntries
	}
	return &Renderer{max: maxEntries, entries: make(map[cacheKey]*image.NRGBA)}
}

// Render composes the image at path with frame f, downscales it to fit
// boxW x boxH without upscaling, and centers it on a transparent canvas of
// exactly that size. An empty path yields the empty transparent canvas.
func (r *Renderer) Render(path string, f processor.Frame, boxW, boxH int) (*image.NRGBA, error) {
	if boxW <= 0 || boxH <= 0 {
		return nil, fmt.Errorf("preview box must be positive, got %dx%d", boxW, boxH)
	}

	canvas := imaging.New(boxW, boxH, color.NRGBA{})
	if path == "" {
		return canvas, nil
	}

	src, err := r.source(path)
	if err != nil {
		return nil, err
	}

	framed, err := processor.ApplyFrame(src, f)
	if err != nil {
		return nil, err
	}

	fitted := imaging.Fit(framed, boxW, boxH, imaging.Lanczos)
	return imaging.PasteCenter(canvas, fitted), nil
}

// source returns the normalized decoded image for path. Cached images are
// shared between calls and must never be modified.
func (r *Renderer) source(path string) (*image.NRGBA, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, errors.New("preview source is a directory")
	}

	key := cacheKey{path: path, size: info.Size(), modTime: info.ModTime(), autoOrient: r.AutoOrient}

	r.mu.Lock()
	if img, ok := r.entries[key]; ok {
		r.mu.Unlock()
		return img, nil
	}
	r.mu.Unlock()

	img, err := processor.Load(path, r.AutoOrient)
	if err != nil {
		return nil, err
	}

	r.store(key, img)
	return img, nil
}

func (r *Renderer) store(key cacheKey, img *image.NRGBA) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.max < 0 {
		return
	}
	if r.entries == nil {
		r.entries = make(map[cacheKey]*image.NRGBA)
		if r.max == 0 {
			r.max = defaultCacheEntries
		}
	}
	if _, ok := r.entries[key]; ok {
		return
	}
	for len(r.order) >= r.max {
		oldest := r.order[0]
		r.order = r.order[1:]
		delete(r.entries, oldest)
	}
	r.entries[key] = img
	r.order = append(r.order, key)
}

// Render is a convenience for one-off previews without caching.
func Render(path string, f processor.Frame, boxW, boxH int) (*image.NRGBA, error) {
	return NewRenderer(-1).Render(path, f, boxW, boxH)
}
