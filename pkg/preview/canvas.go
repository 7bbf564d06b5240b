// Package preview keeps an RGBA copy of a render that fills in as tiles arrive.
package preview

import (
	"image"
	"image/color"
	"sync"

	"github.com/df07/go-mirror-raytracer/pkg/renderer"
)

// Canvas is a renderer.Sink that paints finished tiles into an RGBA image.
// Tile and Snapshot may be called from different goroutines.
type Canvas struct {
	mu     sync.Mutex
	img    *image.RGBA
	tiles  int
	total  int
	done   bool
	stats  renderer.RenderStats
	dirty  bool
	onDone func(renderer.RenderStats)
}

// NewCanvas creates a canvas for a width x height render. Unpainted pixels
// are opaque black.
func NewCanvas(width, height int) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
	return &Canvas{img: img}
}

// OnComplete registers a callback run after the final stats are recorded
func (c *Canvas) OnComplete(fn func(renderer.RenderStats)) {
	c.mu.Lock()
	c.onDone = fn
	c.mu.Unlock()
}

// Tile implements renderer.Sink
func (c *Canvas) Tile(update renderer.TileUpdate) {
	c.mu.Lock()
	defer c.mu.Unlock()

	Blit(c.img, update)
	c.tiles++
	c.total = update.TotalTiles
	c.dirty = true
}

// Complete implements renderer.Sink
func (c *Canvas) Complete(stats renderer.RenderStats) {
	c.mu.Lock()
	c.done = true
	c.stats = stats
	fn := c.onDone
	c.mu.Unlock()

	if fn != nil {
		fn(stats)
	}
}

// Snapshot returns the RGBA pixels when something changed since the last call
func (c *Canvas) Snapshot() ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.dirty {
		return nil, false
	}
	c.dirty = false
	return append([]byte(nil), c.img.Pix...), true
}

// Progress reports finished tiles, the tile count and whether the render completed
func (c *Canvas) Progress() (tiles, total int, done bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tiles, c.total, c.done
}

// Stats returns the stats passed to Complete
func (c *Canvas) Stats() renderer.RenderStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Bounds returns the image rectangle
func (c *Canvas) Bounds() image.Rectangle {
	return c.img.Bounds()
}

// Blit expands the packed RGB pixels of update into dst at the tile's origin.
// Parts of the tile outside dst are dropped.
func Blit(dst *image.RGBA, update renderer.TileUpdate) {
	bounds := dst.Bounds()
	for row := 0; row < update.Height; row++ {
		y := update.Y + row
		for col := 0; col < update.Width; col++ {
			x := update.X + col
			if !image.Pt(x, y).In(bounds) {
				continue
			}
			i := 3 * (row*update.Width + col)
			if i+2 >= len(update.Pixels) {
				return
			}
			dst.SetRGBA(x, y, color.RGBA{
				R: update.Pixels[i],
				G: update.Pixels[i+1],
				B: update.Pixels[i+2],
				A: 0xff,
			})
		}
	}
}
