package renderer

import (
	"github.com/df07/go-mirror-raytracer/pkg/core"
	"github.com/df07/go-mirror-raytracer/pkg/scene"
)

// renderContext is the mutable state threaded through the tile, pixel and
// sample loops of one render. The sequential path shares a single context
// across all tiles so the sampler state carries over in traversal order.
type renderContext struct {
	scene    *scene.Scene
	camera   Camera
	fb       *Framebuffer
	sampler  core.Sampler
	samples  int
	maxDepth int
}

// withSampler returns a copy of rc drawing jitter from sampler
func (rc *renderContext) withSampler(sampler core.Sampler) *renderContext {
	clone := *rc
	clone.sampler = sampler
	return &clone
}

// renderTile renders every pixel of tile into the framebuffer, row by row
func (rc *renderContext) renderTile(tile *Tile) RenderStats {
	bounds := tile.Bounds
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			rc.fb.Set(x, y, samplePixel(rc, x, y))
		}
	}

	pixels := bounds.Dx() * bounds.Dy()
	return RenderStats{
		TotalPixels:  pixels,
		TotalSamples: pixels * rc.samples,
	}
}

// TileUpdate is handed to a Sink as soon as a tile is finished
type TileUpdate struct {
	X, Y          int    // Pixel origin of the tile
	Width, Height int    // Tile size after clipping to the image
	TileX, TileY  int    // Tile coordinates (not pixel coordinates)
	Pixels        []byte // Width*Height*3 bytes, row-major RGB

	// Progress information
	TileNumber int // Position in emission order (1-based)
	TotalTiles int // Total number of tiles in the image
}

// newTileUpdate packages a finished tile for a sink
func newTileUpdate(fb *Framebuffer, tile *Tile, number, total int) TileUpdate {
	return TileUpdate{
		X:          tile.Bounds.Min.X,
		Y:          tile.Bounds.Min.Y,
		Width:      tile.Bounds.Dx(),
		Height:     tile.Bounds.Dy(),
		TileX:      tile.TileX,
		TileY:      tile.TileY,
		Pixels:     fb.RGB(tile.Bounds),
		TileNumber: number,
		TotalTiles: total,
	}
}

// Sink receives tiles as they complete and a single completion call
type Sink interface {
	Tile(update TileUpdate)
	Complete(stats RenderStats)
}

// SinkFuncs adapts plain callbacks to a Sink. Nil callbacks are skipped.
type SinkFuncs struct {
	OnTile     func(TileUpdate)
	OnComplete func(RenderStats)
}

// Tile implements Sink
func (f SinkFuncs) Tile(update TileUpdate) {
	if f.OnTile != nil {
		f.OnTile(update)
	}
}

// Complete implements Sink
func (f SinkFuncs) Complete(stats RenderStats) {
	if f.OnComplete != nil {
		f.OnComplete(stats)
	}
}
