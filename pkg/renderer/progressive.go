package renderer

import (
	"time"

	"github.com/df07/go-mirror-raytracer/pkg/core"
	"github.com/df07/go-mirror-raytracer/pkg/scene"
)

// ProgressiveConfig contains configuration for progressive rendering
type ProgressiveConfig struct {
	TileSize        int     // Size of each tile (64x64 recommended)
	SamplesPerPixel int     // Jittered rays averaged per pixel
	MaxDepth        int     // Maximum number of mirror bounces
	Seed            float64 // Starting state of the sample sequence
	Order           Order   // Tile visitation order
	NumWorkers      int     // Goroutines for RenderParallel (0 = use CPU count)
}

// DefaultProgressiveConfig returns sensible default values
func DefaultProgressiveConfig() ProgressiveConfig {
	return ProgressiveConfig{
		TileSize:        64,
		SamplesPerPixel: 10,
		MaxDepth:        100,
		Seed:            core.DefaultSeed,
		Order:           Spiral,
		NumWorkers:      1,
	}
}

// ProgressiveRaytracer renders a scene tile by tile, handing each finished
// tile to a sink
type ProgressiveRaytracer struct {
	scene         *scene.Scene
	width, height int
	config        ProgressiveConfig
	camera        Camera
	grid          TileGrid
	logger        core.Logger
}

// NewProgressiveRaytracer creates a new progressive raytracer. A zero width or
// height gives a raytracer whose renders do nothing.
func NewProgressiveRaytracer(s *scene.Scene, width, height int, config ProgressiveConfig, logger core.Logger) *ProgressiveRaytracer {
	if logger == nil {
		logger = core.NopLogger{}
	}
	width = max(width, 0)
	height = max(height, 0)
	config.SamplesPerPixel = max(config.SamplesPerPixel, 1)
	config.TileSize = max(config.TileSize, 1)

	pr := &ProgressiveRaytracer{
		scene:  s,
		width:  width,
		height: height,
		config: config,
		grid:   NewTileGrid(width, height, config.TileSize),
		logger: logger,
	}
	if !pr.empty() {
		pr.camera = NewCamera(width, height)
	}
	return pr
}

// Grid returns the tile layout used for renders
func (pr *ProgressiveRaytracer) Grid() TileGrid {
	return pr.grid
}

func (pr *ProgressiveRaytracer) empty() bool {
	return pr.width == 0 || pr.height == 0
}

func (pr *ProgressiveRaytracer) newContext(fb *Framebuffer, sampler core.Sampler) *renderContext {
	return &renderContext{
		scene:    pr.scene,
		camera:   pr.camera,
		fb:       fb,
		sampler:  sampler,
		samples:  pr.config.SamplesPerPixel,
		maxDepth: pr.config.MaxDepth,
	}
}

// RenderImage renders the whole image in raster tile order without emitting
// tiles. It returns nil for an empty image.
func (pr *ProgressiveRaytracer) RenderImage() *Framebuffer {
	fb, _ := pr.RenderImageWithStats()
	return fb
}

// RenderImageWithStats is RenderImage that also reports render statistics
func (pr *ProgressiveRaytracer) RenderImageWithStats() (*Framebuffer, RenderStats) {
	return pr.render(Raster, nil)
}

// RenderProgressive renders tiles in the configured order, passing each one
// to sink as soon as it is done and calling sink.Complete at the end.
// The sample sequence carries from tile to tile, so output only reproduces
// under the same order. An empty image makes no sink calls.
func (pr *ProgressiveRaytracer) RenderProgressive(sink Sink) (*Framebuffer, RenderStats) {
	return pr.render(pr.config.Order, sink)
}

func (pr *ProgressiveRaytracer) render(order Order, sink Sink) (*Framebuffer, RenderStats) {
	if pr.empty() {
		return nil, RenderStats{}
	}

	start := time.Now()
	fb := NewFramebuffer(pr.width, pr.height)
	rc := pr.newContext(fb, core.NewSequence(pr.config.Seed))
	tiles := pr.grid.Traverse(order)

	pr.logger.Infof("Rendering %dx%d in %d %s tiles (%d samples, depth %d)",
		pr.width, pr.height, len(tiles), order, pr.config.SamplesPerPixel, pr.config.MaxDepth)

	stats := RenderStats{MaxDepth: pr.config.MaxDepth, Workers: 1}
	for i, tile := range tiles {
		stats.merge(rc.renderTile(tile))
		pr.logger.Debugf("Rendering... %d/%d", i+1, len(tiles))
		if sink != nil {
			sink.Tile(newTileUpdate(fb, tile, i+1, len(tiles)))
		}
	}
	stats.finalize(start)

	pr.logger.Infof("Render completed in %v", stats.Duration)
	if sink != nil {
		sink.Complete(stats)
	}
	return fb, stats
}
