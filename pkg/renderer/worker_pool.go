package renderer

import (
	"context"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-mirror-raytracer/pkg/core"
)

// GetNumWorkers returns the number of goroutines RenderParallel uses
func (pr *ProgressiveRaytracer) GetNumWorkers() int {
	if pr.config.NumWorkers <= 0 {
		return runtime.NumCPU()
	}
	return pr.config.NumWorkers
}

// RenderParallel renders tiles on a bounded pool of goroutines.
//
// Each tile draws from its own sequence seeded by core.TileSeed, so the image
// is identical for any worker count. Tiles reach sink in completion order and
// sink calls never overlap. When ctx is cancelled no further tiles are
// started and ctx.Err() is returned; Complete is only called on success.
func (pr *ProgressiveRaytracer) RenderParallel(ctx context.Context, sink Sink) (*Framebuffer, RenderStats, error) {
	if pr.empty() {
		return nil, RenderStats{}, nil
	}

	start := time.Now()
	workers := pr.GetNumWorkers()
	fb := NewFramebuffer(pr.width, pr.height)
	base := pr.newContext(fb, nil)
	tiles := pr.grid.Traverse(pr.config.Order)

	pr.logger.Infof("Rendering %dx%d in %d %s tiles on %d workers (%d samples, depth %d)",
		pr.width, pr.height, len(tiles), pr.config.Order, workers, pr.config.SamplesPerPixel, pr.config.MaxDepth)

	var mu sync.Mutex
	stats := RenderStats{MaxDepth: pr.config.MaxDepth, Workers: workers}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, tile := range tiles {
		if gctx.Err() != nil {
			break
		}
		tile := tile
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			// Tiles never overlap, so workers write the framebuffer without locking
			seq := core.NewSequence(core.TileSeed(pr.config.Seed, tile.TileX, tile.TileY))
			tileStats := base.withSampler(seq).renderTile(tile)

			mu.Lock()
			defer mu.Unlock()
			stats.merge(tileStats)
			pr.logger.Debugf("Rendering... %d/%d", stats.TotalTiles, len(tiles))
			if sink != nil {
				sink.Tile(newTileUpdate(fb, tile, stats.TotalTiles, len(tiles)))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		pr.logger.Infof("Render cancelled after %d/%d tiles", stats.TotalTiles, len(tiles))
		return nil, RenderStats{}, err
	}
	if err := ctx.Err(); err != nil {
		return nil, RenderStats{}, err
	}

	stats.finalize(start)
	pr.logger.Infof("Render completed in %v", stats.Duration)
	if sink != nil {
		sink.Complete(stats)
	}
	return fb, stats, nil
}
