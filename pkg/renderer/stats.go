package renderer

import (
	"time"

	"github.com/df07/go-mirror-raytracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int           // Total number of pixels rendered
	TotalTiles     int           // Number of tiles emitted
	TotalSamples   int           // Total number of samples taken
	AverageSamples float64       // Average samples per pixel
	MaxDepth       int           // Bounce limit used for every sample
	Workers        int           // Goroutines that rendered tiles
	Duration       time.Duration // Wall time from first tile to completion
}

// merge folds the counters of a finished tile into s
func (s *RenderStats) merge(tile RenderStats) {
	s.TotalPixels += tile.TotalPixels
	s.TotalSamples += tile.TotalSamples
	s.TotalTiles++
}

// finalize computes derived values once every tile is in
func (s *RenderStats) finalize(start time.Time) {
	if s.TotalPixels > 0 {
		s.AverageSamples = float64(s.TotalSamples) / float64(s.TotalPixels)
	}
	s.Duration = time.Since(start)
}

// PixelStats accumulates the samples of a single pixel
type PixelStats struct {
	ColorAccum  core.Vec3 // RGB accumulator for final result
	SampleCount int       // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum.AddAssign(color)
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	return ps.ColorAccum.Divide(float64(ps.SampleCount))
}
