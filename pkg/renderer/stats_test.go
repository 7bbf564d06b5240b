package renderer

import (
	"testing"
	"time"

	"github.com/df07/go-mirror-raytracer/pkg/core"
)

func TestPixelStats(t *testing.T) {
	var ps PixelStats
	if c := ps.GetColor(); !c.IsZero() {
		t.Errorf("Expected black with no samples, got %v", c)
	}

	ps.AddSample(core.NewVec3(1, 0, 0.5))
	ps.AddSample(core.NewVec3(0, 1, 0.5))

	expected := core.NewVec3(0.5, 0.5, 0.5)
	if got := ps.GetColor(); got != expected {
		t.Errorf("Expected average %v, got %v", expected, got)
	}
	if ps.SampleCount != 2 {
		t.Errorf("Expected 2 samples, got %d", ps.SampleCount)
	}
}

func TestRenderStatsMerge(t *testing.T) {
	stats := RenderStats{MaxDepth: 10}
	stats.merge(RenderStats{TotalPixels: 64, TotalSamples: 640})
	stats.merge(RenderStats{TotalPixels: 16, TotalSamples: 160})
	stats.finalize(time.Now())

	if stats.TotalTiles != 2 {
		t.Errorf("Expected 2 tiles, got %d", stats.TotalTiles)
	}
	if stats.TotalPixels != 80 || stats.TotalSamples != 800 {
		t.Errorf("Expected 80 pixels and 800 samples, got %d and %d", stats.TotalPixels, stats.TotalSamples)
	}
	if stats.AverageSamples != 10 {
		t.Errorf("Expected 10 samples per pixel, got %f", stats.AverageSamples)
	}
}
