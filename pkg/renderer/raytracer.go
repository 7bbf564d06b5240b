package renderer

import (
	"github.com/df07/go-mirror-raytracer/pkg/core"
	"github.com/df07/go-mirror-raytracer/pkg/scene"
)

// Trace returns the color seen along ray, following mirror bounces until
// depth runs out. Exhausted depth and degenerate rays contribute black.
func Trace(ray core.Ray, s *scene.Scene, depth int) core.Color {
	if depth <= 0 {
		return core.Color{}
	}
	if ray.Direction.IsZero() {
		return core.Color{}
	}

	index, _, ok := s.NearestHit(ray)
	if !ok {
		return s.Background.Shade(ray)
	}

	obj := s.Objects[index]
	hit := obj.Shape.Hit(ray)
	reflected := obj.Material.Reflection(ray, hit)
	return obj.Material.Color(Trace(reflected, s, depth-1))
}

// samplePixel averages samples traced rays through pixel (x, y)
func samplePixel(ctx *renderContext, x, y int) core.Color {
	var ps PixelStats
	for i := 0; i < ctx.samples; i++ {
		ray := ctx.camera.SampleRay(x, y, ctx.sampler)
		ps.AddSample(Trace(ray, ctx.scene, ctx.maxDepth))
	}
	return ps.GetColor()
}
