package renderer

import (
	"github.com/df07/go-mirror-raytracer/pkg/core"
)

// Camera is a pinhole at the origin looking down +Z.
// Image rows grow downward, which maps to +Y in world space.
type Camera struct {
	width, height  float64
	viewportWidth  float64
	viewportHeight float64
	focalLength    float64
}

// NewCamera creates a camera for an image of the given size with a 90 degree
// vertical field of view
func NewCamera(width, height int) Camera {
	w := float64(width)
	h := float64(height)
	viewportHeight := 2.0
	return Camera{
		width:          w,
		height:         h,
		viewportWidth:  w / h * viewportHeight,
		viewportHeight: viewportHeight,
		focalLength:    1.0,
	}
}

// GetRay generates the ray through pixel (x, y) offset by the jitter (r1, r2)
func (c Camera) GetRay(x, y int, r1, r2 float64) core.Ray {
	direction := core.NewVec3(
		(float64(x)-c.width/2.0+r1)*c.viewportWidth/c.width,
		(float64(y)-c.height/2.0+r2)*c.viewportHeight/c.height,
		c.focalLength,
	)
	return core.NewRay(core.Vec3{}, direction)
}

// SampleRay draws the jitter for one sample from sampler, x offset first
func (c Camera) SampleRay(x, y int, sampler core.Sampler) core.Ray {
	r1, r2 := sampler.Get2D()
	return c.GetRay(x, y, r1, r2)
}
