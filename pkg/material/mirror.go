package material

import (
	"github.com/df07/go-mirror-raytracer/pkg/core"
)

// Mirror is a purely specular material. Each component is the reflectivity of
// the matching color channel, nominally in [0,1].
type Mirror core.Vec3

// NewMirror creates a new mirror material
func NewMirror(r, g, b float64) Mirror {
	return Mirror{X: r, Y: g, Z: b}
}

// MirrorFromRGB creates a mirror whose reflectivity is the byte color scaled to [0,1]
func MirrorFromRGB(r, g, b uint8) Mirror {
	return NewMirror(float64(r)/255.0, float64(g)/255.0, float64(b)/255.0)
}

// Reflection reflects the incoming direction about the hit normal.
// The normal does not need to be unit length: the projection divides by its
// squared length.
func (m Mirror) Reflection(incoming, hit core.Ray) core.Ray {
	normal := hit.Direction
	parallel := incoming.Direction.Project(normal)
	return core.NewRay(hit.Origin, incoming.Direction.Subtract(parallel.Multiply(2.0)))
}

// Color attenuates the light arriving along the reflected ray
func (m Mirror) Color(reflected core.Color) core.Color {
	return reflected.MultiplyVec(core.Vec3(m))
}

// Reflectivity returns the per-channel reflectivity as a vector
func (m Mirror) Reflectivity() core.Vec3 {
	return core.Vec3(m)
}
