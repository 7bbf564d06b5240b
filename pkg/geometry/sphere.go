package geometry

import (
	"math"

	"github.com/df07/go-mirror-raytracer/pkg/core"
)

// NoHit is returned by DistanceTo when the ray misses
const NoHit = -1.0

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere. Negative radii are clamped to zero.
func NewSphere(center core.Vec3, radius float64) Sphere {
	return Sphere{
		Center: center,
		Radius: max(radius, 0),
	}
}

// DistanceTo returns the near root of the ray/sphere quadratic.
//
// Only the near root is considered, so a ray starting inside the sphere gets a
// negative distance; callers must treat anything <= 0 as a miss. A ray that
// grazes the surface exactly at its origin reports 0, which is also a miss.
func (s Sphere) DistanceTo(ray core.Ray) float64 {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.LengthSquared()
	if a == 0 {
		return NoHit
	}
	b := 2.0 * oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := b*b - 4.0*a*c
	if discriminant < 0 {
		return NoHit
	}

	return (-b - math.Sqrt(discriminant)) / (2.0 * a)
}

// Hit returns a ray whose origin is the contact point at the sphere's own
// reported distance and whose direction is the outward normal, not normalized.
func (s Sphere) Hit(ray core.Ray) core.Ray {
	contact := ray.At(s.DistanceTo(ray))
	return core.NewRay(contact, contact.Subtract(s.Center))
}
