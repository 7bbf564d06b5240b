package core

// Ray represents a ray with an origin and direction.
// The direction is not required to be unit length.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a new ray
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// Normalize scales the direction to unit length in place.
// A zero-length direction is left untouched and false is returned.
func (r *Ray) Normalize() bool {
	length := r.Direction.Length()
	if length == 0 {
		return false
	}
	r.Direction.DivideAssign(length)
	return true
}
