package core

// Shape is anything a ray can be intersected with
type Shape interface {
	// DistanceTo returns the ray parameter of the nearest intersection, or a
	// value <= 0 when there is none in front of the ray origin.
	DistanceTo(ray Ray) float64
	// Hit returns a ray starting at the contact point whose direction is the
	// (not normalized) outward surface normal.
	Hit(ray Ray) Ray
}

// Material decides where light bounces and how it is tinted on the way
type Material interface {
	Reflection(incoming, hit Ray) Ray
	Color(reflected Color) Color
}

// Background shades rays that escape the scene
type Background interface {
	Shade(ray Ray) Color
}

// Logger interface for raytracer logging
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Debugf(format string, args ...interface{}) {}
func (NopLogger) Infof(format string, args ...interface{})  {}
