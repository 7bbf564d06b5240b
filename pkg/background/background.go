// Package background shades rays that leave the scene without hitting anything.
// Every variant is a pure function of the normalized ray direction.
package background

import (
	"math"

	"github.com/df07/go-mirror-raytracer/pkg/core"
)

// Kind selects a background variant
type Kind int

// Known backgrounds. Unknown kinds shade like Gradient.
const (
	Gradient Kind = iota
	Starfield
	Dusk
	White
)

var kindNames = map[Kind]string{
	Gradient:  "gradient",
	Starfield: "starfield",
	Dusk:      "dusk",
	White:     "white",
}

// Kinds lists every known background in code order
func Kinds() []Kind {
	return []Kind{Gradient, Starfield, Dusk, White}
}

// String returns the lower-case name of the background
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[Gradient]
}

var (
	white   = core.NewVec3(1.0, 1.0, 1.0)
	skyBlue = core.NewVec3(0.5, 0.7, 1.0)
	warm    = core.NewVec3(1.0, 0.55, 0.3)

	brightStar = core.NewVec3(1.0, 1.0, 0.9)
	dimStar    = core.NewVec3(0.45, 0.45, 0.55)
	spaceTop   = core.NewVec3(0.02, 0.02, 0.06)
	spaceLow   = core.NewVec3(0.0, 0.0, 0.01)
)

// Starfield tuning
const (
	starGridResolution = 256.0
	brightThreshold    = 0.997
	dimThreshold       = 0.985
)

// Shade returns the background color seen along ray
func (k Kind) Shade(ray core.Ray) core.Color {
	if !ray.Normalize() {
		return core.Color{}
	}
	dir := ray.Direction

	switch k {
	case Starfield:
		return starfield(dir)
	case Dusk:
		return dusk(dir)
	case White:
		return white
	default:
		return gradient(dir)
	}
}

// gradient blends white into sky blue. Image y grows downward, so rays
// pointing up the frame (negative y) get the whitest color.
func gradient(dir core.Vec3) core.Color {
	t := 1.0 - 0.5*dir.Y
	return white.Multiply(1.0 - t).Add(skyBlue.Multiply(t))
}

// dusk runs from sky blue at the top of the frame to a warm glow at the bottom
func dusk(dir core.Vec3) core.Color {
	t := 0.5 * (dir.Y + 1.0)
	return skyBlue.Multiply(1.0 - t).Add(warm.Multiply(t))
}

// starfield hashes the direction's grid cell into a bright star, a dim star,
// or dark sky
func starfield(dir core.Vec3) core.Color {
	qx := math.Floor(dir.X * starGridResolution)
	qy := math.Floor(dir.Y * starGridResolution)
	qz := math.Floor(dir.Z * starGridResolution)

	h := core.Hash3(qx, qy, qz)
	switch {
	case h > brightThreshold:
		return brightStar
	case h > dimThreshold:
		return dimStar
	default:
		return spaceTop.Lerp(spaceLow, 0.5*(dir.Y+1.0))
	}
}
