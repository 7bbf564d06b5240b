package scene

import (
	"github.com/df07/go-mirror-raytracer/pkg/background"
	"github.com/df07/go-mirror-raytracer/pkg/core"
)

// Object pairs a shape with the material covering it
type Object struct {
	Shape    core.Shape
	Material core.Material
}

// Scene contains all the elements needed for rendering.
// Objects keep insertion order, which decides ties in NearestHit.
type Scene struct {
	Name       string
	Objects    []Object
	Background core.Background
}

// New creates an empty scene with the given background
func New(name string, bg core.Background) *Scene {
	if bg == nil {
		bg = background.Gradient
	}
	return &Scene{
		Name:       name,
		Objects:    make([]Object, 0),
		Background: bg,
	}
}

// Add appends an object to the scene
func (s *Scene) Add(shape core.Shape, material core.Material) {
	s.Objects = append(s.Objects, Object{Shape: shape, Material: material})
}

// NearestHit scans every object and returns the index and distance of the
// closest one in front of the ray. Only strictly positive distances count.
// When two objects report the same distance the earlier one wins.
func (s *Scene) NearestHit(ray core.Ray) (index int, distance float64, ok bool) {
	for i, obj := range s.Objects {
		d := obj.Shape.DistanceTo(ray)
		if d > 0.0 && (!ok || d < distance) {
			ok = true
			distance = d
			index = i
		}
	}
	return index, distance, ok
}

// GetPrimitiveCount returns the number of objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Objects)
}
