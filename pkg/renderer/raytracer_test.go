package renderer

import (
	"testing"

	"github.com/df07/go-mirror-raytracer/pkg/background"
	"github.com/df07/go-mirror-raytracer/pkg/core"
	"github.com/df07/go-mirror-raytracer/pkg/geometry"
	"github.com/df07/go-mirror-raytracer/pkg/material"
	"github.com/df07/go-mirror-raytracer/pkg/scene"
)

var forward = core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1))

func TestTraceDepthZeroIsBlack(t *testing.T) {
	s := scene.New("white", background.White)
	for _, depth := range []int{0, -1, -100} {
		if c := Trace(forward, s, depth); !c.IsZero() {
			t.Errorf("Depth %d: expected black, got %v", depth, c)
		}
	}
}

func TestTraceZeroDirectionIsBlack(t *testing.T) {
	s := scene.New("white", background.White)
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, 5), 1), material.NewMirror(1, 1, 1))

	c := Trace(core.NewRay(core.NewVec3(1, 2, 3), core.Vec3{}), s, 10)
	if !c.IsZero() {
		t.Errorf("Expected black for a zero-length direction, got %v", c)
	}
}

func TestTraceMissReturnsBackground(t *testing.T) {
	for _, kind := range background.Kinds() {
		t.Run(kind.String(), func(t *testing.T) {
			s := scene.New("empty", kind)
			ray := core.NewRay(core.Vec3{}, core.NewVec3(0.3, -0.4, 1))

			got := Trace(ray, s, 5)
			expected := kind.Shade(ray)
			if got != expected {
				t.Errorf("Expected exact background %v, got %v", expected, got)
			}
		})
	}
}

func TestTraceSingleBounce(t *testing.T) {
	mirror := material.NewMirror(0.5, 0.8, 0.5)
	s := scene.New("bounce", background.Gradient)
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, 5), 1), mirror)

	// Head-on hit sends the ray straight back along -Z
	escaped := background.Gradient.Shade(core.NewRay(core.NewVec3(0, 0, 4), core.NewVec3(0, 0, -1)))
	expected := escaped.MultiplyVec(mirror.Reflectivity())

	if got := Trace(forward, s, 10); got != expected {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestTraceFacingMirrorsExhaustDepth(t *testing.T) {
	s := scene.New("facing", background.White)
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, 5), 1), material.NewMirror(1, 1, 1))
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, -5), 1), material.NewMirror(1, 1, 1))

	// The ray bounces between the two forever, so every depth ends in black
	for depth := 1; depth <= 8; depth++ {
		if c := Trace(forward, s, depth); !c.IsZero() {
			t.Errorf("Depth %d: expected black, got %v", depth, c)
		}
	}
}

func TestTraceTieBreakUsesEarlierSphere(t *testing.T) {
	sphere := geometry.NewSphere(core.NewVec3(0, 0, 5), 1)
	s := scene.New("tie", background.White)
	s.Add(sphere, material.NewMirror(1, 0, 0))
	s.Add(sphere, material.NewMirror(0, 0, 1))

	expected := core.NewVec3(1, 0, 0)
	if got := Trace(forward, s, 10); got != expected {
		t.Errorf("Expected first sphere's tint %v, got %v", expected, got)
	}
}

func TestTraceGoldenHalfMirror(t *testing.T) {
	s := goldenScene()
	expected := core.NewVec3(0.5, 0.5, 0.5)
	for _, dir := range []core.Vec3{
		core.NewVec3(0, 0, 1),
		core.NewVec3(-1, -1, 1),
		core.NewVec3(1, 1, 1),
	} {
		if got := Trace(core.NewRay(core.Vec3{}, dir), s, 100); got != expected {
			t.Errorf("Direction %v: expected %v, got %v", dir, expected, got)
		}
	}
}

// goldenScene has one half-reflective sphere covering the whole frame over a
// white background
func goldenScene() *scene.Scene {
	s := scene.New("golden", background.White)
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, 5), 4.5), material.NewMirror(0.5, 0.5, 0.5))
	return s
}
