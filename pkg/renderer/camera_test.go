package renderer

import (
	"testing"

	"github.com/df07/go-mirror-raytracer/pkg/core"
)

func TestCameraGetRay(t *testing.T) {
	camera := NewCamera(4, 2)

	tests := []struct {
		name     string
		x, y     int
		r1, r2   float64
		expected core.Vec3
	}{
		{"center", 2, 1, 0, 0, core.NewVec3(0, 0, 1)},
		{"top left corner", 0, 0, 0, 0, core.NewVec3(-2, -1, 1)},
		{"jittered corner", 0, 0, 0.5, 0.25, core.NewVec3(-1.5, -0.75, 1)},
		{"bottom right pixel", 3, 1, 0, 0, core.NewVec3(1, 0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.x, tt.y, tt.r1, tt.r2)
			if !ray.Origin.IsZero() {
				t.Errorf("Expected origin at zero, got %v", ray.Origin)
			}
			if ray.Direction != tt.expected {
				t.Errorf("Expected direction %v, got %v", tt.expected, ray.Direction)
			}
		})
	}
}

func TestCameraRowsGrowDownward(t *testing.T) {
	camera := NewCamera(10, 10)
	top := camera.GetRay(5, 0, 0.5, 0.5)
	bottom := camera.GetRay(5, 9, 0.5, 0.5)
	if top.Direction.Y >= bottom.Direction.Y {
		t.Errorf("Expected row 0 to look up (smaller Y) than row 9, got %f >= %f",
			top.Direction.Y, bottom.Direction.Y)
	}
}

func TestCameraSampleRayDrawOrder(t *testing.T) {
	camera := NewCamera(8, 6)
	seed := 0.25

	r1 := core.Next(seed)
	r2 := core.Next(r1)
	expected := camera.GetRay(3, 2, r1, r2)

	ray := camera.SampleRay(3, 2, core.NewSequence(seed))
	if ray != expected {
		t.Errorf("Expected x jitter to be drawn before y jitter: want %v, got %v", expected, ray)
	}
}
