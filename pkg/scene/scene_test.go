package scene

import (
	"testing"

	"github.com/df07/go-mirror-raytracer/pkg/background"
	"github.com/df07/go-mirror-raytracer/pkg/core"
	"github.com/df07/go-mirror-raytracer/pkg/geometry"
	"github.com/df07/go-mirror-raytracer/pkg/material"
	"github.com/google/go-cmp/cmp"
)

func TestNearestHit_PicksClosest(t *testing.T) {
	s := New("test", background.White)
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, 10), 1), material.NewMirror(1, 0, 0))
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, 5), 1), material.NewMirror(0, 1, 0))
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, 20), 1), material.NewMirror(0, 0, 1))

	index, distance, ok := s.NearestHit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1)))
	if !ok {
		t.Fatal("Expected a hit")
	}
	if index != 1 {
		t.Errorf("Expected nearest object 1, got %d", index)
	}
	if distance != 4 {
		t.Errorf("Expected distance 4, got %f", distance)
	}
}

func TestNearestHit_TieBreakFirstInserted(t *testing.T) {
	tests := []struct {
		name  string
		first material.Mirror
		other material.Mirror
	}{
		{"red first", material.NewMirror(1, 0, 0), material.NewMirror(0, 0, 1)},
		{"blue first", material.NewMirror(0, 0, 1), material.NewMirror(1, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New("tie", background.White)
			sphere := geometry.NewSphere(core.NewVec3(0, 0, 5), 1)
			s.Add(sphere, tt.first)
			s.Add(sphere, tt.other)

			index, _, ok := s.NearestHit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1)))
			if !ok || index != 0 {
				t.Fatalf("Expected earliest object 0 to win the tie, got index=%d ok=%t", index, ok)
			}
			if s.Objects[index].Material != tt.first {
				t.Errorf("Expected first inserted material %v, got %v", tt.first, s.Objects[index].Material)
			}
		})
	}
}

func TestNearestHit_IgnoresNonPositive(t *testing.T) {
	s := New("behind", background.White)
	// Camera sits inside this one, so its near root is negative
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, 0), 3), material.NewMirror(1, 1, 1))
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, -5), 1), material.NewMirror(1, 1, 1))

	if _, _, ok := s.NearestHit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1))); ok {
		t.Error("Expected no hit for spheres enclosing or behind the origin")
	}
}

func TestNearestHit_EmptyScene(t *testing.T) {
	s := New("empty", nil)
	if _, _, ok := s.NearestHit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1))); ok {
		t.Error("Expected no hit in an empty scene")
	}
	if s.Background != background.Gradient {
		t.Errorf("Expected nil background to default to gradient, got %v", s.Background)
	}
}

func TestPresets(t *testing.T) {
	tests := []struct {
		code        int
		name        string
		objectCount int
	}{
		{0, "ring", 10},
		{1, "single", 2},
		{2, "row", 6},
		{3, "corridor", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewPreset(Options{Preset: tt.code, Background: background.Starfield})
			if s.Name != tt.name {
				t.Errorf("Expected name %s, got %s", tt.name, s.Name)
			}
			if s.GetPrimitiveCount() != tt.objectCount {
				t.Errorf("Expected %d objects, got %d", tt.objectCount, s.GetPrimitiveCount())
			}
			if s.Background != background.Starfield {
				t.Errorf("Expected starfield background, got %v", s.Background)
			}
		})
	}

	infos := Presets()
	if len(infos) != len(tests) {
		t.Fatalf("Expected %d presets listed, got %d", len(tests), len(infos))
	}
	for i, info := range infos {
		if info.Code != i {
			t.Errorf("Preset %d listed with code %d", i, info.Code)
		}
	}
}

func TestRingPresetMatchesReferenceLayout(t *testing.T) {
	s := NewPreset(Options{})

	center := s.Objects[0]
	if diff := cmp.Diff(geometry.NewSphere(core.NewVec3(0, 0, 1), 0.5), center.Shape); diff != "" {
		t.Errorf("Center sphere mismatch (-want +got):\n%s", diff)
	}
	if center.Material != material.NewMirror(0.5, 0.5, 0.5) {
		t.Errorf("Expected gray center mirror, got %v", center.Material)
	}
	if s.Objects[2].Material != material.NewMirror(0.5, 0.8, 0.5) {
		t.Errorf("Expected green ring mirror, got %v", s.Objects[2].Material)
	}
}

func TestPresetColors(t *testing.T) {
	red := RGB{255, 0, 0}
	blue := RGB{0, 0, 255}

	s := NewPreset(Options{Preset: 0, Colors: []RGB{red, blue}})
	if s.Objects[0].Material != red.Mirror() {
		t.Errorf("Expected color 1 to tint the center sphere, got %v", s.Objects[0].Material)
	}
	for _, obj := range s.Objects[2:] {
		if obj.Material != blue.Mirror() {
			t.Errorf("Expected color 2 to tint ring spheres, got %v", obj.Material)
		}
	}

	// Only one color: the second keeps the default
	s = NewPreset(Options{Preset: 0, Colors: []RGB{red}})
	if s.Objects[2].Material != material.NewMirror(0.5, 0.8, 0.5) {
		t.Errorf("Expected default ring tint, got %v", s.Objects[2].Material)
	}
}

func TestUnknownPresetFallsBack(t *testing.T) {
	for _, code := range []int{-1, 4, 100} {
		s := NewPreset(Options{Preset: code})
		if s.Name != "ring" {
			t.Errorf("Preset %d: expected fallback to ring, got %s", code, s.Name)
		}
	}
}

func TestRGBString(t *testing.T) {
	if got := (RGB{1, 2, 3}).String(); got != "1,2,3" {
		t.Errorf("Expected 1,2,3, got %s", got)
	}
}
