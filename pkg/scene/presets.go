package scene

import (
	"fmt"

	"github.com/df07/go-mirror-raytracer/pkg/background"
	"github.com/df07/go-mirror-raytracer/pkg/core"
	"github.com/df07/go-mirror-raytracer/pkg/geometry"
	"github.com/df07/go-mirror-raytracer/pkg/material"
)

// RGB is a byte color used to tint preset materials
type RGB [3]uint8

// String formats the color as r,g,b
func (c RGB) String() string {
	return fmt.Sprintf("%d,%d,%d", c[0], c[1], c[2])
}

// Mirror converts the color to a mirror reflectivity
func (c RGB) Mirror() material.Mirror {
	return material.MirrorFromRGB(c[0], c[1], c[2])
}

// Options selects and parameterizes a preset
type Options struct {
	Preset     int
	Background background.Kind
	Colors     []RGB // at most two; missing entries keep the preset's defaults
}

// PresetInfo describes a preset for listings
type PresetInfo struct {
	Code        int    `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Color1      string `json:"color1"` // what the first color tints
	Color2      string `json:"color2"` // what the second color tints
}

type preset struct {
	info  PresetInfo
	build func(s *Scene, c1, c2 material.Mirror)
	// default tints, used when the caller gives no color
	defaults [2]material.Mirror
}

var presets = []preset{
	{
		info: PresetInfo{
			Code:        0,
			Name:        "ring",
			Description: "Mirror ball on a mirrored ground with a ring of eight small spheres",
			Color1:      "center sphere",
			Color2:      "ring spheres",
		},
		build:    buildRing,
		defaults: [2]material.Mirror{material.NewMirror(0.5, 0.5, 0.5), material.NewMirror(0.5, 0.8, 0.5)},
	},
	{
		info: PresetInfo{
			Code:        1,
			Name:        "single",
			Description: "One large mirror sphere resting on the ground",
			Color1:      "sphere",
			Color2:      "ground",
		},
		build:    buildSingle,
		defaults: [2]material.Mirror{material.NewMirror(0.8, 0.8, 0.8), material.NewMirror(0.9, 0.9, 0.9)},
	},
	{
		info: PresetInfo{
			Code:        2,
			Name:        "row",
			Description: "Five spheres in a row with alternating tints",
			Color1:      "odd spheres",
			Color2:      "even spheres",
		},
		build:    buildRow,
		defaults: [2]material.Mirror{material.NewMirror(0.9, 0.4, 0.4), material.NewMirror(0.4, 0.6, 0.9)},
	},
	{
		info: PresetInfo{
			Code:        3,
			Name:        "corridor",
			Description: "A ball between two facing mirror walls, reflected many times over",
			Color1:      "walls",
			Color2:      "ball",
		},
		build:    buildCorridor,
		defaults: [2]material.Mirror{material.NewMirror(0.95, 0.95, 0.95), material.NewMirror(0.9, 0.6, 0.2)},
	},
}

// Presets lists every preset in code order
func Presets() []PresetInfo {
	infos := make([]PresetInfo, len(presets))
	for i, p := range presets {
		infos[i] = p.info
	}
	return infos
}

// NewPreset builds the scene for opts. Unknown preset codes fall back to
// preset 0, matching how unknown background codes fall back to the gradient.
func NewPreset(opts Options) *Scene {
	p := presets[0]
	if opts.Preset >= 0 && opts.Preset < len(presets) {
		p = presets[opts.Preset]
	}

	tints := p.defaults
	for i := 0; i < len(opts.Colors) && i < len(tints); i++ {
		tints[i] = opts.Colors[i].Mirror()
	}

	s := New(p.info.Name, opts.Background)
	p.build(s, tints[0], tints[1])
	return s
}

// groundSphere is a huge sphere whose top sits at y=0.5 (y grows downward)
func groundSphere() geometry.Sphere {
	return geometry.NewSphere(core.NewVec3(0, 1000.5, 1), 1000)
}

func buildRing(s *Scene, center, ring material.Mirror) {
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, 1), 0.5), center)
	s.Add(groundSphere(), material.NewMirror(0.9, 0.9, 0.9))

	ringCenters := []core.Vec3{
		core.NewVec3(-1.0, 0.3, 0.0),
		core.NewVec3(-1.0, 0.3, 2.0),
		core.NewVec3(1.0, 0.3, 0.0),
		core.NewVec3(1.0, 0.3, 2.0),
		core.NewVec3(1.414, 0.3, 1.0),
		core.NewVec3(-1.414, 0.3, 1.0),
		core.NewVec3(0.0, 0.3, 2.414),
		core.NewVec3(0.0, 0.3, 1.0-1.414),
	}
	for _, c := range ringCenters {
		s.Add(geometry.NewSphere(c, 0.2), ring)
	}
}

func buildSingle(s *Scene, sphere, ground material.Mirror) {
	s.Add(geometry.NewSphere(core.NewVec3(0, -0.2, 2.2), 0.7), sphere)
	s.Add(groundSphere(), ground)
}

func buildRow(s *Scene, odd, even material.Mirror) {
	for i := 0; i < 5; i++ {
		tint := odd
		if i%2 == 1 {
			tint = even
		}
		x := -1.6 + 0.8*float64(i)
		s.Add(geometry.NewSphere(core.NewVec3(x, 0.15, 2.5), 0.35), tint)
	}
	s.Add(groundSphere(), material.NewMirror(0.9, 0.9, 0.9))
}

func buildCorridor(s *Scene, walls, ball material.Mirror) {
	s.Add(geometry.NewSphere(core.NewVec3(-1001, 0, 0), 1000), walls)
	s.Add(geometry.NewSphere(core.NewVec3(1001, 0, 0), 1000), walls)
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, 3), 0.5), ball)
	s.Add(groundSphere(), material.NewMirror(0.85, 0.85, 0.85))
}
