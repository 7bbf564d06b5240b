// Package config holds the settings of a render: image size, sampling,
// scene selection and where the result goes. Settings come from defaults,
// an optional YAML file and finally command line flags or query parameters.
package config

import (
	"bytes"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/df07/go-mirror-raytracer/pkg/background"
	"github.com/df07/go-mirror-raytracer/pkg/core"
	"github.com/df07/go-mirror-raytracer/pkg/output"
	"github.com/df07/go-mirror-raytracer/pkg/renderer"
	"github.com/df07/go-mirror-raytracer/pkg/scene"
)

// MaxDimension bounds the image width and height
const MaxDimension = 8192

// Render is the complete description of one render
type Render struct {
	Width   int     `yaml:"width"`
	Height  int     `yaml:"height"`
	Samples int     `yaml:"samples"`
	Depth   int     `yaml:"depth"`
	Seed    float64 `yaml:"seed"`

	TileSize int    `yaml:"tile_size"`
	Order    string `yaml:"order"`
	Workers  int    `yaml:"workers"` // 1 renders sequentially, 0 uses every CPU

	Preset     int      `yaml:"preset"`
	Background int      `yaml:"background"`
	Colors     []string `yaml:"colors"` // "r,g,b" byte triples

	Output Output `yaml:"output"`
}

// Output says where the rendered image is written
type Output struct {
	Path   string `yaml:"path"`   // file path or key inside Bucket; "-" is stdout
	Format string `yaml:"format"` // ppm or png
	Bucket string `yaml:"bucket"` // optional blob bucket URL such as file:///tmp/renders
}

// Default returns the settings used when nothing is configured
func Default() Render {
	return Render{
		Width:    1280,
		Height:   720,
		Samples:  10,
		Depth:    100,
		Seed:     core.DefaultSeed,
		TileSize: 64,
		Order:    string(renderer.Spiral),
		Workers:  1,
		Output: Output{
			Path:   "-",
			Format: "ppm",
		},
	}
}

// Load reads a YAML file over the defaults and validates the result
func Load(path string) (Render, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Render{}, errors.Wrapf(err, "reading config %s", path)
	}
	cfg, err := Decode(bytes.NewReader(data))
	if err != nil {
		return Render{}, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Decode reads YAML from r over the defaults and validates the result.
// Unknown keys are rejected. An empty document yields the defaults. Without
// an explicit format the output format follows the output path extension.
func Decode(r io.Reader) (Render, error) {
	cfg := Default()
	cfg.Output.Format = ""
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Render{}, errors.Wrap(err, "decoding yaml")
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = output.FormatFromPath(cfg.Output.Path)
	}
	if err := cfg.Validate(); err != nil {
		return Render{}, err
	}
	return cfg, nil
}

// Validate checks every setting is in range
func (c Render) Validate() error {
	if c.Width < 0 || c.Width > MaxDimension {
		return errors.Errorf("width %d out of range [0, %d]", c.Width, MaxDimension)
	}
	if c.Height < 0 || c.Height > MaxDimension {
		return errors.Errorf("height %d out of range [0, %d]", c.Height, MaxDimension)
	}
	if c.Samples < 1 {
		return errors.Errorf("samples must be at least 1, got %d", c.Samples)
	}
	if c.Depth < 1 {
		return errors.Errorf("depth must be at least 1, got %d", c.Depth)
	}
	if c.Seed < 0 || c.Seed >= 1 {
		return errors.Errorf("seed %v out of range [0, 1)", c.Seed)
	}
	if c.TileSize < 1 {
		return errors.Errorf("tile size must be at least 1, got %d", c.TileSize)
	}
	if _, err := renderer.ParseOrder(c.Order); err != nil {
		return err
	}
	if c.Workers < 0 {
		return errors.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if _, err := ParseColors(c.Colors); err != nil {
		return err
	}
	switch c.Output.Format {
	case "ppm", "png":
	default:
		return errors.Errorf("unknown output format %q (want ppm or png)", c.Output.Format)
	}
	return nil
}

// SceneOptions converts the scene selection. Unknown preset and background
// codes are passed through; the scene package falls back to its defaults.
func (c Render) SceneOptions() (scene.Options, error) {
	colors, err := ParseColors(c.Colors)
	if err != nil {
		return scene.Options{}, err
	}
	return scene.Options{
		Preset:     c.Preset,
		Background: background.Kind(c.Background),
		Colors:     colors,
	}, nil
}

// ProgressiveConfig converts the sampling and tiling settings
func (c Render) ProgressiveConfig() renderer.ProgressiveConfig {
	return renderer.ProgressiveConfig{
		TileSize:        c.TileSize,
		SamplesPerPixel: c.Samples,
		MaxDepth:        c.Depth,
		Seed:            c.Seed,
		Order:           renderer.Order(c.Order),
		NumWorkers:      c.Workers,
	}
}

// ParseColors parses at most two "r,g,b" strings
func ParseColors(values []string) ([]scene.RGB, error) {
	if len(values) > 2 {
		return nil, errors.Errorf("at most 2 colors allowed, got %d", len(values))
	}
	colors := make([]scene.RGB, 0, len(values))
	for i, v := range values {
		c, err := ParseColor(v)
		if err != nil {
			return nil, errors.Wrapf(err, "color %d", i+1)
		}
		colors = append(colors, c)
	}
	return colors, nil
}

// ParseColor parses an "r,g,b" triple of bytes, for example "255,128,0"
func ParseColor(value string) (scene.RGB, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 3 {
		return scene.RGB{}, errors.Errorf("invalid color %q: want r,g,b", value)
	}

	var c scene.RGB
	for i, part := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(part), 10, 8)
		if err != nil {
			return scene.RGB{}, errors.Wrapf(err, "invalid color %q", value)
		}
		c[i] = uint8(n)
	}
	return c, nil
}
