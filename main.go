package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/df07/go-mirror-raytracer/pkg/config"
	"github.com/df07/go-mirror-raytracer/pkg/log"
)

var logger = log.New("raytracer")

func newApp() *cli.App {
	defaults := config.Default()

	app := cli.NewApp()
	app.Name = "go-mirror-raytracer"
	app.Usage = "render mirror sphere scenes with recursive ray tracing"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "log level: debug, info, notice, warning or error",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a preset scene to an image",
			Description: `
Render one of the preset scenes. Settings start from built-in defaults, are
overridden by the optional YAML file given with --config and finally by any
flag set on the command line.

The image is written as a plain-text PPM (P3) or a PNG. The output path "-"
writes to stdout. With --bucket the image is stored in a blob bucket instead,
for example file:///tmp/renders or gs://my-bucket.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "config, c",
					Usage: "YAML file with render settings",
				},
				cli.IntFlag{
					Name:  "width",
					Value: defaults.Width,
					Usage: "image width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: defaults.Height,
					Usage: "image height",
				},
				cli.IntFlag{
					Name:  "samples, spp",
					Value: defaults.Samples,
					Usage: "jittered samples per pixel",
				},
				cli.IntFlag{
					Name:  "depth",
					Value: defaults.Depth,
					Usage: "maximum number of mirror bounces",
				},
				cli.Float64Flag{
					Name:  "seed",
					Value: defaults.Seed,
					Usage: "starting state of the sample sequence, in [0, 1)",
				},
				cli.IntFlag{
					Name:  "tile",
					Value: defaults.TileSize,
					Usage: "tile size in pixels",
				},
				cli.StringFlag{
					Name:  "order",
					Value: defaults.Order,
					Usage: "tile order of parallel renders: raster or spiral; sequential renders use raster",
				},
				cli.IntFlag{
					Name:  "workers",
					Value: defaults.Workers,
					Usage: "render goroutines; 1 renders sequentially, 0 uses every CPU",
				},
				cli.IntFlag{
					Name:  "preset, p",
					Value: defaults.Preset,
					Usage: "scene preset code (see the presets command)",
				},
				cli.IntFlag{
					Name:  "background, bg",
					Value: defaults.Background,
					Usage: "background code (see the presets command)",
				},
				cli.StringFlag{
					Name:  "color1",
					Usage: "first preset tint as r,g,b",
				},
				cli.StringFlag{
					Name:  "color2",
					Usage: "second preset tint as r,g,b (requires color1)",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: defaults.Output.Path,
					Usage: "output file, or object key when --bucket is set",
				},
				cli.StringFlag{
					Name:  "format, f",
					Usage: "ppm or png; guessed from the output name when unset",
				},
				cli.StringFlag{
					Name:  "bucket",
					Usage: "blob bucket URL to store the image in",
				},
				cli.BoolFlag{
					Name:  "stats",
					Usage: "print render statistics",
				},
			},
			Action: RenderScene,
		},
		{
			Name:   "presets",
			Usage:  "list scene presets and backgrounds",
			Action: ListPresets,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}
