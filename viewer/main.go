// Command viewer opens a window and shows a render as its tiles finish.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/df07/go-mirror-raytracer/pkg/config"
	"github.com/df07/go-mirror-raytracer/pkg/log"
	"github.com/df07/go-mirror-raytracer/pkg/output"
	"github.com/df07/go-mirror-raytracer/pkg/preview"
	"github.com/df07/go-mirror-raytracer/pkg/renderer"
	"github.com/df07/go-mirror-raytracer/pkg/scene"
)

var logger = log.New("viewer")

type viewer struct {
	canvas *preview.Canvas
	screen *ebiten.Image
	cancel context.CancelFunc
	hud    bool
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		v.cancel()
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		v.hud = !v.hud
	}
	if pix, changed := v.canvas.Snapshot(); changed {
		v.screen.WritePixels(pix)
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.DrawImage(v.screen, nil)
	if !v.hud {
		return
	}

	tiles, total, done := v.canvas.Progress()
	if done {
		stats := v.canvas.Stats()
		ebitenutil.DebugPrint(screen, fmt.Sprintf("done: %d tiles in %v", stats.TotalTiles, stats.Duration))
		return
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("rendering %d/%d", tiles, total))
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	b := v.canvas.Bounds()
	return b.Dx(), b.Dy()
}

func loadConfig(ctx *cli.Context) (config.Render, error) {
	cfg := config.Default()
	cfg.Width, cfg.Height = 640, 360
	cfg.Workers = 0
	if path := ctx.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return config.Render{}, err
		}
	}

	for _, name := range []string{"width", "height", "samples", "depth", "tile", "workers", "preset", "background"} {
		if !ctx.IsSet(name) {
			continue
		}
		value := ctx.Int(name)
		switch name {
		case "width":
			cfg.Width = value
		case "height":
			cfg.Height = value
		case "samples":
			cfg.Samples = value
		case "depth":
			cfg.Depth = value
		case "tile":
			cfg.TileSize = value
		case "workers":
			cfg.Workers = value
		case "preset":
			cfg.Preset = value
		case "background":
			cfg.Background = value
		}
	}
	if ctx.IsSet("seed") {
		cfg.Seed = ctx.Float64("seed")
	}
	if ctx.IsSet("order") {
		cfg.Order = ctx.String("order")
	}
	if ctx.IsSet("out") {
		cfg.Output.Path = ctx.String("out")
		cfg.Output.Format = output.FormatFromPath(cfg.Output.Path)
	}

	if err := cfg.Validate(); err != nil {
		return config.Render{}, errors.Wrap(err, "invalid render settings")
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return config.Render{}, errors.New("viewer needs a non-empty image")
	}
	return cfg, nil
}

func view(ctx *cli.Context) error {
	if ctx.Bool("v") {
		log.SetLevel(log.Info)
	}

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	opts, err := cfg.SceneOptions()
	if err != nil {
		return err
	}
	sc := scene.NewPreset(opts)
	pr := renderer.NewProgressiveRaytracer(sc, cfg.Width, cfg.Height, cfg.ProgressiveConfig(), logger)

	renderCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	v := &viewer{
		canvas: preview.NewCanvas(cfg.Width, cfg.Height),
		screen: ebiten.NewImage(cfg.Width, cfg.Height),
		cancel: cancel,
		hud:    true,
	}

	saveTo := ""
	if ctx.IsSet("out") {
		saveTo = cfg.Output.Path
	}

	go func() {
		var (
			fb    *renderer.Framebuffer
			stats renderer.RenderStats
			err   error
		)
		if cfg.Workers == 1 {
			fb, stats = pr.RenderProgressive(v.canvas)
		} else {
			fb, stats, err = pr.RenderParallel(renderCtx, v.canvas)
		}
		if err != nil {
			logger.Infof("render stopped: %v", err)
			return
		}
		logger.Noticef("render finished in %v", stats.Duration)
		if saveTo == "" {
			return
		}
		if err := output.WriteFile(saveTo, fb, cfg.Output.Format); err != nil {
			logger.Errorf("%v", err)
			return
		}
		logger.Noticef("image saved as %s", saveTo)
	}()

	ebiten.SetWindowTitle(fmt.Sprintf("%s (%dx%d)", sc.Name, cfg.Width, cfg.Height))
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(v)
}

func main() {
	defaults := config.Default()

	app := cli.NewApp()
	app.Name = "go-mirror-raytracer-viewer"
	app.Usage = "watch a render fill in tile by tile (H toggles the overlay, Esc quits)"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "config, c", Usage: "YAML file with render settings"},
		cli.IntFlag{Name: "width", Value: 640, Usage: "image width"},
		cli.IntFlag{Name: "height", Value: 360, Usage: "image height"},
		cli.IntFlag{Name: "samples, spp", Value: defaults.Samples, Usage: "jittered samples per pixel"},
		cli.IntFlag{Name: "depth", Value: defaults.Depth, Usage: "maximum number of mirror bounces"},
		cli.Float64Flag{Name: "seed", Value: defaults.Seed, Usage: "starting state of the sample sequence"},
		cli.IntFlag{Name: "tile", Value: defaults.TileSize, Usage: "tile size in pixels"},
		cli.StringFlag{Name: "order", Value: defaults.Order, Usage: "tile order: raster or spiral"},
		cli.IntFlag{Name: "workers", Usage: "render goroutines; 1 renders sequentially in tile order, 0 uses every CPU"},
		cli.IntFlag{Name: "preset, p", Value: defaults.Preset, Usage: "scene preset code"},
		cli.IntFlag{Name: "background, bg", Value: defaults.Background, Usage: "background code"},
		cli.StringFlag{Name: "out, o", Usage: "also save the finished image here"},
		cli.BoolFlag{Name: "v", Usage: "enable verbose logging"},
	}
	app.Action = view

	if err := app.Run(os.Args); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}
