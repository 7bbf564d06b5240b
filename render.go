package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/df07/go-mirror-raytracer/pkg/config"
	"github.com/df07/go-mirror-raytracer/pkg/output"
	"github.com/df07/go-mirror-raytracer/pkg/renderer"
	"github.com/df07/go-mirror-raytracer/pkg/scene"
)

// RenderScene renders a preset scene and writes the image.
func RenderScene(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	cfg, err := loadRenderConfig(ctx)
	if err != nil {
		return err
	}

	opts, err := cfg.SceneOptions()
	if err != nil {
		return err
	}
	sc := scene.NewPreset(opts)
	logger.Infof("scene %q with %d spheres on a %s background", sc.Name, sc.GetPrimitiveCount(), opts.Background)

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pr := renderer.NewProgressiveRaytracer(sc, cfg.Width, cfg.Height, cfg.ProgressiveConfig(), logger)

	var (
		fb    *renderer.Framebuffer
		stats renderer.RenderStats
	)
	if cfg.Workers == 1 {
		fb, stats = pr.RenderImageWithStats()
	} else {
		fb, stats, err = pr.RenderParallel(runCtx, nil)
		if err != nil {
			return errors.Wrap(err, "render aborted")
		}
	}

	if fb == nil {
		logger.Notice("empty image requested; nothing to write")
		return nil
	}

	if err := writeImage(runCtx, cfg.Output, fb); err != nil {
		return err
	}

	if ctx.Bool("stats") {
		displayRenderStats(stats)
	}
	return nil
}

// loadRenderConfig layers defaults, the optional config file and set flags.
func loadRenderConfig(ctx *cli.Context) (config.Render, error) {
	cfg := config.Default()
	if path := ctx.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return config.Render{}, err
		}
	}

	if ctx.IsSet("width") {
		cfg.Width = ctx.Int("width")
	}
	if ctx.IsSet("height") {
		cfg.Height = ctx.Int("height")
	}
	if ctx.IsSet("samples") {
		cfg.Samples = ctx.Int("samples")
	}
	if ctx.IsSet("depth") {
		cfg.Depth = ctx.Int("depth")
	}
	if ctx.IsSet("seed") {
		cfg.Seed = ctx.Float64("seed")
	}
	if ctx.IsSet("tile") {
		cfg.TileSize = ctx.Int("tile")
	}
	if ctx.IsSet("order") {
		cfg.Order = ctx.String("order")
	}
	if ctx.IsSet("workers") {
		cfg.Workers = ctx.Int("workers")
	}
	if ctx.IsSet("preset") {
		cfg.Preset = ctx.Int("preset")
	}
	if ctx.IsSet("background") {
		cfg.Background = ctx.Int("background")
	}

	color1, color2 := ctx.String("color1"), ctx.String("color2")
	switch {
	case color2 != "" && color1 == "":
		return config.Render{}, errors.New("color2 requires color1")
	case color2 != "":
		cfg.Colors = []string{color1, color2}
	case color1 != "":
		cfg.Colors = []string{color1}
	}

	if ctx.IsSet("out") {
		cfg.Output.Path = ctx.String("out")
		cfg.Output.Format = output.FormatFromPath(cfg.Output.Path)
	}
	if ctx.IsSet("format") {
		cfg.Output.Format = ctx.String("format")
	}
	if ctx.IsSet("bucket") {
		cfg.Output.Bucket = ctx.String("bucket")
	}

	if err := cfg.Validate(); err != nil {
		return config.Render{}, errors.Wrap(err, "invalid render settings")
	}
	return cfg, nil
}

func writeImage(ctx context.Context, out config.Output, fb *renderer.Framebuffer) error {
	if out.Bucket != "" {
		if err := output.WriteToBucket(ctx, out.Bucket, out.Path, fb, out.Format); err != nil {
			return err
		}
		logger.Noticef("image stored as %s in %s", out.Path, out.Bucket)
		return nil
	}

	if err := output.WriteFile(out.Path, fb, out.Format); err != nil {
		return err
	}
	if out.Path != "-" {
		logger.Noticef("image saved as %s", out.Path)
	}
	return nil
}

func displayRenderStats(stats renderer.RenderStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Tiles", "Pixels", "Samples", "Samples/pixel", "Max depth", "Workers"})
	table.Append([]string{
		fmt.Sprintf("%d", stats.TotalTiles),
		fmt.Sprintf("%d", stats.TotalPixels),
		fmt.Sprintf("%d", stats.TotalSamples),
		fmt.Sprintf("%.1f", stats.AverageSamples),
		fmt.Sprintf("%d", stats.MaxDepth),
		fmt.Sprintf("%d", stats.Workers),
	})
	table.SetFooter([]string{"", "", "", "", "TOTAL", stats.Duration.String()})

	table.Render()
	logger.Noticef("render statistics\n%s", buf.String())
}
