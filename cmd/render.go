package cmd

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
	"github.com/urfave/cli"

	"pathtracer/pkg/config"
	"pathtracer/pkg/geometry"
	"pathtracer/pkg/renderer"
	"pathtracer/pkg/scene"
)

// RenderFlags lists the flags of the render command; each overrides the
// matching configuration field when set.
var RenderFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "config, c",
		Usage: "YAML configuration file",
	},
	cli.IntFlag{
		Name:  "width",
		Usage: "frame width",
	},
	cli.IntFlag{
		Name:  "height",
		Usage: "frame height",
	},
	cli.IntFlag{
		Name:  "spp",
		Usage: "samples per pixel",
	},
	cli.IntFlag{
		Name:  "num-bounces",
		Usage: "maximum path length",
	},
	cli.IntFlag{
		Name:  "rr-bounces",
		Usage: "bounce after which Russian roulette may terminate paths",
	},
	cli.StringFlag{
		Name:  "scene",
		Usage: "scene to render (see the scenes command)",
	},
	cli.IntFlag{
		Name:  "workers",
		Usage: "rendering goroutines, 0 for one per CPU",
	},
	cli.Int64Flag{
		Name:  "seed",
		Usage: "random seed",
	},
	cli.StringFlag{
		Name:  "out",
		Usage: "output PNG file",
	},
	cli.StringFlag{
		Name:  "tone-map",
		Usage: "tone mapping operator: none, reinhard, stockham or drago",
	},
}

// RenderScene renders a registered scene to a PNG file.
func RenderScene(ctx *cli.Context) error {
	setupLogging(ctx)

	cfg, err := resolveConfig(ctx)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logHostInfo()

	mapper, err := renderer.ToneMapperByName(cfg.Output.ToneMap)
	if err != nil {
		return err
	}

	aspect := float64(cfg.Render.Width) / float64(cfg.Render.Height)
	sc, err := scene.Build(cfg.Render.Scene, aspect)
	if err != nil {
		return err
	}

	r := renderer.New(renderer.Options{
		Width:         cfg.Render.Width,
		Height:        cfg.Render.Height,
		Samples:       cfg.Render.Samples,
		MaxBounces:    cfg.Render.MaxBounces,
		RouletteStart: cfg.Render.RouletteStart,
		Workers:       cfg.Render.Workers,
		Seed:          cfg.Render.Seed,
		ToneMapper:    mapper,
	})

	logger.Noticef("rendering scene %q at %dx%d with %d samples per pixel",
		sc.Name, cfg.Render.Width, cfg.Render.Height, cfg.Render.Samples)

	start := time.Now()
	img := r.Render(sc.Camera, sc.World, sc.Light)
	elapsed := time.Since(start).Round(time.Millisecond)

	out, err := os.Create(cfg.Output.File)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := renderer.WritePNG(out, img); err != nil {
		return err
	}

	displayRenderStats(cfg, sc, elapsed)
	logger.Noticef("render saved to %s", cfg.Output.File)
	return nil
}

// resolveConfig layers command line flags over the optional config file
func resolveConfig(ctx *cli.Context) (config.Config, error) {
	cfg := config.Default()
	if path := ctx.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if ctx.IsSet("width") {
		cfg.Render.Width = ctx.Int("width")
	}
	if ctx.IsSet("height") {
		cfg.Render.Height = ctx.Int("height")
	}
	if ctx.IsSet("spp") {
		cfg.Render.Samples = ctx.Int("spp")
	}
	if ctx.IsSet("num-bounces") {
		cfg.Render.MaxBounces = ctx.Int("num-bounces")
	}
	if ctx.IsSet("rr-bounces") {
		cfg.Render.RouletteStart = ctx.Int("rr-bounces")
	}
	if ctx.IsSet("scene") {
		cfg.Render.Scene = ctx.String("scene")
	}
	if ctx.IsSet("workers") {
		cfg.Render.Workers = ctx.Int("workers")
	}
	if ctx.IsSet("seed") {
		cfg.Render.Seed = ctx.Int64("seed")
	}
	if ctx.IsSet("out") {
		cfg.Output.File = ctx.String("out")
	}
	if ctx.IsSet("tone-map") {
		cfg.Output.ToneMap = ctx.String("tone-map")
	}

	return cfg, nil
}

// logHostInfo reports the machine the render runs on
func logHostInfo() {
	if info, err := cpu.Info(); err == nil && len(info) > 0 {
		logger.Infof("cpu: %s (%d logical cores)", info[0].ModelName, len(info))
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		logger.Infof("memory: %.1f GiB total, %.1f%% in use",
			float64(vm.Total)/(1<<30), vm.UsedPercent)
	}
}

// displayRenderStats prints the render summary table
func displayRenderStats(cfg config.Config, sc *scene.Scene, elapsed time.Duration) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Resolution", "Samples", "BVH nodes", "BVH depth", "Render time"})

	nodes, depth := "-", "-"
	if bvh, ok := sc.World.(*geometry.BVHNode); ok {
		stats := bvh.Stats()
		nodes = fmt.Sprintf("%d", stats.Nodes)
		depth = fmt.Sprintf("%d", stats.MaxDepth)
	}

	table.Append([]string{
		sc.Name,
		fmt.Sprintf("%dx%d", cfg.Render.Width, cfg.Render.Height),
		fmt.Sprintf("%d", cfg.Render.Samples),
		nodes,
		depth,
		elapsed.String(),
	})
	table.Render()

	logger.Noticef("render statistics\n%s", buf.String())
}
