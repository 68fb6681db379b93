// Command rcdemo renders a small scene through the compositor with the
// software API and writes the resolved frame to a PNG file.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/internal/config"
	"github.com/gogpu/compositor/pool"
	"github.com/gogpu/compositor/render"
	"github.com/gogpu/compositor/view"
)

func main() {
	var (
		configPath = flag.String("config", "", "TOML configuration file")
		frames     = flag.Int("frames", 1, "number of frames to render")
		width      = flag.Int("width", 320, "image width")
		height     = flag.Int("height", 240, "image height")
		samples    = flag.Uint("samples", 1, "MSAA sample count")
		output     = flag.String("output", "rcdemo.png", "output file")
		verbose    = flag.Bool("v", false, "log graph and pool activity")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	compositor.SetLogger(logger)

	if err := run(logger, *configPath, *frames, *width, *height, uint32(*samples), *output); err != nil { //nolint:gosec // G115: sample counts are small
		log.Fatal(err)
	}
}

func run(logger *slog.Logger, configPath string, frames, width, height int, samples uint32, output string) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid size %dx%d", width, height)
	}

	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}

	api := render.NewSoftware(nil)
	texPool, err := pool.New(api, cfg.PoolOptions()...)
	if err != nil {
		return err
	}
	defer texPool.Close()

	renderer := compositor.NewRenderer(api, texPool, compositor.WithRenderOptions(cfg.RenderOptions()))
	defer renderer.Close()

	target := render.NewImageTarget(width, height)
	v := view.New("main", view.Properties{
		RunPostProcessing: true,
		Target: view.Target{
			Target:     target,
			NumSamples: samples,
			ClearColor: gputypes.Color{R: 0.1, G: 0.12, B: 0.18, A: 1},
		},
	}, cfg.RenderSettings())

	scene := demoScene()
	aspect := float32(width) / float32(height)
	proj := mgl32.Perspective(mgl32.DegToRad(60), aspect, 0.1, 100)

	for i := 0; i < frames; i++ {
		angle := float64(i) * 0.1
		eye := mgl32.Vec3{float32(6 * math.Sin(angle)), 3, float32(6 * math.Cos(angle))}
		v.UpdateTransforms(mgl32.LookAtV(eye, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}), proj)
		v.UpdateVisibility(scene)
		v.PrepareQueues(scene)

		stats, err := renderer.RenderView(v, scene)
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		logger.Info("frame rendered", "frame", i, "visible", v.Visibility().VisibleCount(), "stats", stats)
	}
	if g := renderer.Graph(v); g != nil {
		logger.Debug("compositor graph", "graph", g.String())
	}
	logger.Info("done", "pool", texPool.Stats(), "api", api.Stats())

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	if err := png.Encode(f, target.Image()); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("Saved to %s\n", output)
	return nil
}

// demoScene is a row of colored boxes on a floor slab.
func demoScene() *view.Scene {
	scene := &view.Scene{}
	unit := render.Bounds{Min: mgl32.Vec3{-0.5, -0.5, -0.5}, Max: mgl32.Vec3{0.5, 0.5, 0.5}}

	add := func(name string, world mgl32.Mat4, c gputypes.Color) {
		mat := render.NewSinglePassMaterial(name, render.Pass{DepthTest: true, DepthWrite: true})
		mat.SetDefault(render.ColorKey, c)
		scene.Add(view.NewRenderable(name, render.NewBoxMesh(name, unit), mat, world))
	}

	add("floor", mgl32.Translate3D(0, -0.6, 0).Mul4(mgl32.Scale3D(8, 0.2, 8)), gputypes.Color{R: 0.3, G: 0.3, B: 0.3, A: 1})
	colors := []gputypes.Color{
		{R: 0.9, G: 0.2, B: 0.2, A: 1},
		{R: 0.2, G: 0.8, B: 0.3, A: 1},
		{R: 0.2, G: 0.4, B: 0.9, A: 1},
	}
	for i, c := range colors {
		x := float32(i-1) * 1.8
		add(fmt.Sprintf("box%d", i), mgl32.Translate3D(x, 0, 0), c)
	}
	return scene
}
