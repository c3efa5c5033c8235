package renderer

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"pathtracer/log"
	"pathtracer/pkg/core"
	"pathtracer/pkg/integrator"
)

var logger = log.New("renderer")

// Options configures a render.
type Options struct {
	Width         int
	Height        int
	Samples       int
	MaxBounces    int
	RouletteStart int

	// Workers is the number of rendering goroutines; zero means one per
	// CPU.
	Workers int

	// Seed makes renders reproducible: worker i uses Seed+i.
	Seed int64

	// ToneMapper compresses the HDR buffer before quantization; nil skips
	// tone mapping and clamps.
	ToneMapper ToneMapper
}

// Renderer drives the integrator over the film and assembles the image.
type Renderer struct {
	opts Options
}

// New creates a renderer
func New(opts Options) *Renderer {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	return &Renderer{opts: opts}
}

// RenderHDR renders the scene into a linear radiance buffer in row-major
// order, top row first.
func (r *Renderer) RenderHDR(camera *Camera, world core.Hitable, light core.Sampleable) []core.Vec3 {
	opts := r.opts
	pixels := make([]core.Vec3, opts.Width*opts.Height)

	rows := make(chan int, opts.Height)
	for y := 0; y < opts.Height; y++ {
		rows <- y
	}
	close(rows)

	var completed atomic.Int64
	done := make(chan struct{})
	go r.reportProgress(&completed, done)

	var wg sync.WaitGroup
	for worker := 0; worker < opts.Workers; worker++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(opts.Seed + int64(worker)))
			pt := integrator.NewPathTracer(opts.MaxBounces, opts.RouletteStart, light, camera.Atmosphere)

			for y := range rows {
				r.renderRow(y, camera, world, pt, rng, pixels)
				completed.Add(1)
			}
		}(worker)
	}

	wg.Wait()
	close(done)

	return pixels
}

// renderRow traces every pixel of one film row
func (r *Renderer) renderRow(y int, camera *Camera, world core.Hitable, pt *integrator.PathTracer, rng *rand.Rand, pixels []core.Vec3) {
	opts := r.opts
	for x := 0; x < opts.Width; x++ {
		sum := core.Vec3{}
		for s := 0; s < opts.Samples; s++ {
			u := (float64(x) + rng.Float64()) / float64(opts.Width)
			v := (float64(opts.Height-1-y) + rng.Float64()) / float64(opts.Height)
			ray := camera.GetRay(u, v, rng)
			sum = sum.Add(pt.Li(ray, world, rng))
		}
		pixels[y*opts.Width+x] = sum.Multiply(1.0 / float64(opts.Samples))
	}
}

// reportProgress logs completion percentage until the render finishes
func (r *Renderer) reportProgress(completed *atomic.Int64, done chan struct{}) {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	total := int64(r.opts.Height)
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			count := completed.Load()
			logger.Infof("rendered %d/%d rows (%.1f%%)", count, total, 100*float64(count)/float64(total))
		}
	}
}

// Render renders the scene and develops it into an 8-bit image: tone map,
// then gamma 2.0, then quantize.
func (r *Renderer) Render(camera *Camera, world core.Hitable, light core.Sampleable) *image.RGBA {
	start := time.Now()
	pixels := r.RenderHDR(camera, world, light)
	logger.Infof("traced %dx%d at %d spp in %s", r.opts.Width, r.opts.Height, r.opts.Samples, time.Since(start).Round(time.Millisecond))

	toneMapBuffer(pixels, r.opts.ToneMapper)
	return developImage(pixels, r.opts.Width, r.opts.Height)
}

// developImage converts the linear buffer to sRGB-ish output with gamma 2.0
func developImage(pixels []core.Vec3, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p := pixels[y*width+x].GammaCorrect(2.0).Clamp(0, 1)
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(math.Round(p.X * 255)),
				G: uint8(math.Round(p.Y * 255)),
				B: uint8(math.Round(p.Z * 255)),
				A: 255,
			})
		}
	}
	return img
}

// WritePNG encodes the image to the writer
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}
