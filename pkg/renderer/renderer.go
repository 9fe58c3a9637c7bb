package renderer

import (
	"context"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
)

// Fatal render errors
var (
	ErrWorkerExited = errors.New("worker exited before delivering all rows")
	ErrRowMismatch  = errors.New("worker delivered rows out of order")
	ErrRowWidth     = errors.New("row width does not match image width")
)

// Config contains configuration for a render
type Config struct {
	SamplesPerPixel int   // Requested samples per pixel, split across workers
	NumWorkers      int   // Number of parallel workers (0 = use CPU count)
	MaxDepth        int   // Bounce limit (0 = integrator.DefaultMaxDepth)
	Seed            int64 // Worker w seeds its generator with Seed + w
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		SamplesPerPixel: 100,
		NumWorkers:      0,
		MaxDepth:        integrator.DefaultMaxDepth,
		Seed:            0,
	}
}

// RowWriter receives the finished image one row at a time, top row first
type RowWriter interface {
	Begin(width, height int) error
	WriteRow(y int, row []core.RGB) error
	Close() error
}

// Renderer splits the samples of every pixel across a fixed set of workers
// and sums their partial results row by row
type Renderer struct {
	world      *geometry.World
	camera     *geometry.Camera
	integrator integrator.Integrator
	config     Config
	logger     core.Logger
}

// NewRenderer creates a renderer. The world and camera must not be modified
// while a render is running.
func NewRenderer(world *geometry.World, camera *geometry.Camera, config Config, logger core.Logger) *Renderer {
	if config.NumWorkers <= 0 {
		config.NumWorkers = runtime.NumCPU()
	}
	if config.SamplesPerPixel < 1 {
		config.SamplesPerPixel = 1
	}
	if config.MaxDepth <= 0 {
		config.MaxDepth = integrator.DefaultMaxDepth
	}
	if logger == nil {
		logger = NopLogger{}
	}

	return &Renderer{
		world:      world,
		camera:     camera,
		integrator: integrator.NewPathTracingIntegrator(config.MaxDepth),
		config:     config,
		logger:     logger,
	}
}

// Config returns the effective configuration
func (r *Renderer) Config() Config {
	return r.config
}

// SamplesPerWorker returns ceil(SamplesPerPixel / NumWorkers)
func (r *Renderer) SamplesPerWorker() int {
	return (r.config.SamplesPerPixel + r.config.NumWorkers - 1) / r.config.NumWorkers
}

// TotalSamples returns the number of samples actually averaged per pixel,
// which rounds the requested count up to a multiple of the worker count
func (r *Renderer) TotalSamples() int {
	return r.SamplesPerWorker() * r.config.NumWorkers
}

// Accumulate runs the workers and calls fn once per row, in order, with the
// per-pixel radiance summed over TotalSamples samples. fn must not retain
// sums after it returns. Any worker failure or fn error stops the render.
func (r *Renderer) Accumulate(ctx context.Context, fn func(y int, sums []core.Color) error) error {
	width, height := r.camera.Width(), r.camera.Height()
	numWorkers := r.config.NumWorkers

	group, groupCtx := errgroup.WithContext(ctx)

	channels := make([]chan rowMessage, numWorkers)
	workerErrs := make([]error, numWorkers)
	for w := 0; w < numWorkers; w++ {
		channels[w] = make(chan rowMessage, height)
		wk := r.newWorker(w, channels[w])
		group.Go(func() error {
			workerErrs[wk.id] = wk.run(groupCtx)
			return workerErrs[wk.id]
		})
	}

	group.Go(func() error {
		return aggregate(groupCtx, channels, width, height, fn)
	})

	err := group.Wait()

	// A worker's own failure explains the aggregator's view of it
	for _, workerErr := range workerErrs {
		if workerErr != nil && !errors.Is(workerErr, context.Canceled) && !errors.Is(workerErr, context.DeadlineExceeded) {
			return workerErr
		}
	}
	return err
}

// Render accumulates the image, converts each row to output pixels and
// streams it to out
func (r *Renderer) Render(ctx context.Context, out RowWriter) (RenderStats, error) {
	startTime := time.Now()
	width, height := r.camera.Width(), r.camera.Height()
	totalSamples := r.TotalSamples()

	r.logger.Printf("Rendering %dx%d with %d workers, %d samples per pixel (%d per worker)\n",
		width, height, r.config.NumWorkers, totalSamples, r.SamplesPerWorker())

	if err := out.Begin(width, height); err != nil {
		return RenderStats{}, errors.Wrap(err, "begin output")
	}

	luminance := newLuminanceAccumulator(width * height)
	err := r.Accumulate(ctx, func(y int, sums []core.Color) error {
		row := make([]core.RGB, len(sums))
		for x, sum := range sums {
			row[x] = sum.Write(totalSamples)
		}
		luminance.AddRow(sums, totalSamples)

		if err := out.WriteRow(y, row); err != nil {
			return errors.Wrapf(err, "write row %d", y)
		}
		r.logger.Printf("Rendering line %d\n", y+1)
		return nil
	})
	if err != nil {
		return RenderStats{}, err
	}

	if err := out.Close(); err != nil {
		return RenderStats{}, errors.Wrap(err, "close output")
	}

	mean, stdDev := luminance.MeanStdDev()
	stats := RenderStats{
		Width:            width,
		Height:           height,
		Workers:          r.config.NumWorkers,
		SamplesPerWorker: r.SamplesPerWorker(),
		TotalSamples:     totalSamples,
		Duration:         time.Since(startTime),
		MeanLuminance:    mean,
		LuminanceStdDev:  stdDev,
	}
	r.logger.Printf("This render took: %d ms\n", stats.Duration.Milliseconds())

	return stats, nil
}

// aggregate receives row y from every worker in fixed order before moving
// to row y+1. Rows are tagged, so an out-of-order or short producer is
// reported instead of silently mixing rows.
func aggregate(ctx context.Context, channels []chan rowMessage, width, height int, fn func(y int, sums []core.Color) error) error {
	for y := 0; y < height; y++ {
		total := make([]core.Color, width)

		for w, ch := range channels {
			var msg rowMessage
			var ok bool
			select {
			case msg, ok = <-ch:
			case <-ctx.Done():
				return ctx.Err()
			}

			if !ok {
				if err := ctx.Err(); err != nil {
					return err
				}
				return errors.Wrapf(ErrWorkerExited, "worker %d closed before row %d", w, y)
			}
			if msg.Row != y {
				return errors.Wrapf(ErrRowMismatch, "worker %d sent row %d, expected %d", w, msg.Row, y)
			}
			if len(msg.Sums) != width {
				return errors.Wrapf(ErrRowWidth, "worker %d sent %d pixels for row %d, expected %d", w, len(msg.Sums), y, width)
			}

			for x := range total {
				total[x] = total[x].Add(msg.Sums[x])
			}
		}

		if err := fn(y, total); err != nil {
			return err
		}
	}
	return nil
}
