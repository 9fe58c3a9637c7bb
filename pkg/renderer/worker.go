package renderer

import (
	"context"
	"math/rand"

	"github.com/pkg/errors"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
)

// rowMessage carries one worker's summed samples for one image row
type rowMessage struct {
	Row  int
	Sums []core.Color
}

// worker samples every pixel of the image with its own generator
type worker struct {
	id         int
	samples    int
	random     *rand.Rand
	world      *geometry.World
	camera     *geometry.Camera
	integrator integrator.Integrator
	rows       chan<- rowMessage
}

func (r *Renderer) newWorker(id int, rows chan<- rowMessage) *worker {
	return &worker{
		id:         id,
		samples:    r.SamplesPerWorker(),
		random:     rand.New(rand.NewSource(r.config.Seed + int64(id))),
		world:      r.world,
		camera:     r.camera,
		integrator: r.integrator,
		rows:       rows,
	}
}

// run emits one message per row, top to bottom, and closes its channel on
// exit. A panic while sampling is returned as ErrWorkerExited.
func (w *worker) run(ctx context.Context) (err error) {
	defer close(w.rows)
	defer func() {
		if p := recover(); p != nil {
			err = errors.Wrapf(ErrWorkerExited, "worker %d panicked: %v", w.id, p)
		}
	}()

	for y := 0; y < w.camera.Height(); y++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		msg := rowMessage{Row: y, Sums: w.sampleRow(y)}
		select {
		case w.rows <- msg:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// sampleRow sums w.samples radiance samples for every pixel of row y
func (w *worker) sampleRow(y int) []core.Color {
	sums := make([]core.Color, w.camera.Width())
	for x := range sums {
		sum := core.Black
		for s := 0; s < w.samples; s++ {
			ray := w.camera.GetRay(x, y, w.random)
			sum = sum.Add(w.integrator.RayColor(ray, w.world, w.random))
		}
		sums[x] = sum
	}
	return sums
}
