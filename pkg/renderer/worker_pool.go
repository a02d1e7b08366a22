package renderer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// WorkerPool runs independent passes in parallel. Pass i of a batch always
// goes to worker i mod NumWorkers, so per-worker results do not depend on
// goroutine scheduling.
type WorkerPool struct {
	numWorkers int
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{numWorkers: numWorkers}
}

// NumWorkers returns the number of workers in the pool
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// Run calls work(worker, pass) for every pass. Each worker processes its
// passes in order and checks ctx before starting one; a pass in progress is
// never interrupted. Returns the context error if any pass was skipped.
func (wp *WorkerPool) Run(ctx context.Context, passes []int, work func(worker, pass int)) error {
	g, ctx := errgroup.WithContext(ctx)

	for w := 0; w < wp.numWorkers; w++ {
		g.Go(func() error {
			for i := w; i < len(passes); i += wp.numWorkers {
				if err := ctx.Err(); err != nil {
					return err
				}
				work(w, passes[i])
			}
			return nil
		})
	}

	return g.Wait()
}
