package renderer

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// DefaultLogger implements core.Logger by writing to an io.Writer
type DefaultLogger struct {
	w io.Writer
}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(dl.w, format, args...)
}

// NewDefaultLogger creates a logger that writes to stdout
func NewDefaultLogger() core.Logger {
	return NewWriterLogger(os.Stdout)
}

// NewWriterLogger creates a logger that writes to w
func NewWriterLogger(w io.Writer) core.Logger {
	return &DefaultLogger{w: w}
}

// ProgressiveConfig contains configuration for multi-pass rendering
type ProgressiveConfig struct {
	NumWorkers int   // Number of parallel workers (0 = use CPU count)
	Seed       int64 // Pass i is sampled with seed Seed+i

	// NewSampler creates the random stream for one pass.
	// Defaults to core.NewSeededSampler.
	NewSampler func(seed int64) core.Sampler
}

// DefaultProgressiveConfig returns sensible default values
func DefaultProgressiveConfig() ProgressiveConfig {
	return ProgressiveConfig{
		NumWorkers: 0, // Auto-detect CPU count
		Seed:       42,
	}
}

// ProgressiveRaytracer renders SamplesPerPixel independent full-image passes
// in parallel and averages them
type ProgressiveRaytracer struct {
	camera     *geometry.Camera
	sampling   core.SamplingConfig
	config     ProgressiveConfig
	raytracer  *Raytracer
	workerPool *WorkerPool
	progress   *Progress
	resume     *Accumulator // Passes from a checkpoint, may be nil
	logger     core.Logger
}

// NewProgressiveRaytracer validates the scene and configuration and prepares a render
func NewProgressiveRaytracer(s *scene.Scene, camera *geometry.Camera, sampling core.SamplingConfig, config ProgressiveConfig, logger core.Logger) (*ProgressiveRaytracer, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if err := sampling.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sampling config: %w", err)
	}
	if config.NewSampler == nil {
		config.NewSampler = func(seed int64) core.Sampler { return core.NewSeededSampler(seed) }
	}
	if logger == nil {
		logger = core.NopLogger{}
	}

	progress := &Progress{}
	raytracer := NewRaytracer(s, camera, sampling)
	raytracer.SetProgress(progress)

	return &ProgressiveRaytracer{
		camera:     camera,
		sampling:   sampling,
		config:     config,
		raytracer:  raytracer,
		workerPool: NewWorkerPool(config.NumWorkers),
		progress:   progress,
		logger:     logger,
	}, nil
}

// Progress returns the counter advanced as rows complete
func (pr *ProgressiveRaytracer) Progress() *Progress {
	return pr.progress
}

// Resume continues from previously accumulated passes. Only the passes
// missing from SamplesPerPixel are rendered.
func (pr *ProgressiveRaytracer) Resume(acc *Accumulator) error {
	if acc.Width() != pr.camera.Width() || acc.Height() != pr.camera.Height() {
		return fmt.Errorf("%w: checkpoint is %dx%d, render is %dx%d",
			ErrCheckpointMismatch, acc.Width(), acc.Height(), pr.camera.Width(), pr.camera.Height())
	}
	pr.resume = acc
	return nil
}

// Render runs the remaining passes and returns the accumulated result.
// If ctx is cancelled, passes already started still finish and the partial
// accumulation is returned together with ctx.Err().
func (pr *ProgressiveRaytracer) Render(ctx context.Context) (*Accumulator, RenderStats, error) {
	width, height := pr.camera.Width(), pr.camera.Height()
	start := time.Now()

	result := NewAccumulator(width, height)
	if pr.resume != nil {
		if err := result.Merge(pr.resume); err != nil {
			return nil, RenderStats{}, err
		}
	}

	// Seeds continue after the highest pass already rendered
	count := max(0, pr.sampling.SamplesPerPixel-result.Passes())
	passes := make([]int, count)
	for i := range passes {
		passes[i] = result.NextPass() + i
	}

	numWorkers := min(pr.workerPool.NumWorkers(), max(1, count))
	pr.progress.SetTotal(count * width * height)
	pr.logger.Printf("Rendering %dx%d: %d passes (%d resumed) on %d workers...\n",
		width, height, count, result.Passes(), numWorkers)

	accumulators := make([]*Accumulator, pr.workerPool.NumWorkers())
	bounces := make([]int, len(accumulators))
	for i := range accumulators {
		accumulators[i] = NewAccumulator(width, height)
	}

	err := pr.workerPool.Run(ctx, passes, func(worker, pass int) {
		sampler := pr.config.NewSampler(pr.config.Seed + int64(pass))
		bounces[worker] += pr.raytracer.RenderPass(pass, sampler, accumulators[worker])
	})

	// Merge in worker order so the floating-point sum is reproducible
	stats := RenderStats{
		TotalPixels: width * height,
		Workers:     numWorkers,
	}
	for i, acc := range accumulators {
		if mergeErr := result.Merge(acc); mergeErr != nil {
			return nil, RenderStats{}, mergeErr
		}
		stats.NewPasses += acc.Passes()
		stats.TotalBounces += bounces[i]
	}
	stats.Passes = result.Passes()
	stats.TotalSamples = stats.NewPasses * stats.TotalPixels
	stats.Elapsed = time.Since(start)

	if err != nil {
		pr.logger.Printf("Rendering stopped after %d of %d new passes: %v\n", stats.NewPasses, count, err)
		return result, stats, err
	}

	pr.logger.Printf("Rendered %d passes in %v (average path length %.2f)\n",
		stats.NewPasses, stats.Elapsed, stats.AveragePathLength())
	return result, stats, nil
}
