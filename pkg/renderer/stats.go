package renderer

import (
	"fmt"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/imageio"
	"gonum.org/v1/gonum/floats"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Passes       int           // Full-image passes in the result, including resumed ones
	NewPasses    int           // Passes rendered by this call
	TotalPixels  int           // Pixels per pass
	TotalSamples int           // Camera rays traced by this call
	TotalBounces int           // Scattering events on those rays
	Workers      int           // Parallel workers used
	Elapsed      time.Duration // Wall-clock render time
}

// AveragePathLength returns the mean number of scattering events per camera ray
func (s RenderStats) AveragePathLength() float64 {
	if s.TotalSamples == 0 {
		return 0
	}
	return float64(s.TotalBounces) / float64(s.TotalSamples)
}

// Accumulator sums full-image passes. Each worker owns one; they are merged
// after all passes finish, so no synchronization is needed while rendering.
type Accumulator struct {
	width, height int
	sum           []float64 // R, G, B per pixel, row-major, row 0 at the top
	passes        int       // Completed passes summed into sum
	nextPass      int       // Lowest pass index not yet rendered into sum
}

// NewAccumulator creates an empty accumulator for a width×height image
func NewAccumulator(width, height int) *Accumulator {
	return &Accumulator{
		width:  width,
		height: height,
		sum:    make([]float64, width*height*3),
	}
}

// Width returns the image width in pixels
func (a *Accumulator) Width() int { return a.width }

// Height returns the image height in pixels
func (a *Accumulator) Height() int { return a.height }

// Passes returns the number of passes summed so far
func (a *Accumulator) Passes() int { return a.passes }

// NextPass returns the first pass index that has not contributed yet.
// Passes are seeded by index, so resuming from here never repeats a seed.
func (a *Accumulator) NextPass() int { return a.nextPass }

// AddSample adds one sample to pixel (x, y) of the current pass
func (a *Accumulator) AddSample(x, y int, color core.Vec3) {
	i := (y*a.width + x) * 3
	a.sum[i] += color.X
	a.sum[i+1] += color.Y
	a.sum[i+2] += color.Z
}

// EndPass records that pass index has been fully added
func (a *Accumulator) EndPass(index int) {
	a.passes++
	a.nextPass = max(a.nextPass, index+1)
}

// Merge adds other's passes into a
func (a *Accumulator) Merge(other *Accumulator) error {
	if other.width != a.width || other.height != a.height {
		return fmt.Errorf("%w: merging %dx%d into %dx%d", ErrCheckpointMismatch, other.width, other.height, a.width, a.height)
	}
	floats.Add(a.sum, other.sum)
	a.passes += other.passes
	a.nextPass = max(a.nextPass, other.nextPass)
	return nil
}

// Image returns the per-pixel mean over all passes. An accumulator with no
// passes yields a black image.
func (a *Accumulator) Image() *imageio.Image {
	img := imageio.NewImage(a.width, a.height)
	if a.passes == 0 {
		return img
	}
	floats.ScaleTo(img.Pix, 1/float64(a.passes), a.sum)
	return img
}
