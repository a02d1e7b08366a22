package renderer

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Raytracer renders single full-image passes. It holds no per-pass state
// and may be shared by concurrent workers.
type Raytracer struct {
	scene      *scene.Scene
	camera     *geometry.Camera
	integrator integrator.Integrator
	progress   *Progress // May be nil
}

// NewRaytracer creates a new raytracer
func NewRaytracer(s *scene.Scene, camera *geometry.Camera, config core.SamplingConfig) *Raytracer {
	return &Raytracer{
		scene:      s,
		camera:     camera,
		integrator: integrator.NewPathTracingIntegrator(config),
	}
}

// SetProgress attaches a counter that is advanced after every row
func (rt *Raytracer) SetProgress(progress *Progress) {
	rt.progress = progress
}

// RenderPass traces one sample per pixel, top row first, adding the colors to acc.
// Returns the number of scattering events along all traced paths.
func (rt *Raytracer) RenderPass(index int, sampler core.Sampler, acc *Accumulator) int {
	width, height := rt.camera.Width(), rt.camera.Height()
	bounces := 0

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			ray := rt.camera.SampleRay(x, y, sampler)
			color, n := rt.integrator.RayColor(ray, rt.scene, sampler)
			acc.AddSample(x, y, color)
			bounces += n
		}
		if rt.progress != nil {
			rt.progress.Add(width)
		}
	}

	acc.EndPass(index)
	return bounces
}
