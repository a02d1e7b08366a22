package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// HitEpsilon is the minimum hit distance along a scattered ray.
// It keeps a ray from re-hitting the surface it just left.
const HitEpsilon = 0.001

// PathTracingIntegrator implements unidirectional path tracing with the
// scene background as the only light source
type PathTracingIntegrator struct {
	config core.SamplingConfig
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config core.SamplingConfig) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		config: config,
	}
}

// RayColor computes the color for a single ray.
//
// Each hit multiplies the path throughput by the material's decay and
// continues along the scattered ray. A path that escapes returns the
// background weighted by the throughput; a path that reaches MaxDepth
// scattering events or is fully absorbed returns black.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, s *scene.Scene, sampler core.Sampler) (core.Vec3, int) {
	throughput := core.NewVec3(1, 1, 1)

	for depth := 0; ; depth++ {
		// If we've reached the bounce limit, no more light is gathered
		if depth >= pt.config.MaxDepth {
			return core.Vec3{}, depth
		}

		entity, hit, isHit := s.NearestHit(ray, HitEpsilon, math.Inf(1))
		if !isHit {
			color := core.MultiplyVec(throughput, s.Background.Color(ray.Direction))
			return core.SanitizeRadiance(color), depth
		}

		scatter := entity.Material.Scatter(ray, hit, sampler)
		if scatter.IsAbsorbed() {
			return core.Vec3{}, depth + 1
		}

		throughput = core.MultiplyVec(throughput, scatter.Attenuation)
		ray = scatter.Scattered
	}
}
