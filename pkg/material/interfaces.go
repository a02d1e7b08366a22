package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Material interface for surfaces that scatter light
type Material interface {
	// Scatter continues a light path from a surface hit. It never fails:
	// absorption is signalled by a near-zero Attenuation.
	Scatter(rayIn core.Ray, hit core.Hit, sampler core.Sampler) ScatterResult
}

// Validator is implemented by materials that can check their own parameters
type Validator interface {
	Validate() error
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The ray continuing the light path, starting at the hit point
	Attenuation core.Vec3 // Multiplicative color decay applied to everything gathered along Scattered
}

// IsAbsorbed reports whether the path carries no further energy
func (s ScatterResult) IsAbsorbed() bool {
	return core.NearZero(s.Attenuation)
}
