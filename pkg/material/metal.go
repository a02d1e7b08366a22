package material

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"gonum.org/v1/gonum/spatial/r3"
)

// Metal represents a metallic material with specular reflection
type Metal struct {
	Albedo core.Vec3 // Metal color
	Fuzz   float64   // 0.0 = perfect mirror, 1.0 = very fuzzy
}

// NewMetal creates a new metal material
func NewMetal(albedo core.Vec3, fuzz float64) *Metal {
	// Clamp fuzz to valid range
	if fuzz > 1.0 {
		fuzz = 1.0
	}
	if fuzz < 0.0 {
		fuzz = 0.0
	}
	return &Metal{Albedo: albedo, Fuzz: fuzz}
}

// Scatter implements the Material interface for metal scattering
func (m *Metal) Scatter(rayIn core.Ray, hit core.Hit, sampler core.Sampler) ScatterResult {
	reflected := reflect(rayIn.Direction, hit.Normal)

	// Perturb the unit reflection so fuzz means the same thing for any ray length
	if m.Fuzz > 0 {
		perturbation := r3.Scale(m.Fuzz, core.SampleOnUnitSphere(sampler.Get2D()))
		reflected = r3.Add(r3.Unit(reflected), perturbation)
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, reflected),
		Attenuation: m.Albedo, // Grazing fuzz may point below the surface; that path is still traced
	}
}

// Validate checks that fuzz lies in [0, 1]
func (m *Metal) Validate() error {
	if !(m.Fuzz >= 0 && m.Fuzz <= 1) {
		return fmt.Errorf("metal fuzz must lie in [0, 1], got %v", m.Fuzz)
	}
	if !core.IsFinite(m.Albedo) {
		return fmt.Errorf("metal albedo must be finite, got %v", m.Albedo)
	}
	return nil
}

// reflect calculates the reflection of a vector v off a surface with normal n
func reflect(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return r3.Sub(v, r3.Scale(2*r3.Dot(v, n), n))
}
