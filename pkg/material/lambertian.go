package material

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"gonum.org/v1/gonum/spatial/r3"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo core.Vec3 // Base color/reflectance
}

// NewLambertian creates a new lambertian material
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Scatter implements the Material interface for lambertian scattering.
// The direction is the normal plus a uniform unit vector, which yields a
// cosine-weighted distribution about the normal without an explicit PDF.
func (l *Lambertian) Scatter(rayIn core.Ray, hit core.Hit, sampler core.Sampler) ScatterResult {
	scatterDirection := r3.Add(hit.Normal, core.SampleOnUnitSphere(sampler.Get2D()))

	// The random vector can cancel the normal almost exactly
	if core.NearZero(scatterDirection) {
		scatterDirection = hit.Normal
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, scatterDirection),
		Attenuation: l.Albedo,
	}
}

// Validate checks that the albedo is finite
func (l *Lambertian) Validate() error {
	if !core.IsFinite(l.Albedo) {
		return fmt.Errorf("lambertian albedo must be finite, got %v", l.Albedo)
	}
	return nil
}
