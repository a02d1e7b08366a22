package material

import (
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"gonum.org/v1/gonum/spatial/r3"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	Albedo          core.Vec3 // Tint applied to both reflected and refracted light
	RefractiveIndex float64   // Index of refraction (e.g., 1.5 for glass)
}

// NewDielectric creates a new dielectric material
func NewDielectric(albedo core.Vec3, refractiveIndex float64) *Dielectric {
	return &Dielectric{Albedo: albedo, RefractiveIndex: refractiveIndex}
}

// NewClearDielectric creates an untinted dielectric
func NewClearDielectric(refractiveIndex float64) *Dielectric {
	return NewDielectric(core.NewVec3(1, 1, 1), refractiveIndex)
}

// Scatter implements the Material interface for dielectric scattering
func (d *Dielectric) Scatter(rayIn core.Ray, hit core.Hit, sampler core.Sampler) ScatterResult {
	// Determine if we're entering or exiting the material
	var refractionRatio float64
	if hit.FrontFace {
		refractionRatio = 1.0 / d.RefractiveIndex // Entering (from air to glass)
	} else {
		refractionRatio = d.RefractiveIndex // Exiting (from glass to air)
	}

	unitDirection := r3.Unit(rayIn.Direction)

	cosTheta := math.Min(-r3.Dot(unitDirection, hit.Normal), 1.0)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)

	// Total internal reflection; no random number is drawn in that case
	cannotRefract := refractionRatio*sinTheta >= 1.0

	var direction core.Vec3
	if cannotRefract || Reflectance(cosTheta, refractionRatio) > sampler.Get1D() {
		direction = reflect(unitDirection, hit.Normal)
	} else {
		direction = refract(unitDirection, hit.Normal, refractionRatio)
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: d.Albedo,
	}
}

// Validate checks that the refractive index is positive
func (d *Dielectric) Validate() error {
	if !(d.RefractiveIndex > 0) || math.IsInf(d.RefractiveIndex, 0) {
		return fmt.Errorf("dielectric refractive index must be positive, got %v", d.RefractiveIndex)
	}
	if !core.IsFinite(d.Albedo) {
		return fmt.Errorf("dielectric albedo must be finite, got %v", d.Albedo)
	}
	return nil
}

// refract calculates the refraction of a unit vector using Snell's law
func refract(uv, n core.Vec3, etaiOverEtat float64) core.Vec3 {
	cosTheta := math.Min(-r3.Dot(uv, n), 1.0)
	rOutPerp := r3.Scale(etaiOverEtat, r3.Add(uv, r3.Scale(cosTheta, n)))
	rOutParallel := r3.Scale(-math.Sqrt(math.Abs(1.0-r3.Norm2(rOutPerp))), n)
	return r3.Add(rOutPerp, rOutParallel)
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractionRatio float64) float64 {
	// R0 is the reflectance at normal incidence
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
