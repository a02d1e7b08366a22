package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"gonum.org/v1/gonum/spatial/r3"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) *Sphere {
	return &Sphere{
		Center: center,
		Radius: radius,
	}
}

// Hit tests if a ray intersects with the sphere.
// Solves a t² - 2h t + c = 0 with a = |d|², h = d·(C-O), c = |C-O|² - r².
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (core.Hit, bool) {
	// Vector from ray origin to sphere center
	oc := r3.Sub(s.Center, ray.Origin)

	a := r3.Norm2(ray.Direction)
	h := r3.Dot(ray.Direction, oc)
	c := r3.Norm2(oc) - s.Radius*s.Radius

	discriminant := h*h - a*c
	if discriminant < 0 {
		return core.Hit{}, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (h - sqrtD) / a
	if root <= tMin || root >= tMax {
		// Try the farther intersection point
		root = (h + sqrtD) / a
		if root <= tMin || root >= tMax {
			return core.Hit{}, false
		}
	}

	hit := core.Hit{
		T:     root,
		Point: ray.At(root),
	}

	// Outward normal (from center to hit point)
	outwardNormal := r3.Scale(1.0/s.Radius, r3.Sub(hit.Point, s.Center))
	hit.SetFaceNormal(ray, outwardNormal)

	return hit, true
}

// Validate checks that the radius is positive and the center finite
func (s *Sphere) Validate() error {
	if !(s.Radius > 0) || math.IsInf(s.Radius, 0) {
		return fmt.Errorf("sphere radius must be positive and finite, got %v", s.Radius)
	}
	if !core.IsFinite(s.Center) {
		return fmt.Errorf("sphere center must be finite, got %v", s.Center)
	}
	return nil
}
