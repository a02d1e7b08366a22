package core

import "gonum.org/v1/gonum/spatial/r3"

// Ray represents a ray with an origin and direction.
// The direction is not required to be unit length.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a new ray
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r3.Add(r.Origin, r3.Scale(t, r.Direction))
}

// Hit contains information about a ray-geometry intersection
type Hit struct {
	Point     Vec3    // Point of intersection
	Normal    Vec3    // Unit normal, always facing against the incident ray
	T         float64 // Parameter t along the ray
	FrontFace bool    // Whether the geometric normal already opposed the ray
}

// SetFaceNormal sets the normal vector and determines front/back face.
// outwardNormal must be unit length.
func (h *Hit) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = r3.Dot(ray.Direction, outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = r3.Scale(-1, outwardNormal)
	}
}
