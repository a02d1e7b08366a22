package core

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// NearZeroEpsilon is the per-component magnitude below which a vector is treated as zero
const NearZeroEpsilon = 1e-8

// Vec3 represents points, directions and RGB colors alike.
// Arithmetic goes through the gonum r3 functions (r3.Add, r3.Sub, r3.Scale, r3.Dot, ...).
type Vec3 = r3.Vec

// NewVec3 creates a new Vec3
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Vec2 represents a 2D sample or a point in the unit disk
type Vec2 struct {
	X, Y float64
}

// NewVec2 creates a new Vec2
func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// MultiplyVec returns component-wise multiplication of two vectors
func MultiplyVec(a, b Vec3) Vec3 {
	return Vec3{X: a.X * b.X, Y: a.Y * b.Y, Z: a.Z * b.Z}
}

// NearZero reports whether every component of v is within NearZeroEpsilon of zero
func NearZero(v Vec3) bool {
	return math.Abs(v.X) < NearZeroEpsilon &&
		math.Abs(v.Y) < NearZeroEpsilon &&
		math.Abs(v.Z) < NearZeroEpsilon
}

// Lerp linearly interpolates from a (t=0) to b (t=1)
func Lerp(a, b Vec3, t float64) Vec3 {
	return r3.Add(r3.Scale(1-t, a), r3.Scale(t, b))
}

// SanitizeRadiance replaces NaN, infinite or negative components with zero.
// A path that produced such a value contributes nothing to its pixel.
func SanitizeRadiance(c Vec3) Vec3 {
	fix := func(v float64) float64 {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return 0
		}
		return v
	}
	return Vec3{X: fix(c.X), Y: fix(c.Y), Z: fix(c.Z)}
}

// IsFinite reports whether all components are finite numbers
func IsFinite(v Vec3) bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
