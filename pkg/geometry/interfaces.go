package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Geometry interface for surfaces that can be hit by rays
type Geometry interface {
	// Hit returns the intersection with t strictly inside (tMin, tMax), if any
	Hit(ray core.Ray, tMin, tMax float64) (core.Hit, bool)
}

// Validator is implemented by geometry that can check its own parameters
type Validator interface {
	Validate() error
}
