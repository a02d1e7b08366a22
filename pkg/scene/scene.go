package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// ErrInvalidScene is returned by Validate for ill-formed entities
var ErrInvalidScene = errors.New("invalid scene")

// Entity pairs a geometry with the material that shades it
type Entity struct {
	Geometry geometry.Geometry
	Material material.Material
}

// Scene contains all the elements needed for rendering.
// Entities are read-only once rendering starts and may be shared across workers.
type Scene struct {
	Entities       []Entity
	Background     Background
	CameraConfig   geometry.CameraConfig // Recommended camera, used unless overridden
	SamplingConfig core.SamplingConfig   // Recommended sampling, used unless overridden
}

// NewScene creates a scene with the default sky background and the given entities
func NewScene(entities ...Entity) *Scene {
	return &Scene{
		Entities:       entities,
		Background:     DefaultBackground(),
		CameraConfig:   geometry.DefaultCameraConfig(),
		SamplingConfig: core.DefaultSamplingConfig(),
	}
}

// Add appends an entity to the scene
func (s *Scene) Add(g geometry.Geometry, m material.Material) {
	s.Entities = append(s.Entities, Entity{Geometry: g, Material: m})
}

// AddSphere appends a sphere entity to the scene
func (s *Scene) AddSphere(center core.Vec3, radius float64, m material.Material) {
	s.Add(geometry.NewSphere(center, radius), m)
}

// NearestHit returns the closest entity hit with t strictly inside (tMin, tMax).
// The upper bound shrinks to the closest hit found so far, so later entities
// only win if strictly closer; ties go to the earlier entity.
func (s *Scene) NearestHit(ray core.Ray, tMin, tMax float64) (*Entity, core.Hit, bool) {
	var (
		closest    *Entity
		closestHit core.Hit
	)
	for i := range s.Entities {
		hit, ok := s.Entities[i].Geometry.Hit(ray, tMin, tMax)
		if !ok {
			continue
		}
		tMax = hit.T
		closest = &s.Entities[i]
		closestHit = hit
	}
	return closest, closestHit, closest != nil
}

// Validate reports the first ill-formed entity
func (s *Scene) Validate() error {
	for i, e := range s.Entities {
		if e.Geometry == nil {
			return fmt.Errorf("%w: entity %d has no geometry", ErrInvalidScene, i)
		}
		if e.Material == nil {
			return fmt.Errorf("%w: entity %d has no material", ErrInvalidScene, i)
		}
		if v, ok := e.Geometry.(geometry.Validator); ok {
			if err := v.Validate(); err != nil {
				return fmt.Errorf("%w: entity %d: %v", ErrInvalidScene, i, err)
			}
		}
		if v, ok := e.Material.(material.Validator); ok {
			if err := v.Validate(); err != nil {
				return fmt.Errorf("%w: entity %d: %v", ErrInvalidScene, i, err)
			}
		}
	}
	if !core.IsFinite(s.Background.Horizon) || !core.IsFinite(s.Background.Zenith) {
		return fmt.Errorf("%w: background colors must be finite", ErrInvalidScene)
	}
	return nil
}

// groundSphere returns a huge sphere whose top sits at height y.
// It stands in for an infinite ground plane.
func groundSphere(x, y, z float64) (core.Vec3, float64) {
	const radius = 1000.0
	return core.NewVec3(x, y-radius, z), radius
}

// degrees converts an angle in degrees to radians
func degrees(d float64) float64 {
	return d * math.Pi / 180
}
