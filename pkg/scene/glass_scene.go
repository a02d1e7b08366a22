package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewGlassScene creates a scene with all three material kinds side by side:
// a hollow glass sphere, a diffuse sphere and a brushed metal sphere, with
// a shallow depth of field focused on the center sphere.
func NewGlassScene() *Scene {
	cameraConfig := geometry.CameraConfig{
		ImageWidth:   400,
		AspectRatio:  16.0 / 9.0,
		LookFrom:     core.NewVec3(-2, 2, 1),
		LookAt:       core.NewVec3(0, 0, -1),
		Up:           core.NewVec3(0, 1, 0),
		ViewAngle:    degrees(30),
		FocalDist:    3.4,
		DefocusAngle: degrees(4),
	}

	s := NewScene()
	s.CameraConfig = cameraConfig
	s.SamplingConfig = core.SamplingConfig{
		SamplesPerPixel: 200,
		MaxDepth:        50, // Glass needs deep paths for internal bounces
	}

	// Create materials
	ground := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	center := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	glass := material.NewClearDielectric(1.5)
	air := material.NewClearDielectric(1.0 / 1.5) // Air bubble inside glass
	gold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)

	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, ground)
	s.AddSphere(core.NewVec3(0, 0, -1.2), 0.5, center)

	// Hollow glass sphere: an outer shell with an air bubble inside
	s.AddSphere(core.NewVec3(-1, 0, -1), 0.5, glass)
	s.AddSphere(core.NewVec3(-1, 0, -1), 0.4, air)

	s.AddSphere(core.NewVec3(1, 0, -1), 0.5, gold)

	return s
}
