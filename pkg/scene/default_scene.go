package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewDefaultScene creates the classic four-sphere scene: a yellow ground and
// three metal spheres in a row, seen from the origin looking down -Z.
func NewDefaultScene() *Scene {
	cameraConfig := geometry.DefaultCameraConfig()
	cameraConfig.ImageWidth = 400
	cameraConfig.ImageHeight = 225

	s := NewScene()
	s.CameraConfig = cameraConfig
	s.SamplingConfig = core.DefaultSamplingConfig()

	// Create materials
	ground := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	metalBlue := material.NewMetal(core.NewVec3(0.1, 0.2, 0.5), 0.0)
	metalSilver := material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.0)
	metalGold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.0)

	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, ground)
	s.AddSphere(core.NewVec3(0, 0, -1.2), 0.5, metalBlue)
	s.AddSphere(core.NewVec3(-1, 0, -1), 0.5, metalSilver)
	s.AddSphere(core.NewVec3(1, 0, -1), 0.5, metalGold)

	return s
}
