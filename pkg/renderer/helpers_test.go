package renderer

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// sequenceSampler replays fixed values in order, repeating the last one
type sequenceSampler struct {
	values []float64
	next   int
}

func (s *sequenceSampler) value() float64 {
	v := s.values[min(s.next, len(s.values)-1)]
	s.next++
	return v
}

func (s *sequenceSampler) Get1D() float64   { return s.value() }
func (s *sequenceSampler) Get2D() core.Vec2 { return core.NewVec2(s.value(), s.value()) }

// testScene creates a small scene with one of each material kind
func testScene() *scene.Scene {
	s := scene.NewScene()
	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.8, 0.8, 0)))
	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5)))
	s.AddSphere(core.NewVec3(-1, 0, -1), 0.5, material.NewClearDielectric(1.5))
	s.AddSphere(core.NewVec3(1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.2))
	return s
}

func testCamera(width, height int) *geometry.Camera {
	config := geometry.DefaultCameraConfig()
	config.ImageWidth = width
	config.ImageHeight = height
	camera, err := geometry.NewCamera(config)
	if err != nil {
		panic(err)
	}
	return camera
}
