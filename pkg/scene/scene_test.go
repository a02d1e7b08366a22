package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

func TestScene_NearestHit(t *testing.T) {
	gray := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	s := NewScene()
	s.AddSphere(core.NewVec3(0, 0, -10), 1, gray) // Far sphere first
	s.AddSphere(core.NewVec3(0, 0, -5), 1, gray)  // Near sphere second

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	entity, hit, ok := s.NearestHit(ray, 0.001, math.Inf(1))
	if !ok {
		t.Fatal("Expected a hit")
	}
	if entity != &s.Entities[1] {
		t.Error("Expected the nearer sphere regardless of insertion order")
	}
	if math.Abs(hit.T-4) > 1e-12 {
		t.Errorf("Expected t=4, got %f", hit.T)
	}

	// Restricting the range past the near sphere finds the far one
	entity, hit, ok = s.NearestHit(ray, 6.5, math.Inf(1))
	if !ok || entity != &s.Entities[0] || math.Abs(hit.T-9) > 1e-12 {
		t.Errorf("Expected far sphere at t=9, got ok=%t t=%f", ok, hit.T)
	}

	// Nothing in range
	if _, _, ok := s.NearestHit(ray, 0.001, 3); ok {
		t.Error("Expected no hit below t=3")
	}
}

func TestScene_NearestHit_TieGoesToEarlierEntity(t *testing.T) {
	first := material.NewLambertian(core.NewVec3(1, 0, 0))
	second := material.NewLambertian(core.NewVec3(0, 1, 0))

	s := NewScene()
	s.AddSphere(core.NewVec3(0, 0, -3), 1, first)
	s.AddSphere(core.NewVec3(0, 0, -3), 1, second)

	entity, _, ok := s.NearestHit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0.001, math.Inf(1))
	if !ok {
		t.Fatal("Expected a hit")
	}
	if entity.Material != first {
		t.Error("Expected coincident hits to resolve to the earlier entity")
	}
}

func TestScene_NearestHit_Empty(t *testing.T) {
	s := NewScene()
	if _, _, ok := s.NearestHit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)), 0.001, math.Inf(1)); ok {
		t.Error("Empty scene should never report a hit")
	}
}

func TestScene_Validate(t *testing.T) {
	gray := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	unit := geometry.NewSphere(core.NewVec3(0, 0, 0), 1)

	tests := []struct {
		name     string
		entities []Entity
		wantErr  bool
	}{
		{"empty", nil, false},
		{"valid", []Entity{{unit, gray}, {unit, material.NewMetal(core.NewVec3(1, 1, 1), 0.5)}}, false},
		{"nil geometry", []Entity{{nil, gray}}, true},
		{"nil material", []Entity{{unit, nil}}, true},
		{"zero radius", []Entity{{unit, gray}, {geometry.NewSphere(core.NewVec3(0, 0, 0), 0), gray}}, true},
		{"fuzz out of range", []Entity{{unit, &material.Metal{Albedo: core.NewVec3(1, 1, 1), Fuzz: 2}}}, true},
		{"zero refractive index", []Entity{{unit, material.NewClearDielectric(0)}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScene(tt.entities...)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidScene) {
				t.Errorf("Expected ErrInvalidScene, got %v", err)
			}
		})
	}
}

func TestBackground_Color(t *testing.T) {
	bg := DefaultBackground()

	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Vec3
	}{
		{"straight up", core.NewVec3(0, 5, 0), core.NewVec3(0.5, 0.7, 1.0)},
		{"straight down", core.NewVec3(0, -2, 0), core.NewVec3(1, 1, 1)},
		{"level", core.NewVec3(3, 0, 0), core.NewVec3(0.75, 0.85, 1.0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bg.Color(tt.direction)
			if math.Abs(got.X-tt.expected.X) > 1e-12 || math.Abs(got.Y-tt.expected.Y) > 1e-12 || math.Abs(got.Z-tt.expected.Z) > 1e-12 {
				t.Errorf("Color(%v) = %v, expected %v", tt.direction, got, tt.expected)
			}
		})
	}
}

func TestBuiltinScenes_ValidAndRenderable(t *testing.T) {
	builders := map[string]func() *Scene{
		"default":    NewDefaultScene,
		"glass":      NewGlassScene,
		"spheregrid": NewSphereGridScene,
	}
	for name, build := range builders {
		t.Run(name, func(t *testing.T) {
			s := build()
			if err := s.Validate(); err != nil {
				t.Errorf("Validate() error: %v", err)
			}
			if _, err := geometry.NewCamera(s.CameraConfig); err != nil {
				t.Errorf("Recommended camera is invalid: %v", err)
			}
			if err := s.SamplingConfig.Validate(); err != nil {
				t.Errorf("Recommended sampling is invalid: %v", err)
			}
		})
	}
}

func TestDefaultScene_CameraSize(t *testing.T) {
	camera, err := geometry.NewCamera(NewDefaultScene().CameraConfig)
	if err != nil {
		t.Fatalf("NewCamera() error: %v", err)
	}
	if camera.Width() != 400 || camera.Height() != 225 {
		t.Errorf("Expected 400x225, got %dx%d", camera.Width(), camera.Height())
	}
}
