package scene

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/lucasb-eyer/go-colorful"
)

// oklchColor converts OKLCH color values to a linear RGB albedo clamped to [0, 1]
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchColor(l, c, h float64) core.Vec3 {
	r, g, b := colorful.OkLch(l, c, h).Clamped().LinearRgb()
	return core.NewVec3(r, g, b)
}

// NewSphereGridScene creates a scene with a grid of metal spheres on a gray ground
func NewSphereGridScene() *Scene {
	cameraConfig := geometry.CameraConfig{
		ImageWidth:   800,
		AspectRatio:  16.0 / 9.0, // 16:9 aspect ratio
		LookFrom:     core.NewVec3(4.5, 6, 18),    // Camera far back and slightly raised
		LookAt:       core.NewVec3(4.5, 0.8, 4.5), // Center of grid, slightly lower
		Up:           core.NewVec3(0, 1, 0),
		ViewAngle:    degrees(40),
		FocalDist:    14.5,
		DefocusAngle: degrees(0.3), // Small depth of field for some focus variation
	}

	s := NewScene()
	s.CameraConfig = cameraConfig
	s.SamplingConfig = core.SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        40,
	}

	// Ground (gray lambertian)
	center, radius := groundSphere(4.5, 0, 4.5)
	s.AddSphere(center, radius, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))

	gridSize := 10

	// Fit the grid into roughly 9x9 units
	targetArea := 9.0
	spacing := targetArea / float64(gridSize-1)
	sphereRadius := math.Min(0.35, spacing*0.35)

	// OKLCH parameters for color variation
	baseLightness := 0.65 // Keep lightness relatively constant for uniform appearance
	minChroma := 0.05     // Minimum chroma (near white/gray)
	maxChroma := 0.25     // Maximum chroma (vivid colors)

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - targetArea/2.0 + 4.5 // Center around x=4.5
			z := float64(j)*spacing - targetArea/2.0 + 4.5 // Center around z=4.5
			y := sphereRadius                              // Sphere sits on the ground

			// Hue across X, chroma across Z
			hue := (float64(i) / float64(gridSize-1)) * 360.0
			chroma := minChroma + (float64(j)/float64(gridSize-1))*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)

			fuzz := 0.05 + 0.1*float64((i+j)%3)/2.0
			s.AddSphere(core.NewVec3(x, y, z), sphereRadius, material.NewMetal(oklchColor(lightness, chroma, hue), fuzz))
		}
	}

	return s
}
