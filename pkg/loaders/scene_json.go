package loaders

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/lucasb-eyer/go-colorful"
)

// SceneFile is the JSON scene description. Unset fields keep the defaults
// of scene.NewScene.
type SceneFile struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Camera      *CameraFile     `json:"camera"`
	Sampling    *SamplingFile   `json:"sampling"`
	Background  *BackgroundFile `json:"background"`
	Spheres     []SphereFile    `json:"spheres"`
}

// CameraFile holds the camera options. Angles are in degrees.
type CameraFile struct {
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	AspectRatio     float64 `json:"aspectRatio"`
	LookFrom        *Triple `json:"lookFrom"`
	LookAt          *Triple `json:"lookAt"`
	Up              *Triple `json:"up"`
	VFovDeg         float64 `json:"vfovDeg"`
	FocalDist       float64 `json:"focalDist"`
	DefocusAngleDeg float64 `json:"defocusAngleDeg"`
}

type SamplingFile struct {
	SamplesPerPixel int `json:"samplesPerPixel"`
	MaxDepth        int `json:"maxDepth"`
}

type BackgroundFile struct {
	Horizon *Triple `json:"horizon"`
	Zenith  *Triple `json:"zenith"`
}

type SphereFile struct {
	Center   Triple       `json:"center"`
	Radius   float64      `json:"radius"`
	Material MaterialFile `json:"material"`
}

// MaterialFile describes one material. Type is lambertian, metal or dielectric.
type MaterialFile struct {
	Type            string   `json:"type"`
	Albedo          *Triple  `json:"albedo"`
	Fuzz            float64  `json:"fuzz"`
	RefractiveIndex *float64 `json:"refractiveIndex"`
}

// Triple is decoded from either a [x, y, z] array, taken as is, or a
// "#rrggbb" string, taken as sRGB and converted to linear RGB.
// Positions and directions use the array form; hex is for colors only.
type Triple core.Vec3

// UnmarshalJSON implements json.Unmarshaler
func (c *Triple) UnmarshalJSON(data []byte) error {
	var hex string
	if err := json.Unmarshal(data, &hex); err == nil {
		parsed, err := colorful.Hex(hex)
		if err != nil {
			return fmt.Errorf("invalid color %q: %w", hex, err)
		}
		r, g, b := parsed.LinearRgb()
		*c = Triple(core.NewVec3(r, g, b))
		return nil
	}

	var values []float64
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("expected [x, y, z] or \"#rrggbb\", got %s", data)
	}
	if len(values) != 3 {
		return fmt.Errorf("expected 3 components, got %d", len(values))
	}
	*c = Triple(core.NewVec3(values[0], values[1], values[2]))
	return nil
}

func (c *Triple) vec() core.Vec3 { return core.Vec3(*c) }

// LoadScene reads and builds a JSON scene file. The returned scene carries the
// file's camera and sampling settings and has passed Validate.
func LoadScene(path string) (*scene.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}

	var file SceneFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse scene file %s: %w", path, err)
	}

	s, err := file.Build()
	if err != nil {
		return nil, fmt.Errorf("scene file %s: %w", path, err)
	}
	return s, nil
}

// Build converts the description into a validated scene
func (f *SceneFile) Build() (*scene.Scene, error) {
	s := scene.NewScene()

	if f.Camera != nil {
		c := f.Camera
		config := &s.CameraConfig
		config.ImageWidth = c.Width
		config.ImageHeight = c.Height
		config.AspectRatio = c.AspectRatio
		if c.LookFrom != nil {
			config.LookFrom = c.LookFrom.vec()
		}
		if c.LookAt != nil {
			config.LookAt = c.LookAt.vec()
		}
		if c.Up != nil {
			config.Up = c.Up.vec()
		}
		if c.VFovDeg != 0 {
			config.ViewAngle = radians(c.VFovDeg)
		}
		if c.FocalDist != 0 {
			config.FocalDist = c.FocalDist
		}
		config.DefocusAngle = radians(c.DefocusAngleDeg)
	}

	if f.Sampling != nil {
		if f.Sampling.SamplesPerPixel != 0 {
			s.SamplingConfig.SamplesPerPixel = f.Sampling.SamplesPerPixel
		}
		if f.Sampling.MaxDepth != 0 {
			s.SamplingConfig.MaxDepth = f.Sampling.MaxDepth
		}
	}

	if f.Background != nil {
		if f.Background.Horizon != nil {
			s.Background.Horizon = f.Background.Horizon.vec()
		}
		if f.Background.Zenith != nil {
			s.Background.Zenith = f.Background.Zenith.vec()
		}
	}

	for i, sphere := range f.Spheres {
		m, err := sphere.Material.build()
		if err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		s.AddSphere(sphere.Center.vec(), sphere.Radius, m)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (m MaterialFile) build() (material.Material, error) {
	albedo := core.NewVec3(1, 1, 1)
	if m.Albedo != nil {
		albedo = m.Albedo.vec()
	}

	switch strings.ToLower(m.Type) {
	case "lambertian":
		return material.NewLambertian(albedo), nil
	case "metal":
		// Not clamped, so Validate rejects out-of-range fuzz
		return &material.Metal{Albedo: albedo, Fuzz: m.Fuzz}, nil
	case "dielectric":
		if m.RefractiveIndex == nil {
			return nil, fmt.Errorf("dielectric material requires refractiveIndex")
		}
		return material.NewDielectric(albedo, *m.RefractiveIndex), nil
	case "":
		return nil, fmt.Errorf("material type is required")
	default:
		return nil, fmt.Errorf("unknown material type %q", m.Type)
	}
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
