package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	// ErrCameraUnderSpecified is returned when fewer than two of
	// ImageWidth, ImageHeight and AspectRatio are set.
	ErrCameraUnderSpecified = errors.New("camera: at least two of image width, image height and aspect ratio must be set")

	// ErrInvalidCamera is returned for out-of-range camera parameters
	ErrInvalidCamera = errors.New("camera: invalid configuration")
)

// CameraConfig contains every recognized camera option.
// Start from DefaultCameraConfig and set at least two of the three size fields;
// a zero size field counts as unset and is derived from the other two.
type CameraConfig struct {
	ImageWidth  int     // Output width in pixels
	ImageHeight int     // Output height in pixels
	AspectRatio float64 // Width / height

	LookFrom core.Vec3 // Camera position (lens center)
	LookAt   core.Vec3 // Point the camera looks at
	Up       core.Vec3 // Camera-relative up direction

	ViewAngle    float64 // Vertical field of view in radians
	FocalDist    float64 // Distance from LookFrom to the plane of perfect focus
	DefocusAngle float64 // Cone angle of rays through a pixel, in radians (0 = pinhole)
}

// DefaultCameraConfig returns the defaults for every option except the image size
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		LookFrom:     core.NewVec3(0, 0, 0),
		LookAt:       core.NewVec3(0, 0, -1),
		Up:           core.NewVec3(0, 1, 0),
		ViewAngle:    math.Pi / 2,
		FocalDist:    10,
		DefocusAngle: 0,
	}
}

// ImageSize resolves the output dimensions from the size fields.
// When both width and height are set they win and AspectRatio is ignored.
func (c CameraConfig) ImageSize() (width, height int, err error) {
	hasW, hasH, hasR := c.ImageWidth > 0, c.ImageHeight > 0, c.AspectRatio > 0
	switch {
	case hasW && hasH:
		width, height = c.ImageWidth, c.ImageHeight
	case hasH && hasR:
		width, height = int(math.Round(float64(c.ImageHeight)*c.AspectRatio)), c.ImageHeight
	case hasW && hasR:
		width, height = c.ImageWidth, int(math.Round(float64(c.ImageWidth)/c.AspectRatio))
	default:
		return 0, 0, ErrCameraUnderSpecified
	}
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("%w: derived image size %dx%d", ErrInvalidCamera, width, height)
	}
	return width, height, nil
}

// Camera generates rays for rendering. It is immutable after construction.
type Camera struct {
	width, height int

	center       core.Vec3 // Lens center, the "look from" point
	basePixelLoc core.Vec3 // Top-left corner of the viewport
	pixelDU      core.Vec3 // Offset between horizontally adjacent pixels, left to right
	pixelDV      core.Vec3 // Offset between vertically adjacent pixels, top to bottom
	defocusU     core.Vec3 // Defocus disk horizontal radius vector
	defocusV     core.Vec3 // Defocus disk vertical radius vector
	defocus      bool
}

// NewCamera validates the configuration and derives the viewport geometry
func NewCamera(config CameraConfig) (*Camera, error) {
	width, height, err := config.ImageSize()
	if err != nil {
		return nil, err
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	aspectRatio := float64(width) / float64(height)

	// Orthonormal camera basis
	w := r3.Unit(r3.Sub(config.LookFrom, config.LookAt))
	u := r3.Unit(r3.Cross(config.Up, w))
	v := r3.Cross(w, u)

	viewportHeight := 2 * config.FocalDist * math.Tan(config.ViewAngle/2)
	viewportWidth := viewportHeight * aspectRatio

	viewportU := r3.Scale(viewportWidth, u)
	viewportV := r3.Scale(-viewportHeight, v) // Rows go downward

	basePixelLoc := r3.Sub(config.LookFrom, r3.Scale(config.FocalDist, w))
	basePixelLoc = r3.Sub(basePixelLoc, r3.Scale(0.5, viewportU))
	basePixelLoc = r3.Sub(basePixelLoc, r3.Scale(0.5, viewportV))

	defocusRadius := config.FocalDist * math.Tan(config.DefocusAngle/2)

	return &Camera{
		width:        width,
		height:       height,
		center:       config.LookFrom,
		basePixelLoc: basePixelLoc,
		pixelDU:      r3.Scale(1/float64(width), viewportU),
		pixelDV:      r3.Scale(1/float64(height), viewportV),
		defocusU:     r3.Scale(defocusRadius, u),
		defocusV:     r3.Scale(defocusRadius, v),
		defocus:      config.DefocusAngle > 0,
	}, nil
}

func (c CameraConfig) validate() error {
	if !(c.ViewAngle > 0 && c.ViewAngle < math.Pi) {
		return fmt.Errorf("%w: view angle %v must lie in (0, π)", ErrInvalidCamera, c.ViewAngle)
	}
	if !(c.FocalDist > 0) || math.IsInf(c.FocalDist, 0) {
		return fmt.Errorf("%w: focal distance %v must be positive", ErrInvalidCamera, c.FocalDist)
	}
	if !(c.DefocusAngle >= 0 && c.DefocusAngle < math.Pi) {
		return fmt.Errorf("%w: defocus angle %v must lie in [0, π)", ErrInvalidCamera, c.DefocusAngle)
	}
	view := r3.Sub(c.LookFrom, c.LookAt)
	if core.NearZero(view) {
		return fmt.Errorf("%w: look-from and look-at coincide", ErrInvalidCamera)
	}
	if core.NearZero(r3.Cross(c.Up, view)) {
		return fmt.Errorf("%w: up vector %v is parallel to the view direction", ErrInvalidCamera, c.Up)
	}
	return nil
}

// Width returns the output image width in pixels
func (c *Camera) Width() int { return c.width }

// Height returns the output image height in pixels
func (c *Camera) Height() int { return c.height }

// SampleRay generates a ray through pixel (x, y), row 0 at the top.
// The pixel position is jittered inside the pixel for antialiasing and the
// origin is jittered across the defocus disk for depth of field.
func (c *Camera) SampleRay(x, y int, sampler core.Sampler) core.Ray {
	origin := c.center
	if c.defocus {
		p := core.SamplePointInUnitDisk(sampler.Get2D())
		origin = r3.Add(origin, r3.Add(r3.Scale(p.X, c.defocusU), r3.Scale(p.Y, c.defocusV)))
	}

	jitter := sampler.Get2D()
	target := r3.Add(c.basePixelLoc, r3.Scale(float64(x)+jitter.X, c.pixelDU))
	target = r3.Add(target, r3.Scale(float64(y)+jitter.Y, c.pixelDV))

	return core.NewRay(origin, r3.Sub(target, origin))
}
