// Package imageio converts rendered radiance buffers to and from image files.
package imageio

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"gonum.org/v1/gonum/floats"
)

// ErrSizeMismatch is returned when two images of different sizes are compared
var ErrSizeMismatch = errors.New("image sizes differ")

// Image is a linear RGB float image. Pix holds R, G, B per pixel, row-major
// with row 0 at the top.
type Image struct {
	Width  int
	Height int
	Pix    []float64
}

// NewImage creates a black image
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]float64, width*height*3),
	}
}

// offset returns the index of the red component of pixel (x, y)
func (img *Image) offset(x, y int) int {
	return (y*img.Width + x) * 3
}

// At returns the color of pixel (x, y)
func (img *Image) At(x, y int) core.Vec3 {
	i := img.offset(x, y)
	return core.NewVec3(img.Pix[i], img.Pix[i+1], img.Pix[i+2])
}

// Set stores the color of pixel (x, y)
func (img *Image) Set(x, y int, c core.Vec3) {
	i := img.offset(x, y)
	img.Pix[i], img.Pix[i+1], img.Pix[i+2] = c.X, c.Y, c.Z
}

// Compare returns the root-mean-square difference over all color components
func Compare(a, b *Image) (float64, error) {
	if a.Width != b.Width || a.Height != b.Height {
		return 0, fmt.Errorf("%w: %dx%d vs %dx%d", ErrSizeMismatch, a.Width, a.Height, b.Width, b.Height)
	}
	if len(a.Pix) == 0 {
		return 0, nil
	}
	return floats.Distance(a.Pix, b.Pix, 2) / math.Sqrt(float64(len(a.Pix))), nil
}
