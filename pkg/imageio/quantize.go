package imageio

import (
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Transfer selects how linear radiance is encoded before quantisation
type Transfer int

const (
	// TransferLinear writes radiance values unchanged
	TransferLinear Transfer = iota
	// TransferSRGB applies the sRGB transfer curve first
	TransferSRGB
)

// String returns the flag name of the transfer
func (t Transfer) String() string {
	switch t {
	case TransferSRGB:
		return "srgb"
	default:
		return "linear"
	}
}

// Quantize maps a channel value to 8 bits as floor(clamp(v, 0, 0.999) * 256).
// NaN maps to 0.
func Quantize(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	return uint8(math.Floor(math.Min(v, 0.999) * 256))
}

// ToRGBA converts a float image to an opaque 8-bit image
func ToRGBA(img *Image, transfer Transfer) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))

	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			c := img.At(x, y)
			r, g, b := c.X, c.Y, c.Z
			if transfer == TransferSRGB {
				srgb := colorful.LinearRgb(clamp01(r), clamp01(g), clamp01(b))
				r, g, b = srgb.R, srgb.G, srgb.B
			}
			out.SetRGBA(x, y, color.RGBA{R: Quantize(r), G: Quantize(g), B: Quantize(b), A: 255})
		}
	}

	return out
}

func clamp01(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	return math.Min(v, 1)
}
