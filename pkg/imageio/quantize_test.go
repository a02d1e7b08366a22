package imageio

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestQuantize(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected uint8
	}{
		{"zero", 0, 0},
		{"negative clamps to zero", -0.5, 0},
		{"NaN", math.NaN(), 0},
		{"quarter", 0.25, 64},
		{"half", 0.5, 128},
		{"just below clamp", 0.998, 255},
		{"clamp point", 0.999, 255},
		{"one", 1.0, 255},
		{"overexposed", 7.5, 255},
		{"smallest nonzero bucket", 1.0 / 256, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Quantize(tt.value); got != tt.expected {
				t.Errorf("Quantize(%v) = %d, expected %d", tt.value, got, tt.expected)
			}
		})
	}
}

func TestToRGBA(t *testing.T) {
	img := NewImage(2, 1)
	img.Set(0, 0, core.NewVec3(0.5, 0.25, 2))
	img.Set(1, 0, core.NewVec3(0, -1, 1))

	linear := ToRGBA(img, TransferLinear)
	if c := linear.RGBAAt(0, 0); c.R != 128 || c.G != 64 || c.B != 255 || c.A != 255 {
		t.Errorf("Unexpected linear pixel %v", c)
	}
	if c := linear.RGBAAt(1, 0); c.R != 0 || c.G != 0 || c.B != 255 {
		t.Errorf("Unexpected linear pixel %v", c)
	}

	// sRGB(0.5) = 1.055 * 0.5^(1/2.4) - 0.055 ≈ 0.7354
	srgb := ToRGBA(img, TransferSRGB)
	if c := srgb.RGBAAt(0, 0); c.R != 188 {
		t.Errorf("Expected sRGB-encoded red 188, got %d", c.R)
	}
	if c := srgb.RGBAAt(1, 0); c.R != 0 || c.B != 255 {
		t.Errorf("sRGB transfer should keep 0 and 1 fixed, got %v", c)
	}
}

func TestTransferString(t *testing.T) {
	if TransferLinear.String() != "linear" || TransferSRGB.String() != "srgb" {
		t.Errorf("Unexpected transfer names %q, %q", TransferLinear, TransferSRGB)
	}
}
