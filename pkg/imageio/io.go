package imageio

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/mrjoshuak/go-openexr/exr"
)

// Save writes img to path. The format follows the extension: ".png" is
// quantised to 8 bits with the given transfer, ".exr" keeps the unclamped
// linear values at half precision.
func Save(path string, img *Image, transfer Transfer) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return savePNG(path, img, transfer)
	case ".exr":
		return saveEXR(path, img)
	default:
		return fmt.Errorf("unsupported output format %q (want .png or .exr)", ext)
	}
}

func savePNG(path string, img *Image, transfer Transfer) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := png.Encode(file, ToRGBA(img, transfer)); err != nil {
		file.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return file.Close()
}

func saveEXR(path string, img *Image) error {
	out := exr.NewRGBAImage(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			c := img.At(x, y)
			out.SetRGBA(x, y, float32(c.X), float32(c.Y), float32(c.Z), 1)
		}
	}

	if err := exr.EncodeFile(path, out); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

// Load reads a PNG, JPEG or EXR file. 8-bit formats are scaled to [0, 1]
// without undoing any transfer curve.
func Load(path string) (*Image, error) {
	if strings.EqualFold(filepath.Ext(path), ".exr") {
		return loadEXR(path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Decode image (auto-detects PNG/JPEG from file header)
	decoded, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := decoded.Bounds()
	img := NewImage(bounds.Dx(), bounds.Dy())
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			r, g, b, _ := decoded.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535]
			i := img.offset(x, y)
			img.Pix[i] = float64(r) / 65535.0
			img.Pix[i+1] = float64(g) / 65535.0
			img.Pix[i+2] = float64(b) / 65535.0
		}
	}

	return img, nil
}

func loadEXR(path string) (*Image, error) {
	decoded, err := exr.DecodeFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	bounds := decoded.Bounds()
	img := NewImage(bounds.Dx(), bounds.Dy())
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			r, g, b, _ := decoded.RGBA(x+bounds.Min.X, y+bounds.Min.Y)
			i := img.offset(x, y)
			img.Pix[i] = float64(r)
			img.Pix[i+1] = float64(g)
			img.Pix[i+2] = float64(b)
		}
	}

	return img, nil
}
