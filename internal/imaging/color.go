package imaging

import (
	"fmt"
	"image"
	"image/color"

	"github.com/ironsheep/colorimetry-mcp/internal/colorspace"
)

// PixelSample is the color of one source pixel.
//
// RGB holds straight (non-premultiplied) components, so a half transparent
// red pixel reads as R=255 with Alpha=128. Grayscale pixels report the gray
// level on all three channels.
type PixelSample struct {
	// X and Y are the 0-based source image coordinates of the pixel.
	X int `json:"x"`
	Y int `json:"y"`

	// RGB is the color of the pixel without alpha.
	RGB colorspace.RGB `json:"rgb"`

	// Alpha is the opacity (0 transparent, 255 opaque).
	Alpha uint8 `json:"alpha"`

	// Hex is RGB formatted as "#rrggbb".
	Hex string `json:"hex"`
}

// SampleColor extracts the color value at a specific pixel coordinate.
//
// Parameters:
//   - img: The source image to sample from.
//   - x: X coordinate (0-based, relative to the image bounds).
//   - y: Y coordinate (0-based, relative to the image bounds).
//
// Returns:
//   - *PixelSample: The color at (x, y).
//   - error: Non-nil if coordinates are outside the image bounds.
func SampleColor(img image.Image, x, y int) (*PixelSample, error) {
	bounds := img.Bounds()
	if x < 0 || x >= bounds.Dx() || y < 0 || y >= bounds.Dy() {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds %dx%d", x, y, bounds.Dx(), bounds.Dy())
	}

	c := color.NRGBAModel.Convert(img.At(x+bounds.Min.X, y+bounds.Min.Y)).(color.NRGBA)
	rgb := colorspace.RGB{R: c.R, G: c.G, B: c.B}
	return &PixelSample{
		X:     x,
		Y:     y,
		RGB:   rgb,
		Alpha: c.A,
		Hex:   rgb.Hex(),
	}, nil
}

// LabeledPoint represents a pixel coordinate with an optional descriptive label.
type LabeledPoint struct {
	X     int    // X coordinate (0-based)
	Y     int    // Y coordinate (0-based)
	Label string // Optional descriptive label for this point
}

// LabeledSample combines a pixel sample with its optional label.
type LabeledSample struct {
	Label string `json:"label,omitempty"`
	PixelSample
}

// SampleColorsMulti samples every point in order. It fails without partial
// results if any point lies outside the image.
func SampleColorsMulti(img image.Image, points []LabeledPoint) ([]LabeledSample, error) {
	out := make([]LabeledSample, 0, len(points))
	for i, pt := range points {
		s, err := SampleColor(img, pt.X, pt.Y)
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		out = append(out, LabeledSample{Label: pt.Label, PixelSample: *s})
	}
	return out, nil
}
