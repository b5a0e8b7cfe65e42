package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/disintegration/imaging"
)

// Mode is the color mode of an image.
//
// The zero value ModeKeep is only meaningful as an adjustment target, where
// it means "leave the mode of the source unchanged".
type Mode int

const (
	ModeKeep Mode = iota
	ModeGray
	ModeRGB
	ModeRGBA
)

// String returns the conventional short mode name: "L", "RGB" or "RGBA".
func (m Mode) String() string {
	switch m {
	case ModeKeep:
		return ""
	case ModeGray:
		return "L"
	case ModeRGB:
		return "RGB"
	case ModeRGBA:
		return "RGBA"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Depth returns the color depth in bits per pixel.
func (m Mode) Depth() int {
	switch m {
	case ModeGray:
		return 8
	case ModeRGB:
		return 24
	case ModeRGBA:
		return 32
	}
	return 0
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseMode resolves a mode name, ignoring case. The empty string and
// "keep" yield ModeKeep; "gray" and "grayscale" are accepted for "L".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "keep", "original":
		return ModeKeep, nil
	case "l", "gray", "grey", "grayscale", "greyscale":
		return ModeGray, nil
	case "rgb":
		return ModeRGB, nil
	case "rgba":
		return ModeRGBA, nil
	}
	return ModeKeep, fmt.Errorf("unknown color mode %q", s)
}

// ModeOf reports the color mode of img. Grayscale color models map to
// ModeGray; everything else is ModeRGB when every pixel is opaque and
// ModeRGBA otherwise.
func ModeOf(img image.Image) Mode {
	switch img.ColorModel() {
	case color.GrayModel, color.Gray16Model:
		return ModeGray
	}
	if o, ok := img.(interface{ Opaque() bool }); ok {
		if o.Opaque() {
			return ModeRGB
		}
		return ModeRGBA
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return ModeRGBA
			}
		}
	}
	return ModeRGB
}

// Normalize copies img into one of the two concrete types the pipeline
// works on: *image.Gray for grayscale sources and *image.NRGBA for all
// others. The result always has its origin at (0,0).
func Normalize(img image.Image) image.Image {
	if ModeOf(img) == ModeGray {
		return toGray(img)
	}
	return imaging.Clone(img)
}

// ConvertMode converts img to mode m.
//
// Gray conversion uses the ITU-R BT.601 luma weights and discards alpha.
// RGB conversion discards alpha without compositing, keeping the straight
// color values. ModeKeep returns img unchanged.
func ConvertMode(img image.Image, m Mode) image.Image {
	switch m {
	case ModeGray:
		if ModeOf(img) == ModeGray {
			return toGray(img)
		}
		return toGray(imaging.Grayscale(img))
	case ModeRGB:
		out := imaging.Clone(img)
		for i := 3; i < len(out.Pix); i += 4 {
			out.Pix[i] = 0xff
		}
		return out
	case ModeRGBA:
		return imaging.Clone(img)
	}
	return img
}

// toGray copies the luminance of img into a new *image.Gray. For the output
// of imaging.Grayscale and other gray-valued images this is the R sample.
func toGray(img image.Image) *image.Gray {
	b := img.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	if n, ok := img.(*image.NRGBA); ok {
		for y := 0; y < b.Dy(); y++ {
			row := n.Pix[(y+b.Min.Y-n.Rect.Min.Y)*n.Stride:]
			for x := 0; x < b.Dx(); x++ {
				dst.Pix[y*dst.Stride+x] = row[(x+b.Min.X-n.Rect.Min.X)*4]
			}
		}
		return dst
	}
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
