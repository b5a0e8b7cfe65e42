package colorspace

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is a converted color value of one of the supported models.
type Color interface {
	// Model reports which color model the value belongs to.
	Model() Model

	// Components returns the channel values in model order, e.g. H, S, V.
	Components() []float64
}

// RGB is an 8-bit sRGB color, the input of every conversion.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// HSV is hue, saturation and value, each in [0,1]. Hue is measured in turns.
type HSV struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	V float64 `json:"v"`
}

// HSL is hue, saturation and lightness, each in [0,1]. Hue is measured in turns.
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// CMY is the subtractive complement of RGB, components in [0,1].
type CMY struct {
	C float64 `json:"c"`
	M float64 `json:"m"`
	Y float64 `json:"y"`
}

// CMYK is CMY with the common black component extracted into K.
type CMYK struct {
	C float64 `json:"c"`
	M float64 `json:"m"`
	Y float64 `json:"y"`
	K float64 `json:"k"`
}

// XYZ holds CIE 1931 tristimulus values scaled so that Y of white is 100.
type XYZ struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Lab is a CIE L*a*b* color. L is in [0,100]; a and b are unbounded.
type Lab struct {
	L float64 `json:"l"`
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// HunterLab is a Hunter 1948 L,a,b color. L is in [0,100]; a and b are unbounded.
type HunterLab struct {
	L float64 `json:"l"`
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// YCbCr is a luma/chroma triple, each channel clamped to [0,255].
type YCbCr struct {
	Y  uint8 `json:"y"`
	Cb uint8 `json:"cb"`
	Cr uint8 `json:"cr"`

	// BT709 is set when the BT.709 coefficients produced the value. It is
	// not serialized; the model name carries it.
	BT709 bool `json:"-"`
}

func (c HSV) Model() Model       { return ModelHSV }
func (c HSL) Model() Model       { return ModelHSL }
func (c CMY) Model() Model       { return ModelCMY }
func (c CMYK) Model() Model      { return ModelCMYK }
func (c XYZ) Model() Model       { return ModelXYZ }
func (c Lab) Model() Model       { return ModelLab }
func (c HunterLab) Model() Model { return ModelHunterLab }

func (c YCbCr) Model() Model {
	if c.BT709 {
		return ModelYCbCrBT709
	}
	return ModelYCbCr
}

func (c HSV) Components() []float64       { return []float64{c.H, c.S, c.V} }
func (c HSL) Components() []float64       { return []float64{c.H, c.S, c.L} }
func (c CMY) Components() []float64       { return []float64{c.C, c.M, c.Y} }
func (c CMYK) Components() []float64      { return []float64{c.C, c.M, c.Y, c.K} }
func (c XYZ) Components() []float64       { return []float64{c.X, c.Y, c.Z} }
func (c Lab) Components() []float64       { return []float64{c.L, c.A, c.B} }
func (c HunterLab) Components() []float64 { return []float64{c.L, c.A, c.B} }

func (c YCbCr) Components() []float64 {
	return []float64{float64(c.Y), float64(c.Cb), float64(c.Cr)}
}

// Hex formats the color as "#rrggbb".
func (c RGB) Hex() string {
	return c.toColorful().Hex()
}

func (c RGB) toColorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// ParseHex parses "#rgb" or "#rrggbb" (case-insensitive) into an RGB color.
func ParseHex(s string) (RGB, error) {
	col, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	r, g, b := col.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// Format renders a converted color the way it is shown to an operator:
// the model name followed by every component rounded to two decimals.
func Format(c Color) string {
	s := c.Model().String() + ": ("
	for i, v := range c.Components() {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%.2f", v)
	}
	return s + ")"
}
