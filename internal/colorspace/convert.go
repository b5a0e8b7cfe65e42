package colorspace

import "math"

// RGBToHSV converts an RGB color to HSV.
//
// V is the largest normalized channel. Achromatic inputs (R == G == B)
// yield H = 0 and S = 0. Otherwise S = (max-min)/max and the hue is taken
// from the 60° sector of the dominant channel, expressed in turns and
// wrapped into [0,1].
func RGBToHSV(c RGB) HSV {
	r, g, b := normalize(c)
	lo, hi := minMax(r, g, b)
	delta := hi - lo

	if delta == 0 {
		return HSV{H: 0, S: 0, V: hi}
	}
	return HSV{
		H: hue(r, g, b, hi, delta),
		S: delta / hi,
		V: hi,
	}
}

// RGBToHSL converts an RGB color to HSL.
//
// L is the midpoint of the largest and smallest normalized channel. The
// saturation denominator switches at L = 0.5 between max+min and 2-max-min
// so neither extreme divides by zero. Hue is computed as in [RGBToHSV].
func RGBToHSL(c RGB) HSL {
	r, g, b := normalize(c)
	lo, hi := minMax(r, g, b)
	delta := hi - lo
	l := (hi + lo) / 2

	if delta == 0 {
		return HSL{H: 0, S: 0, L: l}
	}

	var s float64
	if l < 0.5 {
		s = delta / (hi + lo)
	} else {
		s = delta / (2 - hi - lo)
	}
	return HSL{H: hue(r, g, b, hi, delta), S: s, L: l}
}

// hue returns the hue in turns for a chromatic color.
func hue(r, g, b, hi, delta float64) float64 {
	dr := ((hi-r)/6 + delta/2) / delta
	dg := ((hi-g)/6 + delta/2) / delta
	db := ((hi-b)/6 + delta/2) / delta

	var h float64
	switch hi {
	case r:
		h = db - dg
	case g:
		h = 1.0/3 + dr - db
	default:
		h = 2.0/3 + dg - dr
	}

	if h < 0 {
		h++
	}
	if h > 1 {
		h--
	}
	return h
}

// RGBToCMY converts an RGB color to CMY by complementing each channel.
func RGBToCMY(c RGB) CMY {
	return CMY{
		C: 1 - float64(c.R)/255,
		M: 1 - float64(c.G)/255,
		Y: 1 - float64(c.B)/255,
	}
}

// CMYToCMYK extracts the black component from a CMY color.
//
// K is the smallest of C, M and Y (capped at 1). Pure black (K == 1)
// collapses C, M and Y to zero; otherwise each channel is rescaled by
// (v-K)/(1-K).
func CMYToCMYK(c CMY) CMYK {
	k := math.Min(1, math.Min(c.C, math.Min(c.M, c.Y)))
	if k == 1 {
		return CMYK{C: 0, M: 0, Y: 0, K: 1}
	}
	return CMYK{
		C: (c.C - k) / (1 - k),
		M: (c.M - k) / (1 - k),
		Y: (c.Y - k) / (1 - k),
		K: k,
	}
}

// RGBToCMYK converts an RGB color to CMYK via CMY.
func RGBToCMYK(c RGB) CMYK {
	return CMYToCMYK(RGBToCMY(c))
}

// SRGBToXYZ decodes the sRGB transfer curve and applies the D65 sRGB to
// XYZ matrix. The result is scaled so that white has Y = 100.
func SRGBToXYZ(c RGB) XYZ {
	r, g, b := normalize(c)
	r = decodeSRGB(r) * 100
	g = decodeSRGB(g) * 100
	b = decodeSRGB(b) * 100

	return XYZ{
		X: r*0.4124 + g*0.3576 + b*0.1805,
		Y: r*0.2126 + g*0.7152 + b*0.0722,
		Z: r*0.0193 + g*0.1192 + b*0.9505,
	}
}

// decodeSRGB maps an encoded sRGB sample in [0,1] to linear light.
func decodeSRGB(v float64) float64 {
	if v > 0.04045 {
		return math.Pow((v+0.055)/1.055, 2.4)
	}
	return v / 12.92
}

// XYZToLab converts tristimulus values to CIE L*a*b* relative to ref.
func XYZToLab(c XYZ, ref Tristimulus) Lab {
	fx := labCompand(c.X / ref.X)
	fy := labCompand(c.Y / ref.Y)
	fz := labCompand(c.Z / ref.Z)

	return Lab{
		L: 116*fy - 16,
		A: 500 * (fx - fy),
		B: 200 * (fy - fz),
	}
}

// labCompand is the CIE companding function: a cube root above the
// 0.008856 threshold and a linear segment below it.
func labCompand(t float64) float64 {
	if t > 0.008856 {
		return math.Pow(t, 1.0/3)
	}
	return 7.787*t + 16.0/116
}

// XYZToHunterLab converts tristimulus values to Hunter Lab relative to ref.
//
// The chromatic terms divide by sqrt(Y/refY), so Y == 0 produces NaN (or an
// infinity when X or Z is non-zero). That case is not guarded here.
func XYZToHunterLab(c XYZ, ref Tristimulus) HunterLab {
	ka := (175.0 / 198.04) * (ref.Y + ref.X)
	kb := (70.0 / 218.11) * (ref.Y + ref.Z)

	yr := c.Y / ref.Y
	sy := math.Sqrt(yr)

	return HunterLab{
		L: 100 * sy,
		A: ka * ((c.X/ref.X - yr) / sy),
		B: kb * ((yr - c.Z/ref.Z) / sy),
	}
}

// RGBToLab converts an RGB color to CIE L*a*b* using the pinned
// illuminant A, 2° observer reference white.
func RGBToLab(c RGB) Lab {
	return XYZToLab(SRGBToXYZ(c), DefaultReference())
}

// RGBToHunterLab converts an RGB color to Hunter Lab using the pinned
// illuminant A, 2° observer reference white. Pure black yields NaN.
func RGBToHunterLab(c RGB) HunterLab {
	return XYZToHunterLab(SRGBToXYZ(c), DefaultReference())
}

// RGBToYCbCr converts an RGB color with ITU-R BT.601 coefficients.
func RGBToYCbCr(c RGB) YCbCr {
	r, g, b := float64(c.R), float64(c.G), float64(c.B)
	// Explicit conversions keep the products unfused so truncation is
	// identical on every GOARCH.
	y := float64(0.299*r) + float64(0.587*g) + float64(0.114*b)
	cb := float64(-0.168736*r) - float64(0.331264*g) + float64(0.5*b) + 128
	cr := float64(0.5*r) - float64(0.418688*g) - float64(0.081312*b) + 128
	return YCbCr{Y: clampByte(y), Cb: clampByte(cb), Cr: clampByte(cr)}
}

// RGBToYCbCrBT709 converts an RGB color with ITU-R BT.709 coefficients.
func RGBToYCbCrBT709(c RGB) YCbCr {
	r, g, b := float64(c.R), float64(c.G), float64(c.B)
	y := float64(0.2126*r) + float64(0.7152*g) + float64(0.0722*b)
	cb := float64(-0.114572*r) - float64(0.385428*g) + float64(0.5*b) + 128
	cr := float64(0.5*r) - float64(0.454153*g) - float64(0.045847*b) + 128
	return YCbCr{Y: clampByte(y), Cb: clampByte(cb), Cr: clampByte(cr), BT709: true}
}

// clampByte truncates toward zero and clamps to [0,255].
func clampByte(v float64) uint8 {
	t := math.Trunc(v)
	if t < 0 {
		return 0
	}
	if t > 255 {
		return 255
	}
	return uint8(t)
}

func normalize(c RGB) (r, g, b float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255
}

func minMax(r, g, b float64) (lo, hi float64) {
	return math.Min(r, math.Min(g, b)), math.Max(r, math.Max(g, b))
}
