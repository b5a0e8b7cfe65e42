package imaging

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/parallel"
	"github.com/disintegration/imaging"
)

// MaxFactor is the largest enhancement factor accepted; larger values are
// clamped to it.
const MaxFactor = 2.0

// Adjustments is a full set of enhancement parameters.
//
// Each factor is a non-negative multiplier where 1 leaves the image
// unchanged. At 0 brightness yields black, contrast a flat gray, saturation
// a grayscale image and sharpness a smoothed image; values above 1
// extrapolate away from that degenerate image.
type Adjustments struct {
	Brightness float64 `json:"brightness"`
	Contrast   float64 `json:"contrast"`
	Saturation float64 `json:"saturation"`
	Sharpness  float64 `json:"sharpness"`

	// Mode is the color mode of the result. ModeKeep leaves it unchanged.
	Mode Mode `json:"mode"`
}

// Identity returns adjustments that leave an image untouched.
func Identity() Adjustments {
	return Adjustments{Brightness: 1, Contrast: 1, Saturation: 1, Sharpness: 1}
}

// Clamped returns a copy with every factor limited to [0, MaxFactor]. NaN
// factors become 1.
func (a Adjustments) Clamped() Adjustments {
	a.Brightness = clampFactor(a.Brightness)
	a.Contrast = clampFactor(a.Contrast)
	a.Saturation = clampFactor(a.Saturation)
	a.Sharpness = clampFactor(a.Sharpness)
	return a
}

// IsIdentity reports whether the adjustments leave an image unchanged.
func (a Adjustments) IsIdentity() bool {
	return a.Clamped() == Identity()
}

func clampFactor(f float64) float64 {
	if math.IsNaN(f) {
		return 1
	}
	return math.Max(0, math.Min(MaxFactor, f))
}

// Apply runs the enhancement stages on img in their fixed order:
// brightness, contrast, saturation, sharpness, then mode conversion. The
// factors are clamped first. img is not modified.
func (a Adjustments) Apply(img image.Image) image.Image {
	a = a.Clamped()
	out := Normalize(img)
	out = Brightness(out, a.Brightness)
	out = Contrast(out, a.Contrast)
	out = Saturation(out, a.Saturation)
	out = Sharpness(out, a.Sharpness)
	return ConvertMode(out, a.Mode)
}

// Brightness scales every color sample toward black (factor < 1) or away
// from it (factor > 1). Alpha is preserved.
func Brightness(img image.Image, factor float64) image.Image {
	src := normalized(img)
	if factor == 1 {
		return src
	}
	deg := newLike(src)
	return blend(deg, src, factor)
}

// Contrast moves every color sample toward or away from the mean luminance
// of the image. Alpha is preserved.
func Contrast(img image.Image, factor float64) image.Image {
	src := normalized(img)
	if factor == 1 {
		return src
	}
	mean := meanLuma(src)
	deg := newLike(src)
	pix, _ := samples(deg)
	for i := range pix {
		pix[i] = mean
	}
	return blend(deg, src, factor)
}

// Saturation moves every pixel toward or away from its grayscale
// equivalent. Grayscale images are returned unchanged. Alpha is preserved.
func Saturation(img image.Image, factor float64) image.Image {
	src := normalized(img)
	if factor == 1 {
		return src
	}
	if _, ok := src.(*image.Gray); ok {
		return src
	}
	return blend(imaging.Grayscale(src), src, factor)
}

// Sharpness blends the image with a smoothed copy of itself: factors below
// 1 blur, factors above 1 sharpen. The smoothing kernel is
//
//	1 1 1
//	1 5 1
//	1 1 1
//
// normalized by 13. Pixels on the image border are not filtered. Alpha is
// preserved.
func Sharpness(img image.Image, factor float64) image.Image {
	src := normalized(img)
	if factor == 1 {
		return src
	}
	return blend(smooth(src), src, factor)
}

var smoothKernel = [9]float64{
	1, 1, 1,
	1, 5, 1,
	1, 1, 1,
}

// smooth applies the smoothing kernel to the interior of src and copies the
// border pixels through unchanged.
func smooth(src image.Image) image.Image {
	filtered := imaging.Convolve3x3(src, smoothKernel, &imaging.ConvolveOptions{Normalize: true})
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	var out image.Image = filtered
	if _, ok := src.(*image.Gray); ok {
		out = toGray(filtered)
	}
	outPix, ch := samples(out)
	srcPix, _ := samples(src)

	border := func(x, y int) bool { return x == 0 || y == 0 || x == w-1 || y == h-1 }
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if border(x, y) {
				i := (y*w + x) * ch
				copy(outPix[i:i+ch], srcPix[i:i+ch])
			}
		}
	}
	return out
}

// blend computes deg + factor*(src-deg) for every color sample, truncating
// toward zero and saturating at 0 and 255. The alpha channel of src is
// copied through. Both images must be normalized and of equal size.
func blend(deg, src image.Image, factor float64) image.Image {
	dst := newLike(src)
	dstPix, ch := samples(dst)
	srcPix, _ := samples(src)
	degPix, _ := samples(deg)

	f := float32(factor)
	rowLen := src.Bounds().Dx() * ch
	parallel.Line(src.Bounds().Dy(), func(start, end int) {
		for i := start * rowLen; i < end*rowLen; i++ {
			if ch == 4 && i%4 == 3 {
				dstPix[i] = srcPix[i]
				continue
			}
			d := float32(degPix[i])
			v := d + float32(f*(float32(srcPix[i])-d))
			switch {
			case v <= 0:
				dstPix[i] = 0
			case v >= 255:
				dstPix[i] = 255
			default:
				dstPix[i] = uint8(v)
			}
		}
	})
	return dst
}

// meanLuma returns the mean BT.601 luminance of img rounded to the nearest
// integer. Alpha is ignored.
func meanLuma(img image.Image) uint8 {
	var gray []uint8
	if g, ok := img.(*image.Gray); ok {
		gray = g.Pix[:g.Rect.Dx()*g.Rect.Dy()]
	} else {
		gray = toGray(imaging.Grayscale(img)).Pix
	}
	if len(gray) == 0 {
		return 0
	}
	var sum uint64
	for _, v := range gray {
		sum += uint64(v)
	}
	return uint8(math.Floor(float64(sum)/float64(len(gray)) + 0.5))
}

// normalized returns img itself when it already is a normalized image and a
// normalized copy otherwise.
func normalized(img image.Image) image.Image {
	switch m := img.(type) {
	case *image.Gray:
		if m.Rect.Min == (image.Point{}) && m.Stride == m.Rect.Dx() {
			return m
		}
	case *image.NRGBA:
		if m.Rect.Min == (image.Point{}) && m.Stride == 4*m.Rect.Dx() {
			return m
		}
	}
	return Normalize(img)
}

// newLike allocates a zeroed image of the same normalized type and size.
func newLike(img image.Image) image.Image {
	r := image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy())
	if _, ok := img.(*image.Gray); ok {
		return image.NewGray(r)
	}
	return image.NewNRGBA(r)
}

// samples exposes the packed sample slice of a normalized image along with
// its number of channels.
func samples(img image.Image) ([]uint8, int) {
	switch m := img.(type) {
	case *image.Gray:
		return m.Pix, 1
	case *image.NRGBA:
		return m.Pix, 4
	}
	panic("imaging: image is not normalized")
}
