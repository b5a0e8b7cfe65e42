package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/histogram"
	"github.com/disintegration/imaging"
)

// Histogram holds 256-bin sample counts per channel.
//
// Grayscale images fill only L; color images fill R, G and B. Alpha is not
// counted and does not weight the color channels.
type Histogram struct {
	Mode Mode  `json:"mode"`
	L    []int `json:"l,omitempty"`
	R    []int `json:"r,omitempty"`
	G    []int `json:"g,omitempty"`
	B    []int `json:"b,omitempty"`
}

// ComputeHistogram counts the samples of img.
func ComputeHistogram(img image.Image) *Histogram {
	mode := ModeOf(img)

	// The counting goes through a premultiplied copy, so translucent
	// pixels are made opaque first to count their straight values.
	src := img
	if mode == ModeRGBA {
		opaque := imaging.Clone(img)
		for i := 3; i < len(opaque.Pix); i += 4 {
			opaque.Pix[i] = 0xff
		}
		src = opaque
	}

	h := histogram.NewRGBAHistogram(src)
	if mode == ModeGray {
		return &Histogram{Mode: mode, L: h.R.Bins}
	}
	return &Histogram{Mode: mode, R: h.R.Bins, G: h.G.Bins, B: h.B.Bins}
}

// Peak returns the bin with the highest count in bins, preferring the
// lowest value on ties.
func Peak(bins []int) int {
	best := 0
	for i, n := range bins {
		if n > bins[best] {
			best = i
		}
	}
	return best
}
