package morphology

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/parallel"
)

// Operator applies a morphological operation to a buffer and returns a new
// buffer of the same shape. The source buffer is never modified.
type Operator interface {
	Apply(src *Buffer, op Operation, k Kernel, iterations int) (*Buffer, error)
}

// Apply bridges img into a buffer, runs op with the default operator and
// converts the result back to an image.
func Apply(img image.Image, op Operation, k Kernel, iterations int) (image.Image, error) {
	return ApplyWith(Default(), img, op, k, iterations)
}

// ApplyWith is Apply with an explicit operator.
func ApplyWith(o Operator, img image.Image, op Operation, k Kernel, iterations int) (image.Image, error) {
	buf, err := FromImage(img)
	if err != nil {
		return nil, &OpError{Op: op, Err: fmt.Errorf("bridge to buffer: %w", err)}
	}
	out, err := o.Apply(buf, op, k, iterations)
	if err != nil {
		return nil, err
	}
	res, err := out.Image()
	if err != nil {
		return nil, &OpError{Op: op, Err: fmt.Errorf("bridge from buffer: %w", err)}
	}
	return res, nil
}

// Native is the pure Go operator.
type Native struct{}

// Apply implements Operator. An iteration count below 1 is treated as 1.
func (Native) Apply(src *Buffer, op Operation, k Kernel, iterations int) (*Buffer, error) {
	if err := checkArgs(src, op, k); err != nil {
		return nil, err
	}
	if iterations < 1 {
		iterations = 1
	}
	offs := k.offsets()

	erode := func(b *Buffer) *Buffer { return repeat(b, offs, iterations, false) }
	dilate := func(b *Buffer) *Buffer { return repeat(b, offs, iterations, true) }

	switch op {
	case Erode:
		return erode(src), nil
	case Dilate:
		return dilate(src), nil
	case Open:
		return dilate(erode(src)), nil
	case Close:
		return erode(dilate(src)), nil
	default:
		hi, lo := dilate(src), erode(src)
		for i, v := range hi.Pix {
			if v > lo.Pix[i] {
				hi.Pix[i] = v - lo.Pix[i]
			} else {
				hi.Pix[i] = 0
			}
		}
		return hi, nil
	}
}

func checkArgs(src *Buffer, op Operation, k Kernel) error {
	if !op.Valid() {
		return &OpError{Op: op, Err: fmt.Errorf("unknown operation")}
	}
	if k.size == 0 {
		return &OpError{Op: op, Err: fmt.Errorf("%w: zero dimension", ErrInvalidKernel)}
	}
	if err := src.validate(); err != nil {
		return &OpError{Op: op, Err: err}
	}
	return nil
}

func repeat(b *Buffer, offs []image.Point, n int, dilate bool) *Buffer {
	for i := 0; i < n; i++ {
		b = rankFilter(b, offs, dilate)
	}
	return b
}

// rankFilter computes, for every pixel and channel, the maximum (dilate) or
// minimum (erode) of the samples at the kernel offsets. Offsets landing
// outside the image are skipped; with none in bounds the result is the
// neutral element, 0 for dilation and 255 for erosion.
func rankFilter(src *Buffer, offs []image.Point, dilate bool) *Buffer {
	dst := NewBuffer(src.Width, src.Height, src.Channels)
	w, h, ch := src.Width, src.Height, src.Channels

	parallel.Line(h, func(start, end int) {
		acc := make([]uint8, ch)
		for y := start; y < end; y++ {
			for x := 0; x < w; x++ {
				for c := range acc {
					if dilate {
						acc[c] = 0
					} else {
						acc[c] = 255
					}
				}
				for _, o := range offs {
					sx, sy := x+o.X, y+o.Y
					if sx < 0 || sx >= w || sy < 0 || sy >= h {
						continue
					}
					s := (sy*w + sx) * ch
					for c := range acc {
						v := src.Pix[s+c]
						if dilate {
							acc[c] = max(acc[c], v)
						} else {
							acc[c] = min(acc[c], v)
						}
					}
				}
				copy(dst.Pix[(y*w+x)*ch:], acc)
			}
		}
	})
	return dst
}
