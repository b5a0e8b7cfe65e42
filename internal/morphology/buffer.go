package morphology

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/clone"
	"github.com/disintegration/imaging"
)

// Buffer is an interleaved 8-bit pixel buffer in OpenCV channel order.
//
// Channels is 1 (gray), 3 (B,G,R) or 4 (B,G,R,A). Rows are packed with no
// padding, so Pix has Width*Height*Channels bytes.
type Buffer struct {
	Width    int
	Height   int
	Channels int
	Pix      []uint8
}

// NewBuffer allocates a zeroed buffer.
func NewBuffer(width, height, channels int) *Buffer {
	return &Buffer{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]uint8, width*height*channels),
	}
}

// FromImage bridges img into a buffer. Grayscale images stay single channel,
// opaque images become B,G,R and images with any transparency become
// B,G,R,A with straight (non-premultiplied) alpha.
func FromImage(img image.Image) (*Buffer, error) {
	if img == nil {
		return nil, fmt.Errorf("nil image")
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("empty image %dx%d", w, h)
	}

	if g, ok := img.(*image.Gray); ok {
		buf := NewBuffer(w, h, 1)
		for y := 0; y < h; y++ {
			off := (y+b.Min.Y-g.Rect.Min.Y)*g.Stride + (b.Min.X - g.Rect.Min.X)
			copy(buf.Pix[y*w:(y+1)*w], g.Pix[off:off+w])
		}
		return buf, nil
	}

	if opaque(img) {
		rgba := clone.AsShallowRGBA(img)
		buf := NewBuffer(w, h, 3)
		for y := 0; y < h; y++ {
			row := rgba.Pix[(y+b.Min.Y-rgba.Rect.Min.Y)*rgba.Stride:]
			for x := 0; x < w; x++ {
				s := (x + b.Min.X - rgba.Rect.Min.X) * 4
				d := (y*w + x) * 3
				buf.Pix[d+0] = row[s+2]
				buf.Pix[d+1] = row[s+1]
				buf.Pix[d+2] = row[s+0]
			}
		}
		return buf, nil
	}

	nrgba := imaging.Clone(img)
	buf := NewBuffer(w, h, 4)
	for i := 0; i < w*h; i++ {
		s := i * 4
		buf.Pix[s+0] = nrgba.Pix[s+2]
		buf.Pix[s+1] = nrgba.Pix[s+1]
		buf.Pix[s+2] = nrgba.Pix[s+0]
		buf.Pix[s+3] = nrgba.Pix[s+3]
	}
	return buf, nil
}

// Image converts the buffer back: one channel to *image.Gray, three and four
// channels to *image.NRGBA with the channel order restored.
func (b *Buffer) Image() (image.Image, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}
	rect := image.Rect(0, 0, b.Width, b.Height)

	switch b.Channels {
	case 1:
		g := image.NewGray(rect)
		copy(g.Pix, b.Pix)
		return g, nil
	case 3:
		out := image.NewNRGBA(rect)
		for i := 0; i < b.Width*b.Height; i++ {
			s, d := i*3, i*4
			out.Pix[d+0] = b.Pix[s+2]
			out.Pix[d+1] = b.Pix[s+1]
			out.Pix[d+2] = b.Pix[s+0]
			out.Pix[d+3] = 0xff
		}
		return out, nil
	default:
		out := image.NewNRGBA(rect)
		for i := 0; i < b.Width*b.Height; i++ {
			s := i * 4
			out.Pix[s+0] = b.Pix[s+2]
			out.Pix[s+1] = b.Pix[s+1]
			out.Pix[s+2] = b.Pix[s+0]
			out.Pix[s+3] = b.Pix[s+3]
		}
		return out, nil
	}
}

func (b *Buffer) validate() error {
	if b == nil {
		return fmt.Errorf("nil buffer")
	}
	switch b.Channels {
	case 1, 3, 4:
	default:
		return fmt.Errorf("unsupported channel count %d", b.Channels)
	}
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("empty buffer %dx%d", b.Width, b.Height)
	}
	if len(b.Pix) != b.Width*b.Height*b.Channels {
		return fmt.Errorf("buffer has %d bytes, want %d", len(b.Pix), b.Width*b.Height*b.Channels)
	}
	return nil
}

func opaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return false
			}
		}
	}
	return true
}
