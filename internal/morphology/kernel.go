package morphology

import (
	"fmt"
	"image"
	"math"
	"strings"
)

// Kernel is a validated square structuring element.
type Kernel struct {
	size   int
	data   []uint8 // row-major, size*size entries of 0 or 1
	anchor image.Point
}

// NewKernel builds a kernel from a square 0/1 matrix with the anchor at the
// center.
func NewKernel(rows [][]uint8) (Kernel, error) {
	n := len(rows)
	return NewKernelWithAnchor(rows, image.Pt(n/2, n/2))
}

// NewKernelWithAnchor builds a kernel from a square 0/1 matrix. The anchor
// is given as (column, row) and must lie inside the matrix.
func NewKernelWithAnchor(rows [][]uint8, anchor image.Point) (Kernel, error) {
	n := len(rows)
	if n == 0 {
		return Kernel{}, fmt.Errorf("%w: zero dimension", ErrInvalidKernel)
	}
	if n < 3 || n%2 == 0 {
		return Kernel{}, fmt.Errorf("%w: size %d is not odd and at least 3", ErrInvalidKernel, n)
	}

	data := make([]uint8, 0, n*n)
	for i, row := range rows {
		if len(row) != n {
			return Kernel{}, fmt.Errorf("%w: row %d has %d entries, want %d", ErrInvalidKernel, i, len(row), n)
		}
		for j, v := range row {
			if v > 1 {
				return Kernel{}, fmt.Errorf("%w: entry (%d,%d) is %d, want 0 or 1", ErrInvalidKernel, i, j, v)
			}
		}
		data = append(data, row...)
	}

	if !anchor.In(image.Rect(0, 0, n, n)) {
		return Kernel{}, fmt.Errorf("%w: anchor %v outside %dx%d", ErrInvalidKernel, anchor, n, n)
	}
	return Kernel{size: n, data: data, anchor: anchor}, nil
}

// RectKernel returns a size x size kernel with every entry set.
func RectKernel(size int) (Kernel, error) {
	return shapedKernel(size, func(int, int) bool { return true })
}

// CrossKernel returns a size x size kernel with the center row and column set.
func CrossKernel(size int) (Kernel, error) {
	c := size / 2
	return shapedKernel(size, func(i, j int) bool { return i == c || j == c })
}

// EllipseKernel returns the ellipse inscribed in a size x size square,
// rasterized row by row the way OpenCV's getStructuringElement does.
func EllipseKernel(size int) (Kernel, error) {
	r := size / 2
	c := size / 2
	return shapedKernel(size, func(i, j int) bool {
		dy := i - r
		dx := int(math.Round(float64(c) * math.Sqrt(float64(r*r-dy*dy)/float64(r*r))))
		return j >= c-dx && j <= c+dx
	})
}

// ShapeKernel generates a kernel by shape name: "rect", "cross" or
// "ellipse". An empty name selects rect.
func ShapeKernel(shape string, size int) (Kernel, error) {
	switch strings.ToLower(strings.TrimSpace(shape)) {
	case "", "rect", "rectangle", "square":
		return RectKernel(size)
	case "cross":
		return CrossKernel(size)
	case "ellipse", "disk":
		return EllipseKernel(size)
	}
	return Kernel{}, fmt.Errorf("%w: unknown kernel shape %q", ErrInvalidKernel, shape)
}

func shapedKernel(size int, set func(i, j int) bool) (Kernel, error) {
	if size < 3 || size%2 == 0 {
		return Kernel{}, fmt.Errorf("%w: size %d is not odd and at least 3", ErrInvalidKernel, size)
	}
	rows := make([][]uint8, size)
	for i := range rows {
		rows[i] = make([]uint8, size)
		for j := range rows[i] {
			if set(i, j) {
				rows[i][j] = 1
			}
		}
	}
	return NewKernel(rows)
}

// Size returns the side length of the kernel.
func (k Kernel) Size() int { return k.size }

// Anchor returns the anchor as (column, row).
func (k Kernel) Anchor() image.Point { return k.anchor }

// At returns the entry at column x, row y.
func (k Kernel) At(x, y int) uint8 { return k.data[y*k.size+x] }

// Rows returns a copy of the kernel matrix.
func (k Kernel) Rows() [][]uint8 {
	rows := make([][]uint8, k.size)
	for i := range rows {
		rows[i] = append([]uint8(nil), k.data[i*k.size:(i+1)*k.size]...)
	}
	return rows
}

// Empty reports whether no entry is set.
func (k Kernel) Empty() bool {
	for _, v := range k.data {
		if v != 0 {
			return false
		}
	}
	return true
}

// offsets returns the (dx, dy) displacement of every set entry relative to
// the anchor.
func (k Kernel) offsets() []image.Point {
	var pts []image.Point
	for y := 0; y < k.size; y++ {
		for x := 0; x < k.size; x++ {
			if k.At(x, y) != 0 {
				pts = append(pts, image.Pt(x-k.anchor.X, y-k.anchor.Y))
			}
		}
	}
	return pts
}

// centered returns an equivalent kernel whose anchor is its center, padding
// the matrix with zeros as needed. Backends that only support centered
// anchors use it.
func (k Kernel) centered() Kernel {
	c := k.size / 2
	if k.anchor == image.Pt(c, c) {
		return k
	}
	reach := max(k.anchor.X, k.size-1-k.anchor.X, k.anchor.Y, k.size-1-k.anchor.Y)
	n := 2*reach + 1
	data := make([]uint8, n*n)
	for _, p := range k.offsets() {
		data[(p.Y+reach)*n+p.X+reach] = 1
	}
	return Kernel{size: n, data: data, anchor: image.Pt(reach, reach)}
}
