//go:build gocv

package morphology

import (
	"fmt"

	"gocv.io/x/gocv"
)

// Default returns the operator used by Apply. Built with the gocv tag it is
// the OpenCV operator.
func Default() Operator {
	return OpenCV{}
}

// OpenCV applies operations through gocv's morphologyEx.
type OpenCV struct{}

var morphTypes = map[Operation]gocv.MorphType{
	Erode:    gocv.MorphErode,
	Dilate:   gocv.MorphDilate,
	Open:     gocv.MorphOpen,
	Close:    gocv.MorphClose,
	Gradient: gocv.MorphGradient,
}

var matTypes = map[int]gocv.MatType{
	1: gocv.MatTypeCV8UC1,
	3: gocv.MatTypeCV8UC3,
	4: gocv.MatTypeCV8UC4,
}

// Apply implements Operator. An iteration count below 1 is treated as 1.
func (OpenCV) Apply(src *Buffer, op Operation, k Kernel, iterations int) (*Buffer, error) {
	if err := checkArgs(src, op, k); err != nil {
		return nil, err
	}
	if iterations < 1 {
		iterations = 1
	}
	// OpenCV has no defined result for a kernel without set entries.
	if k.Empty() {
		return Native{}.Apply(src, op, k, iterations)
	}

	mat, err := gocv.NewMatFromBytes(src.Height, src.Width, matTypes[src.Channels], src.Pix)
	if err != nil {
		return nil, &OpError{Op: op, Err: fmt.Errorf("create mat: %w", err)}
	}
	defer mat.Close()

	// morphologyEx is called with the default anchor, so the kernel is
	// re-centered on its anchor first.
	ck := k.centered()
	kernel := gocv.NewMatWithSize(ck.Size(), ck.Size(), gocv.MatTypeCV8U)
	defer kernel.Close()
	for y := 0; y < ck.Size(); y++ {
		for x := 0; x < ck.Size(); x++ {
			kernel.SetUCharAt(y, x, ck.At(x, y))
		}
	}

	dst := gocv.NewMat()
	defer dst.Close()
	gocv.MorphologyExWithParams(mat, &dst, morphTypes[op], kernel, iterations, gocv.BorderConstant)
	if dst.Empty() {
		return nil, &OpError{Op: op, Err: fmt.Errorf("opencv returned an empty result")}
	}

	out := &Buffer{
		Width:    dst.Cols(),
		Height:   dst.Rows(),
		Channels: dst.Channels(),
		Pix:      dst.ToBytes(),
	}
	if err := out.validate(); err != nil {
		return nil, &OpError{Op: op, Err: err}
	}
	return out, nil
}
