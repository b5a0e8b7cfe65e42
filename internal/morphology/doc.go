// Package morphology applies grey-level morphological operators to images.
//
// An image is first bridged into a [Buffer], an interleaved 8-bit pixel
// buffer laid out the way OpenCV expects it: grayscale images become one
// channel, opaque color images three channels in B,G,R order, and images with
// transparency four channels in B,G,R,A order. An [Operator] transforms one
// buffer into a new one and [Buffer.Image] converts the result back.
//
// # Operations
//
//   - Erode: minimum over the structuring element
//   - Dilate: maximum over the structuring element
//   - Open: erode then dilate, removing bright detail smaller than the kernel
//   - Close: dilate then erode, filling dark detail smaller than the kernel
//   - Gradient: dilation minus erosion, an outline of every edge
//
// With n iterations the erosion and dilation steps are each repeated n times,
// so an opening is erode^n followed by dilate^n.
//
// # Kernels
//
// A [Kernel] is a square 0/1 matrix with an odd side of at least 3 and an
// anchor that defaults to the center. Kernel offsets are applied relative to
// the anchor without reflection, and pixels that fall outside the image are
// ignored rather than padded. A kernel with no set entries leaves erosion at
// 255 and dilation at 0 everywhere.
//
// # Backends
//
// [Native] is a pure Go operator and the default. Building with the gocv tag
// adds an OpenCV operator backed by gocv.io/x/gocv and makes it the default;
// both produce identical buffers.
package morphology
