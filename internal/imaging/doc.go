// Package imaging provides the image side of the colorimetry server: the
// codec boundary, the adjustment pipeline and display coordinate mapping.
//
// # Codec Boundary
//
// [Decode] and [Open] turn PNG, JPEG, GIF, BMP, TIFF and WebP data into an
// image.Image, applying the EXIF orientation of JPEG files. [Encode] and
// [Save] write PNG, JPEG, GIF, TIFF or BMP. [ImageCache] keeps decoded files
// in memory keyed by path.
//
// # Color Modes
//
// Images are classified into three modes (see [ModeOf]): "L" for grayscale,
// "RGB" for opaque color and "RGBA" for color with transparency. Internally
// every image is normalized to *image.Gray or *image.NRGBA (see
// [Normalize]), so color samples are always straight, not premultiplied.
//
// # Adjustments
//
// [Adjustments] carries four enhancement factors and a target mode. Each
// enhancement blends the image with a degenerate version of itself:
//
//	out = degenerate + factor * (image - degenerate)
//
// with black for [Brightness], the mean luminance for [Contrast], the
// grayscale image for [Saturation] and a smoothed image for [Sharpness].
// Results are truncated and saturated to [0,255] and alpha is preserved.
// The stages always run in the order brightness, contrast, saturation,
// sharpness, mode conversion; the result depends on that order.
//
// # Pipeline
//
// [Pipeline] tracks the original image and the current image. Adjustments
// are always computed from the original, so they are idempotent and can be
// scrubbed freely. Morphology (see package morphology) is applied to the
// current image and chains. A failed operation leaves the current image as
// it was.
//
// # Coordinate System
//
// Image coordinates are 0-based with (0,0) at the top-left corner, X
// increasing rightward and Y downward. Display coordinates refer to a canvas
// on which the current image is letterboxed; [RenderGeometry] converts
// between the two and [Inspect] samples the pixel under a canvas point.
//
// # Thread Safety
//
// [ImageCache] and [Pipeline] are safe for concurrent use. All other
// functions are stateless and never modify their input images.
package imaging
