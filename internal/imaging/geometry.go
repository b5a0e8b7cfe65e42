package imaging

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// RenderGeometry describes where an image, scaled to fit a display canvas
// while keeping its aspect ratio, is placed on that canvas.
//
// The scaled image fills the limiting dimension of the canvas and is
// centered along the other one, leaving equal bars on both sides.
type RenderGeometry struct {
	// CanvasWidth and CanvasHeight are the display surface size.
	CanvasWidth  int `json:"canvas_width"`
	CanvasHeight int `json:"canvas_height"`

	// ImageWidth and ImageHeight are the size of the source image.
	ImageWidth  int `json:"image_width"`
	ImageHeight int `json:"image_height"`

	// ScaledWidth and ScaledHeight are the size of the image on the canvas.
	ScaledWidth  int `json:"scaled_width"`
	ScaledHeight int `json:"scaled_height"`

	// OffsetX and OffsetY locate the top-left corner of the scaled image.
	OffsetX int `json:"offset_x"`
	OffsetY int `json:"offset_y"`
}

// ComputeGeometry letterboxes an imageW x imageH image into a canvasW x
// canvasH canvas.
//
// When the image is relatively wider than the canvas it takes the full
// canvas width and the height follows from the aspect ratio; otherwise it
// takes the full height. Scaled sizes are truncated and never below 1.
func ComputeGeometry(imageW, imageH, canvasW, canvasH int) (RenderGeometry, error) {
	if imageW <= 0 || imageH <= 0 {
		return RenderGeometry{}, fmt.Errorf("invalid image size %dx%d", imageW, imageH)
	}
	if canvasW <= 0 || canvasH <= 0 {
		return RenderGeometry{}, fmt.Errorf("invalid canvas size %dx%d", canvasW, canvasH)
	}

	imgRatio := float64(imageW) / float64(imageH)
	canvasRatio := float64(canvasW) / float64(canvasH)

	var sw, sh int
	if imgRatio > canvasRatio {
		sw = canvasW
		sh = int(float64(canvasW) / imgRatio)
	} else {
		sh = canvasH
		sw = int(float64(canvasH) * imgRatio)
	}
	sw = max(sw, 1)
	sh = max(sh, 1)

	return RenderGeometry{
		CanvasWidth:  canvasW,
		CanvasHeight: canvasH,
		ImageWidth:   imageW,
		ImageHeight:  imageH,
		ScaledWidth:  sw,
		ScaledHeight: sh,
		OffsetX:      (canvasW - sw) / 2,
		OffsetY:      (canvasH - sh) / 2,
	}, nil
}

// Contains reports whether the canvas point (x, y) lies on the scaled image.
// The image occupies [Offset, Offset+Scaled) on each axis.
func (g RenderGeometry) Contains(x, y int) bool {
	return x >= g.OffsetX && x < g.OffsetX+g.ScaledWidth &&
		y >= g.OffsetY && y < g.OffsetY+g.ScaledHeight
}

// MapToImage maps a canvas point back to the source pixel drawn there. The
// boolean is false when the point falls on the letterbox bars.
func (g RenderGeometry) MapToImage(x, y int) (image.Point, bool) {
	if !g.Contains(x, y) || g.ScaledWidth <= 0 || g.ScaledHeight <= 0 {
		return image.Point{}, false
	}
	ix := int(float64(x-g.OffsetX) * (float64(g.ImageWidth) / float64(g.ScaledWidth)))
	iy := int(float64(y-g.OffsetY) * (float64(g.ImageHeight) / float64(g.ScaledHeight)))
	return image.Pt(min(ix, g.ImageWidth-1), min(iy, g.ImageHeight-1)), true
}

// Rendered is an image scaled for display along with its geometry.
type Rendered struct {
	// Scaled is the image resized to ScaledWidth x ScaledHeight.
	Scaled *image.NRGBA

	Geometry RenderGeometry
}

// Render scales img to fit a canvasW x canvasH canvas using Lanczos
// resampling.
func Render(img image.Image, canvasW, canvasH int) (*Rendered, error) {
	b := img.Bounds()
	g, err := ComputeGeometry(b.Dx(), b.Dy(), canvasW, canvasH)
	if err != nil {
		return nil, err
	}
	return &Rendered{
		Scaled:   imaging.Resize(img, g.ScaledWidth, g.ScaledHeight, imaging.Lanczos),
		Geometry: g,
	}, nil
}

// Canvas returns the full letterboxed canvas: the scaled image pasted at its
// offset over a background of color bg.
func (r *Rendered) Canvas(bg color.Color) *image.NRGBA {
	canvas := imaging.New(r.Geometry.CanvasWidth, r.Geometry.CanvasHeight, bg)
	return imaging.Paste(canvas, r.Scaled, image.Pt(r.Geometry.OffsetX, r.Geometry.OffsetY))
}

// Inspect maps the canvas point (x, y) through g and samples img at the
// resulting source pixel. The boolean is false when no pixel is under the
// point.
func Inspect(img image.Image, g RenderGeometry, x, y int) (*PixelSample, bool, error) {
	pt, ok := g.MapToImage(x, y)
	if !ok {
		return nil, false, nil
	}
	s, err := SampleColor(img, pt.X, pt.Y)
	if err != nil {
		return nil, false, err
	}
	return s, true, nil
}
