package imaging

import "errors"

var (
	// ErrUninitializedImage is returned by pipeline operations that need an
	// image before one has been loaded.
	ErrUninitializedImage = errors.New("no image loaded")

	// ErrNoRender is returned when display coordinates are mapped before the
	// image has been rendered to a canvas.
	ErrNoRender = errors.New("image has not been rendered")
)
