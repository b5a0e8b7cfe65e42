package colorspace

import "errors"

var (
	// ErrUnsupportedConversion is returned for a model name or value that is
	// not part of the Model enumeration.
	ErrUnsupportedConversion = errors.New("unsupported color conversion")

	// ErrDegenerateColorInput is returned when a conversion is undefined for
	// its input, e.g. Hunter Lab of zero luminance.
	ErrDegenerateColorInput = errors.New("degenerate color input")
)
