package morphology

import (
	"errors"
	"fmt"
)

// ErrInvalidKernel is returned for a structuring element that is empty, not
// square, of even size, smaller than 3x3, has entries other than 0 and 1, or
// whose anchor lies outside the matrix.
var ErrInvalidKernel = errors.New("invalid kernel")

// OpError reports a failed morphology operation together with its cause.
type OpError struct {
	Op  Operation
	Err error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("morphology operation failed: %s: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}
