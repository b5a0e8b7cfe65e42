//go:build !gocv

package morphology

// Default returns the operator used by Apply. Without the gocv build tag it
// is the pure Go operator.
func Default() Operator {
	return Native{}
}
