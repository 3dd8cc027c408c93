package algebra

import (
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch indicates operands of unequal length.
	ErrDimensionMismatch = errors.New("algebra: dimension mismatch")

	// ErrIndexOutOfRange indicates a component or column index outside the operand.
	ErrIndexOutOfRange = errors.New("algebra: index out of range")

	// ErrRagged indicates matrix rows of different lengths.
	ErrRagged = errors.New("algebra: rows have different lengths")
)

// DimensionError reports the operation and the lengths that did not match.
type DimensionError struct {
	Op   string
	Want int
	Got  int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s: %s: want length %d, got %d", ErrDimensionMismatch, e.Op, e.Want, e.Got)
}

func (e *DimensionError) Unwrap() error {
	return ErrDimensionMismatch
}

func checkLen(op string, want, got int) error {
	if want != got {
		return &DimensionError{Op: op, Want: want, Got: got}
	}
	return nil
}

// mustLen panics with a *DimensionError, mirroring the shape panics of
// gonum's floats and mat packages.
func mustLen(op string, want, got int) {
	if err := checkLen(op, want, got); err != nil {
		panic(err)
	}
}
