package odeint

import (
	"errors"
	"fmt"

	"github.com/san-kum/odeint/internal/algebra"
)

// Domain errors for integration calls.
var (
	// ErrDimensionMismatch indicates a derivative whose length differs from the state.
	ErrDimensionMismatch = algebra.ErrDimensionMismatch

	// ErrInvalidStep indicates a non-positive step size.
	ErrInvalidStep = errors.New("odeint: step size must be positive")

	// ErrInvalidSpan indicates tMax <= tStart.
	ErrInvalidSpan = errors.New("odeint: end time must be greater than start time")

	// ErrEmptyState indicates an initial state with no components.
	ErrEmptyState = errors.New("odeint: initial state is empty")

	// ErrNilFunc indicates a missing derivative function.
	ErrNilFunc = errors.New("odeint: derivative function is nil")

	// ErrInvalidState indicates a NaN or Inf derivative when validation is on.
	ErrInvalidState = errors.New("odeint: invalid state (NaN or Inf detected)")

	// ErrStepTooSmall indicates a step that no longer advances time, or an
	// adaptive retry loop that gave up.
	ErrStepTooSmall = errors.New("odeint: step too small to advance time")

	// ErrMaxSteps indicates the accepted-step cap was hit before tMax.
	ErrMaxSteps = errors.New("odeint: maximum number of steps reached")

	// ErrUnknownMethod indicates a method name missing from the registry.
	ErrUnknownMethod = errors.New("odeint: unknown method")
)

// StepError wraps a failure with the integration context it happened in.
type StepError struct {
	Method string
	Step   int
	Time   float64
	Err    error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: step %d (t=%.4f): %v", e.Method, e.Step, e.Time, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
