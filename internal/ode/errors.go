package ode

import (
	"errors"
	"fmt"
)

// Domain errors for integration operations.
var (
	// ErrDimensionMismatch indicates state and system dimensions disagree.
	ErrDimensionMismatch = errors.New("ode: dimension mismatch between state and system")

	// ErrBadTableau indicates a Butcher tableau with inconsistent shapes.
	ErrBadTableau = errors.New("ode: malformed Butcher tableau")

	// ErrNoBracketing indicates an event function whose sign did not
	// alternate across a detected crossing. This is a caller contract
	// breach and is not retried.
	ErrNoBracketing = errors.New("ode: event function is not bracketed")

	// ErrMaxIterations indicates event root location did not converge
	// within the configured iteration budget.
	ErrMaxIterations = errors.New("ode: maximum iteration count exceeded")

	// ErrInvalidState indicates a state vector containing NaN or Inf.
	ErrInvalidState = errors.New("ode: invalid state (NaN or Inf detected)")
)

// IntegrationError wraps an error with the step and time at which the
// integration failed.
type IntegrationError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *IntegrationError) Error() string {
	return fmt.Sprintf("step %d (t=%.6g): %v", e.Step, e.Time, e.Wrapped)
}

func (e *IntegrationError) Unwrap() error {
	return e.Wrapped
}
