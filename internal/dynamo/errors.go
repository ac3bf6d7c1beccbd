package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for construction and driving. The per-cell kernel path never
// returns errors.
var (
	// ErrInvalidConfig indicates an inconsistent or incomplete configuration.
	ErrInvalidConfig = errors.New("dynamo: invalid configuration")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrDimensionMismatch indicates fields or geometry of different shapes.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between fields")

	// ErrInvalidState indicates NaN or Inf in a field.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrContextCanceled indicates the run was interrupted.
	ErrContextCanceled = errors.New("dynamo: run canceled by context")

	// ErrUnknownBackend indicates a sweep backend name that is not registered.
	ErrUnknownBackend = errors.New("dynamo: unknown backend")
)

// SimulationError wraps an error with driver context.
type SimulationError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4g): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
