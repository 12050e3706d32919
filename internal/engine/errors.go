package engine

import (
	"errors"
	"fmt"
)

// Domain errors for simulation runs.
var (
	// ErrLengthMismatch indicates a request whose positions and residue
	// types disagree in length. Validation errors are returned before any
	// simulation step runs.
	ErrLengthMismatch = errors.New("engine: positions and residue types differ in length")

	// ErrInvalidState indicates the simulation produced NaN or Inf
	// positions; an internal failure, distinct from input validation.
	ErrInvalidState = errors.New("engine: invalid state (NaN or Inf detected)")
)

// SimulationError wraps a sentinel error with step context.
type SimulationError struct {
	Step    int
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d: %v", e.Step, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
