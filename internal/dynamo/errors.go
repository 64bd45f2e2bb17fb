package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidParameter indicates a configuration or model parameter the
	// engine refuses to run with. Reported before integration starts.
	ErrInvalidParameter = errors.New("dynamo: invalid parameter")

	// ErrSimulationFailed indicates the solver could not produce a trustworthy
	// solution over the requested horizon.
	ErrSimulationFailed = errors.New("dynamo: simulation failed")

	// ErrInvalidState indicates a state vector with NaN or Inf components.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrStepTooSmall indicates adaptive timestep became too small.
	ErrStepTooSmall = errors.New("dynamo: adaptive timestep below minimum")

	// ErrTooManySteps indicates the solver exhausted its step budget.
	ErrTooManySteps = errors.New("dynamo: step budget exhausted")

	// ErrDimensionMismatch indicates mismatched state/system dimensions.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and system")
)

// SimulationError wraps a solver failure with simulation context.
// It matches both ErrSimulationFailed and the underlying reason.
type SimulationError struct {
	Step   int
	Time   float64
	State  State
	Reason error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("dynamo: simulation failed at step %d (t=%.4f): %v", e.Step, e.Time, e.Reason)
}

func (e *SimulationError) Unwrap() []error {
	return []error{ErrSimulationFailed, e.Reason}
}

func invalidParam(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidParameter}, args...)...)
}
