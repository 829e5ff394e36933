package hsami

import (
	"errors"
	"fmt"

	"github.com/maseology/hsami/soil"
)

// ParamError an out-of-bounds or inconsistent parameter, raised before any
// stepping occurs.
type ParamError struct {
	Name   string
	Value  float64
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("parameter %s = %g: %s", e.Name, e.Value, e.Reason)
}

// ForcingError an invalid forcing record.
type ForcingError struct {
	Step   int // record index, -1 for series-level faults
	Reason string
}

func (e *ForcingError) Error() string {
	if e.Step < 0 {
		return "forcing: " + e.Reason
	}
	return fmt.Sprintf("forcing record %d: %s", e.Step, e.Reason)
}

// BalanceError the per-step water-balance residual exceeded tolerance. A
// defect in the stepping, never a recoverable condition: the run aborts.
type BalanceError struct {
	Step     int
	Residual float64 // [cm]
}

func (e *BalanceError) Error() string {
	return fmt.Sprintf("step %d: water-balance residual %e cm", e.Step, e.Residual)
}

// ConvergenceError the infiltration solve failed to converge at a step.
// Layer is the column layer whose solve failed, 0 at the surface.
type ConvergenceError struct {
	Step  int
	Layer int
	Err   error
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("step %d layer %d: %v", e.Step, e.Layer, e.Err)
}

func (e *ConvergenceError) Unwrap() error { return e.Err }

// IsNonConvergence reports whether err stems from the infiltration
// optimizer failing to bracket a root.
func IsNonConvergence(err error) bool {
	return errors.Is(err, soil.ErrNonConvergence)
}
