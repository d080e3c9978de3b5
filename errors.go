package kepler

import (
	"errors"
	"fmt"
)

// ErrPropagationStopped is returned by a series run which was cooperatively
// stopped before reaching its end time.
var ErrPropagationStopped = errors.New("propagation stopped before completion")

// InvalidConfigurationError denotes malformed series parameters. It is
// detected before any propagation step runs, so the caller may fix the
// parameters and retry.
type InvalidConfigurationError struct {
	Param string
	Value float64
	Issue string
}

func (e InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s=%g %s", e.Param, e.Value, e.Issue)
}

// DegenerateOrbitError denotes a state whose angular momentum is below the
// rectilinear floor: the orbital plane, and with it the eccentricity vector,
// is undefined. Fatal to the propagation step which triggered it.
type DegenerateOrbitError struct {
	HNorm float64
	Floor float64
}

func (e DegenerateOrbitError) Error() string {
	return fmt.Sprintf("degenerate orbit: |h|=%g below floor %g (rectilinear trajectory?)", e.HNorm, e.Floor)
}

// ConvergenceError denotes a Newton-Raphson iteration which hit its cap
// before the residual dropped below tolerance. This indicates a configuration
// or input problem, not a transient condition, hence no automatic retry.
type ConvergenceError struct {
	Iterations uint
	Residual   float64
	Tolerance  float64
}

func (e ConvergenceError) Error() string {
	return fmt.Sprintf("no convergence after %d iterations: residual %g > tolerance %g", e.Iterations, e.Residual, e.Tolerance)
}
