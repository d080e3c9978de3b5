package kepler

import (
	"math"
)

const (
	// RootFindingTolerance is the default convergence tolerance on the
	// Kepler-equation residual.
	RootFindingTolerance = 1e-12
	// MaxIterations is the default Newton-Raphson iteration cap.
	MaxIterations = 100
)

// NewtonRaphson is a Newton-Raphson root finder specialized for Kepler-type
// equations. The zero value falls back to the package defaults; both fields
// may be overridden by the caller.
type NewtonRaphson struct {
	Tolerance float64
	MaxIters  uint
}

// NewNewtonRaphson returns a solver with the configured tolerance and
// iteration cap (cf. config.go).
func NewNewtonRaphson() NewtonRaphson {
	cfg := keplerConfig()
	return NewtonRaphson{cfg.solverTolerance, cfg.solverMaxIters}
}

// Solve iterates x_{n+1} = x_n - f(x_n)/f'(x_n) from x0 until |f(x_n)| drops
// below the tolerance. Returns a ConvergenceError if the iteration cap is
// reached first; the result is never silently truncated.
func (nr NewtonRaphson) Solve(f, fPrime func(float64) float64, x0 float64) (float64, error) {
	tol := nr.Tolerance
	if tol <= 0 {
		tol = RootFindingTolerance
	}
	iters := nr.MaxIters
	if iters == 0 {
		iters = MaxIterations
	}
	x := x0
	for i := uint(0); i < iters; i++ {
		fx := f(x)
		if math.Abs(fx) < tol {
			return x, nil
		}
		x -= fx / fPrime(x)
	}
	if fx := math.Abs(f(x)); fx < tol {
		return x, nil
	}
	return x, ConvergenceError{Iterations: iters, Residual: math.Abs(f(x)), Tolerance: tol}
}

// EccentricAnomaly solves Kepler's equation M = E - e·sin(E) for the
// eccentric anomaly E, 0 ≤ e < 1. The seed is M ± e depending on the
// half-plane of M (Vallado's Algorithm 2).
func (nr NewtonRaphson) EccentricAnomaly(M, e float64) (float64, error) {
	M = wrap2Pi(M)
	E0 := M + e
	if M > math.Pi {
		E0 = M - e
	}
	return nr.Solve(
		func(E float64) float64 { return E - e*math.Sin(E) - M },
		func(E float64) float64 { return 1 - e*math.Cos(E) },
		E0)
}

// HyperbolicAnomaly solves the hyperbolic Kepler equation
// M = e·sinh(H) - H for the hyperbolic anomaly H, e > 1. Neither M nor H is
// bounded on a hyperbolic trajectory, so no wrapping happens here.
func (nr NewtonRaphson) HyperbolicAnomaly(M, e float64) (float64, error) {
	H0 := math.Asinh(M / e)
	return nr.Solve(
		func(H float64) float64 { return e*math.Sinh(H) - H - M },
		func(H float64) float64 { return e*math.Cosh(H) - 1 },
		H0)
}

// ParabolicAnomaly solves Barker's equation M = B + B³/3 for the parabolic
// anomaly B = tan(ν/2) in closed form via Cardano; the parabolic branch
// needs no iteration.
func ParabolicAnomaly(M float64) float64 {
	z := math.Cbrt(1.5*M + math.Sqrt(2.25*M*M+1))
	return z - 1/z
}
