package kepler

import (
	"errors"
	"math"
	"testing"

	"github.com/gonum/floats"
)

func TestEccentricAnomalyConsistency(t *testing.T) {
	nr := NewNewtonRaphson()
	for _, e := range []float64{0, 1e-4, 0.1, 0.3, 0.7, 0.95} {
		for M := 0.0; M < 2*math.Pi; M += math.Pi / 7 {
			E, err := nr.EccentricAnomaly(M, e)
			if err != nil {
				t.Fatalf("M=%f e=%f: %s", M, e, err)
			}
			// Compare on the circle: for M=0 the root may be a tiny
			// negative E, which a plain wrap would map onto 2π.
			if back := E - e*math.Sin(E); math.Abs(math.Remainder(back-M, 2*math.Pi)) > 1e-10 {
				t.Fatalf("M=%f e=%f: E=%f does not reproduce M (got %f)", M, e, E, back)
			}
		}
	}
}

func TestEccentricAnomalyCircular(t *testing.T) {
	nr := NewNewtonRaphson()
	// With e = 0 the equation is linear and the seed is already the root.
	for _, M := range []float64{0, 0.5, math.Pi, 5.5} {
		E, err := nr.EccentricAnomaly(M, 0)
		if err != nil {
			t.Fatalf("M=%f: %s", M, err)
		}
		if E != M {
			t.Fatalf("M=%f: expected E=M, got E=%f", M, E)
		}
	}
}

func TestHyperbolicAnomalyConsistency(t *testing.T) {
	nr := NewNewtonRaphson()
	for _, e := range []float64{1.1, 1.5, 3, 10} {
		for _, M := range []float64{-50, -2, -0.1, 0, 0.1, 2, 50} {
			H, err := nr.HyperbolicAnomaly(M, e)
			if err != nil {
				t.Fatalf("M=%f e=%f: %s", M, e, err)
			}
			if back := e*math.Sinh(H) - H; !floats.EqualWithinAbs(back, M, 1e-9) {
				t.Fatalf("M=%f e=%f: H=%f does not reproduce M (got %f)", M, e, H, back)
			}
		}
	}
}

func TestParabolicAnomalyBarker(t *testing.T) {
	for _, M := range []float64{-100, -1, -1e-3, 0, 1e-3, 0.5, 1, 100} {
		B := ParabolicAnomaly(M)
		if back := B + B*B*B/3; !floats.EqualWithinAbs(back, M, 1e-9*math.Max(1, math.Abs(M))) {
			t.Fatalf("M=%f: B=%f does not satisfy Barker's equation (got %f)", M, B, back)
		}
	}
}

func TestNewtonRaphsonConvergenceError(t *testing.T) {
	// A single iteration cannot drive the residual of a transcendental
	// equation to 1e-15: the cap must surface as a typed error, never as a
	// silently truncated result.
	nr := NewtonRaphson{Tolerance: 1e-15, MaxIters: 1}
	_, err := nr.EccentricAnomaly(2.0, 0.9)
	var convErr ConvergenceError
	if !errors.As(err, &convErr) {
		t.Fatalf("expected ConvergenceError, got %v", err)
	}
	if convErr.Iterations != 1 {
		t.Fatalf("expected 1 iteration, got %d", convErr.Iterations)
	}
	if convErr.Residual <= convErr.Tolerance {
		t.Fatalf("inconsistent error: residual %g within tolerance %g", convErr.Residual, convErr.Tolerance)
	}
}

func TestNewtonRaphsonZeroValueDefaults(t *testing.T) {
	var nr NewtonRaphson
	E, err := nr.EccentricAnomaly(3.0, 0.2)
	if err != nil {
		t.Fatalf("zero-value solver failed: %s", err)
	}
	if !floats.EqualWithinAbs(E-0.2*math.Sin(E), 3.0, RootFindingTolerance*10) {
		t.Fatal("zero-value solver did not converge to the default tolerance")
	}
}
