package kepler

import (
	"math"
)

/* Handles the single-step analytic propagation. */

// PropagatedBody associates a body with its current state and the central
// body it orbits. The central body is read-only for the duration of a
// propagation call.
type PropagatedBody struct {
	Name   string
	State  CartesianState
	Center CelestialObject
}

// KeplerPropagator advances a Cartesian state analytically under a two-body
// attraction: convert to elements, advance the anomaly through Kepler's
// equation, convert back. It holds no state between calls; each Propagate is
// a pure function of (state, μ, Δt).
type KeplerPropagator struct {
	Solver   NewtonRaphson
	orbitTol float64
}

// NewKeplerPropagator returns a propagator with the configured solver and
// orbit classification tolerance.
func NewKeplerPropagator() *KeplerPropagator {
	return &KeplerPropagator{NewNewtonRaphson(), keplerConfig().classifyTol}
}

// NewKeplerPropagatorWithSolver returns a propagator with a caller-provided
// solver. A non-positive classification tolerance selects the default.
func NewKeplerPropagatorWithSolver(solver NewtonRaphson, orbitTol float64) *KeplerPropagator {
	if orbitTol <= 0 {
		orbitTol = eccentricityε
	}
	return &KeplerPropagator{solver, orbitTol}
}

// Propagate returns the state elapsedTime seconds away from the provided
// state about the given central body. A negative elapsed time propagates
// backward. For elapsedTime = 0 the input is reproduced to floating
// precision.
func (kp *KeplerPropagator) Propagate(state CartesianState, center CelestialObject, elapsedTime float64) (CartesianState, error) {
	μ := center.GM()
	els, err := Cartesian2Keplerian(state, μ)
	if err != nil {
		return CartesianState{}, err
	}
	switch ClassifyOrbit(els.e, kp.orbitTol) {
	case Circular:
		// Kepler's equation is linear here: E = M = ν, no solver involved.
		// The bypass covers the whole classification band, so the position
		// may deviate from the exact elliptical path by up to ~2ea; tighten
		// the classification tolerance to narrow the band.
		n := math.Sqrt(μ / math.Pow(els.a, 3))
		els = els.withν(wrap2Pi(els.ν + n*elapsedTime))
	case Elliptical:
		sinE, cosE := els.SinCosE()
		E0 := math.Atan2(sinE, cosE)
		M0 := E0 - els.e*math.Sin(E0)
		n := math.Sqrt(μ / math.Pow(els.a, 3))
		M := wrap2Pi(M0 + n*elapsedTime)
		E, err := kp.Solver.EccentricAnomaly(M, els.e)
		if err != nil {
			return CartesianState{}, err
		}
		sE, cE := math.Sincos(E / 2)
		ν := 2 * math.Atan2(math.Sqrt(1+els.e)*sE, math.Sqrt(1-els.e)*cE)
		els = els.withν(wrap2Pi(ν))
	case Hyperbolic:
		ν0 := els.ν
		if ν0 > math.Pi {
			ν0 -= 2 * math.Pi
		}
		H0 := 2 * math.Atanh(math.Sqrt((els.e-1)/(els.e+1))*math.Tan(ν0/2))
		M0 := els.e*math.Sinh(H0) - H0
		n := math.Sqrt(μ / math.Pow(-els.a, 3))
		// The hyperbolic anomaly is unbounded: no principal-range wrap.
		H, err := kp.Solver.HyperbolicAnomaly(M0+n*elapsedTime, els.e)
		if err != nil {
			return CartesianState{}, err
		}
		ν := 2 * math.Atan(math.Sqrt((els.e+1)/(els.e-1))*math.Tanh(H/2))
		els = els.withν(wrap2Pi(ν))
	case Parabolic:
		ν0 := els.ν
		if ν0 > math.Pi {
			ν0 -= 2 * math.Pi
		}
		B0 := math.Tan(ν0 / 2)
		M0 := B0 + B0*B0*B0/3
		n := 2 * math.Sqrt(μ/math.Pow(els.p, 3))
		B := ParabolicAnomaly(M0 + n*elapsedTime)
		els = els.withν(wrap2Pi(2 * math.Atan(B)))
	}
	return els.Cartesian(μ), nil
}
