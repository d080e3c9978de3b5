package kepler

import (
	"fmt"
	"math"
)

const (
	// eccentricityε is the default eccentricity tolerance used to classify
	// the orbit type (circular / elliptical / parabolic / hyperbolic).
	eccentricityε = 5e-5
	// angleε is the angular comparison tolerance, 0.005 degrees.
	angleε = (5e-3 / 360) * (2 * math.Pi)
	// rectilinearε is the relative angular-momentum floor under which the
	// orbital plane is undefined and conversion to elements must fail.
	rectilinearε = 1e-12
	// conversionε is the threshold under which the node or eccentricity
	// vector is treated as identically zero during conversion. It is far
	// tighter than eccentricityε on purpose: snapping a merely small vector
	// onto the circular/equatorial convention would break the exactness of
	// the Cartesian round-trip.
	conversionε = 1e-12
)

// OrbitType describes the conic section of an orbit, derived from its
// eccentricity and never stored.
type OrbitType uint8

// The four conic branches.
const (
	Circular OrbitType = iota
	Elliptical
	Parabolic
	Hyperbolic
)

func (t OrbitType) String() string {
	switch t {
	case Circular:
		return "circular"
	case Elliptical:
		return "elliptical"
	case Parabolic:
		return "parabolic"
	case Hyperbolic:
		return "hyperbolic"
	}
	panic("cannot stringify unknown orbit type")
}

// ClassifyOrbit returns the orbit type for the given eccentricity. A
// non-positive tolerance selects the default eccentricityε.
func ClassifyOrbit(e, tol float64) OrbitType {
	if tol <= 0 {
		tol = eccentricityε
	}
	switch {
	case e < tol:
		return Circular
	case math.Abs(e-1) < tol:
		return Parabolic
	case e > 1:
		return Hyperbolic
	default:
		return Elliptical
	}
}

// CartesianState is a six-component inertial state: position and velocity,
// in consistent units (SI meters and seconds everywhere in this package).
type CartesianState struct {
	R, V []float64
}

// NewCartesianState returns a state from position and velocity vectors.
// The slices are copied: the state does not alias its inputs.
func NewCartesianState(R, V []float64) CartesianState {
	s := CartesianState{make([]float64, 3), make([]float64, 3)}
	copy(s.R, R)
	copy(s.V, V)
	return s
}

// NewCartesianStateXYZ returns a state from its six scalar components.
func NewCartesianStateXYZ(x, y, z, xDot, yDot, zDot float64) CartesianState {
	return CartesianState{[]float64{x, y, z}, []float64{xDot, yDot, zDot}}
}

// RNorm returns the norm of the radius vector.
func (s CartesianState) RNorm() float64 {
	return norm(s.R)
}

// VNorm returns the norm of the velocity vector.
func (s CartesianState) VNorm() float64 {
	return norm(s.V)
}

// Vector returns the six components as a single slice, position first.
func (s CartesianState) Vector() []float64 {
	return []float64{s.R[0], s.R[1], s.R[2], s.V[0], s.V[1], s.V[2]}
}

// IsValid returns whether all six components are finite.
func (s CartesianState) IsValid() bool {
	for _, v := range s.Vector() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// String implements the stringer interface.
func (s CartesianState) String() string {
	return fmt.Sprintf("R=%+v V=%+v", s.R, s.V)
}

// KeplerianElements defines an orbit via its orbital elements (radians). The
// semiparameter p is carried explicitly so that the parabolic branch never
// relies on an infinite semi-major axis.
type KeplerianElements struct {
	a, e, i, Ω, ω, ν, p float64
}

// NewKeplerianElements creates elements for a non-parabolic orbit.
// WARNING: Angles must be in degrees not radian.
func NewKeplerianElements(a, e, i, Ω, ω, ν float64) KeplerianElements {
	return KeplerianElements{a, e, Deg2rad(i), Deg2rad(Ω), Deg2rad(ω), Deg2rad(ν), a * (1 - e*e)}
}

// Elements returns the six classical orbital elements, angles in radians.
func (k KeplerianElements) Elements() (a, e, i, Ω, ω, ν float64) {
	return k.a, k.e, k.i, k.Ω, k.ω, k.ν
}

// SemiParameter returns the semiparameter (semilatus rectum).
func (k KeplerianElements) SemiParameter() float64 {
	return k.p
}

// Energyξ returns the specific mechanical energy ξ.
func (k KeplerianElements) Energyξ(μ float64) float64 {
	return -μ / (2 * k.a)
}

// Period returns the orbital period in seconds. Only meaningful for closed
// orbits.
func (k KeplerianElements) Period(μ float64) float64 {
	return 2 * math.Pi * math.Sqrt(math.Pow(k.a, 3)/μ)
}

// Apoapsis returns the apoapsis radius.
func (k KeplerianElements) Apoapsis() float64 {
	return k.a * (1 + k.e)
}

// Periapsis returns the periapsis radius.
func (k KeplerianElements) Periapsis() float64 {
	return k.a * (1 - k.e)
}

// SinCosE returns the eccentric anomaly trig functions (sin and cos).
func (k KeplerianElements) SinCosE() (sinE, cosE float64) {
	sinν, cosν := math.Sincos(k.ν)
	denom := 1 + k.e*cosν
	sinE = math.Sqrt(1-k.e*k.e) * sinν / denom
	cosE = (k.e + cosν) / denom
	return
}

// withν returns a copy of these elements at a new true anomaly. Two-body
// propagation changes nothing else.
func (k KeplerianElements) withν(ν float64) KeplerianElements {
	k.ν = ν
	return k
}

// String implements the stringer interface.
func (k KeplerianElements) String() string {
	return fmt.Sprintf("a=%.1f e=%.6f i=%.3f Ω=%.3f ω=%.3f ν=%.3f", k.a, k.e, Rad2deg(k.i), Rad2deg(k.Ω), Rad2deg(k.ω), Rad2deg(k.ν))
}

// Cartesian converts these elements to an inertial Cartesian state via the
// perifocal-frame construction. It is the exact algebraic inverse of
// Cartesian2Keplerian for any non-degenerate input.
func (k KeplerianElements) Cartesian(μ float64) CartesianState {
	sinν, cosν := math.Sincos(k.ν)
	rad := k.p / (1 + k.e*cosν)
	vFact := math.Sqrt(μ / k.p)
	R := PQW2ECI(k.i, k.ω, k.Ω, []float64{rad * cosν, rad * sinν, 0})
	V := PQW2ECI(k.i, k.ω, k.Ω, []float64{-vFact * sinν, vFact * (k.e + cosν), 0})
	return CartesianState{R, V}
}

// Cartesian2Keplerian converts an inertial Cartesian state to orbital
// elements about a body of gravitational parameter μ. From Vallado's RV2COE,
// page 113, extended to open orbits. Returns a DegenerateOrbitError when the
// angular momentum is below the rectilinear floor.
func Cartesian2Keplerian(s CartesianState, μ float64) (KeplerianElements, error) {
	R, V := s.R, s.V
	hVec := cross(R, V)
	h := norm(hVec)
	r := norm(R)
	v := norm(V)
	if floor := rectilinearε * r * v; h <= floor {
		return KeplerianElements{}, DegenerateOrbitError{HNorm: h, Floor: floor}
	}
	nVec := cross([]float64{0, 0, 1}, hVec)
	n := norm(nVec)
	ξ := (v*v)/2 - μ/r
	a := -μ / (2 * ξ) // ±Inf for an exactly parabolic orbit; consumers use p.
	p := h * h / μ
	eVec := make([]float64, 3)
	for j := 0; j < 3; j++ {
		eVec[j] = ((v*v-μ/r)*R[j] - dot(R, V)*V[j]) / μ
	}
	e := norm(eVec)
	i := math.Acos(cosAngle(hVec[2], h))

	equatorial := n < conversionε*h
	circular := e < conversionε

	var Ω, ω, ν float64
	if !equatorial {
		Ω = math.Acos(cosAngle(nVec[0], n))
		if nVec[1] < 0 {
			Ω = 2*math.Pi - Ω
		}
	}
	switch {
	case circular && equatorial:
		// True longitude, measured from the inertial x-axis.
		ν = math.Acos(cosAngle(R[0], r))
		if R[1] < 0 {
			ν = 2*math.Pi - ν
		}
	case circular:
		// Argument of latitude, measured from the ascending node.
		ν = math.Acos(cosAngle(dot(nVec, R), n*r))
		if R[2] < 0 {
			ν = 2*math.Pi - ν
		}
	case equatorial:
		// Longitude of periapsis, measured from the inertial x-axis.
		ω = math.Acos(cosAngle(eVec[0], e))
		if eVec[1] < 0 {
			ω = 2*math.Pi - ω
		}
		ν = math.Acos(cosAngle(dot(eVec, R), e*r))
		if dot(R, V) < 0 {
			ν = 2*math.Pi - ν
		}
	default:
		ω = math.Acos(cosAngle(dot(nVec, eVec), n*e))
		if eVec[2] < 0 {
			ω = 2*math.Pi - ω
		}
		ν = math.Acos(cosAngle(dot(eVec, R), e*r))
		if dot(R, V) < 0 {
			ν = 2*math.Pi - ν
		}
	}
	// Fix rounding errors.
	i = math.Mod(i, 2*math.Pi)
	Ω = math.Mod(Ω, 2*math.Pi)
	ω = math.Mod(ω, 2*math.Pi)
	ν = math.Mod(ν, 2*math.Pi)

	return KeplerianElements{a, e, i, Ω, ω, ν, p}, nil
}
