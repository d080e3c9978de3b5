package kepler

import (
	"fmt"
	"math"
	"testing"

	"github.com/gonum/floats"
)

func assertPanic(t *testing.T, f func()) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("code did not panic")
		}
	}()
	f()
}

func vectorsEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := len(a) - 1; i >= 0; i-- {
		if !floats.EqualWithinRel(a[i], b[i], 1e-3) {
			return false
		}
	}
	return true
}

// anglesEqual returns whether two angles in Radians are equal.
func anglesEqual(a, b float64) (bool, error) {
	diff := math.Mod(math.Abs(a-b), 2*math.Pi)
	if diff < angleε {
		return true, nil
	}
	return false, fmt.Errorf("difference of %3.10f degrees", math.Abs(Rad2deg(diff)))
}

// statesEqual compares two Cartesian states component-wise, with the given
// relative tolerance scaled by the position and velocity magnitudes (so that
// exactly-zero components compare meaningfully).
func statesEqual(a, b CartesianState, rtol float64) bool {
	rScale := math.Max(a.RNorm(), b.RNorm())
	vScale := math.Max(a.VNorm(), b.VNorm())
	for i := 0; i < 3; i++ {
		if !floats.EqualWithinAbs(a.R[i], b.R[i], rtol*rScale) {
			return false
		}
		if !floats.EqualWithinAbs(a.V[i], b.V[i], rtol*vScale) {
			return false
		}
	}
	return true
}

// asterixState is the calibration initial state: periapsis of a slightly
// eccentric equatorial Earth orbit, given in km and km/s.
func asterixState() CartesianState {
	return NewCartesianStateXYZ(6750, 0, 0, 0, 8.0595973215, 0).InMeters()
}
