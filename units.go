package kepler

/* Unit conversions at the interface boundary. The core works in SI meters and
seconds; benchmark and operator data usually comes in kilometers. */

// KilometersToMeters converts a distance (or velocity) scalar from km to m.
func KilometersToMeters(v float64) float64 {
	return v * 1e3
}

// MetersToKilometers converts a distance (or velocity) scalar from m to km.
func MetersToKilometers(v float64) float64 {
	return v * 1e-3
}

// InMeters returns this state with all six components scaled from km, km/s
// to m, m/s.
func (s CartesianState) InMeters() CartesianState {
	return s.scaled(1e3)
}

// InKilometers returns this state with all six components scaled from m, m/s
// to km, km/s.
func (s CartesianState) InKilometers() CartesianState {
	return s.scaled(1e-3)
}

func (s CartesianState) scaled(factor float64) CartesianState {
	out := NewCartesianState(s.R, s.V)
	for i := 0; i < 3; i++ {
		out.R[i] *= factor
		out.V[i] *= factor
	}
	return out
}
