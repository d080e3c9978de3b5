package kepler

import (
	"fmt"
	"strings"
)

// CelestialObject defines a celestial object as seen by the propagator: a
// gravitational parameter and enough bookkeeping to tell bodies apart.
// All values are SI (meters, m^3/s^2). The object is read-only during a
// propagation: the propagator only ever calls GM().
type CelestialObject struct {
	Name   string
	Radius float64
	μ      float64
	SOI    float64 // With respect to the Sun
}

// GM returns μ (which is unexported because it's a lowercase letter)
func (c CelestialObject) GM() float64 {
	return c.μ
}

// String implements the Stringer interface.
func (c CelestialObject) String() string {
	return c.Name + " body"
}

// Equals returns whether the provided celestial object is the same.
func (c *CelestialObject) Equals(b CelestialObject) bool {
	return c.Name == b.Name && c.Radius == b.Radius && c.μ == b.μ && c.SOI == b.SOI
}

// CelestialObjectFromString returns the object from its name
func CelestialObjectFromString(name string) (CelestialObject, error) {
	switch strings.ToLower(name) {
	case "sun":
		return Sun, nil
	case "venus":
		return Venus, nil
	case "earth":
		return Earth, nil
	case "mars":
		return Mars, nil
	case "jupiter":
		return Jupiter, nil
	default:
		return CelestialObject{}, fmt.Errorf("undefined body '%s'", name)
	}
}

/* Definitions */

// Sun is our closest star.
var Sun = CelestialObject{"Sun", 6.957e8, 1.32712440017987e20, -1}

// Venus is poisonous.
var Venus = CelestialObject{"Venus", 6.0518e6, 3.24858599e14, 0.616e9}

// Earth is home.
var Earth = CelestialObject{"Earth", 6.3781363e6, 3.98600433e14, 9.24645e8}

// Mars is the vacation place.
var Mars = CelestialObject{"Mars", 3.39619e6, 4.28283100e13, 5.76e8}

// Jupiter is big.
var Jupiter = CelestialObject{"Jupiter", 7.1492e7, 1.266865361e17, 4.82e10}
