package kepler

import (
	"math"
	"testing"

	"github.com/gonum/floats"
)

func TestRotationAxes(t *testing.T) {
	// Frame rotations by 90° about each axis map the basis vectors onto
	// each other (passive convention).
	x, y, z := []float64{1, 0, 0}, []float64{0, 1, 0}, []float64{0, 0, 1}
	half := math.Pi / 2
	cases := []struct {
		name      string
		got, want []float64
	}{
		{"R1 maps z onto y", MxV33(R1(half), z), y},
		{"R2 maps x onto z", MxV33(R2(half), x), z},
		{"R3 maps y onto x", MxV33(R3(half), y), x},
	}
	for _, c := range cases {
		for i := 0; i < 3; i++ {
			if !floats.EqualWithinAbs(c.got[i], c.want[i], 1e-12) {
				t.Fatalf("%s: got %+v", c.name, c.got)
			}
		}
	}
}
