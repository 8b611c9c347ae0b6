package floatingpoint

import (
	"math"
	"testing"
)

func TestIsFloat32Representable(t *testing.T) {
	cases := []struct {
		v    float64
		want bool
	}{
		{0, true},
		{math.Copysign(0, -1), true},
		{1, true},
		{-1, true},
		{0.5, true},
		{1.5, true},
		{math.NaN(), true},
		{math.Inf(1), true},
		{math.Inf(-1), true},
		{math.MaxFloat32, true},
		{-math.MaxFloat32, true},
		{math.Nextafter(math.MaxFloat32, math.MaxFloat64), false},
		{math.MaxFloat64, false},
		{0.1, false},
		{1.0 / 3.0, false},
		{float64(1<<24 + 1), false},
		{float64(1 << 24), true},
		{math.SmallestNonzeroFloat64, false},
		{float64(math.SmallestNonzeroFloat32), true},
	}
	for _, c := range cases {
		if got := IsFloat32Representable(c.v); got != c.want {
			t.Errorf("IsFloat32Representable(%g) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestRoundTripAgreement(t *testing.T) {
	// Any value that passes must be bit-faithful through float32.
	vals := []float64{3.5, -1024, 65504, 2.5e-10}
	for _, v := range vals {
		if IsFloat32Representable(v) {
			if back := float64(float32(v)); back != v {
				t.Errorf("%g declared representable but round-trips to %g", v, back)
			}
		}
	}
}
