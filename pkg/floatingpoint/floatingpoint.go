// Package floatingpoint ports mfbt/FloatingPoint.cpp.
package floatingpoint

import "math"

// IsFloat32Representable reports whether v survives a round trip through
// float32 without changing value. NaN and the infinities are representable;
// finite magnitudes beyond the float32 range are not, even though the Go
// conversion would round them to infinity.
func IsFloat32Representable(v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return true
	}
	if math.Abs(v) > math.MaxFloat32 {
		return false
	}
	return float64(float32(v)) == v
}
