package mathutil

import "math"

// ClampFloat limits v to [lo, hi]. NaN maps to lo.
func ClampFloat(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// NormalizeAngle maps an angle in radians into [-Pi, Pi].
func NormalizeAngle(a float64) float64 {
	return math.Remainder(a, 2*math.Pi)
}

// Frac returns the fractional part of v in [0, 1).
func Frac(v float64) float64 {
	f := v - math.Floor(v)
	if f >= 1 {
		return 0
	}
	return f
}

// ColorDistance is the sum of absolute per-channel differences of two 0xRRGGBB colours.
func ColorDistance(a, b uint32) int {
	dr := int(a>>16&0xFF) - int(b>>16&0xFF)
	dg := int(a>>8&0xFF) - int(b>>8&0xFF)
	db := int(a&0xFF) - int(b&0xFF)
	return IntAbs(dr) + IntAbs(dg) + IntAbs(db)
}
