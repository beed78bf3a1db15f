package mathutil

// IntAbs returns the absolute value of an int (search: int-math).
func IntAbs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ClampInt limits v to [lo, hi] (search: int-math).
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// WrapInt maps v into [0, n) for positive n, also for negative v (search: int-math).
// Returns 0 when n <= 0.
func WrapInt(v, n int) int {
	if n <= 0 {
		return 0
	}
	m := v % n
	if m < 0 {
		m += n
	}
	return m
}
