package core

// Clamp01 bounds a probability-like value to [0, 1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Clamp bounds v to the closed interval [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// NonNegative floors monetary values at zero.
func NonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
