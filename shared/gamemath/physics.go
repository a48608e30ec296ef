package gamemath

import "math"

// Distance returns the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// Angle returns the direction from (x1, y1) to (x2, y2) in radians.
func Angle(x1, y1, x2, y2 float64) float64 {
	return math.Atan2(y2-y1, x2-x1)
}

// Lerp interpolates between a and b by ratio t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// RandomRange maps a uniform sample u in [0,1) onto [lo, hi).
func RandomRange(u, lo, hi float64) float64 {
	return lo + u*(hi-lo)
}

// Jitter maps a uniform sample u in [0,1) onto a range of the given full width centered on zero.
func Jitter(u, width float64) float64 {
	return (u - 0.5) * width
}
