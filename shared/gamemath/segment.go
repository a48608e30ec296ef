package gamemath

import "math"

// SegmentCircle tests the segment p1->p2 against a circle.
// It solves |p1 + t(p2-p1) - c|^2 = r^2 for t in [0,1] and returns the
// smallest such t. A segment starting inside the circle hits at t = 0.
func SegmentCircle(x1, y1, x2, y2, cx, cy, r float64) (t float64, hit bool) {
	dx, dy := x2-x1, y2-y1
	fx, fy := x1-cx, y1-cy

	a := dx*dx + dy*dy
	b := 2 * (fx*dx + fy*dy)
	c := fx*fx + fy*fy - r*r

	if c <= 0 {
		return 0, true
	}
	if a == 0 {
		return 0, false
	}

	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, false
	}

	sq := math.Sqrt(disc)
	t1 := (-b - sq) / (2 * a)
	t2 := (-b + sq) / (2 * a)

	if t1 >= 0 && t1 <= 1 {
		return t1, true
	}
	if t2 >= 0 && t2 <= 1 {
		return t2, true
	}
	return 0, false
}

// SegmentHitsCircle reports whether the segment p1->p2 touches the circle.
func SegmentHitsCircle(x1, y1, x2, y2, cx, cy, r float64) bool {
	_, hit := SegmentCircle(x1, y1, x2, y2, cx, cy, r)
	return hit
}
