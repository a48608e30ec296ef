// Package trail turns irregular pointer samples into a bounded, time-decaying polyline.
package trail

import (
	"math"
	"time"

	"github.com/automoto/memory-ninja/config"
	"github.com/automoto/memory-ninja/shared/gamemath"
)

// Point is one trail sample. T is the time the pointer was there.
type Point struct {
	X, Y float64
	T    time.Time
}

// Age is how long ago the point was recorded relative to now.
func (p Point) Age(now time.Time) time.Duration {
	return now.Sub(p.T)
}

// Sampler owns the trail of a single pointer.
type Sampler struct {
	cfg     config.TrailConfig
	points  []Point
	last    Point
	hasLast bool
}

func NewSampler(cfg config.TrailConfig) *Sampler {
	return &Sampler{
		cfg:    cfg,
		points: make([]Point, 0, cfg.MaxLength+1),
	}
}

// Ingest records a raw pointer sample and returns the updated trail.
// The returned slice is owned by the sampler and valid until the next call.
func (s *Sampler) Ingest(p Point, now time.Time) []Point {
	s.Purge(now)

	if s.hasLast {
		dist := gamemath.Distance(s.last.X, s.last.Y, p.X, p.Y)
		elapsed := float64(p.T.Sub(s.last.T)) / float64(time.Millisecond)

		speed := 0.0
		if elapsed > 0 {
			speed = dist / elapsed
		}

		if speed > s.cfg.MinSpeed {
			if dist > s.cfg.SampleInterval && len(s.points) > 0 {
				s.fill(s.points[len(s.points)-1], p)
			}
			s.push(p)
		} else {
			s.points = s.points[:0]
		}
	}

	s.last = p
	s.hasLast = true

	s.Purge(now)
	return s.points
}

// fill adds evenly spaced points strictly between from and to.
func (s *Sampler) fill(from, to Point) {
	dist := gamemath.Distance(from.X, from.Y, to.X, to.Y)
	steps := int(math.Ceil(dist / s.cfg.SampleInterval))
	span := to.T.Sub(from.T)

	for i := 1; i < steps; i++ {
		r := float64(i) / float64(steps)
		s.push(Point{
			X: gamemath.Lerp(from.X, to.X, r),
			Y: gamemath.Lerp(from.Y, to.Y, r),
			T: from.T.Add(time.Duration(float64(span) * r)),
		})
	}
}

func (s *Sampler) push(p Point) {
	s.points = append(s.points, p)
	if over := len(s.points) - s.cfg.MaxLength; over > 0 {
		n := copy(s.points, s.points[over:])
		s.points = s.points[:n]
	}
}

// Purge drops every point whose age has reached the fade window.
func (s *Sampler) Purge(now time.Time) []Point {
	drop := 0
	for drop < len(s.points) && s.points[drop].Age(now) >= s.cfg.FadeWindow {
		drop++
	}
	if drop > 0 {
		n := copy(s.points, s.points[drop:])
		s.points = s.points[:n]
	}
	return s.points
}

// Lift clears the trail and forgets the previous sample, as when a touch ends.
func (s *Sampler) Lift() {
	s.points = s.points[:0]
	s.hasLast = false
}

// Points returns the current trail, oldest first.
func (s *Sampler) Points() []Point {
	return s.points
}

func (s *Sampler) Len() int {
	return len(s.points)
}

// Snapshot copies the trail so it can outlive the next update.
func (s *Sampler) Snapshot() []Point {
	out := make([]Point, len(s.points))
	copy(out, s.points)
	return out
}
