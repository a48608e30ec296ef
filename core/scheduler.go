package core

import (
	"github.com/rs/zerolog"
)

type State int

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// FrameRequester schedules fn to run on the next frame.
type FrameRequester interface {
	RequestFrame(fn func())
}

// FrameQueue holds at most one pending frame callback. It is driven by the
// same goroutine that owns the simulation.
type FrameQueue struct {
	pending func()
}

func (q *FrameQueue) RequestFrame(fn func()) {
	q.pending = fn
}

func (q *FrameQueue) Pending() bool {
	return q.pending != nil
}

// RunPending runs the pending callback, if any. The callback may request
// the next frame.
func (q *FrameQueue) RunPending() bool {
	fn := q.pending
	if fn == nil {
		return false
	}
	q.pending = nil
	fn()
	return true
}

// Scheduler is a self-pausing frame loop. While running, every frame calls
// tick; when tick reports nothing left to simulate the loop goes idle and
// requests no further frames until woken.
type Scheduler struct {
	state  State
	frames FrameRequester
	tick   func() bool
	ticks  uint64
	log    zerolog.Logger
}

func NewScheduler(frames FrameRequester, tick func() bool, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		frames: frames,
		tick:   tick,
		log:    log,
	}
}

func (s *Scheduler) State() State { return s.state }

// Ticks counts frames run since creation.
func (s *Scheduler) Ticks() uint64 { return s.ticks }

// Wake starts the loop if it is idle and reports whether it did. Waking a
// running loop is a no-op, so there is never more than one frame in flight.
func (s *Scheduler) Wake() bool {
	if s.state == Running {
		return false
	}
	s.state = Running
	s.log.Debug().Uint64("tick", s.ticks).Msg("scheduler running")
	s.frames.RequestFrame(s.frame)
	return true
}

func (s *Scheduler) frame() {
	s.ticks++
	if s.tick() {
		s.frames.RequestFrame(s.frame)
		return
	}
	s.state = Idle
	s.log.Debug().Uint64("tick", s.ticks).Msg("scheduler idle")
}
