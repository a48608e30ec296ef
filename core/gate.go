package core

import (
	"errors"
	"sync/atomic"
)

var ErrGateClosed = errors.New("spawning disabled")

// Gate decides whether spawn commands are accepted. Its value is owned elsewhere.
type Gate interface {
	Enabled() bool
}

type GateFunc func() bool

func (f GateFunc) Enabled() bool { return f() }

// AlwaysOn accepts every spawn.
var AlwaysOn Gate = GateFunc(func() bool { return true })

// Toggle is a gate that can be flipped from any goroutine.
type Toggle struct {
	on atomic.Bool
}

func NewToggle(on bool) *Toggle {
	t := &Toggle{}
	t.on.Store(on)
	return t
}

func (t *Toggle) Enabled() bool { return t.on.Load() }

func (t *Toggle) Set(on bool) { t.on.Store(on) }

// Flip inverts the gate and returns the new value.
func (t *Toggle) Flip() bool {
	for {
		cur := t.on.Load()
		if t.on.CompareAndSwap(cur, !cur) {
			return !cur
		}
	}
}
