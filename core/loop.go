package core

import (
	"context"
	"sync"
	"time"
)

// Loop pumps a Context on a ticker when there is no display driving it,
// e.g. for headless replay or the bridge daemon.
type Loop struct {
	ctx      *Context
	interval time.Duration

	stopOnce sync.Once
	stopChan chan struct{}
}

func NewLoop(c *Context) *Loop {
	return &Loop{
		ctx:      c,
		interval: c.cfg.TickDuration(),
		stopChan: make(chan struct{}),
	}
}

// Run pumps until ctx is cancelled or Stop is called. It must be the only
// goroutine touching the Context apart from Submit callers.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.ctx.log.Info().Dur("interval", l.interval).Msg("loop started")

	for {
		select {
		case <-ctx.Done():
			l.ctx.log.Info().Msg("loop stopped")
			return ctx.Err()
		case <-l.stopChan:
			l.ctx.log.Info().Msg("loop stopped")
			return nil
		case <-ticker.C:
			l.ctx.Pump()
		}
	}
}

func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.stopChan) })
}
