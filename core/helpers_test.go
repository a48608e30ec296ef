package core

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/automoto/memory-ninja/config"
	"github.com/automoto/memory-ninja/systems"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) time.Time {
	c.now = c.now.Add(d)
	return c.now
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls []SliceNotification
	ack   Ack
	err   error
}

func (n *recordingNotifier) NotifySlice(_ context.Context, sn SliceNotification) (Ack, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, sn)
	if n.err != nil {
		return Ack{}, n.err
	}
	ack := n.ack
	if ack == (Ack{}) {
		ack = Ack{Success: true, FreedEstimateMB: sn.WeightMB}
	}
	return ack, nil
}

func (n *recordingNotifier) Calls() []SliceNotification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]SliceNotification(nil), n.calls...)
}

type countingRenderer struct {
	frames []Frame
}

func (r *countingRenderer) Render(f Frame) {
	r.frames = append(r.frames, f)
}

func testConfig() config.GameConfig {
	cfg := config.Default
	cfg.Viewport = config.ViewportConfig{Width: 1000, Height: 800}
	return cfg
}

func syncExec(fn func()) { fn() }

// newTestContext builds a context with a fake clock and inline notifications.
func newTestContext(t *testing.T, cfg config.GameConfig, deps Deps) (*Context, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	if deps.Clock == nil {
		deps.Clock = clock.Now
	}
	if deps.Executor == nil {
		deps.Executor = syncExec
	}
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewSource(1))
	}
	deps.Logger = zerolog.Nop()

	c, err := New(cfg, deps)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, clock
}

// pumpN runs n display frames, advancing the clock one tick per frame.
func pumpN(c *Context, clock *fakeClock, n int) {
	for i := 0; i < n; i++ {
		clock.Advance(c.cfg.TickDuration())
		c.Pump()
	}
}

// pumpUntilIdle pumps until the scheduler stops or max frames pass.
func pumpUntilIdle(c *Context, clock *fakeClock, max int) int {
	for i := 0; i < max; i++ {
		clock.Advance(c.cfg.TickDuration())
		c.Pump()
		if c.State() == Idle && !c.FramePending() {
			return i + 1
		}
	}
	return max
}

// swipeThrough submits a fast horizontal stroke across (cx, cy).
func swipeThrough(c *Context, clock *fakeClock, cx, cy float64) {
	xs := []float64{cx - 250, cx - 150, cx + 150}
	for _, x := range xs {
		now := clock.Advance(10 * time.Millisecond)
		c.Submit(PointerSample{X: x, Y: cy, T: now})
	}
}

func onlyFruit(t *testing.T, c *Context) systems.Target {
	t.Helper()
	targets := systems.Targets(c.World(), nil)
	require.Len(t, targets, 1)
	return targets[0]
}
