package core

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/automoto/memory-ninja/config"
	"github.com/automoto/memory-ninja/logging"
	"github.com/automoto/memory-ninja/systems"
	"github.com/automoto/memory-ninja/systems/factory"
	"github.com/automoto/memory-ninja/trail"
	"github.com/rs/zerolog"
	"github.com/yohamta/donburi"
)

// Frame is what the renderer gets once per tick. It must be treated as
// read-only and not retained past the call.
type Frame struct {
	World    donburi.World
	Trail    []trail.Point
	Now      time.Time
	Tick     uint64
	Viewport config.ViewportConfig
}

type Renderer interface {
	Render(f Frame)
}

// Stats are in-memory counters for the HUD. Nothing is persisted.
type Stats struct {
	Spawned      int
	Sliced       int
	Dropped      int
	NotifyFailed int
	FreedMB      int
}

// Deps are the collaborators of a Context. Zero values get working defaults.
type Deps struct {
	Logger   zerolog.Logger
	Notifier Notifier
	Gate     Gate
	Rand     *rand.Rand
	Clock    func() time.Time
	Executor func(func()) // runs notification calls; defaults to a goroutine
	Renderer Renderer
	OnSlice  func(systems.SliceOutcome)
}

// Context owns the whole simulation: the entity world, the trail, the random
// source and the scheduler. Everything except Submit must be called from one
// goroutine.
type Context struct {
	cfg      config.GameConfig
	viewport config.ViewportConfig

	world  donburi.World
	trail  *trail.Sampler
	rng    *rand.Rand
	inputs *InputQueue
	frames *FrameQueue
	sched  *Scheduler

	notifier Notifier
	gate     Gate
	clock    func() time.Time
	exec     func(func())
	renderer Renderer
	onSlice  func(systems.SliceOutcome)

	log     zerolog.Logger
	metrics *metrics

	nextID uint64
	stats  Stats
}

func New(cfg config.GameConfig, deps Deps) (*Context, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Context{
		cfg:      cfg,
		viewport: cfg.Viewport,
		world:    donburi.NewWorld(),
		trail:    trail.NewSampler(cfg.Trail),
		rng:      deps.Rand,
		inputs:   NewInputQueue(cfg.Scheduler.InputCapacity),
		frames:   &FrameQueue{},
		notifier: deps.Notifier,
		gate:     deps.Gate,
		clock:    deps.Clock,
		exec:     deps.Executor,
		renderer: deps.Renderer,
		onSlice:  deps.OnSlice,
		log:      logging.Component(deps.Logger, "sim"),
	}

	if c.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		c.rng = rand.New(rand.NewSource(seed))
	}
	if c.notifier == nil {
		c.notifier = LogNotifier{Logger: logging.Component(deps.Logger, "notify")}
	}
	if c.gate == nil {
		c.gate = AlwaysOn
	}
	if c.clock == nil {
		c.clock = time.Now
	}
	if c.exec == nil {
		c.exec = func(fn func()) { go fn() }
	}

	m, err := newMetrics(c.inputs)
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	c.metrics = m

	factory.CreateSpace(c.world, c.viewport, systems.GridPad(cfg.Slice), cfg.Slice.GridCell)
	c.sched = NewScheduler(c.frames, c.tick, c.log)

	return c, nil
}

// Close releases metric callbacks.
func (c *Context) Close() error {
	return c.metrics.close()
}

// Submit queues an input from any goroutine. It returns false when the
// queue is full and the input was dropped.
func (c *Context) Submit(in Input) bool {
	if c.inputs.Push(in) {
		return true
	}
	c.metrics.inc(c.metrics.inputDropped, 1)
	c.log.Warn().Str("input", fmt.Sprintf("%T", in)).Msg("input queue full, dropping")
	return false
}

// Pump applies queued inputs and then runs the pending frame, if any. It
// reports whether a tick ran. Call it once per display frame.
func (c *Context) Pump() bool {
	c.HandleInput()
	return c.frames.RunPending()
}

// HandleInput applies every queued input in arrival order.
func (c *Context) HandleInput() {
	for _, in := range c.inputs.Drain() {
		c.apply(in)
	}
}

func (c *Context) apply(in Input) {
	switch v := in.(type) {
	case PointerSample:
		c.handlePointer(v)
	case PointerLift:
		c.trail.Lift()
	case SpawnCommand:
		c.spawn(v)
	case Resize:
		c.resize(v)
	case SliceAck:
		c.handleAck(v)
	default:
		c.log.Warn().Str("input", fmt.Sprintf("%T", in)).Msg("unknown input")
	}
}

// handlePointer feeds the trail and cuts whatever the fresh trail touches,
// all within the same input event.
func (c *Context) handlePointer(p PointerSample) {
	now := c.clock()
	if p.T.IsZero() {
		p.T = now
	}

	points := c.trail.Ingest(trail.Point{X: p.X, Y: p.Y, T: p.T}, now)
	if len(points) == 0 {
		return
	}
	c.sched.Wake()

	if len(points) < 2 {
		return
	}
	targets := systems.Targets(c.world, systems.Candidates(c.world, points))
	for _, ev := range systems.Detect(points, targets, c.cfg.Slice.DetectionRadius) {
		c.slice(ev)
	}
}

func (c *Context) slice(ev systems.SliceEvent) {
	out, ok := systems.Slice(c.world, ev, c.rng, c.cfg)
	if !ok {
		return
	}

	c.stats.Sliced++
	c.metrics.inc(c.metrics.sliced, 1)
	c.metrics.inc(c.metrics.juiceCapped, out.Capped)
	c.log.Debug().
		Uint64("fruit", out.FruitID).
		Int("target", out.Meta.TargetID).
		Float64("angle", out.Angle).
		Int("juice", out.Juice).
		Msg("slice")
	if out.Capped > 0 {
		c.log.Warn().Int("skipped", out.Capped).Msg("juice cap reached")
	}

	c.notify(SliceNotification{
		TargetID: out.Meta.TargetID,
		FruitID:  out.FruitID,
		WeightMB: out.Meta.WeightMB,
	})

	if c.onSlice != nil {
		c.onSlice(out)
	}
}

// notify fires the notification without waiting. The answer comes back as
// a SliceAck input.
func (c *Context) notify(n SliceNotification) {
	notifier := c.notifier
	timeout := c.cfg.Notify.Timeout
	c.exec(func() {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		ack, err := notifier.NotifySlice(ctx, n)
		if err == nil && !ack.Success {
			err = ErrRejected
		}
		c.Submit(SliceAck{Notification: n, Ack: ack, Err: err})
	})
}

func (c *Context) handleAck(a SliceAck) {
	if a.Err != nil {
		c.stats.NotifyFailed++
		c.metrics.inc(c.metrics.notifyFailed, 1)
		c.log.Warn().Err(a.Err).
			Int("target", a.Notification.TargetID).
			Uint64("fruit", a.Notification.FruitID).
			Msg("slice notification failed")
		return
	}
	c.stats.FreedMB += a.Ack.FreedEstimateMB
	c.log.Debug().
		Int("target", a.Notification.TargetID).
		Int("freedMB", a.Ack.FreedEstimateMB).
		Msg("slice acknowledged")
}

func (c *Context) spawn(cmd SpawnCommand) {
	if !c.gate.Enabled() {
		c.dropSpawn(cmd, "disabled", ErrGateClosed)
		return
	}
	norm, err := cmd.Normalize(c.cfg.Notify.DefaultWeightMB)
	if err != nil {
		c.dropSpawn(cmd, "invalid", err)
		return
	}

	c.nextID++
	launch := factory.NewLaunch(c.rng, c.cfg.Fruit, c.viewport)
	factory.CreateFruit(c.world, c.nextID, norm.Meta(), launch, c.cfg)

	c.stats.Spawned++
	c.metrics.inc(c.metrics.spawned, 1)
	c.log.Debug().
		Uint64("fruit", c.nextID).
		Int("target", norm.TargetID).
		Str("title", norm.DisplayTitle).
		Msg("spawn")

	c.sched.Wake()
}

func (c *Context) dropSpawn(cmd SpawnCommand, reason string, err error) {
	c.stats.Dropped++
	c.metrics.dropSpawn(reason)
	ev := c.log.Warn()
	if errors.Is(err, ErrGateClosed) {
		ev = c.log.Debug()
	}
	ev.Err(err).Int("target", cmd.TargetID).Str("reason", reason).Msg("spawn dropped")
}

func (c *Context) resize(r Resize) {
	if r.Width <= 0 || r.Height <= 0 {
		c.log.Warn().Int("width", r.Width).Int("height", r.Height).Msg("ignoring resize")
		return
	}
	if r.Width == c.viewport.Width && r.Height == c.viewport.Height {
		return
	}
	c.viewport = config.ViewportConfig{Width: r.Width, Height: r.Height}
	systems.ResizeSpace(c.world, c.viewport, c.cfg.Slice)
	c.log.Info().Int("width", r.Width).Int("height", r.Height).Msg("viewport resized")
}

// tick advances the simulation by one frame and reports whether anything is
// left to simulate.
func (c *Context) tick() bool {
	c.HandleInput()

	now := c.clock()
	systems.UpdatePhysics(c.world, c.cfg, float64(c.viewport.Height))
	systems.UpdateEffects(c.world, float32(c.cfg.TickDuration().Seconds()))
	c.trail.Purge(now)

	if c.renderer != nil {
		c.renderer.Render(Frame{
			World:    c.world,
			Trail:    c.trail.Points(),
			Now:      now,
			Tick:     c.sched.Ticks(),
			Viewport: c.viewport,
		})
	}

	return !c.Empty()
}

// Empty reports whether there is neither an entity nor a trail point left.
func (c *Context) Empty() bool {
	return systems.CountLive(c.world) == 0 && c.trail.Len() == 0
}

func (c *Context) World() donburi.World { return c.world }

func (c *Context) Trail() []trail.Point { return c.trail.Points() }

func (c *Context) State() State { return c.sched.State() }

func (c *Context) Ticks() uint64 { return c.sched.Ticks() }

func (c *Context) Stats() Stats { return c.stats }

// ResetStats zeroes the HUD counters. Live entities are left alone.
func (c *Context) ResetStats() { c.stats = Stats{} }

func (c *Context) Viewport() config.ViewportConfig { return c.viewport }

func (c *Context) Config() config.GameConfig { return c.cfg }

// FramePending reports whether a tick is scheduled.
func (c *Context) FramePending() bool { return c.frames.Pending() }

func (c *Context) Now() time.Time { return c.clock() }
