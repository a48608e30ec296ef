package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/automoto/memory-ninja/components"
	"github.com/automoto/memory-ninja/config"
	"github.com/automoto/memory-ninja/systems"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
)

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Scheduler.TickRate = 0

	_, err := New(cfg, Deps{})
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestNew_StartsIdleAndEmpty(t *testing.T) {
	c, _ := newTestContext(t, testConfig(), Deps{})

	assert.Equal(t, Idle, c.State())
	assert.False(t, c.FramePending())
	assert.True(t, c.Empty())
	assert.False(t, c.Pump())
}

func TestSpawn_LaunchesFruitAndWakes(t *testing.T) {
	c, _ := newTestContext(t, testConfig(), Deps{})

	require.True(t, c.Submit(SpawnCommand{TargetID: 7, DisplayTitle: "Docs"}))
	c.HandleInput()

	assert.Equal(t, Running, c.State())
	assert.True(t, c.FramePending())
	assert.Equal(t, 1, c.Stats().Spawned)

	var fruit components.FruitData
	components.Fruit.Each(c.World(), func(e *donburi.Entry) {
		fruit = *components.Fruit.Get(e)
	})
	assert.Equal(t, uint64(1), fruit.ID)
	assert.Equal(t, 7, fruit.Meta.TargetID)
	assert.Equal(t, "Docs", fruit.Meta.Title)
	assert.Equal(t, 50, fruit.Meta.WeightMB)
	assert.Equal(t, components.FruitFlying, fruit.State)
}

func TestSpawn_IDsIncrease(t *testing.T) {
	c, _ := newTestContext(t, testConfig(), Deps{})

	for i := 1; i <= 3; i++ {
		c.Submit(SpawnCommand{TargetID: i})
	}
	c.HandleInput()

	seen := map[uint64]int{}
	for _, tg := range systems.Targets(c.World(), nil) {
		seen[tg.ID] = 1
	}
	assert.Equal(t, map[uint64]int{1: 1, 2: 1, 3: 1}, seen)
}

func TestSpawn_GateClosedDrops(t *testing.T) {
	gate := NewToggle(false)
	c, _ := newTestContext(t, testConfig(), Deps{Gate: gate})

	c.Submit(SpawnCommand{TargetID: 1})
	c.HandleInput()

	assert.Equal(t, Idle, c.State())
	assert.Equal(t, 0, systems.CountLive(c.World()))
	assert.Equal(t, 1, c.Stats().Dropped)

	gate.Set(true)
	c.Submit(SpawnCommand{TargetID: 1})
	c.HandleInput()
	assert.Equal(t, 1, c.Stats().Spawned)
}

func TestSpawn_MissingTargetDropped(t *testing.T) {
	c, _ := newTestContext(t, testConfig(), Deps{})

	c.Submit(SpawnCommand{DisplayTitle: "orphan"})
	c.HandleInput()

	assert.Equal(t, 0, c.Stats().Spawned)
	assert.Equal(t, 1, c.Stats().Dropped)
	assert.Equal(t, Idle, c.State())
}

func TestScheduler_QuiescesAfterFruitFallsOut(t *testing.T) {
	r := &countingRenderer{}
	c, clock := newTestContext(t, testConfig(), Deps{Renderer: r})

	c.Submit(SpawnCommand{TargetID: 1})
	frames := pumpUntilIdle(c, clock, 2000)

	assert.Less(t, frames, 2000)
	assert.Equal(t, Idle, c.State())
	assert.True(t, c.Empty())
	assert.Equal(t, uint64(len(r.frames)), c.Ticks())
	assert.Greater(t, c.Ticks(), uint64(100))

	// no frames once idle
	before := c.Ticks()
	pumpN(c, clock, 10)
	assert.Equal(t, before, c.Ticks())
}

func TestScheduler_StaysRunningWhileTrailLives(t *testing.T) {
	c, clock := newTestContext(t, testConfig(), Deps{})

	now := clock.Advance(10 * time.Millisecond)
	c.Submit(PointerSample{X: 100, Y: 100, T: now})
	now = clock.Advance(10 * time.Millisecond)
	c.Submit(PointerSample{X: 300, Y: 100, T: now})
	c.HandleInput()

	require.Equal(t, Running, c.State())
	require.NotEmpty(t, c.Trail())

	// the trail fades after 800ms, roughly 48 ticks
	frames := pumpUntilIdle(c, clock, 200)
	assert.InDelta(t, 48, frames, 3)
	assert.Empty(t, c.Trail())
}

func TestSlice_EndToEnd(t *testing.T) {
	notifier := &recordingNotifier{}
	var outcomes []systems.SliceOutcome
	c, clock := newTestContext(t, testConfig(), Deps{
		Notifier: notifier,
		OnSlice:  func(o systems.SliceOutcome) { outcomes = append(outcomes, o) },
	})

	c.Submit(SpawnCommand{TargetID: 42, DisplayTitle: "Inbox"})
	pumpN(c, clock, 30)

	fruit := onlyFruit(t, c)
	swipeThrough(c, clock, fruit.X, fruit.Y)
	c.HandleInput()

	assert.Equal(t, 1, c.Stats().Sliced)
	require.Len(t, notifier.Calls(), 1)
	assert.Equal(t, SliceNotification{TargetID: 42, FruitID: fruit.ID, WeightMB: 50}, notifier.Calls()[0])

	require.Len(t, outcomes, 1)
	assert.Equal(t, fruit.ID, outcomes[0].FruitID)
	assert.Equal(t, 30, outcomes[0].Juice)

	counts := systems.CountAll(c.World())
	assert.Equal(t, 2, counts.Halves)
	assert.Equal(t, 30, counts.Juice)
	assert.Equal(t, 2, counts.Effects)

	// the ack is queued and applied on the next pump
	assert.Equal(t, 0, c.Stats().FreedMB)
	pumpN(c, clock, 1)
	assert.Equal(t, 50, c.Stats().FreedMB)

	// a second pass over the same fruit does nothing
	swipeThrough(c, clock, fruit.X, fruit.Y)
	c.HandleInput()
	assert.Equal(t, 1, c.Stats().Sliced)
	assert.Len(t, notifier.Calls(), 1)

	pumpUntilIdle(c, clock, 2000)
	assert.True(t, c.Empty())
}

func TestSlice_MissLeavesFruitFlying(t *testing.T) {
	notifier := &recordingNotifier{}
	c, clock := newTestContext(t, testConfig(), Deps{Notifier: notifier})

	c.Submit(SpawnCommand{TargetID: 1})
	pumpN(c, clock, 30)

	fruit := onlyFruit(t, c)
	swipeThrough(c, clock, fruit.X, fruit.Y+300)
	c.HandleInput()

	assert.Equal(t, 0, c.Stats().Sliced)
	assert.Empty(t, notifier.Calls())
	assert.Len(t, systems.Targets(c.World(), nil), 1)
}

func TestSlice_NotifyFailureCounted(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("bridge down")}
	c, clock := newTestContext(t, testConfig(), Deps{Notifier: notifier})

	c.Submit(SpawnCommand{TargetID: 3})
	pumpN(c, clock, 30)
	fruit := onlyFruit(t, c)
	swipeThrough(c, clock, fruit.X, fruit.Y)
	pumpN(c, clock, 2)

	assert.Equal(t, 1, c.Stats().Sliced)
	assert.Equal(t, 1, c.Stats().NotifyFailed)
	assert.Equal(t, 0, c.Stats().FreedMB)
}

func TestSlice_RejectedAckCountsAsFailure(t *testing.T) {
	var got error
	notifier := NotifierFunc(func(context.Context, SliceNotification) (Ack, error) {
		return Ack{Success: false}, nil
	})
	c, clock := newTestContext(t, testConfig(), Deps{Notifier: notifier})

	c.Submit(SpawnCommand{TargetID: 3})
	pumpN(c, clock, 30)
	fruit := onlyFruit(t, c)
	swipeThrough(c, clock, fruit.X, fruit.Y)
	c.HandleInput()

	for _, in := range c.inputs.Drain() {
		if ack, ok := in.(SliceAck); ok {
			got = ack.Err
		}
	}
	assert.ErrorIs(t, got, ErrRejected)
}

func TestNotify_HonoursTimeout(t *testing.T) {
	cfg := testConfig()
	cfg.Notify.Timeout = 20 * time.Millisecond

	notifier := NotifierFunc(func(ctx context.Context, _ SliceNotification) (Ack, error) {
		<-ctx.Done()
		return Ack{}, ctx.Err()
	})
	c, clock := newTestContext(t, cfg, Deps{Notifier: notifier})

	c.Submit(SpawnCommand{TargetID: 9})
	pumpN(c, clock, 30)
	fruit := onlyFruit(t, c)
	swipeThrough(c, clock, fruit.X, fruit.Y)
	pumpN(c, clock, 2)

	assert.Equal(t, 1, c.Stats().NotifyFailed)
}

func TestPointerLift_ClearsTrail(t *testing.T) {
	c, clock := newTestContext(t, testConfig(), Deps{})

	for _, x := range []float64{0, 100, 200} {
		c.Submit(PointerSample{X: x, Y: 50, T: clock.Advance(10 * time.Millisecond)})
	}
	c.HandleInput()
	require.NotEmpty(t, c.Trail())

	c.Submit(PointerLift{})
	c.HandleInput()
	assert.Empty(t, c.Trail())

	// after a lift the next sample only primes
	c.Submit(PointerSample{X: 500, Y: 50, T: clock.Advance(10 * time.Millisecond)})
	c.HandleInput()
	assert.Empty(t, c.Trail())
}

func TestPointerSample_ZeroTimeStamped(t *testing.T) {
	c, clock := newTestContext(t, testConfig(), Deps{})

	c.Submit(PointerSample{X: 0, Y: 0})
	clock.Advance(10 * time.Millisecond)
	c.Submit(PointerSample{X: 100, Y: 0})
	c.HandleInput()

	// both stamped with the same clock reading, so speed is zero
	assert.Empty(t, c.Trail())
}

func TestResize(t *testing.T) {
	c, _ := newTestContext(t, testConfig(), Deps{})

	c.Submit(Resize{Width: 640, Height: 480})
	c.HandleInput()
	assert.Equal(t, config.ViewportConfig{Width: 640, Height: 480}, c.Viewport())

	c.Submit(Resize{Width: 0, Height: 480})
	c.HandleInput()
	assert.Equal(t, config.ViewportConfig{Width: 640, Height: 480}, c.Viewport())
}

func TestResize_FruitsStillSliceable(t *testing.T) {
	c, clock := newTestContext(t, testConfig(), Deps{})

	c.Submit(SpawnCommand{TargetID: 5})
	pumpN(c, clock, 30)

	c.Submit(Resize{Width: 1600, Height: 1000})
	c.HandleInput()

	fruit := onlyFruit(t, c)
	swipeThrough(c, clock, fruit.X, fruit.Y)
	c.HandleInput()
	assert.Equal(t, 1, c.Stats().Sliced)
}

func TestSubmit_FullQueueDrops(t *testing.T) {
	cfg := testConfig()
	cfg.Scheduler.InputCapacity = 2
	c, _ := newTestContext(t, cfg, Deps{})

	assert.True(t, c.Submit(SpawnCommand{TargetID: 1}))
	assert.True(t, c.Submit(SpawnCommand{TargetID: 2}))
	assert.False(t, c.Submit(SpawnCommand{TargetID: 3}))

	c.HandleInput()
	assert.Equal(t, 2, c.Stats().Spawned)
}

func TestRender_ReceivesFrames(t *testing.T) {
	r := &countingRenderer{}
	c, clock := newTestContext(t, testConfig(), Deps{Renderer: r})

	c.Submit(SpawnCommand{TargetID: 1})
	pumpN(c, clock, 3)

	require.Len(t, r.frames, 3)
	assert.Equal(t, uint64(1), r.frames[0].Tick)
	assert.Equal(t, uint64(3), r.frames[2].Tick)
	assert.Equal(t, c.Viewport(), r.frames[2].Viewport)
	assert.Equal(t, clock.Now(), r.frames[2].Now)
}

func TestResetStats_KeepsEntities(t *testing.T) {
	c, _ := newTestContext(t, testConfig(), Deps{})

	c.Submit(SpawnCommand{TargetID: 1})
	c.HandleInput()
	require.Equal(t, 1, c.Stats().Spawned)

	c.ResetStats()

	assert.Equal(t, Stats{}, c.Stats())
	assert.False(t, c.Empty())
}
