package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/automoto/memory-ninja/config"
	"github.com/automoto/memory-ninja/core"
	"github.com/automoto/memory-ninja/systems"
	"github.com/rs/zerolog"
)

// epoch anchors the synthetic clock so identical scripts give identical runs
var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type Summary struct {
	Frames   int
	Ticks    uint64
	Stats    core.Stats
	Live     systems.Counts
	Quiesced bool
}

func (s Summary) Write(w io.Writer) {
	fmt.Fprintf(w, "frames    %d (%d ticks)\n", s.Frames, s.Ticks)
	fmt.Fprintf(w, "spawned   %d (dropped %d)\n", s.Stats.Spawned, s.Stats.Dropped)
	fmt.Fprintf(w, "sliced    %d (notify failed %d)\n", s.Stats.Sliced, s.Stats.NotifyFailed)
	fmt.Fprintf(w, "freed     %d MB\n", s.Stats.FreedMB)
	fmt.Fprintf(w, "live      %d fruit, %d halves, %d juice, %d effects\n",
		s.Live.Fruits, s.Live.Halves, s.Live.Juice, s.Live.Effects)
	fmt.Fprintf(w, "quiesced  %t\n", s.Quiesced)
}

// Replay feeds events through a fresh simulation on a synthetic clock, one
// display frame per tick, and keeps pumping after the last event until the
// scheduler goes idle or maxFrames pass.
func Replay(cfg config.GameConfig, events []Event, maxFrames int, log zerolog.Logger) (Summary, error) {
	now := epoch
	sim, err := core.New(cfg, core.Deps{
		Logger:   log,
		Clock:    func() time.Time { return now },
		Executor: func(fn func()) { fn() },
	})
	if err != nil {
		return Summary{}, err
	}
	defer sim.Close()

	step := cfg.TickDuration()
	next := 0
	frames := 0
	for frames < maxFrames {
		elapsed := time.Duration(frames) * step
		now = epoch.Add(elapsed)

		for next < len(events) && events[next].At() <= elapsed {
			sim.Submit(events[next].Input(epoch))
			next++
		}
		sim.Pump()
		frames++

		if next == len(events) && sim.State() == core.Idle && !sim.FramePending() {
			break
		}
	}

	return Summary{
		Frames:   frames,
		Ticks:    sim.Ticks(),
		Stats:    sim.Stats(),
		Live:     systems.CountAll(sim.World()),
		Quiesced: sim.State() == core.Idle,
	}, nil
}

// ReplayRealtime plays events against the wall clock with a headless loop,
// then lets the simulation run for linger before stopping.
func ReplayRealtime(ctx context.Context, cfg config.GameConfig, events []Event, linger time.Duration, log zerolog.Logger) (core.Stats, error) {
	sim, err := core.New(cfg, core.Deps{Logger: log})
	if err != nil {
		return core.Stats{}, err
	}
	defer sim.Close()

	loop := core.NewLoop(sim)
	go func() {
		defer loop.Stop()
		start := time.Now()
		for _, ev := range events {
			wait := time.Until(start.Add(ev.At()))
			if wait > 0 {
				select {
				case <-ctx.Done():
					return
				case <-time.After(wait):
				}
			}
			in := ev.Input(start)
			if ps, ok := in.(core.PointerSample); ok {
				// stamped on arrival so samples and ticks share the wall clock
				ps.T = time.Time{}
				in = ps
			}
			sim.Submit(in)
		}
		select {
		case <-ctx.Done():
		case <-time.After(linger):
		}
	}()

	if err := loop.Run(ctx); err != nil {
		return sim.Stats(), err
	}
	return sim.Stats(), nil
}
