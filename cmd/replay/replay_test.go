package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/automoto/memory-ninja/config"
	"github.com/automoto/memory-ninja/core"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScript(t *testing.T) {
	src := `
# warm up
{"t":0,"kind":"spawn","id":4,"title":"Docs","weight":80}
{"t":16,"kind":"move","x":10,"y":20}

{"t":16,"kind":"lift"}
{"t":40,"kind":"resize","width":640,"height":480}
`
	events, err := ParseScript(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, events, 4)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, core.SpawnCommand{TargetID: 4, DisplayTitle: "Docs", EstimatedWeightMB: 80}, events[0].Input(start))
	assert.Equal(t, core.PointerSample{X: 10, Y: 20, T: start.Add(16 * time.Millisecond)}, events[1].Input(start))
	assert.Equal(t, core.PointerLift{}, events[2].Input(start))
	assert.Equal(t, core.Resize{Width: 640, Height: 480}, events[3].Input(start))
}

func TestParseScript_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"bad json", `{"t":0,"kind":`},
		{"unknown kind", `{"t":0,"kind":"jump"}`},
		{"time goes backwards", "{\"t\":50,\"kind\":\"lift\"}\n{\"t\":10,\"kind\":\"lift\"}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScript(strings.NewReader(tt.src))
			assert.ErrorIs(t, err, ErrBadScript)
		})
	}
}

// sweepScript spawns one fruit and then swipes back and forth across the
// whole width at mid height until the fruit has long passed through.
func sweepScript(width, y float64) []Event {
	events := []Event{{T: 0, Kind: kindSpawn, ID: 9, Title: "Docs"}}
	x := 0.0
	for ms := int64(100); ms <= 2000; ms += 16 {
		events = append(events, Event{T: ms, Kind: kindMove, X: x, Y: y})
		x = width - x
	}
	return append(events, Event{T: 2016, Kind: kindLift})
}

func replayConfig() config.GameConfig {
	cfg := config.Default
	cfg.Seed = 3
	return cfg
}

func TestReplay_SpawnOnlyQuiesces(t *testing.T) {
	events := []Event{{T: 0, Kind: kindSpawn, ID: 1}}

	s, err := Replay(replayConfig(), events, 5000, zerolog.Nop())
	require.NoError(t, err)

	assert.True(t, s.Quiesced)
	assert.Less(t, s.Frames, 5000)
	assert.Equal(t, 1, s.Stats.Spawned)
	assert.Equal(t, 0, s.Stats.Sliced)
	assert.Zero(t, s.Live.Fruits)
}

func TestReplay_SweepSlicesFruit(t *testing.T) {
	cfg := replayConfig()
	events := sweepScript(float64(cfg.Viewport.Width), float64(cfg.Viewport.Height)/2)

	s, err := Replay(cfg, events, 10000, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, 1, s.Stats.Sliced)
	assert.Equal(t, cfg.Notify.DefaultWeightMB, s.Stats.FreedMB)
	assert.True(t, s.Quiesced)
	assert.Equal(t, 0, s.Live.Fruits+s.Live.Halves+s.Live.Juice+s.Live.Effects)
}

func TestReplay_Deterministic(t *testing.T) {
	cfg := replayConfig()
	events := sweepScript(float64(cfg.Viewport.Width), float64(cfg.Viewport.Height)/2)

	a, err := Replay(cfg, events, 10000, zerolog.Nop())
	require.NoError(t, err)
	b, err := Replay(cfg, events, 10000, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestReplay_FrameLimit(t *testing.T) {
	events := []Event{{T: 0, Kind: kindSpawn, ID: 1}}

	s, err := Replay(replayConfig(), events, 10, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, 10, s.Frames)
	assert.False(t, s.Quiesced)
	assert.Equal(t, 1, s.Live.Fruits)
}

func TestReplay_InvalidConfig(t *testing.T) {
	cfg := replayConfig()
	cfg.Viewport.Width = 0

	_, err := Replay(cfg, nil, 10, zerolog.Nop())
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestSummaryWrite(t *testing.T) {
	var buf bytes.Buffer
	Summary{Frames: 3, Stats: core.Stats{Sliced: 2, FreedMB: 90}, Quiesced: true}.Write(&buf)

	out := buf.String()
	assert.Contains(t, out, "sliced    2")
	assert.Contains(t, out, "freed     90 MB")
	assert.Contains(t, out, "quiesced  true")
}
