package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/automoto/memory-ninja/core"
)

var ErrBadScript = errors.New("bad script")

const (
	kindMove   = "move"
	kindLift   = "lift"
	kindSpawn  = "spawn"
	kindResize = "resize"
)

// Event is one line of a replay script. T is milliseconds from the start.
type Event struct {
	T    int64   `json:"t"`
	Kind string  `json:"kind"`
	X    float64 `json:"x,omitempty"`
	Y    float64 `json:"y,omitempty"`

	// spawn
	ID     int    `json:"id,omitempty"`
	Title  string `json:"title,omitempty"`
	URL    string `json:"url,omitempty"`
	Weight int    `json:"weight,omitempty"`
	IdleMs int64  `json:"idleMs,omitempty"`

	// resize
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`
}

func (e Event) At() time.Duration {
	return time.Duration(e.T) * time.Millisecond
}

// Input converts the event into a simulation input. Pointer samples are
// stamped relative to start.
func (e Event) Input(start time.Time) core.Input {
	switch e.Kind {
	case kindMove:
		return core.PointerSample{X: e.X, Y: e.Y, T: start.Add(e.At())}
	case kindLift:
		return core.PointerLift{}
	case kindSpawn:
		return core.SpawnCommand{
			TargetID:          e.ID,
			DisplayTitle:      e.Title,
			DisplayURL:        e.URL,
			IdleDuration:      time.Duration(e.IdleMs) * time.Millisecond,
			EstimatedWeightMB: e.Weight,
		}
	case kindResize:
		return core.Resize{Width: e.Width, Height: e.Height}
	}
	return nil
}

// ParseScript reads JSON lines. Blank lines and lines starting with # are
// skipped. Times must not go backwards.
func ParseScript(r io.Reader) ([]Event, error) {
	var events []Event
	scanner := bufio.NewScanner(r)
	line := 0
	var last int64
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 || raw[0] == '#' {
			continue
		}

		var ev Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrBadScript, line, err)
		}
		switch ev.Kind {
		case kindMove, kindLift, kindSpawn, kindResize:
		default:
			return nil, fmt.Errorf("%w: line %d: unknown kind %q", ErrBadScript, line, ev.Kind)
		}
		if ev.T < last {
			return nil, fmt.Errorf("%w: line %d: time %d before %d", ErrBadScript, line, ev.T, last)
		}
		last = ev.T
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return events, nil
}
