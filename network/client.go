package network

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/automoto/memory-ninja/core"
	"github.com/automoto/memory-ninja/logging"
	"github.com/automoto/memory-ninja/shared/messages"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"
)

// ErrClosed is returned for calls on a bridge whose connection is gone.
var ErrClosed = errors.New("bridge closed")

type ClientState int

const (
	StateDisconnected ClientState = iota
	StateConnected
	StateError
)

func (s ClientState) String() string {
	switch s {
	case StateConnected:
		return "connected"
	case StateError:
		return "error"
	}
	return "disconnected"
}

// Bridge connects the simulation to an external monitor over a WebSocket.
// The monitor sends generateFruit requests; the bridge answers cuts with
// sliceFruit and waits for the matching sliceAck.
type Bridge struct {
	mu sync.Mutex

	conn      *websocket.Conn
	state     ClientState
	lastError error

	nextRequest uint64
	pending     map[uint64]chan messages.SliceAck

	done      chan struct{}
	closeOnce sync.Once

	log zerolog.Logger
}

// Dial connects to the monitor at url. Call Run to start receiving.
func Dial(ctx context.Context, url string, log zerolog.Logger) (*Bridge, error) {
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	b := newBridge(conn, log)
	b.log.Info().Str("url", url).Msg("connected to monitor")
	return b, nil
}

func newBridge(conn *websocket.Conn, log zerolog.Logger) *Bridge {
	return &Bridge{
		conn:    conn,
		state:   StateConnected,
		pending: make(map[uint64]chan messages.SliceAck),
		done:    make(chan struct{}),
		log:     logging.Component(log, "bridge"),
	}
}

// Run reads messages until the connection ends or ctx is cancelled. Every
// generateFruit becomes a spawn command handed to submit.
func (b *Bridge) Run(ctx context.Context, submit func(core.SpawnCommand) bool) error {
	defer b.shutdown()

	for {
		var raw json.RawMessage
		if err := wsjson.Read(ctx, b.conn, &raw); err != nil {
			select {
			case <-b.done:
				return ErrClosed
			default:
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure {
				b.log.Info().Msg("monitor closed the connection")
				return nil
			}
			b.setError(err)
			return fmt.Errorf("read: %w", err)
		}
		b.dispatch(raw, submit)
	}
}

func (b *Bridge) dispatch(raw json.RawMessage, submit func(core.SpawnCommand) bool) {
	var env messages.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		b.log.Warn().Err(err).Msg("undecodable message")
		return
	}

	switch env.Action {
	case messages.ActionGenerateFruit:
		var msg messages.GenerateFruit
		if err := json.Unmarshal(raw, &msg); err != nil {
			b.log.Warn().Err(err).Msg("bad generateFruit")
			return
		}
		if !submit(SpawnFromTab(msg.TargetTab)) {
			b.log.Warn().Int("tab", msg.TargetTab.ID).Msg("spawn not accepted")
		}

	case messages.ActionSliceAck:
		var ack messages.SliceAck
		if err := json.Unmarshal(raw, &ack); err != nil {
			b.log.Warn().Err(err).Msg("bad sliceAck")
			return
		}
		b.resolve(ack)

	default:
		b.log.Debug().Str("action", env.Action).Msg("ignoring message")
	}
}

// SpawnFromTab maps a monitor target onto a spawn command.
func SpawnFromTab(tab messages.TargetTab) core.SpawnCommand {
	return core.SpawnCommand{
		TargetID:          tab.ID,
		DisplayTitle:      tab.Title,
		DisplayURL:        tab.URL,
		IdleDuration:      time.Duration(tab.IdleTime) * time.Millisecond,
		EstimatedWeightMB: tab.EstimatedMemory,
	}
}

func (b *Bridge) resolve(ack messages.SliceAck) {
	b.mu.Lock()
	ch, ok := b.pending[ack.RequestID]
	delete(b.pending, ack.RequestID)
	b.mu.Unlock()

	if !ok {
		b.log.Debug().Uint64("request", ack.RequestID).Msg("ack for unknown request")
		return
	}
	ch <- ack
}

// NotifySlice sends a sliceFruit and blocks until its ack arrives, ctx ends
// or the bridge closes. Run must be active for acks to be read.
func (b *Bridge) NotifySlice(ctx context.Context, n core.SliceNotification) (core.Ack, error) {
	b.mu.Lock()
	if b.state != StateConnected {
		b.mu.Unlock()
		return core.Ack{}, ErrClosed
	}
	b.nextRequest++
	id := b.nextRequest
	ch := make(chan messages.SliceAck, 1)
	b.pending[id] = ch
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		delete(b.pending, id)
		b.mu.Unlock()
	}()

	if err := wsjson.Write(ctx, b.conn, messages.NewSliceFruit(n.TargetID, id)); err != nil {
		return core.Ack{}, fmt.Errorf("send slice: %w", err)
	}

	select {
	case ack := <-ch:
		if !ack.Success && ack.Error != "" {
			return core.Ack{}, fmt.Errorf("%w: %s", core.ErrRejected, ack.Error)
		}
		return core.Ack{Success: ack.Success, FreedEstimateMB: int(ack.MemoryFreed)}, nil
	case <-ctx.Done():
		return core.Ack{}, ctx.Err()
	case <-b.done:
		return core.Ack{}, ErrClosed
	}
}

// Close ends the connection. Pending notifications fail with ErrClosed.
func (b *Bridge) Close() error {
	b.shutdown()
	return b.conn.Close(websocket.StatusNormalClosure, "")
}

func (b *Bridge) shutdown() {
	b.closeOnce.Do(func() {
		b.mu.Lock()
		if b.state == StateConnected {
			b.state = StateDisconnected
		}
		b.mu.Unlock()
		close(b.done)
	})
}

func (b *Bridge) State() ClientState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Bridge) LastError() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastError
}

func (b *Bridge) setError(err error) {
	b.log.Warn().Err(err).Msg("connection lost")
	b.mu.Lock()
	b.state = StateError
	b.lastError = err
	b.mu.Unlock()
}
