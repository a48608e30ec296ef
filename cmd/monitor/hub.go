package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/automoto/memory-ninja/shared/messages"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"
)

// Hub holds the connected overlays. Fruit requests go to every overlay and
// slice notifications are answered on the connection they came in on.
type Hub struct {
	reg *Registry
	log zerolog.Logger

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func NewHub(reg *Registry, log zerolog.Logger) *Hub {
	return &Hub{
		reg:   reg,
		log:   log,
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// ServeWS upgrades an overlay connection and reads from it until it closes.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		h.log.Warn().Err(err).Msg("upgrade failed")
		return
	}
	defer conn.CloseNow()

	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()
	h.log.Info().Str("remote", r.RemoteAddr).Msg("overlay connected")

	defer func() {
		h.mu.Lock()
		delete(h.conns, conn)
		h.mu.Unlock()
		h.log.Info().Str("remote", r.RemoteAddr).Msg("overlay disconnected")
	}()

	ctx := r.Context()
	for {
		var raw json.RawMessage
		if err := wsjson.Read(ctx, conn, &raw); err != nil {
			if websocket.CloseStatus(err) != websocket.StatusNormalClosure && !errors.Is(err, context.Canceled) {
				h.log.Debug().Err(err).Msg("read ended")
			}
			return
		}
		h.handle(ctx, conn, raw)
	}
}

func (h *Hub) handle(ctx context.Context, conn *websocket.Conn, raw json.RawMessage) {
	var env messages.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		h.log.Warn().Err(err).Msg("undecodable message")
		return
	}
	if env.Action != messages.ActionSliceFruit {
		h.log.Debug().Str("action", env.Action).Msg("ignoring message")
		return
	}

	var msg messages.SliceFruit
	if err := json.Unmarshal(raw, &msg); err != nil {
		h.log.Warn().Err(err).Msg("bad sliceFruit")
		return
	}

	ack := messages.SliceAck{Action: messages.ActionSliceAck, RequestID: msg.RequestID}
	freed, err := h.reg.Discard(msg.TabID)
	if err != nil {
		ack.Error = err.Error()
		h.log.Warn().Err(err).Int("tab", msg.TabID).Msg("discard failed")
	} else {
		ack.Success = true
		ack.MemoryFreed = messages.MemoryAmount(freed)
		h.log.Info().Int("tab", msg.TabID).Int("freedMB", freed).Msg("tab discarded")
	}

	if err := wsjson.Write(ctx, conn, ack); err != nil {
		h.log.Warn().Err(err).Msg("ack not sent")
	}
}

// Broadcast sends msg to every overlay and returns how many got it.
func (h *Hub) Broadcast(ctx context.Context, msg any) int {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	sent := 0
	for _, c := range conns {
		if err := wsjson.Write(ctx, c, msg); err != nil {
			h.log.Warn().Err(err).Msg("broadcast failed")
			continue
		}
		sent++
	}
	return sent
}

func (h *Hub) Connections() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// CheckOptions tune the idle check.
type CheckOptions struct {
	Threshold time.Duration
	MinTabs   int
	PerCheck  int
	Spread    time.Duration // random pause between fruits of one check
}

// Check asks the overlays for a fruit per picked idle tab. It returns the
// number of tabs offered.
func (h *Hub) Check(ctx context.Context, opts CheckOptions) int {
	if h.Connections() == 0 {
		return 0
	}
	tabs := h.reg.PickIdle(opts.Threshold, opts.MinTabs, opts.PerCheck)
	for i, tab := range tabs {
		if i > 0 && opts.Spread > 0 {
			pause := opts.Spread + h.reg.Jitter(opts.Spread)
			select {
			case <-ctx.Done():
				return i
			case <-time.After(pause):
			}
		}
		h.Broadcast(ctx, messages.NewGenerateFruit(messages.TargetTab{
			ID:              tab.ID,
			Title:           tab.Title,
			URL:             tab.URL,
			IdleTime:        h.reg.IdleFor(tab).Milliseconds(),
			EstimatedMemory: h.reg.Estimate(),
		}))
		h.log.Info().Int("tab", tab.ID).Str("title", tab.Title).Msg("fruit requested")
	}
	return len(tabs)
}

// CheckLoop runs Check every interval until ctx ends.
func (h *Hub) CheckLoop(ctx context.Context, interval time.Duration, opts CheckOptions) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.Check(ctx, opts)
		}
	}
}
