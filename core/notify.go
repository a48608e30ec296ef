package core

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// ErrRejected is reported when the monitor answers a slice with success=false.
var ErrRejected = errors.New("slice rejected by monitor")

// SliceNotification tells the monitor a target's fruit was cut.
type SliceNotification struct {
	TargetID int
	FruitID  uint64
	WeightMB int
}

// Ack is the monitor's answer.
type Ack struct {
	Success         bool
	FreedEstimateMB int
}

// Notifier delivers slice notifications. Calls happen off the simulation
// goroutine and must respect ctx.
type Notifier interface {
	NotifySlice(ctx context.Context, n SliceNotification) (Ack, error)
}

type NotifierFunc func(ctx context.Context, n SliceNotification) (Ack, error)

func (f NotifierFunc) NotifySlice(ctx context.Context, n SliceNotification) (Ack, error) {
	return f(ctx, n)
}

// LogNotifier acknowledges every slice locally, echoing the estimate back.
type LogNotifier struct {
	Logger zerolog.Logger
}

func (l LogNotifier) NotifySlice(_ context.Context, n SliceNotification) (Ack, error) {
	l.Logger.Info().
		Int("target", n.TargetID).
		Uint64("fruit", n.FruitID).
		Int("weightMB", n.WeightMB).
		Msg("slice")
	return Ack{Success: true, FreedEstimateMB: n.WeightMB}, nil
}
