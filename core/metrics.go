package core

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/automoto/memory-ninja/core"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

type metrics struct {
	spawned      metric.Int64Counter
	sliced       metric.Int64Counter
	spawnDropped metric.Int64Counter
	inputDropped metric.Int64Counter
	notifyFailed metric.Int64Counter
	juiceCapped  metric.Int64Counter
	queued       metric.Int64ObservableGauge
	registration metric.Registration
}

func newMetrics(queue *InputQueue) (*metrics, error) {
	m := meter()
	var (
		out metrics
		err error
	)

	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
	}{
		{&out.spawned, "ninja.fruits.spawned", "Fruits launched"},
		{&out.sliced, "ninja.fruits.sliced", "Fruits cut"},
		{&out.spawnDropped, "ninja.spawn.dropped", "Spawn commands refused"},
		{&out.inputDropped, "ninja.input.dropped", "Inputs lost to a full queue"},
		{&out.notifyFailed, "ninja.notify.failed", "Slice notifications that failed"},
		{&out.juiceCapped, "ninja.juice.capped", "Juice particles skipped by the live cap"},
	}
	for _, c := range counters {
		*c.dst, err = m.Int64Counter(c.name, metric.WithDescription(c.desc))
		if err != nil {
			return nil, fmt.Errorf("creating %s counter: %w", c.name, err)
		}
	}

	out.queued, err = m.Int64ObservableGauge(
		"ninja.input.queued",
		metric.WithDescription("Inputs waiting for the simulation"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating queue gauge: %w", err)
	}
	out.registration, err = m.RegisterCallback(
		func(_ context.Context, o metric.Observer) error {
			o.ObserveInt64(out.queued, int64(queue.Len()))
			return nil
		},
		out.queued,
	)
	if err != nil {
		return nil, fmt.Errorf("registering queue callback: %w", err)
	}

	return &out, nil
}

func (m *metrics) dropSpawn(reason string) {
	m.spawnDropped.Add(context.Background(), 1, metric.WithAttributes(attribute.String("reason", reason)))
}

func (m *metrics) inc(c metric.Int64Counter, n int) {
	if n > 0 {
		c.Add(context.Background(), int64(n))
	}
}

func (m *metrics) close() error {
	if m.registration == nil {
		return nil
	}
	return m.registration.Unregister()
}
