package bus

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"keyspace/internal/envelope"
)

const meterName = "keyspace/internal/bus"

var (
	outcomeApplied = metric.WithAttributes(attribute.String("outcome", "applied"))
	outcomeStale   = metric.WithAttributes(attribute.String("outcome", "stale"))
)

type instruments struct {
	envelopes metric.Int64Counter
	rejected  metric.Int64Counter
	writes    metric.Int64Counter
}

func newInstruments(mp metric.MeterProvider) (*instruments, error) {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}

	m := mp.Meter(meterName)

	envelopes, err := m.Int64Counter("keyspace.bus.envelopes",
		metric.WithDescription("Accepted envelopes by type."))
	if err != nil {
		return nil, err
	}

	rejected, err := m.Int64Counter("keyspace.bus.rejected",
		metric.WithDescription("Envelopes rejected by validation."))
	if err != nil {
		return nil, err
	}

	writes, err := m.Int64Counter("keyspace.bus.writes",
		metric.WithDescription("Per-key write attempts by conflict outcome."))
	if err != nil {
		return nil, err
	}

	return &instruments{envelopes: envelopes, rejected: rejected, writes: writes}, nil
}

func (i *instruments) accepted(t envelope.Type, res Result) {
	ctx := context.Background()

	i.envelopes.Add(ctx, 1, metric.WithAttributes(attribute.String("type", string(t))))

	if n := len(res.Applied); n > 0 {
		i.writes.Add(ctx, int64(n), outcomeApplied)
	}

	if n := len(res.Stale); n > 0 {
		i.writes.Add(ctx, int64(n), outcomeStale)
	}
}

func (i *instruments) reject(t envelope.Type) {
	i.rejected.Add(context.Background(), 1, metric.WithAttributes(attribute.String("type", string(t))))
}
