package bus

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"go.opentelemetry.io/otel/metric"

	"keyspace/internal/envelope"
	"keyspace/value"
)

// ErrReentrantPublish is returned when a subscriber calls Publish.
var ErrReentrantPublish = errors.New("publish called from a subscriber")

// KeyFunc observes one key. ok is false when the key has no record yet.
type KeyFunc func(rec Record, ok bool)

// EnvelopeFunc observes every accepted envelope.
type EnvelopeFunc func(msg envelope.Message)

// Result lists the key ids an accepted publish wrote (Applied) and the ones
// the conflict rule rejected (Stale), in application order.
type Result struct {
	Applied []string
	Stale   []string
}

// Bus holds the current record per key and its subscribers.
type Bus struct {
	records map[string]*Record
	version uint64

	keySubs map[string][]*subscription[KeyFunc]
	allSubs []*subscription[func()]
	envSubs []*subscription[EnvelopeFunc]

	publishing bool
	eventCap   int
	logger     *slog.Logger
	meters     metric.MeterProvider
	metrics    *instruments
}

type subscription[F any] struct {
	fn     F
	active bool
}

// Option configures a Bus.
type Option func(*Bus)

// WithEventCap sets how many occurrences an event-kind key keeps. Values
// below one fall back to DefaultEventCap.
func WithEventCap(n int) Option {
	return func(b *Bus) {
		b.eventCap = n
	}
}

// WithLogger sets the logger used for rejected envelopes.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bus) {
		b.logger = logger
	}
}

// WithMeterProvider sets the provider for bus counters. The global provider
// is used otherwise.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(b *Bus) {
		b.meters = mp
	}
}

// New creates an empty bus.
func New(opts ...Option) (*Bus, error) {
	b := &Bus{
		records:  make(map[string]*Record),
		keySubs:  make(map[string][]*subscription[KeyFunc]),
		eventCap: DefaultEventCap,
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.eventCap < 1 {
		b.eventCap = DefaultEventCap
	}

	if b.logger == nil {
		b.logger = slog.Default()
	}

	m, err := newInstruments(b.meters)
	if err != nil {
		return nil, fmt.Errorf("bus metrics: %w", err)
	}

	b.metrics = m

	return b, nil
}

// Version increments once per accepted Publish.
func (b *Bus) Version() uint64 {
	return b.version
}

// GetValue returns the current record for keyID.
func (b *Bus) GetValue(keyID string) (Record, bool) {
	r, ok := b.records[keyID]
	if !ok {
		return Record{}, false
	}

	return *r, true
}

// Keys returns the ids of every key with a record, sorted.
func (b *Bus) Keys() []string {
	return slices.Sorted(maps.Keys(b.records))
}

// Publish validates msg and applies it. An invalid envelope is rejected as a
// whole and leaves state, version and subscribers untouched.
//
// An accepted envelope bumps the version and notifies global and envelope
// subscribers even when every key write was stale.
func (b *Bus) Publish(msg envelope.Message) (Result, error) {
	if b.publishing {
		return Result{}, ErrReentrantPublish
	}

	if msg == nil {
		return Result{}, &envelope.ValidationError{Reason: "nil envelope"}
	}

	err := msg.Validate()
	if err != nil {
		b.metrics.reject(msg.Type())
		b.logger.Warn("rejected envelope",
			slog.String("type", string(msg.Type())),
			slog.String("source_id", msg.Head().SourceID),
			slog.Int64("seq", msg.Head().Seq),
			slog.Any("error", err))

		return Result{}, err
	}

	b.publishing = true
	defer func() { b.publishing = false }()

	var res Result

	h := msg.Head()

	switch m := msg.(type) {
	case *envelope.Snapshot:
		for _, k := range slices.Sorted(maps.Keys(m.Values)) {
			b.write(&res, k, m.Values[k], h.TS, h.SourceID, h.Seq)
		}
	case *envelope.Delta:
		for _, c := range m.Changes {
			ts := h.TS
			if c.TS != nil {
				ts = *c.TS
			}

			b.write(&res, c.KeyID, c.Value, ts, h.SourceID, h.Seq)
		}
	case *envelope.Event:
		b.appendEvent(&res, m)
	}

	b.version++
	b.metrics.accepted(msg.Type(), res)
	b.logger.Debug("published envelope",
		slog.String("type", string(msg.Type())),
		slog.String("source_id", h.SourceID),
		slog.Int64("seq", h.Seq),
		slog.Int("applied", len(res.Applied)),
		slog.Int("stale", len(res.Stale)),
		slog.Uint64("version", b.version))

	for _, s := range slices.Clone(b.allSubs) {
		if s.active {
			s.fn()
		}
	}

	for _, s := range slices.Clone(b.envSubs) {
		if s.active {
			s.fn(msg)
		}
	}

	return res, nil
}

func (b *Bus) write(res *Result, keyID string, v value.Value, ts int64, sourceID string, seq int64) {
	prev := b.records[keyID]
	if !prev.supersededBy(sourceID, seq) {
		res.Stale = append(res.Stale, keyID)

		return
	}

	rec := &Record{Value: v, TS: ts, SourceID: sourceID, Seq: seq}
	b.records[keyID] = rec
	res.Applied = append(res.Applied, keyID)

	b.notifyKey(keyID, *rec)
}

func (b *Bus) appendEvent(res *Result, e *envelope.Event) {
	h := e.Header
	prev := b.records[e.EventKeyID]

	if !prev.supersededBy(h.SourceID, h.Seq) {
		res.Stale = append(res.Stale, e.EventKeyID)

		return
	}

	var list value.Value
	if prev != nil {
		list = prev.Value
	}

	item := occurrence(h.TS, e.Payload, e.Value, h.SourceID, h.Seq)
	rec := &Record{
		Value:    appendCapped(list, item, b.eventCap),
		TS:       h.TS,
		SourceID: h.SourceID,
		Seq:      h.Seq,
	}

	b.records[e.EventKeyID] = rec
	res.Applied = append(res.Applied, e.EventKeyID)

	b.notifyKey(e.EventKeyID, *rec)
}

func (b *Bus) notifyKey(keyID string, rec Record) {
	for _, s := range slices.Clone(b.keySubs[keyID]) {
		if s.active {
			s.fn(rec, true)
		}
	}
}
