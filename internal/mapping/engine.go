package mapping

import (
	"errors"
	"time"

	"github.com/tidwall/gjson"

	"keyspace/internal/envelope"
	"keyspace/value"
)

// ErrInvalidPayload is returned by ResolveJSON for malformed JSON.
var ErrInvalidPayload = errors.New("payload is not valid JSON")

// Engine resolves mapping specs against provider payloads.
type Engine struct {
	transforms *TransformRegistry
	now        func() time.Time
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithTransforms replaces the default transform registry.
func WithTransforms(r *TransformRegistry) EngineOption {
	return func(e *Engine) {
		e.transforms = r
	}
}

// WithClock sets the time source used to stamp seq and ts.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates an engine with the built-in transforms and the wall
// clock.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		transforms: DefaultTransforms(),
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Transforms returns the engine's transform registry.
func (e *Engine) Transforms() *TransformRegistry {
	return e.transforms
}

// Resolve applies spec to source and returns a snapshot stamped with the
// current unix millisecond time as both seq and ts. Rules are applied in
// order, so a later rule for the same key wins.
func (e *Engine) Resolve(spec *Spec, source value.Value, sourceID string) *envelope.Snapshot {
	return e.resolve(spec, sourceID, func(path string) value.Value {
		return ResolvePath(source, path)
	})
}

// ResolveJSON is Resolve over a raw JSON payload. Paths are looked up
// without decoding the whole document.
func (e *Engine) ResolveJSON(spec *Spec, raw []byte, sourceID string) (*envelope.Snapshot, error) {
	if !gjson.ValidBytes(raw) {
		return nil, ErrInvalidPayload
	}

	return e.resolve(spec, sourceID, func(path string) value.Value {
		return ResolveJSON(raw, path)
	}), nil
}

func (e *Engine) resolve(spec *Spec, sourceID string, lookup func(string) value.Value) *envelope.Snapshot {
	now := e.now().UnixMilli()
	snap := &envelope.Snapshot{
		Header: envelope.Header{
			DictionaryID:      spec.OutputDictionaryID,
			DictionaryVersion: spec.OutputDictionaryVersion,
			SourceID:          sourceID,
			Seq:               now,
			TS:                now,
		},
		Values: make(map[string]value.Value, len(spec.Rules)),
	}

	for i := range spec.Rules {
		rule := &spec.Rules[i]
		if rule.ToKeyID == "" {
			continue
		}

		var v value.Value

		if rule.HasConstant() {
			v = rule.Constant
		} else {
			v = e.transforms.Apply(lookup(rule.FromPath), rule.Transforms)
		}

		if v.IsAbsent() {
			delete(snap.Values, rule.ToKeyID)

			continue
		}

		snap.Values[rule.ToKeyID] = v
	}

	return snap
}
