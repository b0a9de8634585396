package bus

import (
	"keyspace/value"
)

// DefaultEventCap bounds the occurrence list kept for an event-kind key.
const DefaultEventCap = 200

// Record is the current state of one key.
type Record struct {
	Value    value.Value
	TS       int64
	SourceID string
	Seq      int64
}

// supersededBy applies the conflict rule: an incoming write loses only to a
// record from the same source with an equal or newer sequence number.
func (r *Record) supersededBy(sourceID string, seq int64) bool {
	if r == nil {
		return true
	}

	return r.SourceID != sourceID || seq > r.Seq
}

// occurrence is one entry of an event-kind key's list.
func occurrence(ts int64, payload map[string]value.Value, v value.Value, sourceID string, seq int64) value.Value {
	fields := map[string]value.Value{
		"ts":       value.Number(float64(ts)),
		"value":    v,
		"sourceId": value.String(sourceID),
		"seq":      value.Number(float64(seq)),
	}

	if payload != nil {
		fields["payload"] = value.Object(payload)
	}

	return value.Object(fields)
}

// appendCapped appends item to the list held in prev, keeping the newest
// limit entries. A prev that is not a list starts a fresh one.
func appendCapped(prev value.Value, item value.Value, limit int) value.Value {
	items, _ := prev.AsArray()
	items = append(items, item)

	if limit > 0 && len(items) > limit {
		items = items[len(items)-limit:]
	}

	return value.Array(items...)
}
