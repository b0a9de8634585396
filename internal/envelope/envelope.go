package envelope

import (
	"encoding/json"
	"strconv"
	"strings"

	"keyspace/value"
)

// Type is the envelope discriminator.
type Type string

const (
	TypeSnapshot Type = "snapshot"
	TypeDelta    Type = "delta"
	TypeEvent    Type = "event"
)

// Header carries the fields common to every variant.
type Header struct {
	DictionaryID      string `json:"dictionaryId"`
	DictionaryVersion string `json:"dictionaryVersion"`
	SourceID          string `json:"sourceId"`
	// Seq is monotonically intended per SourceID.
	Seq int64 `json:"seq"`
	// TS is a unix timestamp in milliseconds.
	TS int64 `json:"ts"`
}

// Message is implemented by *Snapshot, *Delta and *Event only.
type Message interface {
	Type() Type
	Head() Header
	Validate() error

	sealed()
}

// Snapshot is an authoritative replace of the listed keys.
type Snapshot struct {
	Header

	Values map[string]value.Value `json:"values"`
}

// Change is one incremental update inside a Delta. A nil TS falls back to
// the envelope timestamp.
type Change struct {
	KeyID string      `json:"keyId"`
	Value value.Value `json:"value"`
	TS    *int64      `json:"ts,omitempty"`
}

// Delta is an ordered list of incremental updates.
type Delta struct {
	Header

	Changes []Change `json:"changes"`
}

// Event appends an occurrence to an event-kind key.
type Event struct {
	Header

	EventKeyID string                 `json:"eventKeyId"`
	Payload    map[string]value.Value `json:"payload,omitempty"`
	Value      value.Value            `json:"value,omitzero"`
}

func (*Snapshot) Type() Type { return TypeSnapshot }
func (*Delta) Type() Type    { return TypeDelta }
func (*Event) Type() Type    { return TypeEvent }

// Head returns the header; a nil envelope has a zero header.
func (s *Snapshot) Head() Header {
	if s == nil {
		return Header{}
	}

	return s.Header
}

func (d *Delta) Head() Header {
	if d == nil {
		return Header{}
	}

	return d.Header
}

func (e *Event) Head() Header {
	if e == nil {
		return Header{}
	}

	return e.Header
}

func (*Snapshot) sealed() {}
func (*Delta) sealed()    {}
func (*Event) sealed()    {}

// Validate checks the header and the snapshot values.
func (s *Snapshot) Validate() error {
	if s == nil {
		return invalid(TypeSnapshot, "", "nil envelope")
	}

	err := s.Header.validate(TypeSnapshot)
	if err != nil {
		return err
	}

	if s.Values == nil {
		return invalid(TypeSnapshot, "values", "required")
	}

	for k, v := range s.Values {
		if strings.TrimSpace(k) == "" {
			return invalid(TypeSnapshot, "values", "empty key id")
		}

		if v.IsAbsent() {
			return invalid(TypeSnapshot, "values."+k, "value is required")
		}
	}

	return nil
}

// Validate checks the header and every change.
func (d *Delta) Validate() error {
	if d == nil {
		return invalid(TypeDelta, "", "nil envelope")
	}

	err := d.Header.validate(TypeDelta)
	if err != nil {
		return err
	}

	if d.Changes == nil {
		return invalid(TypeDelta, "changes", "required")
	}

	for i, c := range d.Changes {
		if strings.TrimSpace(c.KeyID) == "" {
			return invalid(TypeDelta, changeField(i, "keyId"), "required")
		}

		if c.Value.IsAbsent() {
			return invalid(TypeDelta, changeField(i, "value"), "required")
		}

		if c.TS != nil && *c.TS < 0 {
			return invalid(TypeDelta, changeField(i, "ts"), "must not be negative")
		}
	}

	return nil
}

// Validate checks the header and the target key.
func (e *Event) Validate() error {
	if e == nil {
		return invalid(TypeEvent, "", "nil envelope")
	}

	err := e.Header.validate(TypeEvent)
	if err != nil {
		return err
	}

	if strings.TrimSpace(e.EventKeyID) == "" {
		return invalid(TypeEvent, "eventKeyId", "required")
	}

	return nil
}

func (h Header) validate(t Type) error {
	switch {
	case strings.TrimSpace(h.DictionaryID) == "":
		return invalid(t, "dictionaryId", "required")
	case strings.TrimSpace(h.DictionaryVersion) == "":
		return invalid(t, "dictionaryVersion", "required")
	case strings.TrimSpace(h.SourceID) == "":
		return invalid(t, "sourceId", "required")
	case h.Seq < 0:
		return invalid(t, "seq", "must not be negative")
	case h.TS < 0:
		return invalid(t, "ts", "must not be negative")
	}

	return nil
}

func changeField(i int, name string) string {
	return "changes[" + strconv.Itoa(i) + "]." + name
}

// MarshalJSON adds the "type" discriminator.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	type plain Snapshot

	return json.Marshal(struct {
		Type Type `json:"type"`
		plain
	}{TypeSnapshot, plain(s)})
}

// MarshalJSON adds the "type" discriminator.
func (d Delta) MarshalJSON() ([]byte, error) {
	type plain Delta

	return json.Marshal(struct {
		Type Type `json:"type"`
		plain
	}{TypeDelta, plain(d)})
}

// MarshalJSON adds the "type" discriminator.
func (e Event) MarshalJSON() ([]byte, error) {
	type plain Event

	return json.Marshal(struct {
		Type Type `json:"type"`
		plain
	}{TypeEvent, plain(e)})
}
