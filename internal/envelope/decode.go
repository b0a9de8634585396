package envelope

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"keyspace/value"
)

// wire mirrors every variant with pointers so that missing fields can be
// told apart from zero values.
type wire struct {
	Type              *string `json:"type"`
	DictionaryID      *string `json:"dictionaryId"`
	DictionaryVersion *string `json:"dictionaryVersion"`
	SourceID          *string `json:"sourceId"`
	Seq               *int64  `json:"seq"`
	TS                *int64  `json:"ts"`

	Values     map[string]value.Value `json:"values"`
	Changes    []wireChange           `json:"changes"`
	EventKeyID *string                `json:"eventKeyId"`
	Payload    map[string]value.Value `json:"payload"`
	Value      value.Value            `json:"value"`
}

type wireChange struct {
	KeyID *string     `json:"keyId"`
	Value value.Value `json:"value"`
	TS    *int64      `json:"ts"`
}

// Decode parses one JSON envelope, checks that the discriminator and the
// variant's required fields are present, and validates the result.
func Decode(data []byte) (Message, error) {
	var w wire

	err := json.Unmarshal(data, &w)
	if err != nil {
		return nil, &ValidationError{Reason: fmt.Sprintf("malformed JSON: %v", err)}
	}

	if w.Type == nil {
		return nil, invalid("", "type", "required")
	}

	t := Type(*w.Type)

	h, err := w.header(t)
	if err != nil {
		return nil, err
	}

	var msg Message

	switch t {
	case TypeSnapshot:
		if w.Values == nil {
			return nil, invalid(t, "values", "required")
		}

		msg = &Snapshot{Header: h, Values: w.Values}
	case TypeDelta:
		if w.Changes == nil {
			return nil, invalid(t, "changes", "required")
		}

		changes := make([]Change, len(w.Changes))
		for i, c := range w.Changes {
			if c.KeyID == nil {
				return nil, invalid(t, changeField(i, "keyId"), "required")
			}

			changes[i] = Change{KeyID: *c.KeyID, Value: c.Value, TS: c.TS}
		}

		msg = &Delta{Header: h, Changes: changes}
	case TypeEvent:
		if w.EventKeyID == nil {
			return nil, invalid(t, "eventKeyId", "required")
		}

		msg = &Event{Header: h, EventKeyID: *w.EventKeyID, Payload: w.Payload, Value: w.Value}
	default:
		return nil, invalid("", "type", "unknown type %q", *w.Type)
	}

	err = msg.Validate()
	if err != nil {
		return nil, err
	}

	return msg, nil
}

func (w *wire) header(t Type) (Header, error) {
	switch {
	case w.DictionaryID == nil:
		return Header{}, invalid(t, "dictionaryId", "required")
	case w.DictionaryVersion == nil:
		return Header{}, invalid(t, "dictionaryVersion", "required")
	case w.SourceID == nil:
		return Header{}, invalid(t, "sourceId", "required")
	case w.Seq == nil:
		return Header{}, invalid(t, "seq", "required")
	case w.TS == nil:
		return Header{}, invalid(t, "ts", "required")
	}

	return Header{
		DictionaryID:      *w.DictionaryID,
		DictionaryVersion: *w.DictionaryVersion,
		SourceID:          *w.SourceID,
		Seq:               *w.Seq,
		TS:                *w.TS,
	}, nil
}

// Encode marshals msg with its discriminator.
func Encode(msg Message) ([]byte, error) {
	if msg == nil {
		return nil, errors.New("nil envelope")
	}

	return json.Marshal(msg)
}

// LineFunc receives each non-blank line's decoded envelope, or the decode
// error for that line. Returning an error stops the scan with that error.
type LineFunc func(line int, msg Message, err error) error

// Scan decodes newline-delimited envelopes and hands every line to fn,
// including lines that fail to decode, so one bad envelope does not hide the
// rest. Blank lines are skipped. Only read errors and fn's own errors stop
// the scan.
func Scan(r io.Reader, fn LineFunc) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)

	line := 0
	for sc.Scan() {
		line++

		data := bytes.TrimSpace(sc.Bytes())
		if len(data) == 0 {
			continue
		}

		msg, err := Decode(data)

		err = fn(line, msg, err)
		if err != nil {
			return err
		}
	}

	err := sc.Err()
	if err != nil {
		return fmt.Errorf("read envelopes: %w", err)
	}

	return nil
}

// ReadLines decodes newline-delimited envelopes. Decoding stops at the first
// invalid line; the error names its line number and the envelopes before it
// are returned.
func ReadLines(r io.Reader) ([]Message, error) {
	var out []Message

	err := Scan(r, func(line int, msg Message, err error) error {
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}

		out = append(out, msg)

		return nil
	})

	return out, err
}
