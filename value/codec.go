package value

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// MarshalJSON implements json.Marshaler. Absent encodes as null; use the
// `omitzero` tag to drop it instead.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindAbsent, KindNull:
		return []byte("null"), nil
	case KindArray:
		if v.arr == nil {
			return []byte("[]"), nil
		}

		return json.Marshal(v.arr)
	case KindObject:
		if v.obj == nil {
			return []byte("{}"), nil
		}

		return json.Marshal(v.obj)
	default:
		return json.Marshal(v.Interface())
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any

	err := dec.Decode(&raw)
	if err != nil {
		return fmt.Errorf("decode value: %w", err)
	}

	parsed, err := FromAny(raw)
	if err != nil {
		return err
	}

	*v = parsed

	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (v Value) MarshalYAML() (any, error) {
	return v.Interface(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	var raw any

	err := node.Decode(&raw)
	if err != nil {
		return fmt.Errorf("decode value: %w", err)
	}

	parsed, err := FromAny(raw)
	if err != nil {
		return err
	}

	*v = parsed

	return nil
}

// ParseJSON decodes a JSON document into a Value.
func ParseJSON(data []byte) (Value, error) {
	var v Value

	err := v.UnmarshalJSON(data)
	if err != nil {
		return Absent, err
	}

	return v, nil
}
