// Package value provides the tagged variant that carries untyped telemetry
// payloads through envelopes, transforms and mapping rules.
//
// The zero Value is Absent: "nothing at this path". It is distinct from Null,
// which is an explicit JSON null.
package value

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
)

// Value is an immutable-by-convention tagged variant.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	arr  []Value
	obj  map[string]Value
}

// Absent is the zero Value.
var Absent = Value{}

// Null returns an explicit null.
func Null() Value { return Value{kind: KindNull} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number wraps a float64.
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Array wraps the given items. Absent items are stored as null.
func Array(items ...Value) Value {
	arr := make([]Value, len(items))
	for i, it := range items {
		if it.kind == KindAbsent {
			it = Null()
		}

		arr[i] = it
	}

	return Value{kind: KindArray, arr: arr}
}

// Object wraps the given fields. Absent fields are dropped.
func Object(fields map[string]Value) Value {
	obj := make(map[string]Value, len(fields))
	for k, v := range fields {
		if v.kind == KindAbsent {
			continue
		}

		obj[k] = v
	}

	return Value{kind: KindObject, obj: obj}
}

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether v carries no value at all.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// IsZero lets `omitzero` struct tags drop absent values.
func (v Value) IsZero() bool { return v.kind == KindAbsent }

// IsNull reports whether v is an explicit null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean and true when v is a bool.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsNumber returns the number and true when v is a number.
func (v Value) AsNumber() (float64, bool) { return v.n, v.kind == KindNumber }

// AsString returns the string and true when v is a string.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// AsArray returns a copy of the items and true when v is an array.
func (v Value) AsArray() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}

	return slices.Clone(v.arr), true
}

// AsObject returns a copy of the fields and true when v is an object.
func (v Value) AsObject() (map[string]Value, bool) {
	if v.kind != KindObject {
		return nil, false
	}

	return maps.Clone(v.obj), true
}

// Len returns the number of items or fields; zero for scalars.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj)
	default:
		return 0
	}
}

// Field returns the named field of an object, or Absent.
func (v Value) Field(name string) Value {
	if v.kind != KindObject {
		return Absent
	}

	return v.obj[name]
}

// Index returns the i-th item of an array, or Absent when out of range.
func (v Value) Index(i int) Value {
	if v.kind != KindArray || i < 0 || i >= len(v.arr) {
		return Absent
	}

	return v.arr[i]
}

// Interface converts v into plain Go values: nil, bool, float64, string,
// []any and map[string]any. Absent converts to nil.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.n
	case KindString:
		return v.s
	case KindArray:
		out := make([]any, len(v.arr))
		for i, it := range v.arr {
			out[i] = it.Interface()
		}

		return out
	case KindObject:
		out := make(map[string]any, len(v.obj))
		for k, it := range v.obj {
			out[k] = it.Interface()
		}

		return out
	default:
		return nil
	}
}

// Equal reports deep equality. Numbers compare by value.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}

	switch v.kind {
	case KindBool:
		return v.b == o.b
	case KindNumber:
		return v.n == o.n
	case KindString:
		return v.s == o.s
	case KindArray:
		return slices.EqualFunc(v.arr, o.arr, Value.Equal)
	case KindObject:
		return maps.EqualFunc(v.obj, o.obj, Value.Equal)
	default:
		return true
	}
}

// String renders v for humans: strings unquoted, everything else as JSON.
func (v Value) String() string {
	switch v.kind {
	case KindAbsent:
		return "<absent>"
	case KindString:
		return v.s
	case KindNumber:
		return FormatNumber(v.n)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("<%s>", v.kind)
		}

		return string(data)
	}
}

// FormatNumber renders n the way JSON would, without a trailing ".0".
func FormatNumber(n float64) string {
	if math.IsInf(n, 0) || math.IsNaN(n) {
		return strconv.FormatFloat(n, 'g', -1, 64)
	}

	return strconv.FormatFloat(n, 'f', -1, 64)
}

// FromAny converts decoded JSON/YAML data (or plain Go scalars) into a Value.
func FromAny(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case float64:
		return Number(t), nil
	case float32:
		return Number(float64(t)), nil
	case int:
		return Number(float64(t)), nil
	case int8:
		return Number(float64(t)), nil
	case int16:
		return Number(float64(t)), nil
	case int32:
		return Number(float64(t)), nil
	case int64:
		return Number(float64(t)), nil
	case uint:
		return Number(float64(t)), nil
	case uint8:
		return Number(float64(t)), nil
	case uint16:
		return Number(float64(t)), nil
	case uint32:
		return Number(float64(t)), nil
	case uint64:
		return Number(float64(t)), nil
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return Absent, fmt.Errorf("invalid number %q: %w", t.String(), err)
		}

		return Number(n), nil
	case []any:
		items := make([]Value, len(t))
		for i, it := range t {
			v, err := FromAny(it)
			if err != nil {
				return Absent, fmt.Errorf("[%d]: %w", i, err)
			}

			items[i] = v
		}

		return Value{kind: KindArray, arr: items}, nil
	case map[string]any:
		fields := make(map[string]Value, len(t))
		for k, it := range t {
			v, err := FromAny(it)
			if err != nil {
				return Absent, fmt.Errorf("%s: %w", k, err)
			}

			fields[k] = v
		}

		return Value{kind: KindObject, obj: fields}, nil
	case map[any]any:
		fields := make(map[string]Value, len(t))
		for k, it := range t {
			v, err := FromAny(it)
			if err != nil {
				return Absent, fmt.Errorf("%v: %w", k, err)
			}

			fields[fmt.Sprint(k)] = v
		}

		return Value{kind: KindObject, obj: fields}, nil
	default:
		return Absent, fmt.Errorf("unsupported value type %T", x)
	}
}

// MustFromAny is FromAny for literals known to be valid.
func MustFromAny(x any) Value {
	v, err := FromAny(x)
	if err != nil {
		panic(err)
	}

	return v
}
