package mapping

import (
	"encoding/json"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"keyspace/value"
)

// Built-in transform names.
const (
	TransformUpper  = "upper"
	TransformLower  = "lower"
	TransformNumber = "number"
	TransformPct    = "pct"
	TransformJSON   = "json"
	// TransformFixed is a prefix: "fixed", "fixed2" and "fixed(2)" resolve.
	TransformFixed = "fixed"
)

// maxFixedDigits bounds fixed(n).
const maxFixedDigits = 100

// TransformFunc maps one value to another. It must pass value.Absent
// through unchanged.
type TransformFunc func(value.Value) value.Value

// TransformRegistry holds named transforms.
type TransformRegistry struct {
	transforms map[string]TransformFunc
}

// NewTransformRegistry creates an empty registry. Most callers want
// DefaultTransforms.
func NewTransformRegistry() *TransformRegistry {
	return &TransformRegistry{transforms: make(map[string]TransformFunc)}
}

// DefaultTransforms returns a registry with the built-in transforms.
func DefaultTransforms() *TransformRegistry {
	r := NewTransformRegistry()
	r.Register(TransformUpper, upper)
	r.Register(TransformLower, lower)
	r.Register(TransformNumber, toNumber)
	r.Register(TransformPct, pct)
	r.Register(TransformJSON, prettyJSON)

	return r
}

// Register adds or replaces a transform.
func (r *TransformRegistry) Register(name string, fn TransformFunc) {
	r.transforms[name] = fn
}

// Get returns the transform for name. Names starting with "fixed" resolve
// to fixed-decimal formatting unless registered explicitly.
func (r *TransformRegistry) Get(name string) (TransformFunc, bool) {
	if fn, ok := r.transforms[name]; ok {
		return fn, true
	}

	if strings.HasPrefix(name, TransformFixed) {
		return fixed(fixedDigits(name)), true
	}

	return nil, false
}

// Has reports whether name resolves.
func (r *TransformRegistry) Has(name string) bool {
	_, ok := r.Get(name)

	return ok
}

// Names returns registered names, sorted, plus "fixed".
func (r *TransformRegistry) Names() []string {
	names := slices.Collect(maps.Keys(r.transforms))
	if !slices.Contains(names, TransformFixed) {
		names = append(names, TransformFixed)
	}

	slices.Sort(names)

	return names
}

// Apply runs the named transforms left to right. Unknown names are skipped.
func (r *TransformRegistry) Apply(v value.Value, names []string) value.Value {
	for _, name := range names {
		fn, ok := r.Get(name)
		if !ok {
			continue
		}

		v = fn(v)
	}

	return v
}

func upper(v value.Value) value.Value {
	s, ok := v.AsString()
	if !ok {
		return v
	}

	return value.String(cases.Upper(language.Und).String(s))
}

func lower(v value.Value) value.Value {
	s, ok := v.AsString()
	if !ok {
		return v
	}

	return value.String(cases.Lower(language.Und).String(s))
}

func toNumber(v value.Value) value.Value {
	switch v.Kind() {
	case value.KindAbsent, value.KindNumber:
		return v
	case value.KindNull:
		return value.Number(0)
	case value.KindBool:
		if b, _ := v.AsBool(); b {
			return value.Number(1)
		}

		return value.Number(0)
	case value.KindString:
		s, _ := v.AsString()

		s = strings.TrimSpace(s)
		if s == "" {
			return value.Number(0)
		}

		n, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return value.Null()
		}

		return value.Number(n)
	default:
		return value.Null()
	}
}

func pct(v value.Value) value.Value {
	n, ok := v.AsNumber()
	if !ok {
		return v
	}

	return value.String(strconv.FormatFloat(roundHalfAway(n*100, 0), 'f', 0, 64) + "%")
}

func fixed(digits int) TransformFunc {
	return func(v value.Value) value.Value {
		n, ok := v.AsNumber()
		if !ok {
			return v
		}

		return value.String(strconv.FormatFloat(roundHalfAway(n, digits), 'f', digits, 64))
	}
}

// roundHalfAway rounds n to digits decimals, ties away from zero, and drops
// the sign of a zero result.
func roundHalfAway(n float64, digits int) float64 {
	p := math.Pow10(digits)

	scaled := n * p
	if math.IsInf(scaled, 0) || math.Abs(scaled) >= 1<<53 {
		// no fractional part left at this precision
		return n
	}

	r := math.Round(scaled) / p
	if r == 0 {
		return 0
	}

	return r
}

// fixedDigits concatenates the digits in name: "fixed(2)" is 2, "fixed" is 0.
func fixedDigits(name string) int {
	var digits strings.Builder

	for _, r := range name {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0
	}

	return min(n, maxFixedDigits)
}

func prettyJSON(v value.Value) value.Value {
	if v.IsAbsent() {
		return v
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return value.Null()
	}

	return value.String(string(data))
}
