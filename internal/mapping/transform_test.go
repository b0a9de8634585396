package mapping

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keyspace/value"
)

func TestApplyTransforms(t *testing.T) {
	tr := DefaultTransforms()

	tests := []struct {
		name  string
		in    value.Value
		chain []string
		want  value.Value
	}{
		{"upper", value.String("Geno"), []string{"upper"}, value.String("GENO")},
		{"lower", value.String("GENO"), []string{"lower"}, value.String("geno")},
		{"upper non-string", value.Number(3), []string{"upper"}, value.Number(3)},
		{"number from string", value.String(" 42.5 "), []string{"number"}, value.Number(42.5)},
		{"number from bool", value.Bool(true), []string{"number"}, value.Number(1)},
		{"number from null", value.Null(), []string{"number"}, value.Number(0)},
		{"number from empty", value.String(""), []string{"number"}, value.Number(0)},
		{"number unparsable", value.String("abc"), []string{"number"}, value.Null()},
		{"number from object", value.Object(nil), []string{"number"}, value.Null()},
		{"pct", value.Number(0.456), []string{"pct"}, value.String("46%")},
		{"pct negative zero", value.Number(-0.001), []string{"pct"}, value.String("0%")},
		{"pct non-number", value.String("0.4"), []string{"pct"}, value.String("0.4")},
		{"number then pct", value.String("0.25"), []string{"number", "pct"}, value.String("25%")},
		{"fixed default", value.Number(2.4), []string{"fixed"}, value.String("2")},
		{"fixed tie", value.Number(0.5), []string{"fixed"}, value.String("1")},
		{"fixed tie odd", value.Number(2.5), []string{"fixed"}, value.String("3")},
		{"fixed negative tie", value.Number(-2.5), []string{"fixed"}, value.String("-3")},
		{"fixed tie decimals", value.Number(0.125), []string{"fixed(2)"}, value.String("0.13")},
		{"fixed negative zero", value.Number(-0.4), []string{"fixed"}, value.String("0")},
		{"fixed large", value.Number(1e300), []string{"fixed(2)"}, value.String(strconv.FormatFloat(1e300, 'f', 2, 64))},
		{"pct tie", value.Number(0.025), []string{"pct"}, value.String("3%")},
		{"fixed paren", value.Number(3.14159), []string{"fixed(2)"}, value.String("3.14")},
		{"fixed suffix", value.Number(1), []string{"fixed3"}, value.String("1.000")},
		{"fixed non-number", value.String("x"), []string{"fixed2"}, value.String("x")},
		{"json", value.MustFromAny(map[string]any{"a": 1}), []string{"json"}, value.String("{\n  \"a\": 1\n}")},
		{"unknown ignored", value.String("x"), []string{"reverse", "upper"}, value.String("X")},
		{"empty chain", value.String("x"), nil, value.String("x")},
		{"absent stays absent", value.Absent, []string{"number", "json", "upper"}, value.Absent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tr.Apply(tt.in, tt.chain)
			assert.Equal(t, tt.want.Kind(), got.Kind())
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestUpperIsIdempotent(t *testing.T) {
	tr := DefaultTransforms()

	for _, s := range []string{"", "geno", "Malkin 71", "straße", "ÉCOLE", "ǆ"} {
		once := tr.Apply(value.String(s), []string{"upper"})
		twice := tr.Apply(value.String(s), []string{"upper", "upper"})
		assert.True(t, once.Equal(twice), s)
	}
}

func TestRegisterCustomTransform(t *testing.T) {
	tr := DefaultTransforms()
	tr.Register("negate", func(v value.Value) value.Value {
		n, ok := v.AsNumber()
		if !ok {
			return v
		}

		return value.Number(-n)
	})

	assert.True(t, tr.Has("negate"))
	assert.True(t, tr.Has("fixed(4)"))
	assert.False(t, tr.Has("reverse"))
	assert.Equal(t, []string{"fixed", "json", "lower", "negate", "number", "pct", "upper"}, tr.Names())

	got := tr.Apply(value.Number(2), []string{"negate", "fixed1"})
	assert.True(t, got.Equal(value.String("-2.0")))
}

func TestFixedDigits(t *testing.T) {
	assert.Equal(t, 0, fixedDigits("fixed"))
	assert.Equal(t, 2, fixedDigits("fixed(2)"))
	assert.Equal(t, 12, fixedDigits("fixed(1)(2)"))
	assert.Equal(t, maxFixedDigits, fixedDigits("fixed999"))

	require.NotPanics(t, func() {
		DefaultTransforms().Apply(value.Number(1), []string{"fixed99999999999999999999"})
	})
}
