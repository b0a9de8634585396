package value

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestZeroValueIsAbsent(t *testing.T) {
	var v Value

	assert.True(t, v.IsAbsent())
	assert.False(t, v.IsNull())
	assert.Equal(t, KindAbsent, v.Kind())
	assert.Nil(t, v.Interface())
}

func TestParseJSON(t *testing.T) {
	v, err := ParseJSON([]byte(`{"game":{"home":{"score":3,"name":"Pens"},"live":true,"periods":[1,2,null]}}`))
	require.NoError(t, err)
	require.Equal(t, KindObject, v.Kind())

	score, ok := v.Field("game").Field("home").Field("score").AsNumber()
	require.True(t, ok)
	assert.InDelta(t, 3.0, score, 0)

	name, ok := v.Field("game").Field("home").Field("name").AsString()
	require.True(t, ok)
	assert.Equal(t, "Pens", name)

	live, ok := v.Field("game").Field("live").AsBool()
	require.True(t, ok)
	assert.True(t, live)

	periods := v.Field("game").Field("periods")
	assert.Equal(t, 3, periods.Len())
	assert.True(t, periods.Index(2).IsNull())
	assert.True(t, periods.Index(3).IsAbsent())
	assert.True(t, v.Field("missing").IsAbsent())
}

func TestMarshalJSONRoundTrip(t *testing.T) {
	in := Object(map[string]Value{
		"a": Number(1.5),
		"b": Array(String("x"), Bool(false), Absent),
		"c": Absent,
		"d": Null(),
	})

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1.5,"b":["x",false,null],"d":null}`, string(data))

	out, err := ParseJSON(data)
	require.NoError(t, err)
	assert.True(t, in.Equal(out))
}

func TestOmitZeroDropsAbsent(t *testing.T) {
	type holder struct {
		V Value `json:"v,omitzero"`
	}

	data, err := json.Marshal(holder{})
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))

	data, err = json.Marshal(holder{V: Null()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":null}`, string(data))
}

func TestUnmarshalYAML(t *testing.T) {
	doc := `
score: 3
name: Geno
tags: [a, b]
nested:
  ok: true
`

	var v Value

	require.NoError(t, yaml.Unmarshal([]byte(doc), &v))

	n, ok := v.Field("score").AsNumber()
	require.True(t, ok)
	assert.InDelta(t, 3.0, n, 0)
	assert.Equal(t, 2, v.Field("tags").Len())

	b, ok := v.Field("nested").Field("ok").AsBool()
	require.True(t, ok)
	assert.True(t, b)
}

func TestFromAnyRejectsUnsupported(t *testing.T) {
	_, err := FromAny(struct{}{})
	require.Error(t, err)
}

func TestString(t *testing.T) {
	assert.Equal(t, "Geno", String("Geno").String())
	assert.Equal(t, "3", Number(3).String())
	assert.Equal(t, "0.25", Number(0.25).String())
	assert.Equal(t, "true", Bool(true).String())
	assert.Equal(t, "null", Null().String())
	assert.Equal(t, "<absent>", Absent.String())
	assert.Equal(t, `[1,"a"]`, Array(Number(1), String("a")).String())
}

func TestParseKind(t *testing.T) {
	k, ok := ParseKind("boolean")
	require.True(t, ok)
	assert.Equal(t, KindBool, k)
	assert.Equal(t, "bool", k.String())

	_, ok = ParseKind("date")
	assert.False(t, ok)
	assert.Equal(t, "Kind(42)", Kind(42).String())
}

func TestAccessorsCopy(t *testing.T) {
	arr := Array(Number(1))
	items, ok := arr.AsArray()
	require.True(t, ok)

	items[0] = Number(2)
	assert.True(t, arr.Index(0).Equal(Number(1)))
}
