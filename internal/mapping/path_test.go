package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keyspace/value"
)

func parse(t *testing.T, doc string) value.Value {
	t.Helper()

	v, err := value.ParseJSON([]byte(doc))
	require.NoError(t, err)

	return v
}

func TestResolvePathWithIndices(t *testing.T) {
	src := parse(t, `{"players":[{"name":"Geno"}]}`)

	assert.True(t, ResolvePath(src, "players[0].name").Equal(value.String("Geno")))
	assert.True(t, ResolvePath(parse(t, `{}`), "players[0].name").IsAbsent())
}

func TestResolvePath(t *testing.T) {
	src := parse(t, `{
		"game": {"home": {"score": 3, "name": null}, "periods": [[1, 2], [3]]},
		"flag": false,
		"gap": null
	}`)

	tests := []struct {
		path string
		want value.Value
	}{
		{"game.home.score", value.Number(3)},
		{"game.periods[1][0]", value.Number(3)},
		{"game.periods.0.1", value.Number(2)},
		{"flag", value.Bool(false)},
		{"game.home.name", value.Null()},
		{"gap.deeper", value.Absent},
		{"game.away.score", value.Absent},
		{"game.periods[9]", value.Absent},
		{"game.periods.first", value.Absent},
		{"flag.x", value.Absent},
		{"", value.Absent},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := ResolvePath(src, tt.path)
			assert.True(t, tt.want.Equal(got), "got %s", got)
			assert.Equal(t, tt.want.Kind(), got.Kind())
		})
	}
}

func TestResolveJSONMatchesResolvePath(t *testing.T) {
	doc := `{"game":{"home":{"score":3,"name":null}},"players":[{"name":"Geno"}],
		"odd.key":{"a*b":1},"gap":null}`
	src := parse(t, doc)

	for _, path := range []string{
		"game.home.score",
		"game.home.name",
		"players[0].name",
		"players[3].name",
		"gap.deeper",
		"missing",
		"game",
	} {
		t.Run(path, func(t *testing.T) {
			want := ResolvePath(src, path)
			got := ResolveJSON([]byte(doc), path)
			assert.Equal(t, want.Kind(), got.Kind())
			assert.True(t, want.Equal(got), "got %s want %s", got, want)
		})
	}

	assert.True(t, ResolveJSON([]byte(doc), "odd.key").IsAbsent(), "dots always split")
	assert.True(t, ResolveJSON([]byte(`{"a*b":1}`), "a*b").Equal(value.Number(1)), "wildcards are literal")
	assert.True(t, ResolveJSON([]byte(`{"@this":{"x":2}}`), "@this.x").Equal(value.Number(2)), "modifiers are literal")
}

func TestValidatePath(t *testing.T) {
	for _, ok := range []string{"a", "a.b", "a[0].b", "a[0][1]"} {
		assert.NoError(t, ValidatePath(ok), ok)
	}

	for _, bad := range []string{"", "a..b", ".a", "a[x]", "a[0", "a."} {
		assert.Error(t, ValidatePath(bad), bad)
	}
}

func TestSegments(t *testing.T) {
	assert.Equal(t, []string{"players", "0", "name"}, Segments("players[0].name"))
	assert.Nil(t, Segments(""))
}

func TestJSONPath(t *testing.T) {
	assert.Equal(t, "players.0.name", JSONPath("players[0].name"))
	assert.Equal(t, `a\*b.c\?`, JSONPath("a*b.c?"))
	assert.Equal(t, `\@this`, JSONPath("@this"))
	assert.Empty(t, JSONPath(""))
}
