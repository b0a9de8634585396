package canonical

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keyspace/internal/bus"
	"keyspace/internal/dictionary"
	"keyspace/internal/envelope"
	"keyspace/internal/registry"
	"keyspace/value"
)

const hockeyDict = `
dictionaryId: hockey
version: 1.0.0
root:
  type: node
  name: game
  children:
    - type: key
      keyId: K_HOME_SCORE
      valueType: number
      kind: state
      canonicalPath: game.home.score
    - type: key
      keyId: K_HOME_NAME
      valueType: string
      kind: state
      path: game.home.name
    - type: key
      keyId: K_GOALS
      valueType: object
      kind: event
      canonicalPath: game.goals
    - type: key
      keyId: K_NOTES
      valueType: string
      kind: state
`

func setup(t *testing.T) (*bus.Bus, *registry.Scope) {
	t.Helper()

	d, err := dictionary.Parse([]byte(hockeyDict))
	require.NoError(t, err)

	r, err := registry.New(nil, []*dictionary.Dictionary{d})
	require.NoError(t, err)

	s, err := r.Scope(context.Background(), "")
	require.NoError(t, err)

	b, err := bus.New()
	require.NoError(t, err)

	return b, s
}

func header(seq int64) envelope.Header {
	return envelope.Header{DictionaryID: "hockey", DictionaryVersion: "1.0.0", SourceID: "feed", Seq: seq, TS: seq}
}

func TestProject(t *testing.T) {
	b, s := setup(t)

	_, err := b.Publish(&envelope.Snapshot{Header: header(1), Values: map[string]value.Value{
		"K_HOME_SCORE": value.Number(3),
		"K_HOME_NAME":  value.String("Pittsburgh"),
		"K_NOTES":      value.String("n/a"),
		"K_STRAY":      value.Bool(true),
	}})
	require.NoError(t, err)

	_, err = b.Publish(&envelope.Event{Header: header(2), EventKeyID: "K_GOALS", Value: value.Number(1)})
	require.NoError(t, err)

	p, err := Project(b, s)
	require.NoError(t, err)

	assert.True(t, p.Get("game.home.score").Equal(value.Number(3)))
	assert.True(t, p.Get("game.home.name").Equal(value.String("Pittsburgh")))
	assert.True(t, p.Get("game.goals[0].value").Equal(value.Number(1)))
	assert.Equal(t, []string{"K_STRAY"}, p.Unknown)
	assert.Equal(t, []string{"K_NOTES"}, p.Unmapped)
	assert.Empty(t, p.Conflicts)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(p.JSON, &doc))
	assert.Contains(t, doc, "game")
}

func TestProjectEmptyBus(t *testing.T) {
	b, s := setup(t)

	p, err := Project(b, s)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(p.JSON))
	assert.True(t, p.Get("game.home.score").IsAbsent())
}

func TestProjectWithoutResolver(t *testing.T) {
	b, _ := setup(t)

	_, err := b.Publish(&envelope.Snapshot{Header: header(1), Values: map[string]value.Value{
		"K_HOME_SCORE": value.Number(3),
	}})
	require.NoError(t, err)

	for _, res := range []registry.Resolver{nil, (*registry.Scope)(nil)} {
		p, err := Project(b, res)
		require.NoError(t, err)
		assert.JSONEq(t, `{}`, string(p.JSON))
		assert.Equal(t, []string{"K_HOME_SCORE"}, p.Unknown)
	}
}
