package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keyspace/internal/id"
)

const hockeyDict = `
dictionaryId: hockey
version: 1.0.0
domain: sports
root:
  type: node
  name: game
  children:
    - type: key
      keyId: K_HOME_SCORE
      alias: home.score
      valueType: number
      kind: state
      canonicalPath: game.home.score
    - type: key
      keyId: K_HOME_NAME
      alias: home.name
      valueType: string
      kind: state
      canonicalPath: game.home.name
`

type fixture struct {
	dir    string
	config string
}

func newFixture(t *testing.T, extra string) *fixture {
	t.Helper()

	f := &fixture{dir: t.TempDir()}
	dict := f.write(t, "hockey.yaml", hockeyDict)
	f.config = f.write(t, "keyspace.yaml", "log:\n  level: error\ndictionaries:\n  - "+dict+"\n"+extra)

	return f
}

func (f *fixture) write(t *testing.T, name, body string) string {
	t.Helper()

	path := filepath.Join(f.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func (f *fixture) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var out, errOut bytes.Buffer

	err := run(context.Background(), append([]string{"--config", f.config}, args...), &out, &errOut)

	return out.String(), errOut.String(), err
}

func TestKeygen(t *testing.T) {
	f := newFixture(t, "")

	out, _, err := f.run(t, "keygen", "-n", "3")
	require.NoError(t, err)

	lines := strings.Fields(out)
	require.Len(t, lines, 3)

	for _, l := range lines {
		assert.True(t, id.IsKeyID(l), l)
	}
}

func TestDictValidate(t *testing.T) {
	f := newFixture(t, "")
	bad := f.write(t, "bad.yaml", "dictionaryId: bad\nversion: \"1.0\"\nroot:\n  type: node\n  name: r\n")

	out, _, err := f.run(t, "dict", "validate", filepath.Join(f.dir, "hockey.yaml"), bad)
	require.ErrorIs(t, err, errFailed)
	assert.Contains(t, out, "hockey@1.0.0, 2 keys (2 mapped)")
	assert.Contains(t, out, "FAIL "+bad)
}

func TestDictFlatten(t *testing.T) {
	f := newFixture(t, "")

	out, _, err := f.run(t, "dict", "flatten", filepath.Join(f.dir, "hockey.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "K_HOME_SCORE")
	assert.Contains(t, out, "game.home.name")
}

func TestMap(t *testing.T) {
	f := newFixture(t, "")
	spec := f.write(t, "spec.yaml", `
id: acme-hockey
outputDictionaryId: hockey
outputDictionaryVersion: 1.0.0
rules:
  - fromPath: data.home.pts
    toKeyId: K_HOME_SCORE
  - fromPath: data.home.team
    toKeyId: K_HOME_NAME
    transforms: upper
  - fromPath: data.clock
    toKeyId: K_CLOCK
`)
	payload := f.write(t, "payload.json", `{"data":{"home":{"pts":3,"team":"oilers"},"clock":"12:00"}}`)

	out, errOut, err := f.run(t, "map", "--spec", spec, "--payload", payload, "--source", "acme")
	require.NoError(t, err)
	assert.Contains(t, out, `"type":"snapshot"`)
	assert.Contains(t, out, `"sourceId":"acme"`)
	assert.Contains(t, out, `"K_HOME_NAME":"OILERS"`)
	assert.Contains(t, errOut, "unknown_key", "unknown target is a warning")
}

func TestGraphCheck(t *testing.T) {
	f := newFixture(t, "")
	g := f.write(t, "graph.yaml", `
nodes:
  - id: n1
    keyId: K_HOME_SCORE
  - id: n2
    keyId: K_HOME_SCOR
edges:
  - from: n1
    to: n2
`)

	out, _, err := f.run(t, "graph", "check", "--graph", g)
	require.ErrorIs(t, err, errFailed)
	assert.Contains(t, out, "orphaned_binding")
	assert.Contains(t, out, "did you mean K_HOME_SCORE")
	assert.Contains(t, out, "fail: 2 nodes, 1 offending")

	ok := f.write(t, "ok.yaml", "nodes:\n  - id: n1\n    keyId: K_HOME_SCORE\n")

	out, _, err = f.run(t, "graph", "check", "--graph", ok, "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"status": "pass"`)
}

func TestBundleImportExport(t *testing.T) {
	f := newFixture(t, "")
	f.config = f.write(t, "sqlite.yaml", "log:\n  level: error\norg_id: acme\nstore:\n  driver: sqlite\n  dsn: "+
		filepath.Join(f.dir, "keyspace.db")+"\n")

	b := f.write(t, "bundle.json", `{
  "bundleVersion": "1.0.0",
  "exportedAt": "2026-01-01T00:00:00Z",
  "orgId": "acme",
  "dictionaries": [
    {"dictionaryId":"weather","version":"1.0.0","root":{"type":"node","name":"wx","children":[
      {"type":"key","keyId":"W_TEMP","valueType":"number","kind":"state","canonicalPath":"wx.temp"}]}},
    {"dictionaryId":"broken","version":"nope","root":{"type":"node","name":"r"}}
  ]
}`)

	out, _, err := f.run(t, "bundle", "import", b)
	require.ErrorIs(t, err, errFailed, "a rejected dictionary fails the command")
	assert.Contains(t, out, `"weather"`)
	assert.Contains(t, out, `"dictionaryId": "broken"`)

	out, _, err = f.run(t, "bundle", "export")
	require.NoError(t, err)
	assert.Contains(t, out, `"orgId": "acme"`)
	assert.Contains(t, out, "W_TEMP")
	assert.NotContains(t, out, "broken")
}

func TestReplay(t *testing.T) {
	f := newFixture(t, "")
	lines := f.write(t, "envelopes.jsonl", strings.Join([]string{
		`{"type":"snapshot","dictionaryId":"hockey","dictionaryVersion":"1.0.0","sourceId":"a","seq":1,"ts":100,"values":{"K_HOME_SCORE":1,"K_HOME_NAME":"Oilers"}}`,
		``,
		`{"type":"delta","dictionaryId":"hockey","dictionaryVersion":"1.0.0","sourceId":"a","seq":2,"ts":200,"changes":[{"keyId":"K_HOME_SCORE","value":3}]}`,
		`{"type":"delta","dictionaryId":"hockey","dictionaryVersion":"1.0.0","sourceId":"a","seq":1,"ts":300,"changes":[{"keyId":"K_HOME_SCORE","value":0}]}`,
	}, "\n"))

	out, _, err := f.run(t, "replay", lines, "--dump")
	require.NoError(t, err)
	assert.Contains(t, out, `"score": 3`, "out of order delta is stale")
	assert.Contains(t, out, `"name": "Oilers"`)
	assert.Contains(t, out, "K_HOME_SCORE = ")
	assert.Contains(t, out, "SourceID")
}

func TestStoreClosedWhenCommandFails(t *testing.T) {
	f := newFixture(t, "")
	f.config = f.write(t, "sqlite.yaml", "log:\n  level: error\norg_id: acme\nstore:\n  driver: sqlite\n  dsn: "+
		filepath.Join(f.dir, "keyspace.db")+"\n")
	g := f.write(t, "graph.yaml", "nodes:\n  - id: n1\n    keyId: K_MISSING\n")

	a := &app{}

	var out bytes.Buffer

	err := a.run(context.Background(), []string{"--config", f.config, "graph", "check", "--graph", g}, &out, &out)
	require.ErrorIs(t, err, errFailed)
	require.NotNil(t, a.store, "the command opened the store")
	assert.Nil(t, a.close)

	_, _, err = a.store.Get(context.Background(), "k")
	require.Error(t, err, "store is closed")
}

func TestReplayDropsInvalidEnvelopesAndContinues(t *testing.T) {
	f := newFixture(t, "")
	f.config = f.write(t, "warn.yaml", "log:\n  level: warn\ndictionaries:\n  - "+filepath.Join(f.dir, "hockey.yaml")+"\n")
	lines := f.write(t, "envelopes.jsonl", strings.Join([]string{
		`{"type":"snapshot","dictionaryId":"hockey","dictionaryVersion":"1.0.0","sourceId":"a","seq":1,"ts":100,"values":{"K_HOME_SCORE":1}}`,
		`{"type":"snapshot","dictionaryId":"hockey","dictionaryVersion":"1.0.0","sourceId":"","seq":2,"ts":200,"values":{"K_HOME_SCORE":9}}`,
		`{"type":"delta","dictionaryId":"hockey","dictionaryVersion":"1.0.0","sourceId":"a","seq":3,"ts":300,"changes":[{"keyId":"K_HOME_SCORE","value":4}]}`,
	}, "\n"))

	out, errOut, err := f.run(t, "replay", lines)
	require.NoError(t, err)
	assert.Contains(t, out, `"score": 4`, "the envelope after the invalid one is applied")
	assert.Contains(t, errOut, "dropped envelope")
	assert.Contains(t, errOut, "line=2")
	assert.Contains(t, errOut, "sourceId")
}
