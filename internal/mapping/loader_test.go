package mapping

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keyspace/value"
)

const hockeyMappingYAML = `
id: acme-hockey
inputSchemaId: acme.v2
outputDictionaryId: hockey
outputDictionaryVersion: 1.0.0
rules:
  - fromPath: game.home.score
    toKeyId: K_HOME_SCORE
  - fromPath: players[0].name
    toKeyId: K_TOP_SCORER
    transforms: [upper]
  - fromPath: game.possession
    toKeyId: K_POSSESSION
    transforms: pct
  - constant: 7
    toKeyId: K_PERIODS
`

func TestParseYAML(t *testing.T) {
	spec, err := Parse([]byte(hockeyMappingYAML))
	require.NoError(t, err)

	assert.Equal(t, "acme-hockey", spec.ID)
	assert.Equal(t, "acme.v2", spec.InputSchemaID)
	assert.Equal(t, "hockey", spec.OutputDictionaryID)
	assert.Equal(t, "1.0.0", spec.OutputDictionaryVersion)
	require.Len(t, spec.Rules, 4)

	assert.Equal(t, StringOrArray{"upper"}, spec.Rules[1].Transforms)
	assert.Equal(t, StringOrArray{"pct"}, spec.Rules[2].Transforms, "single string is a one-element list")
	assert.False(t, spec.Rules[0].HasConstant())
	assert.True(t, spec.Rules[3].HasConstant())
	assert.True(t, spec.Rules[3].Constant.Equal(value.Number(7)))

	assert.Equal(t, []string{"K_HOME_SCORE", "K_TOP_SCORER", "K_POSSESSION", "K_PERIODS"}, spec.Targets())
}

func TestParseJSON(t *testing.T) {
	spec, err := Parse([]byte(`{
		"id": "m",
		"outputDictionaryId": "d",
		"outputDictionaryVersion": "1.0.0",
		"rules": [
			{"fromPath": "a", "toKeyId": "A", "transforms": "number"},
			{"constant": null, "toKeyId": "B"},
			{"fromPath": "c", "toKeyId": "C", "transforms": ["lower", "upper"]}
		]
	}`))
	require.NoError(t, err)
	require.Len(t, spec.Rules, 3)

	assert.Equal(t, StringOrArray{"number"}, spec.Rules[0].Transforms)
	assert.True(t, spec.Rules[1].HasConstant(), "JSON null is a declared constant")
	assert.True(t, spec.Rules[1].Constant.IsNull())
	assert.Equal(t, StringOrArray{"lower", "upper"}, spec.Rules[2].Transforms)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("rules: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse mapping YAML")

	_, err = Parse([]byte(`{"rules": [{"transforms": 5}]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse mapping JSON")

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestWriteFileRoundTrip(t *testing.T) {
	spec, err := Parse([]byte(hockeyMappingYAML))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "mapping.yaml")
	require.NoError(t, WriteFile(spec, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "transforms: pct")
	assert.NotContains(t, string(data), "constant: null", "absent constants are omitted")

	back, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, spec.Targets(), back.Targets())
	assert.True(t, back.Rules[3].Constant.Equal(value.Number(7)))
}
