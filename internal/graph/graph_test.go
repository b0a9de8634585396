package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keyspace/internal/diagnostic"
	"keyspace/internal/dictionary"
	"keyspace/internal/registry"
)

const hockeyDict = `{"dictionaryId":"hockey","version":"1.0.0","root":{"type":"node","name":"game","children":[
	{"type":"key","keyId":"K_HOME_SCORE","alias":"home.score","valueType":"number","kind":"state","canonicalPath":"game.home.score"},
	{"type":"key","keyId":"K_AWAY_SCORE","alias":"away.score","valueType":"number","kind":"state","canonicalPath":"game.away.score"}]}}`

func scope(t *testing.T) *registry.Scope {
	t.Helper()

	d, err := dictionary.Parse([]byte(hockeyDict))
	require.NoError(t, err)

	r, err := registry.New(nil, []*dictionary.Dictionary{d})
	require.NoError(t, err)

	s, err := r.Scope(context.Background(), "org1")
	require.NoError(t, err)

	return s
}

func TestOrphanScenario(t *testing.T) {
	s := scope(t)
	g := &Graph{Nodes: []Node{{ID: "n1", KeyID: "UNKNOWN"}}}

	report := Validate(g, s)
	assert.Equal(t, StatusFail, report.Status)
	require.Len(t, report.Results, 1)
	assert.Equal(t, diagnostic.SeverityError, report.Results[0].Severity)
	assert.Equal(t, "n1", report.Results[0].NodeID)
	assert.Equal(t, []string{"n1"}, report.Offending)
	assert.True(t, report.IsOffending("n1"))

	g.Nodes[0].KeyID = ""

	report = Validate(g, s)
	assert.Equal(t, StatusPass, report.Status)
	assert.Empty(t, report.Results)
	assert.Empty(t, report.Offending)
}

func TestEmptyGraphPasses(t *testing.T) {
	for _, g := range []*Graph{nil, {}, {Nodes: []Node{{ID: "a"}, {ID: "b"}}}} {
		report := Validate(g, scope(t))
		assert.Equal(t, StatusPass, report.Status)
		assert.NotNil(t, report.Results)
		assert.NotNil(t, report.Offending)
	}
}

func TestBoundNodesResolve(t *testing.T) {
	g := &Graph{Nodes: []Node{
		{ID: "a", KeyID: "K_HOME_SCORE"},
		{ID: "b", KeyID: "K_HOME_SCOR"},
		{ID: "c", KeyID: "K_AWAY_SCORE"},
		{ID: "d", KeyID: "GONE"},
	}}

	report := Validate(g, scope(t))
	assert.Equal(t, StatusFail, report.Status)
	assert.Equal(t, []string{"b", "d"}, report.Offending)
	assert.Equal(t, []string{"K_HOME_SCORE"}, report.Results[0].Suggestions)
	assert.Empty(t, report.Results[1].Suggestions)
}

func TestNilResolverOrphansEveryBinding(t *testing.T) {
	g := &Graph{Nodes: []Node{{ID: "a", KeyID: "K_HOME_SCORE"}, {ID: "b"}}}

	report := Validate(g, nil)
	assert.Equal(t, []string{"a"}, report.Offending)

	var s *registry.Scope

	report = Validate(g, s)
	assert.Equal(t, StatusFail, report.Status)
	assert.Equal(t, []string{"a"}, report.Offending)
	assert.Empty(t, report.Results[0].Suggestions)
}

func TestDuplicateNodeIDsReportedOnce(t *testing.T) {
	g := &Graph{Nodes: []Node{{ID: "a", KeyID: "X"}, {ID: "a", KeyID: "Y"}}}

	report := Validate(g, scope(t))
	assert.Len(t, report.Results, 2)
	assert.Equal(t, []string{"a"}, report.Offending)
}

func TestChecks(t *testing.T) {
	g := &Graph{
		Nodes: []Node{{ID: "a", KeyID: "K_HOME_SCORE"}, {ID: "b"}},
		Edges: []Edge{{From: "a", To: "b"}, {From: "a", To: "ghost"}},
	}

	report := Validate(g, scope(t), WithCheck(DanglingEdges), WithCheck(UnboundNodes))
	assert.Equal(t, StatusPass, report.Status, "warnings and infos do not fail")
	require.Len(t, report.Results, 2)
	assert.Equal(t, "dangling_edge", report.Results[0].Code)
	assert.Equal(t, "ghost", report.Results[0].NodeID)
	assert.Equal(t, "unbound_node", report.Results[1].Code)

	blocking := func(_ *Graph, _ registry.Resolver, res *diagnostic.Diagnostics) {
		res.AddError("custom", "editor says no", "")
	}

	report = Validate(g, scope(t), WithCheck(blocking))
	assert.Equal(t, StatusFail, report.Status)
	assert.Empty(t, report.Offending)
}

func TestParse(t *testing.T) {
	g, err := Parse([]byte(`
id: scoreboard
nodes:
  - id: n1
    keyId: K_HOME_SCORE
    label: Home
  - id: n2
edges:
  - from: n1
    to: n2
`))
	require.NoError(t, err)
	assert.Equal(t, "scoreboard", g.ID)
	require.Len(t, g.Nodes, 2)
	assert.True(t, g.Nodes[0].IsBound())
	assert.False(t, g.Nodes[1].IsBound())

	n, ok := g.Node("n1")
	require.True(t, ok)
	assert.Equal(t, "Home", n.Label)

	j, err := Parse([]byte(`{"nodes":[{"id":"x","keyId":"K"}]}`))
	require.NoError(t, err)
	assert.Equal(t, "K", j.Nodes[0].KeyID)

	_, err = Parse([]byte(`{"nodes":`))
	require.Error(t, err)
}
