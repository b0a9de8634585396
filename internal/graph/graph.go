package graph

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"keyspace/internal/dictionary"
)

// Node is a consumer node bound to zero or one key.
type Node struct {
	ID    string `json:"id" yaml:"id"`
	KeyID string `json:"keyId,omitempty" yaml:"keyId,omitempty"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// IsBound reports whether the node references a key.
func (n Node) IsBound() bool {
	return n.KeyID != ""
}

// Edge is a directed connection between two nodes.
type Edge struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// Graph is owned by the consuming editor; this package only reads it.
type Graph struct {
	ID    string `json:"id,omitempty" yaml:"id,omitempty"`
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges,omitempty" yaml:"edges,omitempty"`
}

// Node returns the node with the given id.
func (g *Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}

	return Node{}, false
}

// LoadFile reads a YAML or JSON graph from path.
func LoadFile(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read graph file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes a YAML or JSON graph.
func Parse(data []byte) (*Graph, error) {
	var g Graph

	if dictionary.IsJSON(data) {
		err := json.Unmarshal(data, &g)
		if err != nil {
			return nil, fmt.Errorf("failed to parse graph JSON: %w", err)
		}

		return &g, nil
	}

	err := yaml.Unmarshal(data, &g)
	if err != nil {
		return nil, fmt.Errorf("failed to parse graph YAML: %w", err)
	}

	return &g, nil
}
