package dictionary

import (
	"keyspace/value"
)

// Node type discriminators used in the wire shape.
const (
	NodeTypeBranch = "node"
	NodeTypeKey    = "key"
)

// RawDictionary is the unvalidated wire shape of a dictionary.
type RawDictionary struct {
	DictionaryID string   `json:"dictionaryId" yaml:"dictionaryId"`
	Version      string   `json:"version" yaml:"version"`
	Domain       string   `json:"domain,omitempty" yaml:"domain,omitempty"`
	Root         *RawNode `json:"root" yaml:"root"`
}

// RawNode is the unvalidated wire shape of a branch or key node.
type RawNode struct {
	Type string `json:"type" yaml:"type"`

	// Branch fields.
	Name     string     `json:"name,omitempty" yaml:"name,omitempty"`
	Children []*RawNode `json:"children,omitempty" yaml:"children,omitempty"`

	// Key fields.
	KeyID         string         `json:"keyId,omitempty" yaml:"keyId,omitempty"`
	Alias         string         `json:"alias,omitempty" yaml:"alias,omitempty"`
	ValueType     string         `json:"valueType,omitempty" yaml:"valueType,omitempty"`
	Domain        string         `json:"domain,omitempty" yaml:"domain,omitempty"`
	Kind          string         `json:"kind,omitempty" yaml:"kind,omitempty"`
	CanonicalPath *string        `json:"canonicalPath,omitempty" yaml:"canonicalPath,omitempty"`
	Path          *string        `json:"path,omitempty" yaml:"path,omitempty"`
	Scope         string         `json:"scope,omitempty" yaml:"scope,omitempty"`
	DataType      string         `json:"dataType,omitempty" yaml:"dataType,omitempty"`
	Tags          []string       `json:"tags,omitempty" yaml:"tags,omitempty"`
	ProviderHints []ProviderHint `json:"providerHints,omitempty" yaml:"providerHints,omitempty"`
	Unit          string         `json:"unit,omitempty" yaml:"unit,omitempty"`
	Example       value.Value    `json:"example,omitzero" yaml:"example,omitempty"`
}

// Raw converts a validated dictionary back into its wire shape. Only
// canonicalPath is emitted; the legacy path does not survive normalization.
func (d *Dictionary) Raw() *RawDictionary {
	return &RawDictionary{
		DictionaryID: d.ID,
		Version:      d.Version,
		Domain:       d.Domain,
		Root:         rawNode(d.Root),
	}
}

func rawNode(n *Node) *RawNode {
	if n == nil {
		return nil
	}

	if !n.IsKey() {
		out := &RawNode{Type: NodeTypeBranch, Name: n.Name}
		for _, c := range n.Children {
			out.Children = append(out.Children, rawNode(c))
		}

		return out
	}

	k := n.Key
	out := &RawNode{
		Type:          NodeTypeKey,
		KeyID:         k.ID,
		Alias:         k.Alias,
		ValueType:     valueTypeName(k.ValueType),
		Domain:        k.Domain,
		Kind:          string(k.Kind),
		Scope:         k.Scope,
		DataType:      k.DataType,
		Tags:          k.Tags,
		ProviderHints: k.ProviderHints,
		Unit:          k.Unit,
		Example:       k.Example,
	}

	if k.CanonicalPath != "" {
		p := k.CanonicalPath
		out.CanonicalPath = &p
	}

	return out
}

// valueTypeName is the dictionary spelling of a value kind.
func valueTypeName(k value.Kind) string {
	if k == value.KindBool {
		return "boolean"
	}

	return k.String()
}
