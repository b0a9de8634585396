package dictionary

import (
	"keyspace/value"
)

// KeyKind distinguishes point-in-time values from append-only occurrences.
type KeyKind string

const (
	// KindState keys hold the latest value.
	KindState KeyKind = "state"
	// KindEvent keys hold a capped, ordered list of occurrences.
	KindEvent KeyKind = "event"
)

// IsValid returns true if the kind is a recognized value.
func (k KeyKind) IsValid() bool {
	return k == KindState || k == KindEvent
}

// ProviderHint records where a provider is known to expose a key.
// Hints are informational and never used for resolution.
type ProviderHint struct {
	Provider string `json:"provider" yaml:"provider"`
	Path     string `json:"path,omitempty" yaml:"path,omitempty"`
	Note     string `json:"note,omitempty" yaml:"note,omitempty"`
}

// Key is a validated, normalized dictionary leaf.
type Key struct {
	// ID is the opaque, immutable, globally unique key id.
	ID string
	// Alias is the human-readable name.
	Alias string
	// ValueType is the declared shape of the key's value.
	ValueType value.Kind
	// Domain tag (sports, finance, weather, ...).
	Domain string
	// Kind is state or event.
	Kind KeyKind
	// CanonicalPath is the provider-agnostic location of the value inside a
	// normalized payload. Empty means the key is unmapped.
	CanonicalPath string
	// Scope is the UI scope/category.
	Scope    string
	DataType string
	Tags     []string
	// ProviderHints are informational only.
	ProviderHints []ProviderHint
	Unit          string
	Example       value.Value
}

// IsMapped reports whether the key has a canonical path.
func (k *Key) IsMapped() bool {
	return k.CanonicalPath != ""
}

// IsEvent reports whether the key is append-only.
func (k *Key) IsEvent() bool {
	return k.Kind == KindEvent
}

// Node is either a named branch (Key == nil) or a key leaf.
type Node struct {
	Name     string
	Children []*Node
	Key      *Key
}

// IsKey reports whether the node is a leaf.
func (n *Node) IsKey() bool {
	return n.Key != nil
}

// Dictionary is a validated key tree. Treat it as immutable; a change means
// a new version.
type Dictionary struct {
	ID      string
	Version string
	Domain  string
	Root    *Node
}

// Entry is one flattened key with the names of its ancestor branches.
type Entry struct {
	Key        *Key
	Breadcrumb []string
}
