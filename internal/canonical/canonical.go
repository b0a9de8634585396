// Package canonical projects the bus's current records onto the
// provider-agnostic document shape defined by the dictionaries' canonical
// paths.
package canonical

import (
	"fmt"

	"github.com/tidwall/sjson"

	"keyspace/internal/bus"
	"keyspace/internal/mapping"
	"keyspace/internal/registry"
	"keyspace/value"
)

// Source is the read side of the bus.
type Source interface {
	Keys() []string
	GetValue(keyID string) (bus.Record, bool)
}

var _ Source = (*bus.Bus)(nil)

// Projection is a canonical JSON document plus the keys that could not be
// placed in it.
type Projection struct {
	JSON []byte
	// Unknown keys are not in any dictionary of the scope.
	Unknown []string
	// Unmapped keys have no canonical path.
	Unmapped []string
	// Conflicts are keys whose path collides with a scalar already placed.
	Conflicts []string
}

// Project writes every record of src at its key's canonical path, in key id
// order. With a nil resolver every key is reported as unknown.
func Project(src Source, resolver registry.Resolver) (*Projection, error) {
	p := &Projection{JSON: []byte("{}")}

	if src == nil {
		return p, nil
	}

	for _, keyID := range src.Keys() {
		rec, ok := src.GetValue(keyID)
		if !ok {
			continue
		}

		var (
			ref   registry.Ref
			known bool
		)

		if resolver != nil {
			ref, known = resolver.GetKey(keyID)
		}

		if !known {
			p.Unknown = append(p.Unknown, keyID)
			continue
		}

		if !ref.Key.IsMapped() {
			p.Unmapped = append(p.Unmapped, keyID)
			continue
		}

		raw, err := rec.Value.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", keyID, err)
		}

		doc, err := sjson.SetRawBytes(p.JSON, mapping.JSONPath(ref.Key.CanonicalPath), raw)
		if err != nil {
			p.Conflicts = append(p.Conflicts, keyID)
			continue
		}

		p.JSON = doc
	}

	return p, nil
}

// Get resolves a canonical path in the projected document.
func (p *Projection) Get(path string) value.Value {
	return mapping.ResolveJSON(p.JSON, path)
}
