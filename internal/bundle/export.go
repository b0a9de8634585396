package bundle

import (
	"encoding/json"
	"fmt"
	"time"

	"keyspace/internal/envelope"
	"keyspace/internal/mapping"
	"keyspace/internal/registry"
)

// ExportOption configures Export.
type ExportOption func(*exportOptions)

type exportOptions struct {
	now      func() time.Time
	mappings []*mapping.Spec
	sample   *envelope.Snapshot
}

// WithClock sets the exportedAt time source.
func WithClock(now func() time.Time) ExportOption {
	return func(o *exportOptions) {
		o.now = now
	}
}

// WithMappings embeds mapping specs.
func WithMappings(specs ...*mapping.Spec) ExportOption {
	return func(o *exportOptions) {
		o.mappings = append(o.mappings, specs...)
	}
}

// WithSampleSnapshot embeds a sample snapshot.
func WithSampleSnapshot(s *envelope.Snapshot) ExportOption {
	return func(o *exportOptions) {
		o.sample = s
	}
}

// Export builds a bundle from the scope's imported dictionaries. Built-ins
// ship with every installation and are not exported.
func Export(scope *registry.Scope, opts ...ExportOption) (*Bundle, error) {
	o := &exportOptions{now: time.Now}
	for _, opt := range opts {
		opt(o)
	}

	b := &Bundle{
		BundleVersion:  Version,
		ExportedAt:     o.now().UTC(),
		OrgID:          scope.OrgID(),
		Dictionaries:   []json.RawMessage{},
		Mappings:       o.mappings,
		SampleSnapshot: o.sample,
	}

	for _, d := range scope.Imports() {
		raw, err := json.Marshal(d.Raw())
		if err != nil {
			return nil, fmt.Errorf("encode dictionary %s: %w", d.ID, err)
		}

		b.Dictionaries = append(b.Dictionaries, raw)
	}

	return b, nil
}
