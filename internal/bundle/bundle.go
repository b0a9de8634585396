// Package bundle reads and writes snapshot bundles, the export/import unit
// that carries an organization's dictionaries between environments.
//
// Import re-validates every embedded dictionary on its own: a dictionary that
// breaks the contract is rejected with its id and reason while the rest of
// the bundle is imported.
package bundle

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"keyspace/internal/envelope"
	"keyspace/internal/mapping"
)

// Version is the only bundle version this package reads and writes.
const Version = "1.0.0"

// ErrUnsupportedVersion is returned for bundles of another version.
var ErrUnsupportedVersion = errors.New("unsupported bundle version")

// Bundle is the wire shape. Dictionaries stay raw so that one malformed
// entry does not prevent decoding the others.
type Bundle struct {
	BundleVersion  string             `json:"bundleVersion"`
	ExportedAt     time.Time          `json:"exportedAt"`
	OrgID          string             `json:"orgId"`
	Dictionaries   []json.RawMessage  `json:"dictionaries"`
	Mappings       []*mapping.Spec    `json:"mappings,omitempty"`
	Graphs         []json.RawMessage  `json:"graphs,omitempty"`
	SampleSnapshot *envelope.Snapshot `json:"sampleSnapshot,omitempty"`
}

// Decode parses a bundle and checks its version.
func Decode(data []byte) (*Bundle, error) {
	var b Bundle

	err := json.Unmarshal(data, &b)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bundle: %w", err)
	}

	if b.BundleVersion != Version {
		return nil, fmt.Errorf("%w %q (want %s)", ErrUnsupportedVersion, b.BundleVersion, Version)
	}

	return &b, nil
}

// LoadFile reads and decodes a bundle file.
func LoadFile(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bundle %s: %w", path, err)
	}

	return Decode(data)
}

// Encode renders b as indented JSON.
func Encode(b *Bundle) ([]byte, error) {
	return json.MarshalIndent(b, "", "  ")
}
