package mapping

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"keyspace/internal/dictionary"
)

// LoadFile loads and parses a YAML or JSON mapping spec from path.
func LoadFile(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes a mapping spec. JSON is detected by its leading brace;
// everything else is read as YAML.
func Parse(data []byte) (*Spec, error) {
	var spec Spec

	if dictionary.IsJSON(data) {
		err := json.Unmarshal(data, &spec)
		if err != nil {
			return nil, fmt.Errorf("failed to parse mapping JSON: %w", err)
		}

		return &spec, nil
	}

	err := yaml.Unmarshal(data, &spec)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mapping YAML: %w", err)
	}

	return &spec, nil
}

// Marshal serializes a spec to YAML.
func Marshal(spec *Spec) ([]byte, error) {
	return yaml.Marshal(spec)
}

// WriteFile writes spec to path as YAML.
func WriteFile(spec *Spec, path string) error {
	data, err := Marshal(spec)
	if err != nil {
		return fmt.Errorf("failed to marshal mapping: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write mapping file %s: %w", path, err)
	}

	return nil
}
