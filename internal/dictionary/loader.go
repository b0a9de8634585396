package dictionary

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads, parses and validates a dictionary file (YAML or JSON).
func LoadFile(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dictionary file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes a YAML or JSON dictionary and validates it.
func Parse(data []byte) (*Dictionary, error) {
	raw, err := ParseRaw(data)
	if err != nil {
		return nil, err
	}

	return Validate(raw)
}

// ParseRaw decodes without validating. Documents starting with '{' are read
// as JSON, anything else as YAML.
func ParseRaw(data []byte) (*RawDictionary, error) {
	var raw RawDictionary

	var err error
	if IsJSON(data) {
		err = json.Unmarshal(data, &raw)
	} else {
		err = yaml.Unmarshal(data, &raw)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to parse dictionary: %w", err)
	}

	return &raw, nil
}

// IsJSON reports whether data looks like a JSON object or array.
func IsJSON(data []byte) bool {
	trimmed := bytes.TrimSpace(data)

	return len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[')
}

// Marshal serializes a dictionary to YAML in its wire shape.
func Marshal(d *Dictionary) ([]byte, error) {
	return yaml.Marshal(d.Raw())
}
