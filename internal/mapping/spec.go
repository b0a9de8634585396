package mapping

import (
	"keyspace/value"
)

// Spec maps one provider payload shape onto one output dictionary.
type Spec struct {
	ID string `json:"id" yaml:"id"`
	// InputSchemaID describes the provider shape; informational only.
	InputSchemaID           string `json:"inputSchemaId,omitempty" yaml:"inputSchemaId,omitempty"`
	OutputDictionaryID      string `json:"outputDictionaryId" yaml:"outputDictionaryId"`
	OutputDictionaryVersion string `json:"outputDictionaryVersion" yaml:"outputDictionaryVersion"`
	Rules                   []Rule `json:"rules" yaml:"rules"`
}

// Rule is either a constant assignment or a path resolution.
//
// A declared Constant wins: FromPath and Transforms are ignored. In YAML an
// explicit `constant: null` is indistinguishable from no constant; use JSON
// to assign null.
type Rule struct {
	FromPath   string        `json:"fromPath,omitempty" yaml:"fromPath,omitempty"`
	ToKeyID    string        `json:"toKeyId" yaml:"toKeyId"`
	Constant   value.Value   `json:"constant,omitzero" yaml:"constant,omitempty"`
	Transforms StringOrArray `json:"transforms,omitempty" yaml:"transforms,omitempty"`
}

// HasConstant reports whether the rule assigns a constant.
func (r *Rule) HasConstant() bool {
	return !r.Constant.IsAbsent()
}

// Targets returns the distinct target key ids in rule order.
func (s *Spec) Targets() []string {
	seen := make(map[string]struct{}, len(s.Rules))
	out := make([]string, 0, len(s.Rules))

	for _, r := range s.Rules {
		if r.ToKeyID == "" {
			continue
		}

		if _, dup := seen[r.ToKeyID]; dup {
			continue
		}

		seen[r.ToKeyID] = struct{}{}
		out = append(out, r.ToKeyID)
	}

	return out
}
