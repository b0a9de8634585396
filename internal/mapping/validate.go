package mapping

import (
	"fmt"

	"keyspace/internal/diagnostic"
	"keyspace/internal/dictionary"
	"keyspace/internal/registry"
)

// Validate checks spec structurally and, when resolver is non-nil, against
// the dictionaries it resolves. Malformed rules are errors; unresolvable
// references and questionable rules are warnings. A nil transforms registry
// means DefaultTransforms.
func Validate(spec *Spec, resolver registry.Resolver, transforms *TransformRegistry) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if spec == nil {
		res.AddError("mapping_is_nil", "mapping spec is nil", "")
		return res
	}

	if transforms == nil {
		transforms = DefaultTransforms()
	}

	validateHeader(res, spec)

	seenTargets := map[string]int{}

	for i := range spec.Rules {
		rule := &spec.Rules[i]
		subject := ruleSubject(i, rule)

		if rule.ToKeyID == "" {
			res.AddError("missing_target", "rule must specify toKeyId", subject)
			continue
		}

		if prev, dup := seenTargets[rule.ToKeyID]; dup {
			res.AddWarning("duplicate_target",
				fmt.Sprintf("rules[%d] overrides rules[%d] for key %q", i, prev, rule.ToKeyID), subject)
		}

		seenTargets[rule.ToKeyID] = i

		validateSource(res, subject, rule)
		validateTransforms(res, subject, rule, transforms)

		if resolver != nil {
			validateTarget(res, subject, spec, rule, resolver)
		}
	}

	return res
}

func validateHeader(res *diagnostic.Diagnostics, spec *Spec) {
	if spec.ID == "" {
		res.AddError("missing_id", "mapping spec must have an id", "")
	}

	if spec.OutputDictionaryID == "" {
		res.AddError("missing_output_dictionary", "outputDictionaryId is required", spec.ID)
	}

	switch {
	case spec.OutputDictionaryVersion == "":
		res.AddError("missing_output_version",
			"outputDictionaryVersion is required; snapshots without it are rejected by the bus", spec.ID)
	case !dictionary.IsSemver(spec.OutputDictionaryVersion):
		res.AddWarning("invalid_output_version",
			fmt.Sprintf("outputDictionaryVersion %q is not a semantic version", spec.OutputDictionaryVersion), spec.ID)
	}

	if len(spec.Rules) == 0 {
		res.AddWarning("no_rules", "mapping spec has no rules", spec.ID)
	}
}
