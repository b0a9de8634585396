package mapping

import (
	"fmt"

	"keyspace/internal/diagnostic"
	"keyspace/internal/match"
	"keyspace/internal/registry"
)

func ruleSubject(i int, rule *Rule) string {
	if rule.ToKeyID == "" {
		return fmt.Sprintf("rules[%d]", i)
	}

	return fmt.Sprintf("rules[%d] %s", i, rule.ToKeyID)
}

// validateSource checks that the rule has exactly one usable source.
func validateSource(res *diagnostic.Diagnostics, subject string, rule *Rule) {
	if rule.HasConstant() {
		if rule.FromPath != "" {
			res.AddWarning("constant_shadows_path",
				fmt.Sprintf("constant is used; fromPath %q is ignored", rule.FromPath), subject)
		}

		if len(rule.Transforms) > 0 {
			res.AddWarning("transforms_ignored", "transforms are not applied to constants", subject)
		}

		return
	}

	if rule.FromPath == "" {
		res.AddError("missing_source", "rule must specify fromPath or constant", subject)
		return
	}

	if err := ValidatePath(rule.FromPath); err != nil {
		res.AddError("invalid_path", err.Error(), subject)
	}
}

func validateTransforms(res *diagnostic.Diagnostics, subject string, rule *Rule, transforms *TransformRegistry) {
	if rule.HasConstant() {
		return
	}

	for _, name := range rule.Transforms {
		if transforms.Has(name) {
			continue
		}

		res.Add(diagnostic.Diagnostic{
			Severity:    diagnostic.SeverityWarning,
			Code:        "unknown_transform",
			Message:     fmt.Sprintf("transform %q is unknown and will be ignored", name),
			Subject:     subject,
			Suggestions: match.Suggest(name, match.Names(transforms.Names()...)),
		})
	}
}

// validateTarget checks the rule's key against the registry.
func validateTarget(res *diagnostic.Diagnostics, subject string, spec *Spec, rule *Rule, resolver registry.Resolver) {
	ref, ok := resolver.GetKey(rule.ToKeyID)
	if !ok {
		res.Add(diagnostic.Diagnostic{
			Severity:    diagnostic.SeverityWarning,
			Code:        "unknown_key",
			Message:     fmt.Sprintf("key %q is not in any registered dictionary", rule.ToKeyID),
			Subject:     subject,
			Suggestions: registry.SuggestKeys(resolver, rule.ToKeyID),
		})

		return
	}

	if spec.OutputDictionaryID != "" && ref.Dictionary.ID != spec.OutputDictionaryID {
		res.AddWarning("foreign_key",
			fmt.Sprintf("key %q belongs to dictionary %s, not %s", rule.ToKeyID, ref.Dictionary.ID, spec.OutputDictionaryID),
			subject)
	}

	if rule.HasConstant() {
		got, want := rule.Constant.Kind(), ref.Key.ValueType
		if match.ScoreKindCompatibility(got, want) != match.KindIdentical {
			res.AddWarning("type_mismatch",
				fmt.Sprintf("constant is %s but key %q is declared %s", got, rule.ToKeyID, want), subject)
		}
	}
}
