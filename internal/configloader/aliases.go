package configloader

import (
	"maps"
	"slices"

	"github.com/yaklabco/novelint/pkg/lint"
)

// NormalizeRuleID converts a rule ID, name or legacy textlint key to its
// canonical rule ID. Returns the empty string for unknown keys.
func NormalizeRuleID(registry *lint.Registry, key string) string {
	if registry == nil {
		return ""
	}
	id, _, ok := registry.Resolve(key)
	if !ok {
		return ""
	}
	return id
}

// IsTag returns true if key is a tag carried by at least one rule.
func IsTag(registry *lint.Registry, key string) bool {
	return len(GetTagRules(registry, key)) > 0
}

// GetTagRules returns the IDs of the rules tagged with tag, in ID order.
// Tags let a config toggle a group of rules at once, e.g. "symbols: false".
func GetTagRules(registry *lint.Registry, tag string) []string {
	if registry == nil {
		return nil
	}

	var ids []string
	for _, rule := range registry.Rules() {
		if slices.Contains(rule.Tags(), tag) {
			ids = append(ids, rule.ID())
		}
	}
	return ids
}

// GetAliasesForRule returns the sorted aliases registered for a rule ID.
func GetAliasesForRule(registry *lint.Registry, ruleID string) []string {
	if registry == nil {
		return nil
	}

	all := registry.Aliases()
	var aliases []string
	for _, alias := range slices.Sorted(maps.Keys(all)) {
		if all[alias] == ruleID {
			aliases = append(aliases, alias)
		}
	}
	return aliases
}
