package rules

import (
	"github.com/yaklabco/novelint/pkg/config"
	"github.com/yaklabco/novelint/pkg/lint"
	"github.com/yaklabco/novelint/pkg/novel"
)

// All returns a fresh instance of every built-in rule in ID order.
func All() []*StyleRule {
	return []*StyleRule{
		NewLeadingCharsRule(),           // NS001
		NewSpaceAfterMarksRule(),        // NS002
		NewEvenEllipsisRule(),           // NS003
		NewEvenDashRule(),               // NS004
		NewRepeatedPeriodCommaRule(),    // NS005
		NewRepeatedInterpunctRule(),     // NS006
		NewRepeatedProlongedMarkRule(),  // NS007
		NewPunctuationBeforeCloseRule(), // NS008
		NewMinusSignRule(),              // NS009
		NewMaxNumeralDigitsRule(),       // NS010
	}
}

// RegisterAll registers all built-in rules with the given registry.
func RegisterAll(registry *lint.Registry) {
	for _, rule := range All() {
		registry.Register(rule)
	}
}

// RegisterLegacyAliases registers the option names of the textlint
// preset (for example "even_number_dashes") as aliases, so configurations
// written for it keep working.
func RegisterLegacyAliases(registry *lint.Registry) {
	ids := make(map[novel.RuleKey]string)
	for _, rule := range All() {
		ids[rule.Key()] = rule.ID()
	}

	for alias, key := range novel.LegacyKeys() {
		registry.RegisterAlias(alias, ids[key])
	}
}

// ruleInfos describes the registered rules for config templates.
func ruleInfos() []config.RuleInfo {
	rules := lint.DefaultRegistry.Rules()
	infos := make([]config.RuleInfo, 0, len(rules))

	for _, rule := range rules {
		info := config.RuleInfo{
			ID:          rule.ID(),
			Name:        rule.Name(),
			Description: rule.Description(),
			Enabled:     rule.DefaultEnabled(),
			Severity:    rule.DefaultSeverity(),
			Tags:        rule.Tags(),
			CanFix:      rule.CanFix(),
		}

		switch novel.RuleKey(rule.Name()) {
		case novel.RuleLeadingChars:
			info.Value = novel.DefaultLeadingChars
		case novel.RuleMaxNumeralDigits:
			info.Value = novel.DefaultMaxNumeralDigits
		}

		infos = append(infos, info)
	}

	return infos
}

// init registers all built-in rules with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic rule registration
func init() {
	RegisterAll(lint.DefaultRegistry)
	RegisterLegacyAliases(lint.DefaultRegistry)
	config.DefaultRuleInfoProvider = ruleInfos
}
