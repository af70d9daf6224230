package lint

import (
	"maps"
	"slices"

	"github.com/yaklabco/novelint/pkg/config"
)

// ResolvedRule pairs a Rule with its resolved configuration.
type ResolvedRule struct {
	Rule     Rule
	Enabled  bool
	Severity config.Severity

	// AutoFix indicates whether fixes from this rule are applied.
	AutoFix bool

	// Config is the rule-specific configuration (may be nil).
	Config *config.RuleConfig
}

// ResolveRules returns the enabled rules in ID order with their resolved
// configuration.
func ResolveRules(registry *Registry, cfg *config.Config) []ResolvedRule {
	var resolved []ResolvedRule

	for _, rule := range registry.Rules() {
		rr := resolveRule(registry, rule, cfg)
		if rr.Enabled {
			resolved = append(resolved, rr)
		}
	}

	return resolved
}

// resolveRule applies, in increasing precedence: rule defaults, the
// config-wide default severity, the rule's config entry, then the CLI
// --enable, --disable and --fix-rules lists.
func resolveRule(registry *Registry, rule Rule, cfg *config.Config) ResolvedRule {
	rr := ResolvedRule{
		Rule:     rule,
		Enabled:  rule.DefaultEnabled(),
		Severity: rule.DefaultSeverity(),
		AutoFix:  rule.CanFix(),
	}

	if cfg == nil {
		return rr
	}

	if cfg.SeverityDefault != "" {
		rr.Severity = config.Severity(cfg.SeverityDefault)
	}

	if ruleCfg, ok := lookupRuleConfig(registry, cfg, rule); ok {
		rr.Config = &ruleCfg

		if ruleCfg.Enabled != nil {
			rr.Enabled = *ruleCfg.Enabled
		}
		if ruleCfg.Severity != nil {
			rr.Severity = config.Severity(*ruleCfg.Severity)
		}
		if ruleCfg.AutoFix != nil {
			rr.AutoFix = *ruleCfg.AutoFix && rule.CanFix()
		}
	}

	matches := func(key string) bool {
		id, _, ok := registry.Resolve(key)
		return ok && id == rule.ID()
	}

	if slices.ContainsFunc(cfg.EnableRules, matches) {
		rr.Enabled = true
	}
	if slices.ContainsFunc(cfg.DisableRules, matches) {
		rr.Enabled = false
	}
	if len(cfg.FixRules) > 0 {
		rr.AutoFix = rule.CanFix() && slices.ContainsFunc(cfg.FixRules, matches)
	}

	if !cfg.Fix {
		rr.AutoFix = false
	}

	return rr
}

// lookupRuleConfig finds the rule's entry keyed by ID, then by name, then
// by any alias the registry knows.
func lookupRuleConfig(registry *Registry, cfg *config.Config, rule Rule) (config.RuleConfig, bool) {
	if rc, ok := cfg.Rules[rule.ID()]; ok {
		return rc, true
	}
	if rc, ok := cfg.Rules[rule.Name()]; ok {
		return rc, true
	}

	for _, key := range slices.Sorted(maps.Keys(cfg.Rules)) {
		if id, _, ok := registry.Resolve(key); ok && id == rule.ID() {
			return cfg.Rules[key], true
		}
	}
	return config.RuleConfig{}, false
}
