package lint

import (
	"maps"
	"slices"

	"github.com/yaklabco/novelint/pkg/config"
	"github.com/yaklabco/novelint/pkg/novel"
)

// OptionNumeralStyle is the max-arabic-numeral-digits option selecting the
// kanji rendering of its fix ("digits" or "units").
const OptionNumeralStyle = "style"

// StyleSettings flattens the rule configuration into the key/value mapping
// read by novel.Resolve. Rule keys may be IDs, names or legacy aliases when
// reg knows them. A disabled rule maps to false; a rule with an
// options.value maps to that value; an explicitly enabled rule maps to
// true. CLI --enable and --disable are applied last, and --enable leaves a
// configured parameter in place.
func StyleSettings(cfg *config.Config, reg *Registry) map[string]any {
	settings := make(map[string]any)
	if cfg == nil {
		return settings
	}

	for _, key := range slices.Sorted(maps.Keys(cfg.Rules)) {
		rc := cfg.Rules[key]
		name := styleKey(reg, key)

		value, hasValue := rc.Options[config.OptionValue]
		switch {
		case rc.Enabled != nil && !*rc.Enabled:
			settings[name] = false
		case hasValue:
			settings[name] = value
		case rc.Enabled != nil:
			settings[name] = true
		}

		if name == string(novel.RuleMaxNumeralDigits) {
			if style, ok := rc.Options[OptionNumeralStyle]; ok {
				settings[novel.KeyNumeralStyle] = style
			}
		}
	}

	for _, key := range cfg.EnableRules {
		name := styleKey(reg, key)
		current, ok := settings[name]
		if off, isBool := current.(bool); !ok || (isBool && !off) {
			settings[name] = true
		}
	}
	for _, key := range cfg.DisableRules {
		settings[styleKey(reg, key)] = false
	}

	return settings
}

// StyleOptions resolves the style options for cfg.
func StyleOptions(cfg *config.Config, reg *Registry) novel.Options {
	return novel.Resolve(StyleSettings(cfg, reg))
}

// styleKey maps a configured rule key to the rule's name.
func styleKey(reg *Registry, key string) string {
	if reg != nil {
		if _, rule, ok := reg.Resolve(key); ok {
			return rule.Name()
		}
	}
	return key
}
