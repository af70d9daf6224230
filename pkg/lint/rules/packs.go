package rules

import (
	"github.com/yaklabco/novelint/pkg/config"
)

// Pack represents a named preset of rule configurations.
type Pack struct {
	Name        string
	Description string
	Rules       map[string]config.RuleConfig
}

// StandardPack returns the default house style: every rule on, warnings.
func StandardPack() Pack {
	return Pack{
		Name:        "standard",
		Description: "Standard pack: every rule as a warning",
		Rules: map[string]config.RuleConfig{
			"NS001": enabled("warning"), // leading-paragraph-chars
			"NS002": enabled("warning"), // space-after-marks
			"NS003": enabled("warning"), // even-ellipsis-run
			"NS004": enabled("warning"), // even-dash-run
			"NS005": enabled("warning"), // no-repeated-period-comma
			"NS006": enabled("warning"), // no-repeated-interpunct
			"NS007": enabled("warning"), // no-repeated-prolonged-mark
			"NS008": enabled("warning"), // no-punctuation-before-closing-quote
			"NS009": enabled("warning"), // minus-sign-before-digit-only
			"NS010": enabled("warning"), // max-arabic-numeral-digits
		},
	}
}

// StrictPack returns every rule as an error, for manuscripts headed to
// print.
func StrictPack() Pack {
	return Pack{
		Name:        "strict",
		Description: "Strict pack: every rule as an error",
		Rules: map[string]config.RuleConfig{
			"NS001": enabled("error"),
			"NS002": enabled("error"),
			"NS003": enabled("error"),
			"NS004": enabled("error"),
			"NS005": enabled("error"),
			"NS006": enabled("error"),
			"NS007": enabled("error"),
			"NS008": enabled("error"),
			"NS009": enabled("error"),
			"NS010": enabled("error"),
		},
	}
}

// WebPack returns rules for web novels, where paragraphs are separated by
// blank lines and not indented.
func WebPack() Pack {
	return Pack{
		Name:        "web",
		Description: "Web novel pack: no paragraph indentation, symbols as warnings",
		Rules: map[string]config.RuleConfig{
			"NS001": disabled(),         // leading-paragraph-chars
			"NS002": enabled("warning"), // space-after-marks
			"NS003": enabled("warning"), // even-ellipsis-run
			"NS004": enabled("warning"), // even-dash-run
			"NS005": enabled("warning"), // no-repeated-period-comma
			"NS006": enabled("warning"), // no-repeated-interpunct
			"NS007": enabled("info"),    // no-repeated-prolonged-mark
			"NS008": enabled("warning"), // no-punctuation-before-closing-quote
			"NS009": enabled("warning"), // minus-sign-before-digit-only
			"NS010": enabled("info"),    // max-arabic-numeral-digits
		},
	}
}

// RelaxedPack returns only the symbol rules, as information. Suitable
// for drafts.
func RelaxedPack() Pack {
	return Pack{
		Name:        "relaxed",
		Description: "Relaxed pack: ellipsis and dash runs only, minimal noise",
		Rules: map[string]config.RuleConfig{
			"NS001": disabled(),
			"NS002": disabled(),
			"NS003": enabled("info"), // even-ellipsis-run
			"NS004": enabled("info"), // even-dash-run
			"NS005": disabled(),
			"NS006": disabled(),
			"NS007": disabled(),
			"NS008": disabled(),
			"NS009": disabled(),
			"NS010": disabled(),
		},
	}
}

// Packs returns all built-in rule packs.
func Packs() []Pack {
	return []Pack{
		StandardPack(),
		StrictPack(),
		WebPack(),
		RelaxedPack(),
	}
}

// PackByName returns a pack by name, or nil if not found.
func PackByName(name string) *Pack {
	for _, p := range Packs() {
		if p.Name == name {
			return &p
		}
	}
	return nil
}

// PackNames returns the names of all available packs.
func PackNames() []string {
	packs := Packs()
	names := make([]string, len(packs))
	for i, p := range packs {
		names[i] = p.Name
	}
	return names
}

// Apply copies the pack's rule settings into cfg, keyed by rule ID.
// Existing entries for the same rule are replaced.
func (p Pack) Apply(cfg *config.Config) {
	if cfg.Rules == nil {
		cfg.Rules = make(map[string]config.RuleConfig, len(p.Rules))
	}
	for id, rc := range p.Rules {
		cfg.Rules[id] = rc.Clone()
	}
}

// enabled creates a RuleConfig with the rule enabled and the given severity.
func enabled(sev string) config.RuleConfig {
	on := true
	return config.RuleConfig{
		Enabled:  &on,
		Severity: &sev,
	}
}

func disabled() config.RuleConfig {
	off := false
	return config.RuleConfig{Enabled: &off}
}
