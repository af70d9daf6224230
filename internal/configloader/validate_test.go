package configloader

import (
	"testing"

	"github.com/yaklabco/novelint/pkg/config"
	"github.com/yaklabco/novelint/pkg/lint"
)

func ruleWithOptions(options map[string]any) config.RuleConfig {
	enabled := true
	return config.RuleConfig{Enabled: &enabled, Options: options}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		mutate       func(cfg *config.Config)
		wantErrors   int
		wantWarnings int
	}{
		{name: "defaults", mutate: func(*config.Config) {}},
		{name: "bad syntax", mutate: func(c *config.Config) { c.Syntax = "rst" }, wantErrors: 1},
		{name: "bad format", mutate: func(c *config.Config) { c.Format = "table" }, wantErrors: 1},
		{name: "bad rule format", mutate: func(c *config.Config) { c.RuleFormat = "short" }, wantErrors: 1},
		{name: "negative jobs", mutate: func(c *config.Config) { c.Jobs = -1 }, wantErrors: 1},
		{name: "bad backup mode", mutate: func(c *config.Config) { c.Backups.Mode = "cloud" }, wantErrors: 1},
		{name: "extension without dot", mutate: func(c *config.Config) { c.Extensions = []string{"txt"} }, wantErrors: 1},
		{
			name: "leading chars list",
			mutate: func(c *config.Config) {
				c.Rules["NS001"] = ruleWithOptions(map[string]any{config.OptionValue: []any{"「", "　"}})
			},
		},
		{
			name: "leading chars number",
			mutate: func(c *config.Config) {
				c.Rules["NS001"] = ruleWithOptions(map[string]any{config.OptionValue: 3})
			},
			wantErrors: 1,
		},
		{
			name: "numeral style",
			mutate: func(c *config.Config) {
				c.Rules["NS010"] = ruleWithOptions(map[string]any{lint.OptionNumeralStyle: "units"})
			},
		},
		{
			name: "bad numeral style",
			mutate: func(c *config.Config) {
				c.Rules["NS010"] = ruleWithOptions(map[string]any{lint.OptionNumeralStyle: "roman"})
			},
			wantErrors: 1,
		},
		{
			name: "parameter on a toggle rule",
			mutate: func(c *config.Config) {
				c.Rules["NS004"] = ruleWithOptions(map[string]any{config.OptionValue: 2})
			},
			wantWarnings: 1,
		},
		{
			name:   "tag key",
			mutate: func(c *config.Config) { c.Rules["symbols"] = config.RuleConfigFromValue(false) },
		},
		{
			name:         "unknown rule",
			mutate:       func(c *config.Config) { c.Rules["no-such-rule"] = config.RuleConfigFromValue(false) },
			wantWarnings: 1,
		},
		{
			name:         "unknown enable entry",
			mutate:       func(c *config.Config) { c.EnableRules = []string{"even-dash-run", "nope"} },
			wantWarnings: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			tt.mutate(cfg)

			result := Validate(cfg)
			if len(result.Errors) != tt.wantErrors {
				t.Errorf("errors = %v, want %d", result.Errors, tt.wantErrors)
			}
			if len(result.Warnings) != tt.wantWarnings {
				t.Errorf("warnings = %v, want %d", result.Warnings, tt.wantWarnings)
			}
		})
	}
}

func TestNormalizeRuleID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key  string
		want string
	}{
		{"NS004", "NS004"},
		{"even-dash-run", "NS004"},
		{"even_number_dashes", "NS004"},
		{"max_arabic_numeral_digits", "NS010"},
		{"symbols", ""},
		{"MD001", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeRuleID(lint.DefaultRegistry, tt.key); got != tt.want {
				t.Errorf("NormalizeRuleID(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestGetTagRules(t *testing.T) {
	t.Parallel()

	got := GetTagRules(lint.DefaultRegistry, "symbols")
	want := []string{"NS003", "NS004", "NS006", "NS007", "NS009"}
	if len(got) != len(want) {
		t.Fatalf("GetTagRules(symbols) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("GetTagRules(symbols)[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if IsTag(lint.DefaultRegistry, "headings") {
		t.Error("expected headings not to be a tag")
	}
}

func TestGetAliasesForRule(t *testing.T) {
	t.Parallel()

	aliases := GetAliasesForRule(lint.DefaultRegistry, "NS003")
	if len(aliases) != 1 || aliases[0] != "even_number_ellipsises" {
		t.Errorf("GetAliasesForRule(NS003) = %v", aliases)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("NOVELINT_SYNTAX", "text")
	t.Setenv("NOVELINT_FIX", "1")
	t.Setenv("NOVELINT_JOBS", "3")
	t.Setenv("NOVELINT_IGNORE", "drafts/**, notes/*.md ,")
	t.Setenv("NOVELINT_LEADING_CHARS", "　「")

	cfg := config.NewConfig()
	if err := LoadFromEnv(cfg); err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}

	if cfg.Syntax != config.SyntaxText {
		t.Errorf("syntax = %q", cfg.Syntax)
	}
	if !cfg.Fix {
		t.Error("expected fix to be enabled")
	}
	if cfg.Jobs != 3 {
		t.Errorf("jobs = %d", cfg.Jobs)
	}
	if len(cfg.Ignore) != 2 || cfg.Ignore[1] != "notes/*.md" {
		t.Errorf("ignore = %v", cfg.Ignore)
	}
	if got := cfg.Rules["leading-paragraph-chars"].Options[config.OptionValue]; got != "　「" {
		t.Errorf("leading chars = %v", got)
	}
}

func TestLoadFromEnv_InvalidValue(t *testing.T) {
	t.Setenv("NOVELINT_JOBS", "many")

	if err := LoadFromEnv(config.NewConfig()); err == nil {
		t.Error("expected error for non-integer jobs")
	}
}

func TestGetEnvVarName(t *testing.T) {
	t.Parallel()

	if got := GetEnvVarName("backups.mode"); got != "NOVELINT_BACKUPS_MODE" {
		t.Errorf("GetEnvVarName(backups.mode) = %q", got)
	}
	if got := GetEnvVarName("nope"); got != "" {
		t.Errorf("GetEnvVarName(nope) = %q", got)
	}
	if _, ok := ListEnvVars()["NOVELINT_MAX_DIGITS"]; !ok {
		t.Error("expected NOVELINT_MAX_DIGITS to be listed")
	}
}
