package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/novelint/pkg/config"
	"github.com/yaklabco/novelint/pkg/lint"
	"github.com/yaklabco/novelint/pkg/novel"
)

func TestStyleSettings(t *testing.T) {
	t.Parallel()

	registry := newStyleEngine().Registry

	tests := []struct {
		name  string
		setup func(cfg *config.Config)
		want  map[string]any
	}{
		{
			name:  "empty config",
			setup: func(*config.Config) {},
			want:  map[string]any{},
		},
		{
			name: "keys normalized to rule names",
			setup: func(cfg *config.Config) {
				cfg.Rules["NS004"] = config.RuleConfig{Enabled: boolPtr(false)}
				cfg.Rules["max_arabic_numeral_digits"] = config.RuleConfigFromValue(4)
				cfg.Rules["space-after-marks"] = config.RuleConfig{Enabled: boolPtr(true)}
			},
			want: map[string]any{
				"even-dash-run":             false,
				"max-arabic-numeral-digits": 4,
				"space-after-marks":         true,
			},
		},
		{
			name: "severity only leaves the default",
			setup: func(cfg *config.Config) {
				cfg.Rules["NS003"] = config.RuleConfig{Severity: strPtr("error")}
			},
			want: map[string]any{},
		},
		{
			name: "numeral style option",
			setup: func(cfg *config.Config) {
				cfg.Rules["NS010"] = config.RuleConfig{
					Options: map[string]any{lint.OptionNumeralStyle: "units"},
				}
			},
			want: map[string]any{novel.KeyNumeralStyle: "units"},
		},
		{
			name: "cli enable keeps a configured value",
			setup: func(cfg *config.Config) {
				cfg.Rules["NS010"] = config.RuleConfigFromValue(5)
				cfg.Rules["NS002"] = config.RuleConfig{Enabled: boolPtr(false)}
				cfg.EnableRules = []string{"NS010", "space_after_marks"}
			},
			want: map[string]any{
				"max-arabic-numeral-digits": 5,
				"space-after-marks":         true,
			},
		},
		{
			name: "cli disable wins",
			setup: func(cfg *config.Config) {
				cfg.Rules["NS010"] = config.RuleConfigFromValue(5)
				cfg.DisableRules = []string{"max-arabic-numeral-digits"}
			},
			want: map[string]any{"max-arabic-numeral-digits": false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			tt.setup(cfg)

			assert.Equal(t, tt.want, lint.StyleSettings(cfg, registry))
		})
	}
}

func TestStyleSettings_NilConfig(t *testing.T) {
	t.Parallel()

	assert.Empty(t, lint.StyleSettings(nil, nil))
}

func TestStyleOptions(t *testing.T) {
	t.Parallel()

	registry := newStyleEngine().Registry

	cfg := config.NewConfig()
	cfg.Rules["even_number_dashes"] = config.RuleConfigFromValue(false)
	cfg.Rules["NS001"] = config.RuleConfigFromValue("「『")
	cfg.Rules["NS010"] = config.RuleConfigFromValue(3)

	opts := lint.StyleOptions(cfg, registry)

	assert.False(t, opts.Enabled(novel.RuleEvenDash))
	assert.True(t, opts.Enabled(novel.RuleEvenEllipsis))
	assert.Equal(t, "「『", opts.LeadingChars())
	assert.Equal(t, 3, opts.MaxNumeralDigits())
}
