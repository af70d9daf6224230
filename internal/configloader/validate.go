package configloader

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/novelint/pkg/config"
	"github.com/yaklabco/novelint/pkg/fsutil"
	"github.com/yaklabco/novelint/pkg/kansuji"
	"github.com/yaklabco/novelint/pkg/lint"
	"github.com/yaklabco/novelint/pkg/novel"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "rules.NS004.severity").
	Field string

	Value any

	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown rules).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) addError(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) addWarning(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// IsValidSeverity returns true if the severity string is valid.
func IsValidSeverity(s string) bool {
	switch config.Severity(s) {
	case config.SeverityError, config.SeverityWarning, config.SeverityInfo:
		return true
	default:
		return false
	}
}

// IsValidFlavor returns true if the flavor is valid.
func IsValidFlavor(f config.Flavor) bool {
	return f == config.FlavorCommonMark || f == config.FlavorGFM
}

// IsValidSyntax returns true if the syntax is valid.
func IsValidSyntax(s config.Syntax) bool {
	switch s {
	case config.SyntaxAuto, config.SyntaxMarkdown, config.SyntaxText:
		return true
	default:
		return false
	}
}

// IsValidFormat returns true if the format is valid.
func IsValidFormat(f config.OutputFormat) bool {
	switch f {
	case config.FormatText, config.FormatJSON, config.FormatSARIF, config.FormatDiff, config.FormatSummary:
		return true
	default:
		return false
	}
}

// IsValidRuleFormat returns true if the rule format is valid.
func IsValidRuleFormat(f config.RuleFormat) bool {
	switch f {
	case config.RuleFormatName, config.RuleFormatID, config.RuleFormatCombined:
		return true
	default:
		return false
	}
}

// Validate checks a configuration against the default registry.
func Validate(cfg *config.Config) *ValidationResult {
	return ValidateWithRegistry(cfg, lint.DefaultRegistry)
}

// ValidateWithRegistry checks a configuration for errors and warnings.
// Rule keys are resolved through registry.
func ValidateWithRegistry(cfg *config.Config, registry *lint.Registry) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Syntax != "" && !IsValidSyntax(cfg.Syntax) {
		result.addError("syntax", cfg.Syntax, "invalid syntax %q; must be one of: auto, markdown, text", cfg.Syntax)
	}
	if cfg.Flavor != "" && !IsValidFlavor(cfg.Flavor) {
		result.addError("flavor", cfg.Flavor, "invalid flavor %q; must be one of: commonmark, gfm", cfg.Flavor)
	}
	if cfg.SeverityDefault != "" && !IsValidSeverity(cfg.SeverityDefault) {
		result.addError("severity_default", cfg.SeverityDefault,
			"invalid severity %q; must be one of: error, warning, info", cfg.SeverityDefault)
	}
	if cfg.Format != "" && !IsValidFormat(cfg.Format) {
		result.addError("format", cfg.Format,
			"invalid format %q; must be one of: text, json, sarif, diff, summary", cfg.Format)
	}
	if cfg.RuleFormat != "" && !IsValidRuleFormat(cfg.RuleFormat) {
		result.addError("rule_format", cfg.RuleFormat,
			"invalid rule format %q; must be one of: name, id, combined", cfg.RuleFormat)
	}
	if cfg.Jobs < 0 {
		result.addError("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}
	if cfg.FixPasses < 0 {
		result.addError("fix_passes", cfg.FixPasses, "fix passes must be >= 1")
	}
	if _, ok := fsutil.ParseBackupMode(cfg.Backups.Mode); !ok {
		result.addError("backups.mode", cfg.Backups.Mode,
			"invalid backup mode %q; must be one of: sidecar, xdg, none", cfg.Backups.Mode)
	}

	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			result.addError(fmt.Sprintf("extensions[%d]", i), ext, "extension %q must start with a dot", ext)
		}
	}

	for i, pattern := range cfg.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			result.addError(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}

	validateRules(cfg, registry, result)
	validateRuleLists(cfg, registry, result)

	return result
}

// validateRules checks rule entries in key order.
func validateRules(cfg *config.Config, registry *lint.Registry, result *ValidationResult) {
	for _, key := range slices.Sorted(maps.Keys(cfg.Rules)) {
		ruleCfg := cfg.Rules[key]
		field := "rules." + key

		if ruleCfg.Severity != nil && !IsValidSeverity(*ruleCfg.Severity) {
			result.addError(field+".severity", *ruleCfg.Severity,
				"invalid severity %q; must be one of: error, warning, info", *ruleCfg.Severity)
		}

		_, rule, ok := registry.Resolve(key)
		if !ok {
			if IsTag(registry, key) {
				continue
			}
			result.addWarning(field, key, "unknown rule %q; it will be ignored", key)
			continue
		}

		validateRuleOptions(field, novel.RuleKey(rule.Name()), ruleCfg, result)
	}
}

// validateRuleOptions checks the parameter of the rules that take one.
func validateRuleOptions(field string, key novel.RuleKey, ruleCfg config.RuleConfig, result *ValidationResult) {
	value, hasValue := ruleCfg.Options[config.OptionValue]

	switch key {
	case novel.RuleLeadingChars:
		if hasValue && !isCharsetValue(value) {
			result.addError(field+".options.value", value,
				"leading characters must be a string, a list of strings, or a boolean")
		}

	case novel.RuleMaxNumeralDigits:
		if hasValue && !isDigitLimit(value) {
			result.addError(field+".options.value", value,
				"digit limit must be a non-negative integer or false")
		}
		if style, ok := ruleCfg.Options[lint.OptionNumeralStyle]; ok {
			name, isString := style.(string)
			if _, err := kansuji.ParseStyle(name); !isString || err != nil {
				result.addError(field+".options."+lint.OptionNumeralStyle, style,
					"invalid numeral style %v; must be one of: digits, units", style)
			}
		}

	default:
		if hasValue {
			if _, isBool := value.(bool); !isBool {
				result.addWarning(field+".options.value", value,
					"rule %q takes no parameter; the value is ignored", key)
			}
		}
	}
}

func isCharsetValue(value any) bool {
	switch v := value.(type) {
	case string, bool, []string:
		return true
	case []any:
		for _, item := range v {
			if _, ok := item.(string); !ok {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func isDigitLimit(value any) bool {
	switch v := value.(type) {
	case bool:
		return true
	case int:
		return v >= 0
	case int64:
		return v >= 0
	case uint64:
		return true
	case float64:
		return v >= 0 && v == float64(int(v))
	default:
		return false
	}
}

// validateRuleLists warns about unknown keys in --enable, --disable and --fix-rules.
func validateRuleLists(cfg *config.Config, registry *lint.Registry, result *ValidationResult) {
	lists := []struct {
		field string
		keys  []string
	}{
		{"enable", cfg.EnableRules},
		{"disable", cfg.DisableRules},
		{"fix_rules", cfg.FixRules},
	}

	for _, list := range lists {
		for _, key := range list.keys {
			if _, _, ok := registry.Resolve(key); !ok {
				result.addWarning(list.field, key, "unknown rule %q", key)
			}
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}
