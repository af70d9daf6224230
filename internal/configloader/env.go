package configloader

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/novelint/pkg/config"
	"github.com/yaklabco/novelint/pkg/lint"
	"github.com/yaklabco/novelint/pkg/novel"
)

// envVarPrefix is the prefix for all novelint environment variables.
const envVarPrefix = "NOVELINT_"

type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"SYNTAX":           {field: "syntax", typ: envTypeString, description: "Parser selection: auto, markdown, or text"},
	"FLAVOR":           {field: "flavor", typ: envTypeString, description: "Markdown flavor: commonmark or gfm"},
	"SEVERITY_DEFAULT": {field: "severity_default", typ: envTypeString, description: "Default severity: error, warning, or info"},
	"FIX":              {field: "fix", typ: envTypeBool, description: "Enable auto-fix: true or false"},
	"DRY_RUN":          {field: "dry_run", typ: envTypeBool, description: "Dry-run mode: true or false"},
	"JOBS":             {field: "jobs", typ: envTypeInt, description: "Number of parallel workers (0 = auto)"},
	"FIX_PASSES":       {field: "fix_passes", typ: envTypeInt, description: "Number of lint-and-fix passes"},
	"FORMAT":           {field: "format", typ: envTypeString, description: "Output format: text, json, sarif, diff, or summary"},
	"RULE_FORMAT":      {field: "rule_format", typ: envTypeString, description: "Rule identifiers in output: name, id, or combined"},
	"BACKUPS_ENABLED":  {field: "backups.enabled", typ: envTypeBool, description: "Enable backups when fixing: true or false"},
	"BACKUPS_MODE":     {field: "backups.mode", typ: envTypeString, description: "Backup mode: sidecar, xdg, or none"},
	"IGNORE":           {field: "ignore", typ: envTypeSlice, description: "Comma-separated list of ignore patterns"},
	"EXTENSIONS":       {field: "extensions", typ: envTypeSlice, description: "Comma-separated list of file extensions"},
	"NO_BACKUPS":       {field: "no_backups", typ: envTypeBool, description: "Disable backups: true or false"},
	"MAX_DIGITS":       {field: "rules.max-arabic-numeral-digits", typ: envTypeInt, description: "Longest Arabic numeral accepted"},
	"LEADING_CHARS":    {field: "rules.leading-paragraph-chars", typ: envTypeString, description: "Characters a paragraph may start with"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with NOVELINT_ (e.g., NOVELINT_FLAVOR).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, envSuffix := range slices.Sorted(maps.Keys(envMappings)) {
		envVar := envVarPrefix + envSuffix
		value, ok := os.LookupEnv(envVar)
		if !ok || value == "" {
			continue
		}

		if err := applyEnvValue(cfg, envMappings[envSuffix], value, envVar); err != nil {
			return err
		}
	}

	return nil
}

func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "syntax":
		cfg.Syntax = config.Syntax(value)
	case "flavor":
		cfg.Flavor = config.Flavor(value)
	case "severity_default":
		cfg.SeverityDefault = value
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "rule_format":
		cfg.RuleFormat = config.RuleFormat(value)
	case "backups.mode":
		cfg.Backups.Mode = value
	case "rules.leading-paragraph-chars":
		setRuleValue(cfg, string(novel.RuleLeadingChars), value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "fix":
		cfg.Fix = value
	case "dry_run":
		cfg.DryRun = value
	case "backups.enabled":
		cfg.Backups.Enabled = value
	case "no_backups":
		cfg.NoBackups = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	case "fix_passes":
		cfg.FixPasses = value
	case "rules.max-arabic-numeral-digits":
		setRuleValue(cfg, string(novel.RuleMaxNumeralDigits), value)
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "ignore":
		cfg.Ignore = value
	case "extensions":
		cfg.Extensions = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// setRuleValue enables the named rule with its scalar parameter, keeping
// any severity already configured for it under its ID or name.
func setRuleValue(cfg *config.Config, name string, value any) {
	if cfg.Rules == nil {
		cfg.Rules = make(map[string]config.RuleConfig)
	}

	key := name
	if id := NormalizeRuleID(lint.DefaultRegistry, name); id != "" {
		if _, ok := cfg.Rules[id]; ok {
			key = id
		}
	}

	cfg.Rules[key] = mergeRuleConfig(cfg.Rules[key], config.RuleConfigFromValue(value))
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.description
	}
	return vars
}
