package configloader

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/novelint/pkg/config"
	"github.com/yaklabco/novelint/pkg/novel"
)

// textlintRuleName is the textlint rule whose options novelint takes over.
const textlintRuleName = "general-novel-style-ja"

// MigrationResult contains the result of converting a textlint config.
type MigrationResult struct {
	// Config holds only the settings found in the source file.
	Config *config.Config

	// Warnings contains non-fatal issues encountered during conversion.
	Warnings []string

	SourcePath string
}

// ConvertTextlintConfig converts the general-novel-style-ja entry of a
// textlint config file into a novelint configuration.
func ConvertTextlintConfig(path string) (*MigrationResult, error) {
	if IsJavaScriptConfig(path) {
		return nil, fmt.Errorf("cannot convert JavaScript config file %q; run 'novelint init' instead", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	raw, err := parseTextlintConfig(path, content)
	if err != nil {
		return nil, err
	}

	return convertTextlint(path, raw)
}

// parseTextlintConfig decodes JSON (with comments) or YAML. A bare
// .textlintrc may hold either.
func parseTextlintConfig(path string, content []byte) (map[string]any, error) {
	var raw map[string]any

	switch DetectConfigFormat(path) {
	case "json":
		if err := parseJSONC(content, &raw); err != nil {
			return nil, fmt.Errorf("parse JSON: %w", err)
		}
	default:
		if jsonErr := parseJSONC(content, &raw); jsonErr != nil {
			raw = nil
			if err := yaml.Unmarshal(content, &raw); err != nil {
				return nil, fmt.Errorf("parse YAML: %w", err)
			}
		}
	}

	if raw == nil {
		raw = map[string]any{}
	}
	return raw, nil
}

func convertTextlint(path string, raw map[string]any) (*MigrationResult, error) {
	result := &MigrationResult{
		SourcePath: path,
		Config:     &config.Config{Rules: make(map[string]config.RuleConfig)},
	}

	for _, key := range []string{"plugins", "filters"} {
		if _, ok := raw[key]; ok {
			result.Warnings = append(result.Warnings, fmt.Sprintf("textlint %q are not supported; skipping", key))
		}
	}

	rules, _ := raw["rules"].(map[string]any)

	var found bool
	for _, name := range slices.Sorted(maps.Keys(rules)) {
		if !isNovelStyleRule(name) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("textlint rule %q has no novelint equivalent; skipping", name))
			continue
		}
		found = true
		convertRuleOptions(result, rules[name])
	}

	if !found {
		return nil, fmt.Errorf("%s does not configure the %s rule", path, textlintRuleName)
	}

	return result, nil
}

// isNovelStyleRule matches the rule under its short and package names,
// with or without a scope.
func isNovelStyleRule(name string) bool {
	name = name[strings.LastIndex(name, "/")+1:]
	name = strings.TrimPrefix(name, "textlint-rule-")
	return name == textlintRuleName
}

// convertRuleOptions maps the textlint rule value onto rule entries.
// true or an empty mapping keeps every default; false disables everything.
func convertRuleOptions(result *MigrationResult, value any) {
	cfg := result.Config

	switch v := value.(type) {
	case nil:
		disableAll(cfg)
	case bool:
		if !v {
			disableAll(cfg)
		}
	case map[string]any:
		legacy := novel.LegacyKeys()
		for _, option := range slices.Sorted(maps.Keys(v)) {
			optionValue := v[option]

			if option == "severity" {
				severity, _ := optionValue.(string)
				if !IsValidSeverity(severity) {
					result.Warnings = append(result.Warnings, fmt.Sprintf("unsupported severity %v; skipping", optionValue))
					continue
				}
				cfg.SeverityDefault = severity
				continue
			}

			key, ok := legacy[option]
			if !ok {
				result.Warnings = append(result.Warnings, fmt.Sprintf("unknown option %q; skipping", option))
				continue
			}
			cfg.Rules[string(key)] = config.RuleConfigFromValue(optionValue)
		}
	default:
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("unexpected value %v for %s; keeping defaults", value, textlintRuleName))
	}
}

func disableAll(cfg *config.Config) {
	for _, key := range novel.Rules() {
		disabled := false
		cfg.Rules[string(key)] = config.RuleConfig{Enabled: &disabled}
	}
}

// parseJSONC parses JSON that may contain comments.
func parseJSONC(content []byte, target any) error {
	if err := json.Unmarshal(content, target); err == nil {
		return nil
	}

	if err := json.Unmarshal(stripJSONComments(content), target); err != nil {
		return fmt.Errorf("unmarshal stripped JSON: %w", err)
	}
	return nil
}

// stripJSONComments removes JavaScript-style comments outside of strings.
func stripJSONComments(content []byte) []byte {
	var result []byte
	inString := false
	inSingleComment := false
	inMultiComment := false

	for idx := 0; idx < len(content); idx++ {
		char := content[idx]

		if inSingleComment {
			if char == '\n' {
				inSingleComment = false
				result = append(result, char)
			}
			continue
		}

		if inMultiComment {
			if char == '*' && idx+1 < len(content) && content[idx+1] == '/' {
				inMultiComment = false
				idx++
			}
			continue
		}

		if inString {
			result = append(result, char)
			if char == '\\' && idx+1 < len(content) {
				idx++
				result = append(result, content[idx])
			} else if char == '"' {
				inString = false
			}
			continue
		}

		if char == '"' {
			inString = true
			result = append(result, char)
			continue
		}

		if char == '/' && idx+1 < len(content) {
			switch content[idx+1] {
			case '/':
				inSingleComment = true
				idx++
				continue
			case '*':
				inMultiComment = true
				idx++
				continue
			}
		}

		result = append(result, char)
	}

	return result
}

// GenerateMigrationHeader returns a header comment for migrated configs.
func GenerateMigrationHeader(sourcePath string) string {
	return config.DefaultTemplateHeader() + "\n# Migrated from: " + filepath.Base(sourcePath) + "\n"
}

// CanMigrate returns true if the config file can be migrated.
// JavaScript config files cannot be migrated.
func CanMigrate(path string) bool {
	return !IsJavaScriptConfig(path)
}

// GetMigrationWarning returns a warning message for files that cannot be migrated.
func GetMigrationWarning(path string) string {
	if IsJavaScriptConfig(path) {
		return fmt.Sprintf("JavaScript config file (%s) cannot be converted automatically; "+
			"create a %s file manually or run 'novelint init'", filepath.Ext(path), ProjectConfigFile)
	}
	return ""
}
