package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full includes all rules with their documentation.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string

	// Pack names the preset the rule settings come from, for the header.
	Pack string

	// Overrides replaces the default settings of the named rules.
	Overrides map[string]RuleConfig
}

// RuleInfo contains rule metadata for template generation.
type RuleInfo struct {
	ID          string
	Name        string
	Description string
	Enabled     bool
	Severity    Severity
	Tags        []string
	CanFix      bool

	// Value is the default of the rule's scalar parameter, if it has one.
	Value any
}

// RuleInfoProvider is a function that returns rule information.
// This allows decoupling from the lint package to avoid circular imports.
type RuleInfoProvider func() []RuleInfo

// DefaultRuleInfoProvider is set by the rules package during init.
//
//nolint:gochecknoglobals // Intentional extension point for rule info.
var DefaultRuleInfoProvider RuleInfoProvider

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	var content []byte
	if opts.Full {
		content = generateFullTemplate(opts)
	} else {
		content = generateMinimalTemplate(opts)
	}

	if opts.Format == "json" {
		return templateToJSON(content)
	}
	return content, nil
}

func generateMinimalTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Parser selection: auto, markdown, or text
syntax: auto

# Markdown flavor: commonmark or gfm
flavor: commonmark

# Default severity for all rules: error, warning, or info
# severity_default: warning

# File patterns to ignore (glob patterns)
# ignore:
#   - "drafts/**"

# Rule-specific configuration. A rule accepts a boolean, its parameter,
# or a full mapping:
# rules:
#   even-dash-run: false
#   max-arabic-numeral-digits: 3
#   leading-paragraph-chars:
#     severity: error
#     options:
#       value: "　「『"
`)

	if len(opts.Overrides) > 0 {
		buf.WriteString("\nrules:\n")
		for _, info := range orderedRuleInfos(opts.Overrides) {
			writeRuleEntry(&buf, info, opts.Overrides[info.Name], false)
		}
	}

	return buf.Bytes()
}

func generateFullTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`
#
# This template includes all available rules with their default settings.`)
	if opts.Pack != "" {
		buf.WriteString("\n# Rule settings follow the " + strconv.Quote(opts.Pack) + " pack.")
	}
	buf.WriteString(`

# Parser selection: auto, markdown, or text
syntax: auto

# Markdown flavor: commonmark or gfm
flavor: commonmark

# Default severity for all rules: error, warning, or info
severity_default: warning

# File extensions linted when walking directories
extensions:
  - .md
  - .markdown
  - .txt

# File patterns to ignore (glob patterns)
ignore:
  - ".git/**"

# Backup configuration for auto-fix
backups:
  enabled: true
  mode: sidecar

# Rule-specific configuration
rules:
`)

	for _, info := range getRuleInfos() {
		writeRuleEntry(&buf, info, opts.Overrides[info.Name], true)
	}

	return buf.Bytes()
}

// orderedRuleInfos returns the infos of the named rules in catalog order.
func orderedRuleInfos(names map[string]RuleConfig) []RuleInfo {
	var infos []RuleInfo
	for _, info := range getRuleInfos() {
		if _, ok := names[info.Name]; ok {
			infos = append(infos, info)
		}
	}
	return infos
}

func writeRuleEntry(buf *bytes.Buffer, info RuleInfo, override RuleConfig, documented bool) {
	enabled := info.Enabled
	if override.Enabled != nil {
		enabled = *override.Enabled
	}

	severity := string(info.Severity)
	if override.Severity != nil {
		severity = *override.Severity
	}

	value := info.Value
	if v, ok := override.Options[OptionValue]; ok {
		value = v
	}

	if documented {
		fmt.Fprintf(buf, "\n  # %s: %s\n", info.ID, info.Name)
		fmt.Fprintf(buf, "  # %s\n", wrapComment(info.Description, commentWrapWidth))
		if len(info.Tags) > 0 {
			fmt.Fprintf(buf, "  # Tags: %s\n", strings.Join(info.Tags, ", "))
		}
		if info.CanFix {
			buf.WriteString("  # Auto-fix: yes\n")
		}
	}

	fmt.Fprintf(buf, "  %s:\n", info.Name)
	fmt.Fprintf(buf, "    enabled: %t\n", enabled)
	if documented || override.Severity != nil {
		fmt.Fprintf(buf, "    severity: %s\n", severity)
	}
	if value != nil {
		buf.WriteString("    options:\n")
		fmt.Fprintf(buf, "      %s: %s\n", OptionValue, yamlScalar(value))
	}
}

// yamlScalar renders an option value as an inline YAML scalar.
func yamlScalar(value any) string {
	switch v := value.(type) {
	case string:
		return strconv.Quote(v)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	default:
		out, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return strings.TrimSpace(string(out))
	}
}

// getRuleInfos returns information about all registered rules.
func getRuleInfos() []RuleInfo {
	if DefaultRuleInfoProvider != nil {
		return DefaultRuleInfoProvider()
	}
	return nil
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	currentLine := ""

	for _, word := range words {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n  # ")
}

// templateToJSON converts a YAML template to JSON. Comments are lost.
func templateToJSON(yamlContent []byte) ([]byte, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(yamlContent, &doc); err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}

	jsonBytes, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}

	return append(jsonBytes, '\n'), nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# novelint configuration
# See: https://github.com/yaklabco/novelint`
}
