// Package config defines the configuration types for novelint.
// These are plain data structures; loading and merging live in
// internal/configloader.
package config

// Severity represents the severity level of a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// OptionValue is the rule option holding a rule's scalar parameter, such
// as the digit limit of max-arabic-numeral-digits.
const OptionValue = "value"

// RuleConfig holds per-rule configuration.
//
// In YAML a rule may also be written as a scalar: a boolean sets Enabled,
// any other scalar or a list enables the rule and becomes Options["value"].
type RuleConfig struct {
	Enabled  *bool          `yaml:"enabled,omitempty"`
	Severity *string        `yaml:"severity,omitempty"`
	AutoFix  *bool          `yaml:"auto_fix,omitempty"`
	Options  map[string]any `yaml:"options,omitempty"`
}

// BackupsConfig controls backups written before fixing files.
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Mode    string `yaml:"mode"` // "sidecar" or "xdg"
}

// OutputFormat specifies the output format for diagnostics.
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatJSON  OutputFormat = "json"
	FormatSARIF OutputFormat = "sarif"
	FormatDiff  OutputFormat = "diff"

	// FormatSummary prints counts per severity and per rule only.
	FormatSummary OutputFormat = "summary"
)

// RuleFormat controls how rule identifiers appear in output.
type RuleFormat string

const (
	RuleFormatName     RuleFormat = "name"     // "even-ellipsis-run"
	RuleFormatID       RuleFormat = "id"       // "NS003"
	RuleFormatCombined RuleFormat = "combined" // "NS003/even-ellipsis-run"
)

// Flavor specifies the Markdown flavor used for .md files.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// Syntax forces how files are parsed.
type Syntax string

const (
	SyntaxAuto     Syntax = "auto"
	SyntaxMarkdown Syntax = "markdown"
	SyntaxText     Syntax = "text"
)

// DefaultExtensions are the manuscript file extensions discovered by default.
func DefaultExtensions() []string {
	return []string{".md", ".markdown", ".txt"}
}

// Config is the root configuration structure.
type Config struct {
	// Syntax selects the parser: "auto" picks by file extension.
	Syntax Syntax `yaml:"syntax"`

	// Flavor specifies the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `yaml:"flavor"`

	// SeverityDefault is the severity for rules that don't specify one.
	SeverityDefault string `yaml:"severity_default"`

	// Rules contains per-rule configuration keyed by rule ID.
	Rules map[string]RuleConfig `yaml:"rules"`

	// Extensions lists the file extensions to lint.
	Extensions []string `yaml:"extensions,omitempty"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `yaml:"ignore,omitempty"`

	// Backups configures backup behavior when fixing.
	Backups BackupsConfig `yaml:"backups"`

	// CLI-level options (not persisted to config files).

	Fix          bool         `yaml:"-"`
	DryRun       bool         `yaml:"-"`
	Format       OutputFormat `yaml:"-"`
	RuleFormat   RuleFormat   `yaml:"-"`
	Jobs         int          `yaml:"-"`
	FixPasses    int          `yaml:"-"`
	EnableRules  []string     `yaml:"-"`
	DisableRules []string     `yaml:"-"`
	FixRules     []string     `yaml:"-"`
	NoBackups    bool         `yaml:"-"`
}

// NewConfig returns a Config with defaults.
func NewConfig() *Config {
	return &Config{
		Syntax:          SyntaxAuto,
		Flavor:          FlavorCommonMark,
		SeverityDefault: string(SeverityWarning),
		Rules:           make(map[string]RuleConfig),
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    "sidecar",
		},
		Format:     FormatText,
		RuleFormat: RuleFormatName,
		Jobs:       0, // 0 means use GOMAXPROCS
		FixPasses:  1,
	}
}
