// Package configloader resolves the novelint configuration. It discovers
// config files in XDG and project locations, merges them with environment
// variables and CLI flags, validates the result, and converts textlint
// configs for the general-novel-style-ja rule.
package configloader

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/term"

	"github.com/yaklabco/novelint/internal/logging"
	"github.com/yaklabco/novelint/pkg/config"
	"github.com/yaklabco/novelint/pkg/fsutil"
	"github.com/yaklabco/novelint/pkg/lint"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// IgnoreTextlint skips textlint config detection and migration.
	IgnoreTextlint bool

	// NonInteractive disables interactive prompts (e.g., in CI).
	NonInteractive bool

	// Prompt is where migration questions are written and answers read.
	// Defaults to stdout and stdin.
	PromptOut io.Writer
	PromptIn  io.Reader

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config

	// Registry resolves rule keys. Defaults to lint.DefaultRegistry.
	Registry *lint.Registry
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string

	// MigrationPerformed is true if a textlint config was converted.
	MigrationPerformed bool
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (NOVELINT_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.novelint.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/novelint/config.yml)
//  6. System config (/etc/novelint/config.yml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	logger := logging.FromContext(ctx)
	result := &LoadResult{Paths: &ConfigPaths{}}

	registry := opts.Registry
	if registry == nil {
		registry = lint.DefaultRegistry
	}

	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	cfg := config.NewConfig()

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	result.Paths = paths

	if opts.ExplicitPath != "" {
		result.Paths.Explicit = opts.ExplicitPath
	}

	if !opts.IgnoreTextlint && !opts.IgnoreProjectConfig && opts.ExplicitPath == "" {
		migrated, err := handleTextlintMigration(paths, result, opts, workDir)
		if err != nil {
			return nil, err
		}
		if migrated {
			paths, err = DiscoverPaths(ctx, workDir)
			if err != nil {
				return nil, fmt.Errorf("discover paths after migration: %w", err)
			}
			result.Paths = paths
		}
	}

	layers := []struct {
		name   string
		path   string
		ignore bool
	}{
		{"system", paths.System, opts.IgnoreSystemConfig},
		{"user", paths.User, opts.IgnoreUserConfig},
		{"project", paths.Project, opts.IgnoreProjectConfig},
		{"explicit", opts.ExplicitPath, false},
	}

	for _, layer := range layers {
		if layer.ignore || layer.path == "" {
			continue
		}
		layerCfg, err := loadConfigFile(layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		cfg = merge(cfg, layerCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
		logger.Debug("loaded config", logging.FieldPath, layer.path, "layer", layer.name)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	normalizeRuleKeys(cfg, registry, result)

	validation := ValidateWithRegistry(cfg, registry)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// LoadFile reads one config file without merging, as used by watch to
// detect edits.
func LoadFile(path string) (*config.Config, error) {
	return loadConfigFile(path)
}

func loadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// handleTextlintMigration offers to convert a textlint config when the
// project has no novelint config of its own.
func handleTextlintMigration(paths *ConfigPaths, result *LoadResult, opts LoadOptions, workDir string) (bool, error) {
	if paths.Textlint == "" {
		return false, nil
	}

	if paths.Project != "" {
		return false, nil
	}

	if !CanMigrate(paths.Textlint) {
		result.Warnings = append(result.Warnings, GetMigrationWarning(paths.Textlint))
		return false, nil
	}

	if opts.NonInteractive || (opts.PromptIn == nil && !isInteractive()) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("found %s but no %s; run 'novelint migrate' to convert", paths.Textlint, ProjectConfigFile))
		return false, nil
	}

	shouldMigrate, err := promptMigration(opts, paths.Textlint)
	if err != nil {
		return false, err
	}
	if !shouldMigrate {
		return false, nil
	}

	migration, err := ConvertTextlintConfig(paths.Textlint)
	if err != nil {
		// A textlintrc without the novel rule is not ours to convert.
		result.Warnings = append(result.Warnings, err.Error())
		return false, nil
	}
	result.Warnings = append(result.Warnings, migration.Warnings...)

	outputPath := filepath.Join(workDir, ProjectConfigFile)
	if err := WriteConfig(migration, outputPath); err != nil {
		return false, fmt.Errorf("write migrated config: %w", err)
	}

	result.MigrationPerformed = true
	result.Warnings = append(result.Warnings,
		fmt.Sprintf("migrated %s to %s", paths.Textlint, outputPath))

	return true, nil
}

func promptMigration(opts LoadOptions, textlintPath string) (bool, error) {
	out := opts.PromptOut
	if out == nil {
		out = os.Stdout
	}
	in := opts.PromptIn
	if in == nil {
		in = os.Stdin
	}

	if _, err := fmt.Fprintf(out, "Found %s but no %s\nConvert to novelint format? [Y/n] ",
		textlintPath, ProjectConfigFile); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}

	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && response == "" {
		return false, fmt.Errorf("read response: %w", err)
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "" || response == "y" || response == "yes", nil
}

func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// MigratedConfig returns the defaults overlaid with a migration result.
func MigratedConfig(migration *MigrationResult) *config.Config {
	return merge(config.NewConfig(), migration.Config)
}

// WriteConfig writes the migrated configuration atomically to path.
func WriteConfig(migration *MigrationResult, path string) error {
	content, err := MigratedConfig(migration).ToYAMLWithHeader(GenerateMigrationHeader(migration.SourcePath))
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := fsutil.WriteAtomic(context.Background(), path, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// normalizeRuleKeys rewrites rule keys to canonical IDs. Tag keys expand to
// every rule carrying the tag and are applied before rule keys, so a rule
// entry refines its tag. When two keys name the same rule the later one in
// sorted order wins and a warning is recorded.
func normalizeRuleKeys(cfg *config.Config, registry *lint.Registry, result *LoadResult) {
	if len(cfg.Rules) == 0 {
		return
	}

	normalized := make(map[string]config.RuleConfig, len(cfg.Rules))
	keys := slices.Sorted(maps.Keys(cfg.Rules))

	for _, key := range keys {
		if _, _, ok := registry.Resolve(key); ok || !IsTag(registry, key) {
			continue
		}
		for _, id := range GetTagRules(registry, key) {
			normalized[id] = mergeRuleConfig(normalized[id], cfg.Rules[key])
		}
	}

	seen := make(map[string]string)
	for _, key := range keys {
		canonicalID, _, found := registry.Resolve(key)
		if !found {
			if !IsTag(registry, key) {
				normalized[key] = cfg.Rules[key]
			}
			continue
		}

		if originalKey, exists := seen[canonicalID]; exists {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("duplicate rule configuration: %q and %q both refer to %s; using %q",
					originalKey, key, canonicalID, key))
		}
		seen[canonicalID] = key
		normalized[canonicalID] = mergeRuleConfig(normalized[canonicalID], cfg.Rules[key])
	}

	cfg.Rules = normalized
}
