package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/novelint/internal/configloader"
	"github.com/yaklabco/novelint/internal/logging"
	"github.com/yaklabco/novelint/pkg/config"
	"github.com/yaklabco/novelint/pkg/lint"
	"github.com/yaklabco/novelint/pkg/lint/rules"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
	pack   string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new novelint configuration file",
		Long: `Create a new .novelint.yml configuration file in the current directory
with sensible defaults. The file can be customized to enable/disable rules,
change severities, and set rule parameters.

Rule packs preset every rule for a kind of manuscript:
  standard   every rule as a warning (default)
  strict     every rule as an error
  web        web novels: unindented paragraphs allowed
  relaxed    ellipsis and dash runs only, as information

Examples:
  novelint init                      Create minimal .novelint.yml
  novelint init --full               Create full config with all rules documented
  novelint init --pack web           Start from the web novel pack
  novelint init --output custom.yml  Write to a custom file path`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with all rules documented")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"Output file path (default: "+configloader.ProjectConfigFile+")")
	cmd.Flags().StringVar(&flags.pack, "pack", "",
		"Rule pack to start from: "+strings.Join(rules.PackNames(), ", "))

	return cmd
}

func runInit(flags *initFlags) error {
	logger := logging.NewInteractive()

	if flags.format != "yaml" && flags.format != "json" {
		return usageErrorf(fmt.Errorf("invalid format %q: must be yaml or json", flags.format))
	}

	opts := config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
	}

	if flags.pack != "" {
		pack := rules.PackByName(flags.pack)
		if pack == nil {
			return usageErrorf(fmt.Errorf("unknown pack %q: must be one of %s",
				flags.pack, strings.Join(rules.PackNames(), ", ")))
		}
		opts.Pack = pack.Name
		opts.Overrides = packOverrides(*pack, lint.DefaultRegistry)
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = configloader.ProjectConfigFile
		if flags.format == "json" {
			// JSON is valid YAML; keep a name project discovery finds.
			outputPath = strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + ".yaml"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return usageErrorf(fmt.Errorf("file %q already exists; use --force to overwrite", outputPath))
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := config.GenerateTemplate(opts)
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := os.WriteFile(absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	if flags.pack != "" {
		logger.Info("rule settings follow the pack", logging.FieldPack, flags.pack)
	}
	if flags.full {
		logger.Info("full template includes all rules with documentation")
	}
	logger.Info("run 'novelint rules' to see all available rules")

	return nil
}

// packOverrides keys the pack's rule settings by rule name, as templates
// write them.
func packOverrides(pack rules.Pack, registry *lint.Registry) map[string]config.RuleConfig {
	overrides := make(map[string]config.RuleConfig, len(pack.Rules))
	for id, rc := range pack.Rules {
		rule, ok := registry.GetByID(id)
		if !ok {
			continue
		}
		overrides[rule.Name()] = rc.Clone()
	}
	return overrides
}
