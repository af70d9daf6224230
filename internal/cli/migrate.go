package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/novelint/internal/configloader"
	"github.com/yaklabco/novelint/internal/logging"
)

// migrateFlags holds the flags for the migrate command.
type migrateFlags struct {
	force  bool
	output string
	input  string
}

func newMigrateCommand() *cobra.Command {
	flags := &migrateFlags{}

	cmd := &cobra.Command{
		Use:   "migrate [input]",
		Short: "Convert a textlint configuration to novelint format",
		Long: `Convert the general-novel-style-ja settings of a textlint configuration
(.textlintrc, .textlintrc.json, .textlintrc.yml) to novelint format
(.novelint.yml).

If no input file is specified, the command looks for a textlint
configuration file in the current directory. Other textlint rules,
plugins and filters are reported and skipped.

JavaScript configuration files (.textlintrc.js, .textlintrc.cjs) cannot
be converted automatically and require manual migration.

Examples:
  novelint migrate                       Auto-detect and convert .textlintrc
  novelint migrate .textlintrc.json      Convert specific file
  novelint migrate --output config.yml   Write to custom output path`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(_ *cobra.Command, args []string) error {
			if len(args) == 1 {
				flags.input = args[0]
			}
			return runMigrate(flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing output file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", configloader.ProjectConfigFile, "Output file path")

	return cmd
}

func runMigrate(flags *migrateFlags) error {
	logger := logging.NewInteractive()

	inputPath := flags.input
	if inputPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}

		inputPath = configloader.FindTextlintConfig(cwd)
		if inputPath == "" {
			return usageErrorf(errors.New("no textlint configuration file found in current directory"))
		}

		logger.Info("found textlint config", logging.FieldPath, inputPath)
	}

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return usageErrorf(fmt.Errorf("input file does not exist: %s", inputPath))
	}

	if !configloader.CanMigrate(inputPath) {
		return usageErrorf(fmt.Errorf("migration not supported: %s", configloader.GetMigrationWarning(inputPath)))
	}

	absOutput, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	if _, err := os.Stat(absOutput); err == nil {
		if !flags.force {
			return usageErrorf(fmt.Errorf("output file %q already exists; use --force to overwrite", flags.output))
		}
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	}

	result, err := configloader.ConvertTextlintConfig(inputPath)
	if err != nil {
		return usageErrorf(fmt.Errorf("convert configuration: %w", err))
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}

	if err := configloader.WriteConfig(result, absOutput); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}

	logger.Info("migration complete", logging.FieldInput, inputPath, logging.FieldOutput, flags.output)

	if len(result.Warnings) > 0 {
		logger.Warn("review warnings above and verify the migrated configuration")
	}

	logger.Info("textlint can keep using its own configuration; novelint reads " + configloader.ProjectConfigFile)

	return nil
}
