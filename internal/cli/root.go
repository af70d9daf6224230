// Package cli provides the Cobra command structure for novelint.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/novelint/internal/logging"
	"github.com/yaklabco/novelint/internal/ui/pretty"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root novelint command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "novelint",
		Short: "A typesetting linter for Japanese novel manuscripts",
		Long: `novelint checks Japanese novel manuscripts against the conventions of
print typesetting: paragraph indentation, a space after ？ and ！, even
runs of …… and ――, and no punctuation before a closing bracket.

It reads Markdown (CommonMark or GFM) and plain text manuscripts, reports
each violation with its line and column, and can fix most of them in
place with backups and a dry-run diff.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := pretty.ParseColorMode(color); err != nil {
				return usageErrorf(err)
			}
			if debug {
				logging.SetLevel("debug")
			}
			cmd.SetContext(logging.WithLogger(cmd.Context(), logging.Default()))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageErrorf(err)
	})

	rootCmd.AddCommand(newLintCommand(info))
	rootCmd.AddCommand(newCheckCommand(info))
	rootCmd.AddCommand(newWatchCommand(info))
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

// usageArgs marks argument validation failures as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return usageErrorf(validate(cmd, args))
	}
}
