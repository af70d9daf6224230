package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/novelint/pkg/lint"
	"github.com/yaklabco/novelint/pkg/runner"
)

// stdinName is the path reported for text read from stdin.
const stdinName = "<stdin>"

type checkFlags struct {
	lintFlags

	stdinFilename string
}

func newCheckCommand(info BuildInfo) *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Lint text read from stdin",
		Long: `Lint text read from standard input.

The parser is chosen from --stdin-filename the same way it is for files;
without it the input is read as a plain manuscript. With --fix the fixed
text is written to standard output instead of the diagnostics.

Examples:
  pbpaste | novelint check
  novelint check --stdin-filename chapter01.md < chapter01.md
  novelint check --fix < draft.txt > fixed.txt`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, flags, info)
		},
	}

	cmd.Flags().BoolVar(&flags.fix, "fix", false, "write the fixed text to stdout")
	cmd.Flags().IntVar(&flags.fixPasses, "fix-passes", 1, "number of lint-and-fix passes")
	cmd.Flags().StringVar(&flags.stdinFilename, "stdin-filename", "",
		"file name used to pick the parser and label diagnostics")
	addRuleFlags(cmd, &flags.lintFlags)
	addOutputFlags(cmd, &flags.output)

	return cmd
}

func runCheck(cmd *cobra.Command, flags *checkFlags, info BuildInfo) error {
	ctx := cmd.Context()

	cliCfg, err := flags.config(cmd)
	if err != nil {
		return err
	}

	sess, err := loadSession(cmd, cliCfg)
	if err != nil {
		return err
	}

	content, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	name := flags.stdinFilename
	if name == "" {
		name = stdinName
	}

	opts := lint.PipelineOptionsFromConfig(sess.config)
	opts.DryRun = false

	pr, err := sess.pipeline().ProcessContent(ctx, name, content, sess.config, opts)
	if err != nil {
		return fmt.Errorf("check %s: %w", name, err)
	}

	if flags.fix {
		output := content
		if pr.Modified {
			output = pr.ModifiedContent
		}
		if _, err := cmd.OutOrStdout().Write(output); err != nil {
			return fmt.Errorf("write fixed text: %w", err)
		}
		return nil
	}

	rep, err := sess.reporter(cmd, &flags.output, info.Version)
	if err != nil {
		return err
	}

	result := runner.NewResult(runner.FileOutcome{Path: name, Result: pr})
	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	return errorForExitCode(ExitCodeFromResult(result))
}
