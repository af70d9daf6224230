package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/novelint/internal/logging"
	"github.com/yaklabco/novelint/pkg/config"
	_ "github.com/yaklabco/novelint/pkg/lint/rules" // Register built-in rules
	"github.com/yaklabco/novelint/pkg/novel"
	"github.com/yaklabco/novelint/pkg/runner"
)

type lintFlags struct {
	output outputFlags

	fix          bool
	dryRun       bool
	jobs         int
	fixPasses    int
	flavor       string
	syntax       string
	backup       string
	noBackups    bool
	enable       []string
	disable      []string
	fixRules     []string
	include      []string
	exclude      []string
	extensions   []string
	maxDigits    int
	leadingChars string
}

func newLintCommand(info BuildInfo) *cobra.Command {
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint manuscript files",
		Long:  lintLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, flags, info)
		},
	}

	addLintFlags(cmd, flags)
	addOutputFlags(cmd, &flags.output)

	return cmd
}

const lintLongDescription = `Lint Japanese novel manuscripts for typesetting conventions.

By default, lints all .md, .markdown and .txt files in the current
directory and subdirectories. Specify paths to lint specific files or
directories.

Examples:
  novelint lint                          # Lint current directory
  novelint lint chapters/                # Lint a directory
  novelint lint chapter01.txt            # Lint a single file
  novelint lint --fix                    # Lint and auto-fix issues
  novelint lint --dry-run                # Show fixes as a diff without applying
  novelint lint --disable even-dash-run  # Skip a rule
  novelint lint --max-digits 3           # Allow Arabic numerals up to 3 digits
  novelint lint --format sarif           # Output SARIF for code scanning`

func runLint(cmd *cobra.Command, args []string, flags *lintFlags, info BuildInfo) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	cliCfg, err := flags.config(cmd)
	if err != nil {
		return err
	}

	sess, err := loadSession(cmd, cliCfg)
	if err != nil {
		return err
	}

	rep, err := sess.reporter(cmd, &flags.output, info.Version)
	if err != nil {
		return err
	}

	runOpts := runner.OptionsFromConfig(sess.config, args)
	runOpts.WorkingDir = sess.workDir
	runOpts.IncludeGlobs = flags.include

	logger.Debug("starting lint run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := sess.runner().Run(ctx, runOpts)
	if err != nil {
		if errors.Is(err, runner.ErrNoPathMatch) {
			return usageErrorf(err)
		}
		return fmt.Errorf("lint run failed: %w", err)
	}

	logger.Debug("lint run finished",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
		logging.FieldFilesModified, result.Stats.FilesModified,
	)

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	return errorForExitCode(ExitCodeFromResult(result))
}

func addLintFlags(cmd *cobra.Command, flags *lintFlags) {
	addFixFlags(cmd, flags)
	addRuleFlags(cmd, flags)

	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.include, "include", nil, "only lint files matching these glob patterns")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "skip files matching these glob patterns")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil,
		"file extensions to lint when walking directories (default .md,.markdown,.txt)")
}

// addFixFlags registers the flags that control fixing.
func addFixFlags(cmd *cobra.Command, flags *lintFlags) {
	cmd.Flags().BoolVar(&flags.fix, "fix", false, "automatically fix issues")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "show fixes without applying them")
	cmd.Flags().IntVar(&flags.fixPasses, "fix-passes", 1, "number of lint-and-fix passes per file")
	cmd.Flags().StringVar(&flags.backup, "backup", "",
		"backup mode when fixing: sidecar, xdg, or none")
	cmd.Flags().BoolVar(&flags.noBackups, "no-backups", false, "disable backup creation when fixing")
}

// addRuleFlags registers the flags that select and tune rules.
func addRuleFlags(cmd *cobra.Command, flags *lintFlags) {
	cmd.Flags().StringVar(&flags.flavor, "flavor", string(config.FlavorCommonMark),
		"Markdown flavor: commonmark, gfm")
	cmd.Flags().StringVar(&flags.syntax, "syntax", string(config.SyntaxAuto),
		"parser selection: auto, markdown, text")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "rules to enable (ID, name, or legacy key)")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rules to disable (ID, name, or legacy key)")
	cmd.Flags().StringSliceVar(&flags.fixRules, "fix-rules", nil, "limit auto-fix to these rules")
	cmd.Flags().IntVar(&flags.maxDigits, "max-digits", novel.DefaultMaxNumeralDigits,
		"longest Arabic numeral accepted before suggesting kanji (0 disables the rule)")
	cmd.Flags().StringVar(&flags.leadingChars, "leading-chars", novel.DefaultLeadingChars,
		"characters a paragraph may start with")
}

// config returns a Config holding only the flags the user set, so that
// defaults never override config files.
func (f *lintFlags) config(cmd *cobra.Command) (*config.Config, error) {
	changed := cmd.Flags().Changed
	cfg := &config.Config{
		Fix:          f.fix || f.dryRun,
		DryRun:       f.dryRun,
		NoBackups:    f.noBackups,
		Rules:        make(map[string]config.RuleConfig),
		EnableRules:  f.enable,
		DisableRules: f.disable,
		FixRules:     f.fixRules,
	}

	f.output.apply(cmd, cfg)
	if f.dryRun && !changed("format") {
		cfg.Format = config.FormatDiff
	}

	if changed("jobs") {
		cfg.Jobs = f.jobs
	}
	if changed("fix-passes") {
		if f.fixPasses < 1 {
			return nil, usageErrorf(fmt.Errorf("--fix-passes must be at least 1, got %d", f.fixPasses))
		}
		cfg.FixPasses = f.fixPasses
	}
	if changed("flavor") {
		cfg.Flavor = config.Flavor(f.flavor)
	}
	if changed("syntax") {
		cfg.Syntax = config.Syntax(f.syntax)
	}
	if changed("backup") {
		cfg.Backups = config.BackupsConfig{Enabled: f.backup != "none", Mode: f.backup}
	}
	if changed("exclude") {
		cfg.Ignore = f.exclude
	}
	if changed("ext") {
		cfg.Extensions = normalizeExtensions(f.extensions)
	}
	if changed("max-digits") {
		if f.maxDigits < 0 {
			return nil, usageErrorf(fmt.Errorf("--max-digits must not be negative, got %d", f.maxDigits))
		}
		value := any(f.maxDigits)
		if f.maxDigits == 0 {
			value = false
		}
		cfg.Rules[string(novel.RuleMaxNumeralDigits)] = config.RuleConfigFromValue(value)
	}
	if changed("leading-chars") {
		cfg.Rules[string(novel.RuleLeadingChars)] = config.RuleConfigFromValue(f.leadingChars)
	}

	return cfg, nil
}

// normalizeExtensions adds the leading dot to bare extensions.
func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}
