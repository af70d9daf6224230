package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/novelint/internal/configloader"
	"github.com/yaklabco/novelint/internal/logging"
	"github.com/yaklabco/novelint/pkg/config"
	"github.com/yaklabco/novelint/pkg/lint"
	"github.com/yaklabco/novelint/pkg/parser"
	"github.com/yaklabco/novelint/pkg/reporter"
	"github.com/yaklabco/novelint/pkg/runner"
)

// session is the resolved state shared by the commands that lint.
type session struct {
	workDir string
	config  *config.Config
	loaded  *configloader.LoadResult
}

// loadSession resolves the configuration for cmd, with cliCfg holding the
// values of the flags the user set.
func loadSession(cmd *cobra.Command, cliCfg *config.Config) (*session, error) {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loaded, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
		Registry:     lint.DefaultRegistry,
	})
	if err != nil {
		return nil, usageErrorf(fmt.Errorf("load configuration: %w", err))
	}

	for _, warning := range loaded.Warnings {
		logger.Warn(warning)
	}
	if len(loaded.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldFiles, loaded.LoadedFrom)
	}

	cfg := loaded.Config
	logger.Debug("configuration resolved",
		logging.FieldSyntax, cfg.Syntax,
		logging.FieldFlavor, cfg.Flavor,
		logging.FieldFix, cfg.Fix,
		logging.FieldDryRun, cfg.DryRun,
		logging.FieldJobs, cfg.Jobs,
		logging.FieldFixPasses, cfg.FixPasses,
	)

	return &session{workDir: workDir, config: cfg, loaded: loaded}, nil
}

// pipeline builds the lint pipeline for the resolved configuration.
func (s *session) pipeline() *lint.Pipeline {
	p := parser.New(string(s.config.Flavor), string(s.config.Syntax))
	return lint.NewPipeline(lint.NewEngine(p, lint.DefaultRegistry))
}

func (s *session) runner() *runner.Runner {
	return runner.New(s.pipeline())
}

// outputFlags are the reporter flags shared by lint, check and watch.
type outputFlags struct {
	format     string
	ruleFormat string
	noContext  bool
	noSummary  bool
	flat       bool
	compact    bool
}

func addOutputFlags(cmd *cobra.Command, flags *outputFlags) {
	cmd.Flags().StringVar(&flags.format, "format", string(config.FormatText),
		"output format: text, json, sarif, diff, summary")
	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", string(config.RuleFormatName),
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "hide the summary after results")
	cmd.Flags().BoolVar(&flags.flat, "flat", false, "print one diagnostic per line without file headers")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "compact JSON and SARIF output")
}

// apply copies the output flags the user set into cfg.
func (f *outputFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("format") {
		cfg.Format = config.OutputFormat(f.format)
	}
	if cmd.Flags().Changed("rule-format") {
		cfg.RuleFormat = config.RuleFormat(f.ruleFormat)
	}
}

// reporter creates the reporter selected by the resolved configuration.
func (s *session) reporter(cmd *cobra.Command, flags *outputFlags, version string) (reporter.Reporter, error) {
	format, err := reporter.ParseFormat(string(s.config.Format))
	if err != nil {
		return nil, usageErrorf(fmt.Errorf("invalid format: %w", err))
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       colorMode,
		ShowContext: !flags.noContext,
		ShowSummary: !flags.noSummary,
		GroupByFile: !flags.flat,
		Compact:     flags.compact,
		RuleFormat:  s.config.RuleFormat,
		WorkingDir:  s.workDir,
		ToolVersion: version,
	})
	if err != nil {
		return nil, usageErrorf(fmt.Errorf("create reporter: %w", err))
	}
	return rep, nil
}
