package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/novelint/internal/configloader"
	"github.com/yaklabco/novelint/internal/logging"
	"github.com/yaklabco/novelint/pkg/config"
	"github.com/yaklabco/novelint/pkg/lint"
)

type rulesFlags struct {
	ruleFormat string
	format     string
	tag        string
}

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Severity    string   `json:"severity"`
	Fixable     bool     `json:"fixable"`
	Tags        []string `json:"tags,omitempty"`
	Aliases     []string `json:"aliases,omitempty"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules [rule]",
		Short: "List available lint rules",
		Long: `List all available lint rules with their IDs, descriptions,
default severity, and whether they support auto-fixing.

A rule may be named by ID, name, or legacy textlint option key to show
only that rule, along with its tags and aliases.`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := selectRules(lint.DefaultRegistry, args, flags.tag)
			if err != nil {
				return err
			}

			if flags.format == formatJSON {
				return outputRulesJSON(cmd.OutOrStdout(), rules)
			}

			outputRulesText(cmd.OutOrStdout(), rules, config.RuleFormat(flags.ruleFormat), len(args) == 1)
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "name",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, json")
	cmd.Flags().StringVar(&flags.tag, "tag", "",
		"only list rules with this tag: punctuation, symbols, numerals, layout")

	return cmd
}

// selectRules returns the rules named by args, or all rules with tag.
func selectRules(registry *lint.Registry, args []string, tag string) ([]lint.Rule, error) {
	if len(args) == 1 {
		_, rule, ok := registry.Resolve(args[0])
		if !ok {
			return nil, usageErrorf(fmt.Errorf("unknown rule %q; run 'novelint rules' to list rules", args[0]))
		}
		return []lint.Rule{rule}, nil
	}

	rules := registry.Rules()
	if tag == "" {
		return rules, nil
	}

	filtered := slices.DeleteFunc(rules, func(r lint.Rule) bool {
		return !slices.Contains(r.Tags(), tag)
	})
	if len(filtered) == 0 {
		return nil, usageErrorf(fmt.Errorf("no rules tagged %q", tag))
	}
	return filtered, nil
}

func outputRulesText(w io.Writer, rules []lint.Rule, ruleFormat config.RuleFormat, detailed bool) {
	logger := logging.NewWithWriter(w, "info")

	for _, rule := range rules {
		fixable := "-"
		if rule.CanFix() {
			fixable = "yes"
		}

		keyvals := []any{
			logging.FieldSeverity, rule.DefaultSeverity(),
			logging.FieldFixable, fixable,
			logging.FieldDescription, rule.Description(),
		}
		if detailed {
			keyvals = append(keyvals,
				"tags", strings.Join(rule.Tags(), ", "),
				"aliases", strings.Join(configloader.GetAliasesForRule(lint.DefaultRegistry, rule.ID()), ", "))
		}

		logger.Info(config.FormatRuleID(ruleFormat, rule.ID(), rule.Name()), keyvals...)
	}
}

// outputRulesJSON outputs rules as a JSON array.
func outputRulesJSON(w io.Writer, rules []lint.Rule) error {
	infos := make([]ruleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, ruleInfo{
			ID:          rule.ID(),
			Name:        rule.Name(),
			Description: rule.Description(),
			Severity:    string(rule.DefaultSeverity()),
			Fixable:     rule.CanFix(),
			Tags:        rule.Tags(),
			Aliases:     configloader.GetAliasesForRule(lint.DefaultRegistry, rule.ID()),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
