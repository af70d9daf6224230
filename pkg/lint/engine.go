package lint

import (
	"context"
	"fmt"

	"github.com/yaklabco/novelint/internal/logging"
	"github.com/yaklabco/novelint/pkg/config"
	"github.com/yaklabco/novelint/pkg/fix"
	"github.com/yaklabco/novelint/pkg/mdast"
)

// FileResult contains the results of linting a single file.
type FileResult struct {
	Snapshot    *mdast.FileSnapshot
	Diagnostics []Diagnostic

	// Edits contains validated, sorted edits for auto-fix. Empty unless
	// fixing was requested.
	Edits []fix.TextEdit

	// SkippedEdits contains edits dropped because an earlier edit already
	// covered their range.
	SkippedEdits []fix.TextEdit

	// EditConflicts is true if any edits were skipped.
	EditConflicts bool

	// RuleErrors contains any errors from rule execution, keyed by rule ID.
	RuleErrors map[string]error
}

// HasIssues returns true if any diagnostics were found.
func (fr *FileResult) HasIssues() bool {
	return len(fr.Diagnostics) > 0
}

// HasFixes returns true if any fixes are available.
func (fr *FileResult) HasFixes() bool {
	return len(fr.Edits) > 0
}

// IssueCount returns the total number of diagnostics.
func (fr *FileResult) IssueCount() int {
	return len(fr.Diagnostics)
}

// FixableCount returns the number of diagnostics with fixes.
func (fr *FileResult) FixableCount() int {
	count := 0
	for i := range fr.Diagnostics {
		if fr.Diagnostics[i].HasFix() {
			count++
		}
	}
	return count
}

// Engine coordinates parsing and rule execution for linting.
type Engine struct {
	Parser   Parser
	Registry *Registry
}

// NewEngine creates a new Engine with the given parser and registry.
func NewEngine(parser Parser, registry *Registry) *Engine {
	return &Engine{
		Parser:   parser,
		Registry: registry,
	}
}

// LintFile parses and lints a single file.
//
// Rules run in ID order. Their edits are collected in that order, so when
// two fixes target the same text the rule with the lower ID wins.
func (e *Engine) LintFile(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
) (*FileResult, error) {
	snapshot, err := e.Parser.Parse(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	resolved := ResolveRules(e.Registry, cfg)
	style := StyleOptions(cfg, e.Registry)
	paragraphs := newParagraphCache(snapshot)

	result := &FileResult{
		Snapshot:   snapshot,
		RuleErrors: make(map[string]error),
	}

	var allEdits []fix.TextEdit

	for _, rr := range resolved {
		select {
		case <-ctx.Done():
			return result, fmt.Errorf("linting cancelled: %w", ctx.Err())
		default:
		}

		ruleCtx := &RuleContext{
			Ctx:        ctx,
			File:       snapshot,
			Root:       snapshot.Root,
			Config:     cfg,
			RuleConfig: rr.Config,
			Style:      style,
			Registry:   e.Registry,
			paragraphs: paragraphs,
		}

		diags, err := rr.Rule.Apply(ruleCtx)
		if err != nil {
			result.RuleErrors[rr.Rule.ID()] = err
			logging.FromContext(ctx).Debug("rule failed",
				logging.FieldPath, path,
				logging.FieldRule, rr.Rule.ID(),
				logging.FieldError, err)
			continue
		}

		for i := range diags {
			diags[i].Severity = rr.Severity
			if diags[i].FilePath == "" {
				diags[i].FilePath = path
			}
			if diags[i].RuleName == "" {
				diags[i].RuleName = rr.Rule.Name()
			}
			if rr.AutoFix {
				allEdits = append(allEdits, diags[i].FixEdits...)
			}
		}

		result.Diagnostics = append(result.Diagnostics, diags...)
	}

	if len(allEdits) > 0 {
		accepted, skipped, _, err := fix.PrepareEditsFiltered(allEdits, len(content))
		if err != nil {
			// Diagnostics stay; an edit outside the file means no fix is safe.
			result.EditConflicts = true
			logging.FromContext(ctx).Debug("discarding invalid edits",
				logging.FieldPath, path,
				logging.FieldError, err)
		} else {
			result.Edits = accepted
			result.SkippedEdits = skipped
			result.EditConflicts = len(skipped) > 0
		}
	}

	logging.FromContext(ctx).Debug("linted file",
		logging.FieldPath, path,
		logging.FieldParagraphs, len(paragraphs.get()),
		logging.FieldRules, len(resolved),
		logging.FieldDiagnosticsTotal, len(result.Diagnostics),
		logging.FieldEdits, len(result.Edits))

	return result, nil
}
