package lint

import (
	"github.com/yaklabco/novelint/pkg/config"
	"github.com/yaklabco/novelint/pkg/fix"
	"github.com/yaklabco/novelint/pkg/mdast"
)

// DiagnosticBuilder helps construct Diagnostic values.
type DiagnosticBuilder struct {
	diag Diagnostic
}

// NewDiagnosticAt starts a diagnostic for the rule covering the byte range
// [start, end) of file. Line and column fields are derived from the range.
func NewDiagnosticAt(rule Rule, file *mdast.FileSnapshot, start, end int, message string) *DiagnosticBuilder {
	diag := Diagnostic{
		Message:     message,
		StartOffset: start,
		EndOffset:   end,
	}

	if rule != nil {
		diag.RuleID = rule.ID()
		diag.RuleName = rule.Name()
	}

	if file != nil {
		diag.FilePath = file.Path
		pos := file.PositionOf(mdast.SourceRange{StartOffset: start, EndOffset: end})
		diag.StartLine = pos.StartLine
		diag.StartColumn = pos.StartColumn
		diag.EndLine = pos.EndLine
		diag.EndColumn = pos.EndColumn
	}

	return &DiagnosticBuilder{diag: diag}
}

// WithSeverity sets the severity.
func (b *DiagnosticBuilder) WithSeverity(s config.Severity) *DiagnosticBuilder {
	b.diag.Severity = s
	return b
}

// WithSuggestion sets a human-readable fix suggestion.
func (b *DiagnosticBuilder) WithSuggestion(s string) *DiagnosticBuilder {
	b.diag.Suggestion = s
	return b
}

// WithEdit adds a single fix edit.
func (b *DiagnosticBuilder) WithEdit(edit fix.TextEdit) *DiagnosticBuilder {
	b.diag.FixEdits = append(b.diag.FixEdits, edit)
	return b
}

// Build returns the constructed Diagnostic.
func (b *DiagnosticBuilder) Build() Diagnostic {
	return b.diag
}
