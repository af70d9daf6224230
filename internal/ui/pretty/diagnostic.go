package pretty

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/yaklabco/novelint/pkg/config"
	"github.com/yaklabco/novelint/pkg/lint"
)

// contextIndent aligns source context under the diagnostic line.
const contextIndent = "        "

// FormatDiagnostic formats a single diagnostic for terminal output with
// the rule shown by name.
func (s *Styles) FormatDiagnostic(diag *lint.Diagnostic, showContext bool, sourceLine string) string {
	return s.FormatDiagnosticWithFormat(diag, showContext, sourceLine, config.RuleFormatName)
}

// FormatDiagnosticWithFormat formats a diagnostic with configurable rule identifier format.
func (s *Styles) FormatDiagnosticWithFormat(diag *lint.Diagnostic, showContext bool, sourceLine string, ruleFormat config.RuleFormat) string {
	var builder strings.Builder

	// Location: path:line:col
	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(diag.FilePath),
		diag.StartLine,
		diag.StartColumn,
	)

	severity := s.FormatSeverity(diag.Severity)

	ruleIdentifier := config.FormatRuleID(ruleFormat, diag.RuleID, diag.RuleName)
	ruleDisplay := s.RuleID.Render("(" + ruleIdentifier + ")")

	fmt.Fprintf(&builder, "  %s  %s  %s  %s",
		location,
		severity,
		s.Message.Render(diag.Message),
		ruleDisplay,
	)
	if diag.HasFix() {
		builder.WriteString(" " + s.Fixable.Render("[fixable]"))
	}
	builder.WriteString("\n")

	if showContext && sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, diag.StartColumn, caretLength(diag)))
		if preview := s.FormatFixPreview(diag, sourceLine); preview != "" {
			builder.WriteString(contextIndent + s.Dim.Render("fix:") + " " + preview + "\n")
		}
	}

	if diag.Suggestion != "" {
		builder.WriteString("    " + s.Dim.Render("Suggestion:") + " " +
			s.Suggestion.Render(diag.Suggestion) + "\n")
	}

	return builder.String()
}

// caretLength is the number of runes the marker spans, or 1 for
// multi-line and empty ranges.
func caretLength(diag *lint.Diagnostic) int {
	if diag.EndLine != diag.StartLine || diag.EndColumn <= diag.StartColumn {
		return 1
	}
	return diag.EndColumn - diag.StartColumn
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	case config.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// FormatSourceContext formats the source line with a caret marker under
// the runes [column, column+length). Columns count runes; the marker is
// placed by terminal cell width so it lines up under wide characters.
func (s *Styles) FormatSourceContext(line string, column, length int) string {
	var builder strings.Builder

	builder.WriteString(contextIndent + s.SourceLine.Render(line) + "\n")

	if column <= 0 {
		return builder.String()
	}

	runes := []rune(line)
	start := min(column-1, len(runes))
	end := min(start+max(length, 1), len(runes))

	padding := uniseg.StringWidth(string(runes[:start]))
	marker := max(uniseg.StringWidth(string(runes[start:end])), 1)

	builder.WriteString(contextIndent + strings.Repeat(" ", padding) +
		s.Caret.Render(strings.Repeat("^", marker)) + "\n")

	return builder.String()
}

// FormatFixPreview describes the edits of diag against its source line,
// for example `"。。。" → "……"` or `insert "　"`. Edits that leave the
// line are shown by their new text only. It returns "" when diag has no
// fix.
func (s *Styles) FormatFixPreview(diag *lint.Diagnostic, sourceLine string) string {
	if !diag.HasFix() {
		return ""
	}

	lineStart := -1
	if diag.StartColumn > 0 {
		runes := []rune(sourceLine)
		prefix := string(runes[:min(diag.StartColumn-1, len(runes))])
		lineStart = diag.StartOffset - len(prefix)
	}

	parts := make([]string, 0, len(diag.FixEdits))
	for _, edit := range diag.FixEdits {
		original, ok := "", false
		if lineStart >= 0 {
			start, end := edit.StartOffset-lineStart, edit.EndOffset-lineStart
			if start >= 0 && end <= len(sourceLine) && start <= end {
				original, ok = sourceLine[start:end], true
			}
		}

		switch {
		case edit.IsInsertion():
			parts = append(parts, "insert "+s.Replacement.Render(quote(edit.NewText)))
		case edit.NewText == "" && ok:
			parts = append(parts, "remove "+s.Original.Render(quote(original)))
		case edit.NewText == "":
			parts = append(parts, "remove")
		case ok:
			parts = append(parts, s.Original.Render(quote(original))+" → "+
				s.Replacement.Render(quote(edit.NewText)))
		default:
			parts = append(parts, "replace with "+s.Replacement.Render(quote(edit.NewText)))
		}
	}

	return strings.Join(parts, ", ")
}

// quote wraps s in double quotes. Unlike strconv.Quote it leaves the
// ideographic space readable.
func quote(s string) string {
	return `"` + s + `"`
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	switch {
	case issueCount == 1:
		header += s.Dim.Render(" (1 issue)")
	case issueCount > 1:
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}
