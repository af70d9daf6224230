package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/novelint/internal/ui/pretty"
	"github.com/yaklabco/novelint/pkg/config"
	"github.com/yaklabco/novelint/pkg/fix"
	"github.com/yaklabco/novelint/pkg/lint"
)

func TestFormatDiagnostic_Basic(t *testing.T) {
	styles := pretty.NewStyles(false)

	diag := &lint.Diagnostic{
		RuleID:      "NS003",
		RuleName:    "even-ellipsis-run",
		Message:     "Ellipses should be used in even runs",
		Severity:    config.SeverityError,
		FilePath:    "chapter1.md",
		StartLine:   10,
		StartColumn: 4,
		EndLine:     10,
		EndColumn:   5,
	}

	result := styles.FormatDiagnostic(diag, false, "")

	assert.Contains(t, result, "chapter1.md:10:4")
	assert.Contains(t, result, "error")
	assert.Contains(t, result, "Ellipses should be used in even runs")
	assert.Contains(t, result, "(even-ellipsis-run)")
	assert.NotContains(t, result, "[fixable]")
}

func TestFormatDiagnostic_Fixable(t *testing.T) {
	styles := pretty.NewStyles(false)

	diag := &lint.Diagnostic{
		RuleID:      "NS003",
		Message:     "Ellipses should be used in even runs",
		Severity:    config.SeverityWarning,
		FilePath:    "chapter1.md",
		StartLine:   1,
		StartColumn: 1,
		FixEdits:    []fix.TextEdit{{StartOffset: 0, EndOffset: 3, NewText: "……"}},
	}

	result := styles.FormatDiagnostic(diag, false, "")

	assert.Contains(t, result, "[fixable]")
}

func TestFormatDiagnostic_WithContext(t *testing.T) {
	styles := pretty.NewStyles(false)

	diag := &lint.Diagnostic{
		RuleID:      "NS005",
		Message:     "Repeated period",
		Severity:    config.SeverityWarning,
		FilePath:    "chapter1.md",
		StartLine:   5,
		StartColumn: 2,
		EndLine:     5,
		EndColumn:   4,
	}

	result := styles.FormatDiagnostic(diag, true, "あ。。い")

	assert.Contains(t, result, "あ。。い")
	assert.Contains(t, result, "^")
}

func TestFormatDiagnostic_WithSuggestion(t *testing.T) {
	styles := pretty.NewStyles(false)

	diag := &lint.Diagnostic{
		RuleID:     "NS004",
		Message:    "Dashes should be used in even runs",
		Severity:   config.SeverityInfo,
		FilePath:   "chapter1.md",
		StartLine:  1,
		Suggestion: "Replace with ――",
	}

	result := styles.FormatDiagnostic(diag, false, "")

	assert.Contains(t, result, "Suggestion:")
	assert.Contains(t, result, "Replace with ――")
}

func TestFormatSeverity_AllLevels(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		severity config.Severity
		expected string
	}{
		{config.SeverityError, "error"},
		{config.SeverityWarning, "warning"},
		{config.SeverityInfo, "info"},
	}

	for _, tt := range tests {
		t.Run(string(tt.severity), func(t *testing.T) {
			result := styles.FormatSeverity(tt.severity)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestFormatSourceContext_CaretAlignment(t *testing.T) {
	styles := pretty.NewStyles(false)
	const indent = "        "

	tests := []struct {
		name   string
		line   string
		column int
		length int
		caret  string
	}{
		{name: "ascii", line: "test line", column: 5, length: 1, caret: indent + "    ^"},
		{name: "wide prefix", line: "あ。。い", column: 2, length: 2, caret: indent + "  ^^^^"},
		{name: "ideographic space", line: "　本文", column: 2, length: 1, caret: indent + "  ^^"},
		{name: "column past end", line: "abc", column: 9, length: 1, caret: indent + "   ^"},
		{name: "zero length", line: "abc", column: 1, length: 0, caret: indent + "^"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := styles.FormatSourceContext(tt.line, tt.column, tt.length)

			lines := strings.Split(strings.TrimSuffix(result, "\n"), "\n")
			require.Len(t, lines, 2)
			assert.Equal(t, indent+tt.line, lines[0])
			assert.Equal(t, tt.caret, lines[1])
		})
	}
}

func TestFormatSourceContext_ZeroColumn(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatSourceContext("test line", 0, 1)

	assert.Contains(t, result, "test line")
	assert.NotContains(t, result, "^")
}

func TestFormatFileHeader(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		count int
		want  string
	}{
		{count: 0, want: "novel/ch1.md"},
		{count: 1, want: "novel/ch1.md (1 issue)"},
		{count: 5, want: "novel/ch1.md (5 issues)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, styles.FormatFileHeader("novel/ch1.md", tt.count))
		})
	}
}

func TestFormatDiagnostic_WithRuleFormat(t *testing.T) {
	styles := pretty.NewStyles(false)

	diag := &lint.Diagnostic{
		RuleID:      "NS004",
		RuleName:    "even-dash-run",
		Message:     "Dashes should be used in even runs",
		Severity:    config.SeverityWarning,
		FilePath:    "chapter1.md",
		StartLine:   1,
		StartColumn: 1,
	}

	tests := []struct {
		format   config.RuleFormat
		contains string
		excludes string
	}{
		{config.RuleFormatName, "(even-dash-run)", "(NS004)"},
		{config.RuleFormatID, "(NS004)", "(even-dash-run)"},
		{config.RuleFormatCombined, "(NS004/even-dash-run)", ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			result := styles.FormatDiagnosticWithFormat(diag, false, "", tt.format)
			assert.Contains(t, result, tt.contains)
			if tt.excludes != "" {
				assert.NotContains(t, result, tt.excludes)
			}
		})
	}
}

func TestFormatFixPreview(t *testing.T) {
	styles := pretty.NewStyles(false)

	// "あ。。。い" starts at byte 100; 。。。 is runes 2-4, bytes 103-112.
	const line = "あ。。。い"

	tests := []struct {
		name string
		diag lint.Diagnostic
		want string
	}{
		{
			name: "replacement",
			diag: lint.Diagnostic{
				StartOffset: 103, StartColumn: 2,
				FixEdits: []fix.TextEdit{{StartOffset: 103, EndOffset: 112, NewText: "……"}},
			},
			want: `"。。。" → "……"`,
		},
		{
			name: "insertion",
			diag: lint.Diagnostic{
				StartOffset: 100, StartColumn: 1,
				FixEdits: []fix.TextEdit{{StartOffset: 100, EndOffset: 100, NewText: "　"}},
			},
			want: `insert "　"`,
		},
		{
			name: "removal",
			diag: lint.Diagnostic{
				StartOffset: 109, StartColumn: 4,
				FixEdits: []fix.TextEdit{{StartOffset: 103, EndOffset: 112}},
			},
			want: `remove "。。。"`,
		},
		{
			name: "edit outside the line",
			diag: lint.Diagnostic{
				StartOffset: 103, StartColumn: 2,
				FixEdits: []fix.TextEdit{{StartOffset: 200, EndOffset: 203, NewText: "二"}},
			},
			want: `replace with "二"`,
		},
		{
			name: "no fix",
			diag: lint.Diagnostic{StartOffset: 103, StartColumn: 2},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, styles.FormatFixPreview(&tt.diag, line))
		})
	}
}

func TestFormatDiagnostic_FixPreviewNeedsContext(t *testing.T) {
	styles := pretty.NewStyles(false)

	diag := &lint.Diagnostic{
		RuleID:      "NS003",
		Message:     "Ellipses should be used in even runs",
		Severity:    config.SeverityWarning,
		FilePath:    "chapter1.txt",
		StartOffset: 3,
		StartLine:   1,
		StartColumn: 2,
		EndLine:     1,
		EndColumn:   3,
		FixEdits:    []fix.TextEdit{{StartOffset: 6, EndOffset: 6, NewText: "…"}},
	}

	assert.Contains(t, styles.FormatDiagnostic(diag, true, "本…"), `fix: insert "…"`)
	assert.NotContains(t, styles.FormatDiagnostic(diag, false, "本…"), "fix:")
}
