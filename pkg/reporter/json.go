package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/novelint/pkg/config"
	"github.com/yaklabco/novelint/pkg/lint"
	"github.com/yaklabco/novelint/pkg/runner"
)

// jsonSchemaVersion is bumped when the JSON layout changes incompatibly.
const jsonSchemaVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path         string           `json:"path"`
	Language     string           `json:"language,omitempty"`
	Diagnostics  []JSONDiagnostic `json:"diagnostics"`
	Modified     bool             `json:"modified,omitempty"`
	FixesApplied int              `json:"fixesApplied,omitempty"`
	Error        string           `json:"error,omitempty"`
}

// JSONDiagnostic represents a single diagnostic. Lines and columns are
// 1-based; columns count characters, offsets count bytes.
type JSONDiagnostic struct {
	RuleID      string    `json:"ruleId"`
	RuleName    string    `json:"ruleName"`
	Severity    string    `json:"severity"`
	Message     string    `json:"message"`
	StartLine   int       `json:"startLine"`
	StartColumn int       `json:"startColumn"`
	EndLine     int       `json:"endLine"`
	EndColumn   int       `json:"endColumn"`
	StartOffset int       `json:"startOffset"`
	EndOffset   int       `json:"endOffset"`
	Suggestion  string    `json:"suggestion,omitempty"`
	Fixable     bool      `json:"fixable"`
	Fixes       []JSONFix `json:"fixes,omitempty"`
}

// JSONFix represents a proposed fix.
type JSONFix struct {
	StartOffset int    `json:"startOffset"`
	EndOffset   int    `json:"endOffset"`
	NewText     string `json:"newText"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked    int            `json:"filesChecked"`
	FilesWithIssues int            `json:"filesWithIssues"`
	FilesModified   int            `json:"filesModified"`
	FilesErrored    int            `json:"filesErrored"`
	TotalIssues     int            `json:"totalIssues"`
	Fixable         int            `json:"fixable"`
	BySeverity      map[string]int `json:"bySeverity"`
	ByRule          map[string]int `json:"byRule"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	encoder.SetEscapeHTML(false)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.TotalIssues, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonSchemaVersion,
		Files:   []JSONFileResult{},
		Summary: JSONSummary{
			BySeverity: map[string]int{},
			ByRule:     map[string]int{},
		},
	}
	if result == nil {
		return output
	}

	output.Files = make([]JSONFileResult, 0, len(result.Files))
	for _, file := range result.Files {
		entry := JSONFileResult{
			Path:        displayPath(file.Path, r.opts.WorkingDir),
			Diagnostics: []JSONDiagnostic{},
		}

		if file.Error != nil {
			entry.Error = file.Error.Error()
			output.Summary.FilesErrored++
		} else {
			output.Summary.FilesChecked++
		}

		if res := file.Result; res != nil {
			entry.Modified = res.Written
			entry.FixesApplied = res.TotalEditsApplied
			if res.FileResult != nil {
				if res.Snapshot != nil {
					entry.Language = res.Snapshot.Language
				}
				for _, diag := range res.Diagnostics {
					converted := toJSONDiagnostic(diag)
					output.Summary.record(converted)
					entry.Diagnostics = append(entry.Diagnostics, converted)
				}
			}
		}

		if len(entry.Diagnostics) > 0 {
			output.Summary.FilesWithIssues++
		}
		if entry.Modified {
			output.Summary.FilesModified++
		}
		output.Files = append(output.Files, entry)
	}

	return output
}

func toJSONDiagnostic(diag lint.Diagnostic) JSONDiagnostic {
	severity := diag.Severity
	if severity == "" {
		severity = config.SeverityWarning
	}

	out := JSONDiagnostic{
		RuleID:      diag.RuleID,
		RuleName:    diag.RuleName,
		Severity:    string(severity),
		Message:     diag.Message,
		StartLine:   diag.StartLine,
		StartColumn: diag.StartColumn,
		EndLine:     diag.EndLine,
		EndColumn:   diag.EndColumn,
		StartOffset: diag.StartOffset,
		EndOffset:   diag.EndOffset,
		Suggestion:  diag.Suggestion,
		Fixable:     diag.HasFix(),
	}
	for _, edit := range diag.FixEdits {
		out.Fixes = append(out.Fixes, JSONFix{
			StartOffset: edit.StartOffset,
			EndOffset:   edit.EndOffset,
			NewText:     edit.NewText,
		})
	}
	return out
}

func (s *JSONSummary) record(diag JSONDiagnostic) {
	s.TotalIssues++
	if diag.Fixable {
		s.Fixable++
	}
	s.BySeverity[diag.Severity]++
	s.ByRule[diag.RuleID]++
}
