package reporter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/yaklabco/novelint/pkg/config"
	"github.com/yaklabco/novelint/pkg/lint"
	"github.com/yaklabco/novelint/pkg/mdast"
	"github.com/yaklabco/novelint/pkg/runner"
)

// SARIF version used by this reporter.
const sarifVersion = "2.1.0"

// SARIF schema URI.
const sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"

// sarifColumnKind declares that columns count Unicode code points.
const sarifColumnKind = "unicodeCodePoints"

// SARIFOutput represents the root SARIF document.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun represents a single analysis run.
type SARIFRun struct {
	Tool       SARIFTool     `json:"tool"`
	ColumnKind string        `json:"columnKind"`
	Results    []SARIFResult `json:"results"`
}

// SARIFTool describes the analysis tool.
type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

// SARIFDriver contains tool metadata and rules.
type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFRule describes a rule.
type SARIFRule struct {
	ID               string               `json:"id"`
	Name             string               `json:"name,omitempty"`
	ShortDescription SARIFMultiformatText `json:"shortDescription"`
	DefaultConfig    *SARIFRuleConfig     `json:"defaultConfiguration,omitempty"`
	Properties       map[string]any       `json:"properties,omitempty"`
}

// SARIFMultiformatText contains text in multiple formats.
type SARIFMultiformatText struct {
	Text string `json:"text"`
}

// SARIFRuleConfig contains rule configuration.
type SARIFRuleConfig struct {
	Level string `json:"level"`
}

// SARIFResult represents a single diagnostic result.
type SARIFResult struct {
	RuleID    string          `json:"ruleId"`
	RuleIndex int             `json:"ruleIndex"`
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations"`
	Fixes     []SARIFFix      `json:"fixes,omitempty"`
}

// SARIFMessage contains the result message.
type SARIFMessage struct {
	Text string `json:"text"`
}

// SARIFLocation describes a code location.
type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

// SARIFPhysicalLocation contains file path and region.
type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           SARIFRegion           `json:"region"`
}

// SARIFArtifactLocation contains the file URI.
type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

// SARIFRegion describes the affected text region.
type SARIFRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn,omitempty"`
	EndLine     int `json:"endLine,omitempty"`
	EndColumn   int `json:"endColumn,omitempty"`
}

// SARIFFix represents a proposed fix.
type SARIFFix struct {
	Description     SARIFMessage          `json:"description"`
	ArtifactChanges []SARIFArtifactChange `json:"artifactChanges"`
}

// SARIFArtifactChange describes changes to a file.
type SARIFArtifactChange struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Replacements     []SARIFReplacement    `json:"replacements"`
}

// SARIFReplacement describes a text replacement.
type SARIFReplacement struct {
	DeletedRegion   SARIFRegion           `json:"deletedRegion"`
	InsertedContent *SARIFInsertedContent `json:"insertedContent,omitempty"`
}

// SARIFInsertedContent contains the replacement text.
type SARIFInsertedContent struct {
	Text string `json:"text"`
}

// SARIFReporter formats results as SARIF.
type SARIFReporter struct {
	opts     Options
	out      io.Writer
	registry *lint.Registry
}

// NewSARIFReporter creates a new SARIF reporter. Rule metadata comes from
// the default registry.
func NewSARIFReporter(opts Options) *SARIFReporter {
	return &SARIFReporter{
		opts:     opts,
		out:      opts.Writer,
		registry: lint.DefaultRegistry,
	}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.out)
	encoder.SetEscapeHTML(false)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode SARIF: %w", err)
	}

	return len(output.Runs[0].Results), nil
}

func (r *SARIFReporter) buildOutput(result *runner.Result) *SARIFOutput {
	version := r.opts.ToolVersion
	if version == "" {
		version = "dev"
	}

	run := SARIFRun{
		Tool: SARIFTool{
			Driver: SARIFDriver{
				Name:           "novelint",
				Version:        version,
				InformationURI: "https://github.com/yaklabco/novelint",
				Rules:          make([]SARIFRule, 0),
			},
		},
		ColumnKind: sarifColumnKind,
		Results:    make([]SARIFResult, 0),
	}

	if result != nil {
		ruleIndex := make(map[string]int)

		for _, file := range result.Files {
			if file.Result == nil || file.Result.FileResult == nil {
				continue
			}

			uri := filepath.ToSlash(displayPath(file.Path, r.opts.WorkingDir))

			for _, diag := range file.Result.Diagnostics {
				idx, seen := ruleIndex[diag.RuleID]
				if !seen {
					idx = len(run.Tool.Driver.Rules)
					ruleIndex[diag.RuleID] = idx
					run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, r.ruleFor(diag))
				}

				sarifResult := SARIFResult{
					RuleID:    diag.RuleID,
					RuleIndex: idx,
					Level:     severityToSARIFLevel(diag.Severity),
					Message:   SARIFMessage{Text: diag.Message},
					Locations: []SARIFLocation{{
						PhysicalLocation: SARIFPhysicalLocation{
							ArtifactLocation: SARIFArtifactLocation{URI: uri},
							Region: SARIFRegion{
								StartLine:   diag.StartLine,
								StartColumn: diag.StartColumn,
								EndLine:     diag.EndLine,
								EndColumn:   diag.EndColumn,
							},
						},
					}},
				}

				if diag.HasFix() {
					sarifResult.Fixes = []SARIFFix{buildSARIFFix(diag, uri, file.Result.Snapshot)}
				}

				run.Results = append(run.Results, sarifResult)
			}
		}
	}

	return &SARIFOutput{
		Schema:  sarifSchemaURI,
		Version: sarifVersion,
		Runs:    []SARIFRun{run},
	}
}

// ruleFor describes the rule that produced diag, preferring registry
// metadata over the diagnostic itself.
func (r *SARIFReporter) ruleFor(diag lint.Diagnostic) SARIFRule {
	rule := SARIFRule{
		ID:               diag.RuleID,
		Name:             diag.RuleName,
		ShortDescription: SARIFMultiformatText{Text: diag.Message},
		DefaultConfig:    &SARIFRuleConfig{Level: severityToSARIFLevel(diag.Severity)},
	}

	if r.registry == nil {
		return rule
	}
	registered, ok := r.registry.GetByID(diag.RuleID)
	if !ok {
		return rule
	}

	rule.Name = registered.Name()
	rule.ShortDescription.Text = registered.Description()
	rule.DefaultConfig.Level = severityToSARIFLevel(registered.DefaultSeverity())
	if tags := registered.Tags(); len(tags) > 0 {
		rule.Properties = map[string]any{"tags": tags}
	}
	return rule
}

// buildSARIFFix converts the byte-range edits of diag into line/column
// replacements against the linted snapshot.
func buildSARIFFix(diag lint.Diagnostic, uri string, snapshot *mdast.FileSnapshot) SARIFFix {
	description := diag.Suggestion
	if description == "" {
		description = diag.Message
	}

	change := SARIFArtifactChange{
		ArtifactLocation: SARIFArtifactLocation{URI: uri},
		Replacements:     make([]SARIFReplacement, 0, len(diag.FixEdits)),
	}

	for _, edit := range diag.FixEdits {
		region := SARIFRegion{StartLine: diag.StartLine, StartColumn: diag.StartColumn}
		if snapshot != nil {
			pos := snapshot.PositionOf(mdast.SourceRange{StartOffset: edit.StartOffset, EndOffset: edit.EndOffset})
			region = SARIFRegion{
				StartLine:   pos.StartLine,
				StartColumn: pos.StartColumn,
				EndLine:     pos.EndLine,
				EndColumn:   pos.EndColumn,
			}
		}

		replacement := SARIFReplacement{DeletedRegion: region}
		if edit.NewText != "" {
			replacement.InsertedContent = &SARIFInsertedContent{Text: edit.NewText}
		}
		change.Replacements = append(change.Replacements, replacement)
	}

	return SARIFFix{
		Description:     SARIFMessage{Text: description},
		ArtifactChanges: []SARIFArtifactChange{change},
	}
}

// severityToSARIFLevel converts a severity to a SARIF level.
func severityToSARIFLevel(severity config.Severity) string {
	switch severity {
	case config.SeverityError:
		return "error"
	case config.SeverityInfo:
		return "note"
	default:
		return "warning"
	}
}
