package rules

import (
	"fmt"

	"github.com/yaklabco/novelint/pkg/fix"
	"github.com/yaklabco/novelint/pkg/lint"
	"github.com/yaklabco/novelint/pkg/novel"
)

// StyleRule adapts one paragraph check from package novel to the lint
// engine. Paragraph-local offsets are moved to document offsets, and the
// check's fix becomes a single text edit.
type StyleRule struct {
	lint.BaseRule
	key novel.RuleKey
}

func newStyleRule(id string, key novel.RuleKey, desc string, tags ...string) *StyleRule {
	return &StyleRule{
		BaseRule: lint.NewBaseRule(id, string(key), desc, tags, true),
		key:      key,
	}
}

// Key returns the style key the rule checks.
func (r *StyleRule) Key() novel.RuleKey {
	return r.key
}

// Apply checks every admitted paragraph of the file.
func (r *StyleRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.File == nil {
		return nil, nil
	}

	var diags []lint.Diagnostic

	for _, para := range ctx.Paragraphs() {
		if ctx.Cancelled() {
			return diags, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}

		for _, v := range novel.CheckParagraph(para, ctx.Style, r.key) {
			span := v.Range.Shift(para.Offset)
			builder := lint.NewDiagnosticAt(r, ctx.File, para.Offset+v.Offset, span.End, v.Message)

			if v.Fix != nil {
				for _, edit := range documentEdits(*v.Fix, para.Offset).Edits {
					builder.WithEdit(edit)
				}
				builder.WithSuggestion(suggestion(*v.Fix))
			}

			diags = append(diags, builder.Build())
		}
	}

	return diags, nil
}

// documentEdits lowers a paragraph-local fix to edits on the whole file.
func documentEdits(f novel.Fix, paraOffset int) *fix.EditBuilder {
	edits := fix.NewEditBuilder()
	at := f.Range.Shift(paraOffset)

	switch f.Kind {
	case novel.FixInsertBefore:
		edits.Insert(at.Start, f.Text)
	case novel.FixInsertAfter:
		edits.Insert(at.End, f.Text)
	case novel.FixRemove:
		edits.Delete(at.Start, at.End)
	default:
		edits.ReplaceRange(at.Start, at.End, f.Text)
	}

	return edits
}

// suggestion describes a fix for humans.
func suggestion(f novel.Fix) string {
	switch f.Kind {
	case novel.FixInsertBefore:
		return fmt.Sprintf("insert %q before", f.Text)
	case novel.FixInsertAfter:
		return fmt.Sprintf("insert %q after", f.Text)
	case novel.FixRemove:
		return "remove"
	default:
		return fmt.Sprintf("replace with %q", f.Text)
	}
}
