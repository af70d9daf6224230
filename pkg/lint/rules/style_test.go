package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/novelint/pkg/config"
	"github.com/yaklabco/novelint/pkg/fix"
	"github.com/yaklabco/novelint/pkg/lint"
	"github.com/yaklabco/novelint/pkg/novel"
	"github.com/yaklabco/novelint/pkg/parser/goldmark"
)

// applyRule runs one rule over input and returns its diagnostics and the
// content with every fix applied.
func applyRule(t *testing.T, rule lint.Rule, input string, cfg *config.Config) ([]lint.Diagnostic, string) {
	t.Helper()

	parser := goldmark.New(string(config.FlavorCommonMark))
	snapshot, err := parser.Parse(context.Background(), "test.md", []byte(input))
	require.NoError(t, err)

	if cfg == nil {
		cfg = config.NewConfig()
	}
	ctx := lint.NewRuleContext(context.Background(), snapshot, cfg, nil)

	diags, err := rule.Apply(ctx)
	require.NoError(t, err)

	var edits []fix.TextEdit
	for _, d := range diags {
		edits = append(edits, d.FixEdits...)
	}
	fixed, _, err := fix.Apply([]byte(input), edits)
	require.NoError(t, err)

	return diags, string(fixed)
}

func TestStyleRules(t *testing.T) {
	tests := []struct {
		name      string
		rule      *StyleRule
		input     string
		wantDiags int
		wantFix   string
	}{
		{
			name:      "NS001 unindented paragraph",
			rule:      NewLeadingCharsRule(),
			input:     "本文です。\n",
			wantDiags: 1,
			wantFix:   "　本文です。\n",
		},
		{
			name:      "NS001 indented paragraph",
			rule:      NewLeadingCharsRule(),
			input:     "　本文です。\n",
			wantDiags: 0,
			wantFix:   "　本文です。\n",
		},
		{
			name:      "NS001 dialogue opens with bracket",
			rule:      NewLeadingCharsRule(),
			input:     "「おはよう」\n",
			wantDiags: 0,
			wantFix:   "「おはよう」\n",
		},
		{
			name:      "NS001 quoted paragraph is exempt",
			rule:      NewLeadingCharsRule(),
			input:     "> 引用です。\n",
			wantDiags: 0,
			wantFix:   "> 引用です。\n",
		},
		{
			name:      "NS001 headings are not paragraphs",
			rule:      NewLeadingCharsRule(),
			input:     "# 第一章\n",
			wantDiags: 0,
			wantFix:   "# 第一章\n",
		},
		{
			name:      "NS001 tight list item",
			rule:      NewLeadingCharsRule(),
			input:     "- 本文です。\n",
			wantDiags: 1,
			wantFix:   "- 　本文です。\n",
		},
		{
			name:      "NS002 mark followed by text",
			rule:      NewSpaceAfterMarksRule(),
			input:     "　何？あれは\n",
			wantDiags: 1,
			wantFix:   "　何？　あれは\n",
		},
		{
			name:      "NS002 mark at end of paragraph",
			rule:      NewSpaceAfterMarksRule(),
			input:     "　何！\n",
			wantDiags: 0,
			wantFix:   "　何！\n",
		},
		{
			name:      "NS002 mark before soft line break",
			rule:      NewSpaceAfterMarksRule(),
			input:     "　本当？\nそうだ。\n",
			wantDiags: 1,
			wantFix:   "　本当？　\nそうだ。\n",
		},
		{
			name:      "NS002 mark before closing bracket",
			rule:      NewSpaceAfterMarksRule(),
			input:     "「何？」\n",
			wantDiags: 0,
			wantFix:   "「何？」\n",
		},
		{
			name:      "NS003 odd ellipsis",
			rule:      NewEvenEllipsisRule(),
			input:     "　あ…\n",
			wantDiags: 1,
			wantFix:   "　あ……\n",
		},
		{
			name:      "NS003 even ellipsis",
			rule:      NewEvenEllipsisRule(),
			input:     "　あ……\n",
			wantDiags: 0,
			wantFix:   "　あ……\n",
		},
		{
			name:      "NS003 code blocks are not prose",
			rule:      NewEvenEllipsisRule(),
			input:     "```\nあ…\n```\n",
			wantDiags: 0,
			wantFix:   "```\nあ…\n```\n",
		},
		{
			name:      "NS004 odd dash in second paragraph",
			rule:      NewEvenDashRule(),
			input:     "　あ――\n\n　い―\n",
			wantDiags: 1,
			wantFix:   "　あ――\n\n　い――\n",
		},
		{
			name:      "NS005 doubled period",
			rule:      NewRepeatedPeriodCommaRule(),
			input:     "　あ。。\n",
			wantDiags: 1,
			wantFix:   "　あ……\n",
		},
		{
			name:      "NS006 interpuncts as ellipsis",
			rule:      NewRepeatedInterpunctRule(),
			input:     "　あ・・・い\n",
			wantDiags: 1,
			wantFix:   "　あ……い\n",
		},
		{
			name:      "NS007 prolonged marks as dash",
			rule:      NewRepeatedProlongedMarkRule(),
			input:     "　あーーー\n",
			wantDiags: 1,
			wantFix:   "　あ――――\n",
		},
		{
			name:      "NS008 period before closing quote",
			rule:      NewPunctuationBeforeCloseRule(),
			input:     "「あ。」\n",
			wantDiags: 1,
			wantFix:   "「あ」\n",
		},
		{
			name:      "NS009 minus sign as prolonged mark",
			rule:      NewMinusSignRule(),
			input:     "　あ−い\n",
			wantDiags: 1,
			wantFix:   "　あーい\n",
		},
		{
			name:      "NS009 minus sign before digit",
			rule:      NewMinusSignRule(),
			input:     "　−5度\n",
			wantDiags: 0,
			wantFix:   "　−5度\n",
		},
		{
			name:      "NS010 long numeral",
			rule:      NewMaxNumeralDigitsRule(),
			input:     "　2017年\n",
			wantDiags: 1,
			wantFix:   "　二〇一七年\n",
		},
		{
			name:      "NS010 short numeral",
			rule:      NewMaxNumeralDigitsRule(),
			input:     "　12年\n",
			wantDiags: 0,
			wantFix:   "　12年\n",
		},
		{
			name:      "NS010 footnote marker exempts paragraph",
			rule:      NewMaxNumeralDigitsRule(),
			input:     "　注#123を参照\n",
			wantDiags: 0,
			wantFix:   "　注#123を参照\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags, fixed := applyRule(t, tt.rule, tt.input, nil)
			assert.Len(t, diags, tt.wantDiags)
			assert.Equal(t, tt.wantFix, fixed)

			for _, d := range diags {
				assert.Equal(t, tt.rule.ID(), d.RuleID)
				assert.Equal(t, tt.rule.Name(), d.RuleName)
				assert.NotEmpty(t, d.Message)
				assert.True(t, d.HasFix())
				assert.NotEmpty(t, d.Suggestion)
			}
		})
	}
}

func TestStyleRule_Positions(t *testing.T) {
	diags, _ := applyRule(t, NewSpaceAfterMarksRule(), "# 題\n\n　何？あれは\n", nil)
	require.Len(t, diags, 1)

	d := diags[0]
	assert.Equal(t, 3, d.StartLine)
	assert.Equal(t, 3, d.StartColumn)
	assert.Equal(t, len("# 題\n\n　何"), d.StartOffset)
	assert.Equal(t, d.StartOffset+len("？"), d.EndOffset)
}

func TestStyleRule_RespectsStyleOptions(t *testing.T) {
	t.Run("digit limit", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.Rules["max-arabic-numeral-digits"] = config.RuleConfigFromValue(4)

		diags, _ := applyRule(t, NewMaxNumeralDigitsRule(), "　2017年\n", cfg)
		assert.Empty(t, diags)
	})

	t.Run("numeral style", func(t *testing.T) {
		on := true
		cfg := config.NewConfig()
		cfg.Rules["NS010"] = config.RuleConfig{
			Enabled: &on,
			Options: map[string]any{lint.OptionNumeralStyle: "units"},
		}

		_, fixed := applyRule(t, NewMaxNumeralDigitsRule(), "　123人\n", cfg)
		assert.Equal(t, "　百二十三人\n", fixed)
	})

	t.Run("leading charset", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.Rules["chars_leading_paragraph"] = config.RuleConfigFromValue("「")

		diags, fixed := applyRule(t, NewLeadingCharsRule(), "　本文\n", cfg)
		assert.Len(t, diags, 1)
		assert.Equal(t, "「　本文\n", fixed)
	})

	t.Run("disabled rule reports nothing", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.DisableRules = []string{"NS003"}

		diags, _ := applyRule(t, NewEvenEllipsisRule(), "　あ…\n", cfg)
		assert.Empty(t, diags)
	})
}

func TestStyleRule_Cancelled(t *testing.T) {
	parser := goldmark.New(string(config.FlavorCommonMark))
	snapshot, err := parser.Parse(context.Background(), "test.md", []byte("　あ…\n"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rc := lint.NewRuleContext(ctx, snapshot, config.NewConfig(), nil)
	_, err = NewEvenEllipsisRule().Apply(rc)
	require.ErrorIs(t, err, context.Canceled)
}

func TestDocumentEdits(t *testing.T) {
	t.Parallel()

	span := novel.Range{Start: 3, End: 6}

	tests := []struct {
		name string
		fix  novel.Fix
		want fix.TextEdit
	}{
		{
			name: "insert before",
			fix:  *novel.InsertBefore(0, "　"),
			want: fix.TextEdit{StartOffset: 100, EndOffset: 100, NewText: "　"},
		},
		{
			name: "insert after",
			fix:  *novel.InsertAfter(span, "　"),
			want: fix.TextEdit{StartOffset: 106, EndOffset: 106, NewText: "　"},
		},
		{
			name: "replace",
			fix:  *novel.Replace(span, "……"),
			want: fix.TextEdit{StartOffset: 103, EndOffset: 106, NewText: "……"},
		},
		{
			name: "remove",
			fix:  *novel.Remove(span),
			want: fix.TextEdit{StartOffset: 103, EndOffset: 106},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			edits := documentEdits(tt.fix, 100).Edits
			require.Len(t, edits, 1)
			assert.Equal(t, tt.want, edits[0])
		})
	}
}
