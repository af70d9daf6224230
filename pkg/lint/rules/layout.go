package rules

import "github.com/yaklabco/novelint/pkg/novel"

// NewLeadingCharsRule creates NS001. A paragraph must open with an
// ideographic space or an opening bracket; the fix indents it.
func NewLeadingCharsRule() *StyleRule {
	return newStyleRule("NS001", novel.RuleLeadingChars,
		"Paragraphs should start with an ideographic space or an opening bracket",
		"layout")
}
