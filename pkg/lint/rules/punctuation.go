package rules

import "github.com/yaklabco/novelint/pkg/novel"

// NewSpaceAfterMarksRule creates NS002.
func NewSpaceAfterMarksRule() *StyleRule {
	return newStyleRule("NS002", novel.RuleSpaceAfterMarks,
		"Exclamation and question marks should be followed by a space or a closing bracket",
		"punctuation")
}

// NewRepeatedPeriodCommaRule creates NS005. Runs of 。 or 、 become
// ellipses.
func NewRepeatedPeriodCommaRule() *StyleRule {
	return newStyleRule("NS005", novel.RuleRepeatedPeriodComma,
		"Periods and commas should not be repeated",
		"punctuation")
}

// NewPunctuationBeforeCloseRule creates NS008.
func NewPunctuationBeforeCloseRule() *StyleRule {
	return newStyleRule("NS008", novel.RulePunctuationBeforeClose,
		"Periods and commas should not appear right before a closing bracket",
		"punctuation", "quotes")
}
