package rules

import "github.com/yaklabco/novelint/pkg/novel"

// NewMaxNumeralDigitsRule creates NS010. Numerals longer than the
// configured digit count are rewritten in kanji.
func NewMaxNumeralDigitsRule() *StyleRule {
	return newStyleRule("NS010", novel.RuleMaxNumeralDigits,
		"Arabic numerals should not exceed the configured number of digits",
		"numerals")
}
