package rules

import "github.com/yaklabco/novelint/pkg/novel"

// NewEvenEllipsisRule creates NS003.
func NewEvenEllipsisRule() *StyleRule {
	return newStyleRule("NS003", novel.RuleEvenEllipsis,
		"Ellipses should be used in runs of even length",
		"symbols")
}

// NewEvenDashRule creates NS004.
func NewEvenDashRule() *StyleRule {
	return newStyleRule("NS004", novel.RuleEvenDash,
		"Dashes should be used in runs of even length",
		"symbols")
}

// NewRepeatedInterpunctRule creates NS006.
func NewRepeatedInterpunctRule() *StyleRule {
	return newStyleRule("NS006", novel.RuleRepeatedInterpunct,
		"Interpuncts should not be repeated in place of an ellipsis",
		"symbols")
}

// NewRepeatedProlongedMarkRule creates NS007.
func NewRepeatedProlongedMarkRule() *StyleRule {
	return newStyleRule("NS007", novel.RuleRepeatedProlongedMark,
		"Prolonged sound marks should not be repeated in place of a dash",
		"symbols")
}

// NewMinusSignRule creates NS009. A minus sign not followed by a digit is
// taken for a mistyped prolonged sound mark.
func NewMinusSignRule() *StyleRule {
	return newStyleRule("NS009", novel.RuleMinusSign,
		"Minus signs should only precede digits",
		"symbols", "numerals")
}
