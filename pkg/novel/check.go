package novel

import (
	"regexp"
	"unicode/utf8"
)

// Match is one pattern hit inside a paragraph.
type Match struct {
	// Start and End delimit the match in bytes.
	Start int
	End   int

	// Text is the matched text.
	Text string

	// Groups holds the capture groups; unmatched groups are empty.
	Groups []string

	// Next is the paragraph text following the match. Predicates inspect it
	// where a lookahead would otherwise be needed.
	Next string
}

// Range returns the match extent.
func (m Match) Range() Range { return Range{Start: m.Start, End: m.End} }

// Runes returns the match length in characters.
func (m Match) Runes() int { return utf8.RuneCountInString(m.Text) }

// NextRune returns the character right after the match, or false at the
// end of the paragraph.
func (m Match) NextRune() (rune, bool) {
	if m.Next == "" {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(m.Next)
	return r, true
}

// CheckUnit declares one iterative rule.
type CheckUnit struct {
	Rule    RuleKey
	Pattern *regexp.Regexp

	// Admissible filters matches; nil accepts all.
	Admissible func(Match) bool

	Message string

	// Indexer picks the reported offset; nil reports the match start.
	Indexer func(Match) int

	// Fixer proposes an edit; nil reports without a fix.
	Fixer func(Match) *Fix
}

// Report runs unit over text and returns one violation per admitted match.
// Matches never overlap and the scan always advances, even past empty
// matches.
func Report(unit CheckUnit, text string) []Violation {
	var violations []Violation

	for _, loc := range unit.Pattern.FindAllStringSubmatchIndex(text, -1) {
		match := newMatch(text, loc)

		if unit.Admissible != nil && !unit.Admissible(match) {
			continue
		}

		offset := match.Start
		if unit.Indexer != nil {
			offset = unit.Indexer(match)
		}

		var fix *Fix
		if unit.Fixer != nil {
			fix = unit.Fixer(match)
		}

		violations = append(violations, Violation{
			Rule:    unit.Rule,
			Offset:  offset,
			Range:   match.Range(),
			Message: unit.Message,
			Fix:     fix,
		})
	}

	return violations
}

func newMatch(text string, loc []int) Match {
	match := Match{
		Start: loc[0],
		End:   loc[1],
		Text:  text[loc[0]:loc[1]],
		Next:  text[loc[1]:],
	}

	for i := 2; i+1 < len(loc); i += 2 {
		if loc[i] < 0 {
			match.Groups = append(match.Groups, "")
			continue
		}
		match.Groups = append(match.Groups, text[loc[i]:loc[i+1]])
	}

	return match
}

// Check runs every enabled rule against one paragraph's text and returns
// the violations in catalog order. The leading-character check comes first.
func Check(text string, opts Options) []Violation {
	var violations []Violation

	if v := CheckLeading(text, opts); v != nil {
		violations = append(violations, *v)
	}

	for _, unit := range Catalog(opts, text) {
		violations = append(violations, Report(unit, text)...)
	}

	return violations
}

// CheckRule runs a single rule against text. It returns nil when the rule
// is disabled or exempted for this paragraph.
func CheckRule(key RuleKey, text string, opts Options) []Violation {
	if key == RuleLeadingChars {
		if v := CheckLeading(text, opts); v != nil {
			return []Violation{*v}
		}
		return nil
	}

	for _, unit := range Catalog(opts, text) {
		if unit.Rule == key {
			return Report(unit, text)
		}
	}

	return nil
}
