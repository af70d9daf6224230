package novel

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// CheckLeading verifies that text opens with a character from the
// configured leading set. Empty text is exempt. The first character is the
// first grapheme cluster, so a base letter with combining marks counts as
// one character. The fix inserts the first character of the set.
func CheckLeading(text string, opts Options) *Violation {
	charset := opts.LeadingChars()
	if charset == "" || text == "" {
		return nil
	}

	first := firstGrapheme(text)
	if containsGrapheme(charset, first) {
		return nil
	}

	return &Violation{
		Rule:    RuleLeadingChars,
		Offset:  0,
		Range:   Range{Start: 0, End: len(first)},
		Message: msgLeadingChars,
		Fix:     InsertBefore(0, firstGrapheme(charset)),
	}
}

func firstGrapheme(s string) string {
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(s, -1)
	return cluster
}

func containsGrapheme(set, cluster string) bool {
	state := -1
	for set != "" {
		var candidate string
		candidate, set, _, state = uniseg.FirstGraphemeClusterInString(set, state)
		if candidate == cluster {
			return true
		}
	}
	return false
}

func lastRune(s string) string {
	_, size := utf8.DecodeLastRuneInString(s)
	return s[len(s)-size:]
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
