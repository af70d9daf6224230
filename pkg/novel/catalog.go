package novel

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yaklabco/novelint/pkg/kansuji"
)

// closingMarks are the closing brackets and quotes, fullwidth and ASCII.
const closingMarks = "」』】〉》）)”\"’'］]〕｝}＞>"

// afterMarkAllowed may directly follow ？ or ！. Only the end of the
// paragraph also satisfies the rule; a soft line break does not.
const afterMarkAllowed = "　 ？！" + closingMarks

// numeralDigits may directly follow a minus sign.
const numeralDigits = "0123456789０１２３４５６７８９〇一二三四五六七八九十"

// Violation messages.
const (
	msgLeadingChars           = "段落の先頭に許可されていない文字が存在しています"
	msgSpaceAfterMarks        = "感嘆符(！)・疑問符(？)の直後にスペースか閉じ括弧が必要です"
	msgEvenEllipsis           = "連続した三点リーダー(…)の数が偶数ではありません"
	msgEvenDash               = "連続したダッシュ(―)の数が偶数ではありません"
	msgRepeatedPeriodComma    = "連続した句読点(。、)が使われています"
	msgRepeatedInterpunct     = "連続した中黒(・)が使われています"
	msgRepeatedProlongedMark  = "連続した長音符(ー)が使われています"
	msgPunctuationBeforeClose = "句読点(。、)が閉じ括弧の直前に存在しています"
	msgMinusSign              = "マイナス記号(−)の直後が数字ではありません"
	msgMaxNumeralDigitsFormat = "%d桁を超えるアラビア数字が使われています"
)

// Replacement fragments.
const (
	ellipsisPair = "……"
	dashPair     = "――"
	wideSpace    = "　"
)

//nolint:gochecknoglobals // Compiled once, read-only.
var (
	marksPattern         = regexp.MustCompile(`[？！]`)
	ellipsisPattern      = regexp.MustCompile(`…+`)
	dashPattern          = regexp.MustCompile(`―+`)
	periodCommaPattern   = regexp.MustCompile(`。{2,}|、{2,}`)
	interpunctPattern    = regexp.MustCompile(`・{2,}`)
	prolongedMarkPattern = regexp.MustCompile(`ー{2,}`)
	punctuationPattern   = regexp.MustCompile(`[。、]+`)
	minusPattern         = regexp.MustCompile(`−`)
	numeralPattern       = regexp.MustCompile(`([0-9０-９]+)(?:[.．]([0-9０-９]+))?`)

	// linkWithPunctuation is a markdown link whose text carries 。 or 、.
	linkWithPunctuation = regexp.MustCompile(`\[.*[。、]+\]\(.*\)`)

	// footnoteMarker is a reference like #1.
	footnoteMarker = regexp.MustCompile(`#[0-9]`)
)

// Catalog returns the enabled iterative rules for one paragraph in
// evaluation order. Paragraph-level exemptions are applied here: the
// closing-quote rule is dropped when the paragraph contains a markdown link
// with punctuation in its text, and the numeral rule is dropped when the
// paragraph contains a footnote marker.
//
// The link exemption covers the whole paragraph, not just the link span.
func Catalog(opts Options, text string) []CheckUnit {
	candidates := []CheckUnit{
		spaceAfterMarksUnit(),
		evenRunUnit(RuleEvenEllipsis, ellipsisPattern, msgEvenEllipsis, "…"),
		evenRunUnit(RuleEvenDash, dashPattern, msgEvenDash, "―"),
		collapseRunUnit(RuleRepeatedPeriodComma, periodCommaPattern, msgRepeatedPeriodComma, ellipsisPair, 3),
		collapseRunUnit(RuleRepeatedInterpunct, interpunctPattern, msgRepeatedInterpunct, ellipsisPair, 3),
		collapseRunUnit(RuleRepeatedProlongedMark, prolongedMarkPattern, msgRepeatedProlongedMark, dashPair, 2),
		punctuationBeforeCloseUnit(),
		minusSignUnit(),
		maxNumeralDigitsUnit(opts.MaxNumeralDigits(), opts.NumeralStyle()),
	}

	units := make([]CheckUnit, 0, len(candidates))
	for _, unit := range candidates {
		if !opts.Enabled(unit.Rule) {
			continue
		}
		switch unit.Rule {
		case RulePunctuationBeforeClose:
			if linkWithPunctuation.MatchString(text) {
				continue
			}
		case RuleMaxNumeralDigits:
			if footnoteMarker.MatchString(text) {
				continue
			}
		}
		units = append(units, unit)
	}

	return units
}

func spaceAfterMarksUnit() CheckUnit {
	return CheckUnit{
		Rule:    RuleSpaceAfterMarks,
		Pattern: marksPattern,
		Admissible: func(m Match) bool {
			next, ok := m.NextRune()
			return ok && !strings.ContainsRune(afterMarkAllowed, next)
		},
		Message: msgSpaceAfterMarks,
		Fixer: func(m Match) *Fix {
			return InsertAfter(m.Range(), wideSpace)
		},
	}
}

// evenRunUnit flags runs of mark with an odd length and pads them by one.
func evenRunUnit(key RuleKey, pattern *regexp.Regexp, message, mark string) CheckUnit {
	return CheckUnit{
		Rule:    key,
		Pattern: pattern,
		Admissible: func(m Match) bool {
			return m.Runes()%2 == 1
		},
		Message: message,
		Fixer: func(m Match) *Fix {
			return InsertAfter(m.Range(), mark)
		},
	}
}

// collapseRunUnit flags runs of two or more marks and replaces each with
// ceil(n/per) copies of pair.
func collapseRunUnit(key RuleKey, pattern *regexp.Regexp, message, pair string, per int) CheckUnit {
	return CheckUnit{
		Rule:    key,
		Pattern: pattern,
		Message: message,
		Fixer: func(m Match) *Fix {
			count := (m.Runes() + per - 1) / per
			return Replace(m.Range(), strings.Repeat(pair, count))
		},
	}
}

func punctuationBeforeCloseUnit() CheckUnit {
	return CheckUnit{
		Rule:    RulePunctuationBeforeClose,
		Pattern: punctuationPattern,
		Admissible: func(m Match) bool {
			next, ok := m.NextRune()
			return ok && strings.ContainsRune(closingMarks, next)
		},
		Message: msgPunctuationBeforeClose,
		// Point at the last punctuation mark, right before the closer.
		Indexer: func(m Match) int {
			return m.End - len(lastRune(m.Text))
		},
		Fixer: func(m Match) *Fix {
			return Remove(m.Range())
		},
	}
}

func minusSignUnit() CheckUnit {
	return CheckUnit{
		Rule:    RuleMinusSign,
		Pattern: minusPattern,
		Admissible: func(m Match) bool {
			next, ok := m.NextRune()
			return !ok || !strings.ContainsRune(numeralDigits, next)
		},
		Message: msgMinusSign,
		Fixer: func(m Match) *Fix {
			return Replace(m.Range(), "ー")
		},
	}
}

func maxNumeralDigitsUnit(limit int, style kansuji.Style) CheckUnit {
	return CheckUnit{
		Rule:    RuleMaxNumeralDigits,
		Pattern: numeralPattern,
		Admissible: func(m Match) bool {
			for _, group := range m.Groups {
				if runeLen(group) > limit {
					return true
				}
			}
			return false
		},
		Message: fmt.Sprintf(msgMaxNumeralDigitsFormat, limit),
		Fixer: func(m Match) *Fix {
			return Replace(m.Range(), kansuji.Format(m.Text, style))
		},
	}
}
