// Package kansuji renders arabic numerals as kanji numerals.
//
// Two renderings are supported. StyleDigits writes each digit as its kanji
// with 〇 for zero, the form used in vertical manuscripts (2017 → 二〇一七).
// StyleUnits spells the number out with the positional units 十百千 and the
// myriad groups 万億兆 (2017 → 二千十七).
//
// Fullwidth digits and the fullwidth full stop are folded before conversion,
// so "１２３．４" and "123.4" render identically. The fractional part is
// always written digit by digit after a nakaguro (・).
package kansuji

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/width"
)

// Style selects how the integer part of a numeral is rendered.
type Style int

const (
	// StyleDigits writes one kanji per digit.
	StyleDigits Style = iota
	// StyleUnits spells the number out with positional units.
	StyleUnits
)

// ErrUnknownStyle is returned by ParseStyle for unrecognised names.
var ErrUnknownStyle = errors.New("unknown numeral style")

// String returns the configuration name of the style.
func (s Style) String() string {
	switch s {
	case StyleUnits:
		return "units"
	default:
		return "digits"
	}
}

// ParseStyle maps a configuration name to a Style.
// "wide" is accepted as a synonym of "digits".
func ParseStyle(name string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "digits", "wide", "":
		return StyleDigits, nil
	case "units":
		return StyleUnits, nil
	default:
		return StyleDigits, fmt.Errorf("%w: %q", ErrUnknownStyle, name)
	}
}

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	digitKanji = [10]string{"〇", "一", "二", "三", "四", "五", "六", "七", "八", "九"}
	smallUnits = [4]string{"", "十", "百", "千"}
	largeUnits = []string{"", "万", "億", "兆", "京", "垓", "秭", "穣", "溝", "澗", "正", "載", "極"}
)

// groupSize is the number of digits per myriad group.
const groupSize = 4

// Format converts numeral to kanji using style. Input that is not a digit
// run with an optional decimal part is returned unchanged.
func Format(numeral string, style Style) string {
	folded := width.Narrow.String(numeral)

	intPart, fracPart, hasFrac := strings.Cut(folded, ".")
	if !isDigits(intPart) || (hasFrac && !isDigits(fracPart)) {
		return numeral
	}

	var out strings.Builder
	if style == StyleUnits {
		writeUnits(&out, intPart)
	} else {
		writeDigits(&out, intPart)
	}

	if hasFrac {
		out.WriteString("・")
		writeDigits(&out, fracPart)
	}

	return out.String()
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := range len(s) {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func writeDigits(out *strings.Builder, digits string) {
	for i := range len(digits) {
		out.WriteString(digitKanji[digits[i]-'0'])
	}
}

func writeUnits(out *strings.Builder, digits string) {
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		out.WriteString(digitKanji[0])
		return
	}

	groups := (len(digits) + groupSize - 1) / groupSize
	if groups > len(largeUnits) {
		writeDigits(out, digits)
		return
	}

	for g := range groups {
		end := len(digits) - (groups-1-g)*groupSize
		start := max(0, end-groupSize)
		chunk := digits[start:end]
		if strings.Trim(chunk, "0") == "" {
			continue
		}
		writeGroup(out, chunk)
		out.WriteString(largeUnits[groups-1-g])
	}
}

// writeGroup spells out one group of up to four digits. A leading one is
// implied before 十百千 (十, not 一十), as in ordinary prose.
func writeGroup(out *strings.Builder, chunk string) {
	for i := range len(chunk) {
		d := chunk[i] - '0'
		place := len(chunk) - 1 - i
		if d == 0 {
			continue
		}
		if d != 1 || place == 0 {
			out.WriteString(digitKanji[d])
		}
		out.WriteString(smallUnits[place])
	}
}
