package novel

import (
	"math"
	"strconv"
	"strings"

	"github.com/yaklabco/novelint/pkg/kansuji"
)

// RuleKey names one style rule in the flat configuration mapping.
type RuleKey string

// Rule keys, in catalog order.
const (
	RuleLeadingChars           RuleKey = "leading-paragraph-chars"
	RuleSpaceAfterMarks        RuleKey = "space-after-marks"
	RuleEvenEllipsis           RuleKey = "even-ellipsis-run"
	RuleEvenDash               RuleKey = "even-dash-run"
	RuleRepeatedPeriodComma    RuleKey = "no-repeated-period-comma"
	RuleRepeatedInterpunct     RuleKey = "no-repeated-interpunct"
	RuleRepeatedProlongedMark  RuleKey = "no-repeated-prolonged-mark"
	RulePunctuationBeforeClose RuleKey = "no-punctuation-before-closing-quote"
	RuleMinusSign              RuleKey = "minus-sign-before-digit-only"
	RuleMaxNumeralDigits       RuleKey = "max-arabic-numeral-digits"
)

// KeyNumeralStyle selects the kanji rendering used by the numeral fix.
const KeyNumeralStyle = "numeral-style"

const (
	// DefaultLeadingChars is the set of characters a paragraph may open with:
	// the ideographic space and the opening brackets and quotes.
	DefaultLeadingChars = "　「『【〈《（(“\"‘'［[〔｛{＜<"

	// DefaultMaxNumeralDigits is the longest arabic digit run left alone.
	DefaultMaxNumeralDigits = 2
)

// Rules returns every rule key in catalog order.
func Rules() []RuleKey {
	return []RuleKey{
		RuleLeadingChars,
		RuleSpaceAfterMarks,
		RuleEvenEllipsis,
		RuleEvenDash,
		RuleRepeatedPeriodComma,
		RuleRepeatedInterpunct,
		RuleRepeatedProlongedMark,
		RulePunctuationBeforeClose,
		RuleMinusSign,
		RuleMaxNumeralDigits,
	}
}

// LegacyKeys maps the option names of the textlint rule this checker
// replaces onto rule keys.
func LegacyKeys() map[string]RuleKey {
	return map[string]RuleKey{
		"chars_leading_paragraph":         RuleLeadingChars,
		"space_after_marks":               RuleSpaceAfterMarks,
		"even_number_ellipsises":          RuleEvenEllipsis,
		"even_number_dashes":              RuleEvenDash,
		"appropriate_use_of_punctuation":  RuleRepeatedPeriodComma,
		"appropriate_use_of_interpunct":   RuleRepeatedInterpunct,
		"appropriate_use_of_choonpu":      RuleRepeatedProlongedMark,
		"no_punctuation_at_closing_quote": RulePunctuationBeforeClose,
		"appropriate_use_of_minus_sign":   RuleMinusSign,
		"max_arabic_numeral_digits":       RuleMaxNumeralDigits,
	}
}

// Options is the resolved configuration for one run. The zero value has
// every rule disabled; use Resolve or DefaultOptions.
type Options struct {
	enabled      map[RuleKey]bool
	leadingChars string
	maxDigits    int
	numeralStyle kansuji.Style
}

// DefaultOptions returns the options with every rule at its default.
func DefaultOptions() Options {
	return Resolve(nil)
}

// Enabled reports whether the rule runs.
func (o Options) Enabled(key RuleKey) bool {
	switch key {
	case RuleLeadingChars:
		return o.leadingChars != ""
	default:
		return o.enabled[key]
	}
}

// LeadingChars returns the allowed paragraph-opening characters.
// Empty means the leading check is off.
func (o Options) LeadingChars() string { return o.leadingChars }

// MaxNumeralDigits returns the longest digit run accepted by the numeral rule.
func (o Options) MaxNumeralDigits() int { return o.maxDigits }

// NumeralStyle returns the kanji rendering used by the numeral fix.
func (o Options) NumeralStyle() kansuji.Style { return o.numeralStyle }

// Resolve merges user over the defaults. Unknown keys are ignored and
// values of the wrong type fall back to the default, so resolution never
// fails. Legacy textlint key names are applied first so that a canonical
// key always wins when both are present.
func Resolve(user map[string]any) Options {
	opts := Options{
		enabled:      make(map[RuleKey]bool, len(Rules())),
		leadingChars: DefaultLeadingChars,
		maxDigits:    DefaultMaxNumeralDigits,
		numeralStyle: kansuji.StyleDigits,
	}
	for _, key := range Rules() {
		opts.enabled[key] = true
	}

	legacy := LegacyKeys()
	for _, legacyPass := range []bool{true, false} {
		for raw, value := range user {
			key, isLegacy := legacy[raw]
			if !isLegacy {
				key = RuleKey(raw)
			}
			if isLegacy != legacyPass {
				continue
			}
			opts.apply(key, value)
		}
	}

	return opts
}

func (o *Options) apply(key RuleKey, value any) {
	switch key {
	case RuleLeadingChars:
		o.leadingChars = resolveCharset(value)
	case RuleMaxNumeralDigits:
		o.maxDigits, o.enabled[key] = resolveMaxDigits(value)
	case KeyNumeralStyle:
		if name, ok := value.(string); ok {
			if style, err := kansuji.ParseStyle(name); err == nil {
				o.numeralStyle = style
			}
		}
	case RuleSpaceAfterMarks, RuleEvenEllipsis, RuleEvenDash, RuleRepeatedPeriodComma,
		RuleRepeatedInterpunct, RuleRepeatedProlongedMark, RulePunctuationBeforeClose, RuleMinusSign:
		o.enabled[key] = resolveBool(value, true)
	}
}

func resolveCharset(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		if v {
			return DefaultLeadingChars
		}
		return ""
	case nil:
		return ""
	case []string:
		return strings.Join(v, "")
	case []any:
		var set strings.Builder
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return DefaultLeadingChars
			}
			set.WriteString(s)
		}
		return set.String()
	default:
		return DefaultLeadingChars
	}
}

// resolveMaxDigits returns the limit and whether the numeral rule runs.
// Only an explicit false disables it; values that are not numbers keep the
// check on at the default limit.
func resolveMaxDigits(value any) (int, bool) {
	if v, ok := value.(bool); ok && !v {
		return DefaultMaxNumeralDigits, false
	}
	if n, ok := toInt(value); ok {
		return max(n, 0), true
	}
	return DefaultMaxNumeralDigits, true
}

func resolveBool(value any, fallback bool) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
		return fallback
	}
	if n, ok := toInt(value); ok {
		return n != 0
	}
	return fallback
}

func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int8:
		return int(v), true
	case int16:
		return int(v), true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case uint:
		return int(v), true
	case uint8:
		return int(v), true
	case uint16:
		return int(v), true
	case uint32:
		return int(v), true
	case uint64:
		return int(v), true
	case float32:
		return floatToInt(float64(v))
	case float64:
		return floatToInt(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		return n, err == nil
	default:
		return 0, false
	}
}

func floatToInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
