// Package rules provides the built-in style rules for novelint.
//
// Every rule wraps one check from package novel and runs it over the
// paragraphs of a manuscript. Paragraphs inside block quotes are skipped.
//
// # Rules
//
// Layout:
//
//   - NS001: leading-paragraph-chars - Paragraphs open with an ideographic
//     space or an opening bracket
//
// Punctuation:
//
//   - NS002: space-after-marks - ？ and ！ are followed by a space or a
//     closing bracket
//   - NS005: no-repeated-period-comma - 。。 and 、、 become ……
//   - NS008: no-punctuation-before-closing-quote - No 。 or 、 before 」
//
// Symbols:
//
//   - NS003: even-ellipsis-run - … comes in pairs
//   - NS004: even-dash-run - ― comes in pairs
//   - NS006: no-repeated-interpunct - ・・・ becomes ……
//   - NS007: no-repeated-prolonged-mark - ーー becomes ――
//   - NS009: minus-sign-before-digit-only - − only before a digit
//
// Numerals:
//
//   - NS010: max-arabic-numeral-digits - Long arabic numerals are written
//     in kanji
//
// # Aliases
//
// The option names of the textlint general-novel-style preset, such as
// "even_number_dashes", are registered as aliases of the matching rule.
//
// # Packs
//
// Packs are named presets used by "novelint init --pack": standard,
// strict, web and relaxed.
package rules
