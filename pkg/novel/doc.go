// Package novel is the rule evaluation engine for Japanese novel
// manuscripts.
//
// The engine works on one paragraph at a time. Callers resolve a flat
// option mapping into Options once per run, filter paragraphs with Admit,
// and call Check (or CheckRule for a single rule) on each admitted
// paragraph's text. Results are Violations with paragraph-local byte
// offsets and an optional Fix describing a minimal edit. The engine never
// mutates text and has no error paths.
//
// # Rules
//
//   - leading-paragraph-chars: a paragraph opens with the ideographic space
//     or an opening bracket.
//   - space-after-marks: ？ and ！ are followed by a space or closer.
//   - even-ellipsis-run, even-dash-run: … and ― come in pairs.
//   - no-repeated-period-comma, no-repeated-interpunct: runs of 。、・ are
//     rewritten as ellipses.
//   - no-repeated-prolonged-mark: runs of ー are rewritten as dashes.
//   - no-punctuation-before-closing-quote: no 。、 right before a closer.
//   - minus-sign-before-digit-only: − is followed by a digit.
//   - max-arabic-numeral-digits: long arabic numerals become kanji.
package novel
