// Package langdetect decides how a manuscript file should be parsed.
// It uses go-enry's extension tables, so the same names that linguist
// recognises for Markdown and plain text are recognised here.
package langdetect

import (
	"slices"

	"github.com/go-enry/go-enry/v2"
)

// Format is the syntax a file is parsed with.
type Format string

// Formats.
const (
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
	FormatBinary   Format = "binary"
)

// Linguist language names.
const (
	langMarkdown = "Markdown"
	langText     = "Text"
)

// DetectFormat returns the syntax for a file. Binary content is reported
// as FormatBinary so callers can skip it. Extensions linguist maps to
// Markdown select FormatMarkdown; everything else is plain text.
func DetectFormat(path string, content []byte) Format {
	if enry.IsBinary(content) {
		return FormatBinary
	}

	// .md is ambiguous in linguist, so look at every candidate.
	candidates := enry.GetLanguagesByExtension(path, content, nil)
	if slices.Contains(candidates, langMarkdown) {
		return FormatMarkdown
	}

	if lang, safe := enry.GetLanguageByFilename(path); safe && lang == langMarkdown {
		return FormatMarkdown
	}

	return FormatText
}

// ParseFormat maps a configuration value to a Format. "auto" and the empty
// string return ok=false, meaning detection should be used.
func ParseFormat(name string) (Format, bool) {
	switch Format(name) {
	case FormatMarkdown, FormatText:
		return Format(name), true
	default:
		return "", false
	}
}

// Language returns the linguist name for a format, as used in reports.
func (f Format) Language() string {
	if f == FormatMarkdown {
		return langMarkdown
	}
	return langText
}
