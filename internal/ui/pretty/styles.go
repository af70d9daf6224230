// Package pretty renders diagnostics and summaries for the terminal with
// Lipgloss styles.
package pretty

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// ColorMode selects when output is colorized.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode validates a --color value. The empty string means auto.
func ParseColorMode(s string) (ColorMode, error) {
	switch mode := ColorMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case "", ColorAuto:
		return ColorAuto, nil
	case ColorAlways, ColorNever:
		return mode, nil
	default:
		return "", fmt.Errorf("invalid color mode %q: must be auto, always, or never", s)
	}
}

// Styles contains all styled renderers for CLI output.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	FilePath   lipgloss.Style
	Location   lipgloss.Style
	RuleID     lipgloss.Style
	Message    lipgloss.Style
	Suggestion lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style
	Fixable    lipgloss.Style

	// Original and Replacement render the two sides of a fix preview.
	Original    lipgloss.Style
	Replacement lipgloss.Style

	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// palette holds the ANSI 256 colors of the styled output. An empty color
// leaves the foreground unset.
type palette struct {
	red, yellow, blue, green, cyan, gray, light string
	bold, italic                                bool
}

//nolint:gochecknoglobals // Read-only color table.
var ansiPalette = palette{
	red:    "9",
	yellow: "11",
	blue:   "12",
	green:  "10",
	cyan:   "14",
	gray:   "8",
	light:  "7",
	bold:   true,
	italic: true,
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return palette{}.styles()
	}
	return ansiPalette.styles()
}

func (p palette) fg(color string) lipgloss.Style {
	style := lipgloss.NewStyle()
	if color != "" {
		style = style.Foreground(lipgloss.Color(color))
	}
	return style
}

func (p palette) strong(color string) lipgloss.Style {
	return p.fg(color).Bold(p.bold)
}

func (p palette) styles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Error:   p.strong(p.red),
		Warning: p.strong(p.yellow),
		Info:    p.strong(p.blue),

		FilePath:   plain.Bold(p.bold),
		Location:   p.fg(p.gray),
		RuleID:     p.fg(p.gray),
		Message:    plain,
		Suggestion: p.fg(p.green).Italic(p.italic),
		SourceLine: p.fg(p.light),
		Caret:      p.fg(p.red),
		Fixable:    p.fg(p.green),

		Original:    p.fg(p.red).Strikethrough(p.bold),
		Replacement: p.strong(p.green),

		DiffHeader:  plain.Bold(p.bold),
		DiffHunk:    p.fg(p.cyan),
		DiffAdd:     p.fg(p.green),
		DiffRemove:  p.fg(p.red),
		DiffContext: p.fg(p.gray),

		SummaryTitle: plain.Bold(p.bold),
		SummaryValue: plain,
		Success:      p.strong(p.green),
		Failure:      p.strong(p.red),

		Dim:  p.fg(p.gray),
		Bold: plain.Bold(p.bold),
	}
}

// IsColorEnabled reports whether output to writer should be colorized.
// Unknown modes behave like auto. In auto mode NO_COLOR wins, then
// CLICOLOR_FORCE, then whether writer is a terminal.
func IsColorEnabled(mode string, writer io.Writer) bool {
	parsed, err := ParseColorMode(mode)
	if err != nil {
		parsed = ColorAuto
	}

	switch parsed {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force := os.Getenv("CLICOLOR_FORCE"); force != "" && force != "0" {
		return true
	}
	if f, ok := writer.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}
