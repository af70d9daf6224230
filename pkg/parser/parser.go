// Package parser selects the parser for each manuscript file.
package parser

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/novelint/pkg/langdetect"
	"github.com/yaklabco/novelint/pkg/mdast"
	"github.com/yaklabco/novelint/pkg/parser/goldmark"
	"github.com/yaklabco/novelint/pkg/parser/plaintext"
)

// ErrBinaryContent is returned for files that are not text.
var ErrBinaryContent = errors.New("binary content")

// SyntaxAuto selects the parser from the file name.
const SyntaxAuto = "auto"

// Dispatcher implements lint.Parser by routing each file to the Markdown or
// the plain-text parser. It is safe for concurrent use.
type Dispatcher struct {
	markdown *goldmark.Parser
	text     *plaintext.Parser
	forced   langdetect.Format
}

// New returns a Dispatcher. flavor configures the Markdown parser; syntax
// is "auto", "markdown" or "text".
func New(flavor, syntax string) *Dispatcher {
	forced, _ := langdetect.ParseFormat(syntax)
	return &Dispatcher{
		markdown: goldmark.New(flavor),
		text:     plaintext.New(),
		forced:   forced,
	}
}

// Format returns the syntax used for path.
func (d *Dispatcher) Format(path string, content []byte) langdetect.Format {
	if d.forced != "" {
		return d.forced
	}
	return langdetect.DetectFormat(path, content)
}

// Parse parses content with the parser chosen for path.
func (d *Dispatcher) Parse(ctx context.Context, path string, content []byte) (*mdast.FileSnapshot, error) {
	var (
		snapshot *mdast.FileSnapshot
		err      error
	)

	format := d.Format(path, content)
	switch format {
	case langdetect.FormatMarkdown:
		snapshot, err = d.markdown.Parse(ctx, path, content)
	case langdetect.FormatBinary:
		return nil, fmt.Errorf("%s: %w", path, ErrBinaryContent)
	default:
		format = langdetect.FormatText
		snapshot, err = d.text.Parse(ctx, path, content)
	}
	if err != nil {
		return nil, err
	}

	snapshot.Language = format.Language()
	return snapshot, nil
}
