// Package plaintext parses plain-text manuscripts. Every line holding
// visible text is one paragraph, which is how Japanese manuscripts in .txt
// form are laid out: one paragraph per line, opened by an ideographic space
// or a bracket.
package plaintext

import (
	"bytes"
	"context"
	"fmt"
	"unicode"

	"github.com/yaklabco/novelint/pkg/mdast"
)

//nolint:gochecknoglobals // Constant byte sequence.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parser implements lint.Parser for plain text.
type Parser struct{}

// New returns a plain-text parser.
func New() *Parser {
	return &Parser{}
}

// Parse splits content into one paragraph per non-blank line. Lines made
// only of whitespace, including the ideographic space, separate paragraphs.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*mdast.FileSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	cp := make([]byte, len(content))
	copy(cp, content)
	snapshot := mdast.NewFileSnapshot(path, cp)

	for _, line := range snapshot.Lines {
		start := line.StartOffset
		if start == 0 && bytes.HasPrefix(cp, utf8BOM) {
			start = len(utf8BOM)
		}
		end := line.NewlineStart
		if start >= end || isBlank(cp[start:end]) {
			continue
		}

		para := mdast.NewNode(mdast.NodeParagraph)
		para.Range = mdast.SourceRange{StartOffset: start, EndOffset: end}
		mdast.AppendChild(snapshot.Root, para)
	}

	mdast.SetFile(snapshot.Root, snapshot)
	return snapshot, nil
}

func isBlank(line []byte) bool {
	return len(bytes.TrimFunc(line, unicode.IsSpace)) == 0
}
