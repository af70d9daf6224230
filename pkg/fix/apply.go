package fix

import (
	"bytes"
	"fmt"
)

// ApplyEdits applies edits prepared by PrepareEditsFiltered:
// sorted, in range and non-overlapping.
func ApplyEdits(content []byte, edits []TextEdit) []byte {
	if len(edits) == 0 {
		return content
	}

	delta := 0
	for _, e := range edits {
		delta += len(e.NewText) - (e.EndOffset - e.StartOffset)
	}

	var out bytes.Buffer
	out.Grow(len(content) + delta)

	cursor := 0
	for _, e := range edits {
		out.Write(content[cursor:e.StartOffset])
		out.WriteString(e.NewText)
		cursor = e.EndOffset
	}
	out.Write(content[cursor:])

	return out.Bytes()
}

// Apply validates, orders and filters edits, then applies the accepted ones
// to content. It returns the new content and the edits that were skipped
// because an earlier edit already covered their range.
func Apply(content []byte, edits []TextEdit) ([]byte, []TextEdit, error) {
	accepted, skipped, _, err := PrepareEditsFiltered(edits, len(content))
	if err != nil {
		return nil, nil, fmt.Errorf("prepare edits: %w", err)
	}
	return ApplyEdits(content, accepted), skipped, nil
}
