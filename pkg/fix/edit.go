// Package fix provides text edits and their application for auto-fixing
// manuscripts.
package fix

// TextEdit replaces the bytes [StartOffset, EndOffset) of a file with NewText.
// An empty range is an insertion; an empty NewText is a deletion.
type TextEdit struct {
	StartOffset int
	EndOffset   int
	NewText     string
}

// IsInsertion reports whether the edit replaces no bytes.
func (e TextEdit) IsInsertion() bool {
	return e.StartOffset == e.EndOffset
}

// EditBuilder accumulates text edits for a file.
type EditBuilder struct {
	Edits []TextEdit
}

// NewEditBuilder creates an empty EditBuilder.
func NewEditBuilder() *EditBuilder {
	return &EditBuilder{}
}

// ReplaceRange adds an edit that replaces bytes [start, end) with newText.
func (b *EditBuilder) ReplaceRange(start, end int, newText string) {
	b.Edits = append(b.Edits, TextEdit{
		StartOffset: start,
		EndOffset:   end,
		NewText:     newText,
	})
}

// Insert adds an edit that inserts text at the given offset.
func (b *EditBuilder) Insert(offset int, text string) {
	b.ReplaceRange(offset, offset, text)
}

// Delete adds an edit that deletes bytes [start, end).
func (b *EditBuilder) Delete(start, end int) {
	b.ReplaceRange(start, end, "")
}
