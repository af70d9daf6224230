package mdast

// SourceRange is a half-open byte range in the source content.
type SourceRange struct {
	StartOffset int
	EndOffset   int
}

// Len returns the length of the range in bytes.
func (r SourceRange) Len() int {
	return r.EndOffset - r.StartOffset
}

// IsEmpty returns true if the range has zero length.
func (r SourceRange) IsEmpty() bool {
	return r.StartOffset == r.EndOffset
}

// Contains returns true if offset lies within the range.
func (r SourceRange) Contains(offset int) bool {
	return offset >= r.StartOffset && offset < r.EndOffset
}

// Position is a 1-based line and character column.
type Position struct {
	Line   int
	Column int
}

// IsValid returns true if both values are positive.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

// SourcePosition is a range expressed as line/column pairs.
type SourcePosition struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// IsValid returns true if both ends are valid.
func (sp SourcePosition) IsValid() bool {
	return sp.StartLine > 0 && sp.StartColumn > 0 &&
		sp.EndLine > 0 && sp.EndColumn > 0
}

// PositionOf converts a byte range of the snapshot to line/column form.
func (f *FileSnapshot) PositionOf(r SourceRange) SourcePosition {
	startLine, startCol := f.LineAt(r.StartOffset)
	endLine, endCol := f.LineAt(r.EndOffset)
	return SourcePosition{
		StartLine:   startLine,
		StartColumn: startCol,
		EndLine:     endLine,
		EndColumn:   endCol,
	}
}

// SourcePosition returns the node's range in line/column form.
func (n *Node) SourcePosition() SourcePosition {
	if n.File == nil {
		return SourcePosition{}
	}
	return n.File.PositionOf(n.Range)
}

// Text returns the node's source bytes, or nil when detached.
func (n *Node) Text() []byte {
	if n.File == nil {
		return nil
	}
	if n.Range.StartOffset < 0 || n.Range.EndOffset > len(n.File.Content) ||
		n.Range.StartOffset > n.Range.EndOffset {
		return nil
	}
	return n.File.Content[n.Range.StartOffset:n.Range.EndOffset]
}
