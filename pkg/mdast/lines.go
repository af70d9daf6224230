package mdast

import (
	"sort"
	"unicode/utf8"
)

// BuildLines constructs line metadata from file content.
// It handles both LF and CRLF line endings.
func BuildLines(content []byte) []LineInfo {
	if len(content) == 0 {
		return []LineInfo{}
	}

	var lines []LineInfo
	lineStart := 0

	for idx, char := range content {
		if char != '\n' {
			continue
		}
		newlineStart := idx
		if idx > lineStart && content[idx-1] == '\r' {
			newlineStart = idx - 1
		}
		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: newlineStart,
			EndOffset:    idx + 1,
		})
		lineStart = idx + 1
	}

	lines = append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(content),
		EndOffset:    len(content),
	})

	return lines
}

// LineCount returns the number of lines in the file.
func (f *FileSnapshot) LineCount() int {
	return len(f.Lines)
}

// lineIndex returns the 0-based index of the line holding offset, or -1.
func (f *FileSnapshot) lineIndex(offset int) int {
	if offset < 0 || len(f.Lines) == 0 {
		return -1
	}
	if offset >= len(f.Content) {
		return len(f.Lines) - 1
	}

	idx := sort.Search(len(f.Lines), func(i int) bool {
		return f.Lines[i].EndOffset > offset
	})
	if idx >= len(f.Lines) {
		idx = len(f.Lines) - 1
	}
	return idx
}

// LineAt converts a byte offset to a 1-based line and a 1-based column.
// Columns count characters, not bytes, so a column in Japanese text means
// the same thing to the reader as it does in an editor.
// Returns (0, 0) if the offset is out of range.
func (f *FileSnapshot) LineAt(offset int) (int, int) {
	idx := f.lineIndex(offset)
	if idx < 0 {
		return 0, 0
	}

	line := f.Lines[idx]
	end := min(offset, len(f.Content))
	if end < line.StartOffset {
		return 0, 0
	}

	col := utf8.RuneCount(f.Content[line.StartOffset:end]) + 1 + (offset - end)
	return idx + 1, col
}

// Offset converts a 1-based line and character column to a byte offset.
// Column len+1 addresses the end of the line.
func (f *FileSnapshot) Offset(line, col int) (int, bool) {
	if line < 1 || line > len(f.Lines) || col < 1 {
		return 0, false
	}

	info := f.Lines[line-1]
	offset := info.StartOffset
	for i := 1; i < col; i++ {
		if offset >= info.NewlineStart {
			return 0, false
		}
		_, size := utf8.DecodeRune(f.Content[offset:info.NewlineStart])
		offset += size
	}

	return offset, true
}

// LineContent returns the 1-based line without its terminator, or nil.
func (f *FileSnapshot) LineContent(line int) []byte {
	if line < 1 || line > len(f.Lines) {
		return nil
	}

	info := f.Lines[line-1]
	return f.Content[info.StartOffset:info.NewlineStart]
}
