// Package mdast is the document model shared by the parsers and the lint
// engine. A FileSnapshot holds a file's bytes, its line index and a tree of
// block nodes whose ranges point back into the bytes.
package mdast

// FileSnapshot is an immutable view of one manuscript file.
type FileSnapshot struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Content is the full file bytes.
	Content []byte

	// Lines contains metadata for each line in the file.
	Lines []LineInfo

	// Root is the Document node.
	Root *Node

	// Language is the linguist name of the syntax the file was parsed as
	// ("Markdown" or "Text"). Empty when the parser does not say.
	Language string
}

// LineInfo holds metadata for a single line.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is where the line terminator begins; equal to EndOffset
	// for a last line without one.
	NewlineStart int

	// EndOffset is the byte index just after the terminator.
	EndOffset int
}

// NewFileSnapshot creates a snapshot with its line index and an empty
// document root.
func NewFileSnapshot(path string, content []byte) *FileSnapshot {
	snapshot := &FileSnapshot{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
		Root:    NewDocument(),
	}
	snapshot.Root.Range = SourceRange{StartOffset: 0, EndOffset: len(content)}
	snapshot.Root.File = snapshot
	return snapshot
}

// SetFile sets the File back-reference on every node under root.
func SetFile(root *Node, file *FileSnapshot) {
	//nolint:errcheck,revive // The callback never fails.
	Walk(root, func(n *Node) error {
		n.File = file
		return nil
	})
}
