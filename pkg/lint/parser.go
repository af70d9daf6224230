package lint

import (
	"context"

	"github.com/yaklabco/novelint/pkg/mdast"
)

// Parser turns manuscript bytes into a FileSnapshot.
//
// The interface lives here, in the consuming package; pkg/parser and its
// subpackages provide implementations.
//
// Implementations must be deterministic for a given (path, content) pair,
// must not mutate content, and must not perform I/O. The returned snapshot
// satisfies:
//   - snapshot.Path == path
//   - bytes.Equal(snapshot.Content, content)
//   - snapshot.Root.Kind == mdast.NodeDocument
//   - every node's File is the snapshot
//   - every NodeParagraph's Range covers the paragraph's own source text
type Parser interface {
	Parse(ctx context.Context, path string, content []byte) (*mdast.FileSnapshot, error)
}
