package lint

import (
	"github.com/yaklabco/novelint/pkg/mdast"
	"github.com/yaklabco/novelint/pkg/novel"
)

// Paragraphs returns every paragraph block of the file as a
// novel.Paragraph, in document order. Quoted is set for paragraphs inside
// a blockquote; callers decide whether to skip them.
func Paragraphs(file *mdast.FileSnapshot) []novel.Paragraph {
	if file == nil || file.Root == nil {
		return nil
	}

	nodes := mdast.FindByKind(file.Root, mdast.NodeParagraph)
	paragraphs := make([]novel.Paragraph, 0, len(nodes))
	for _, node := range nodes {
		if node.Range.IsEmpty() {
			continue
		}
		paragraphs = append(paragraphs, novel.Paragraph{
			Text:   string(file.Content[node.Range.StartOffset:node.Range.EndOffset]),
			Offset: node.Range.StartOffset,
			Quoted: InBlockquote(node),
		})
	}

	return paragraphs
}

// InBlockquote reports whether any ancestor of n is a blockquote.
func InBlockquote(n *mdast.Node) bool {
	return n != nil && n.HasAncestor(mdast.NodeBlockquote)
}

// paragraphCache extracts a file's paragraphs once and shares them between
// the rules run on that file.
//
// The returned slice is shared; rules must not modify it. The cache is not
// safe for concurrent use: rules for one file run sequentially, and each
// file gets its own cache.
type paragraphCache struct {
	file       *mdast.FileSnapshot
	built      bool
	paragraphs []novel.Paragraph
}

func newParagraphCache(file *mdast.FileSnapshot) *paragraphCache {
	return &paragraphCache{file: file}
}

func (c *paragraphCache) get() []novel.Paragraph {
	if !c.built {
		c.paragraphs = Paragraphs(c.file)
		c.built = true
	}
	return c.paragraphs
}
