package goldmark

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/novelint/pkg/mdast"
)

//nolint:gochecknoglobals // Constant byte sequence.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// mapper converts the block structure of a goldmark AST into mdast nodes.
// Inline nodes are not mapped.
type mapper struct {
	content []byte
}

func newMapper(content []byte) *mapper {
	return &mapper{content: content}
}

func (m *mapper) mapChildren(gmParent ast.Node, parent *mdast.Node) {
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		if child.Type() != ast.TypeBlock {
			continue
		}
		node := m.mapBlock(child)
		mdast.AppendChild(parent, node)
		widen(parent, node.Range)
	}
}

func (m *mapper) mapBlock(gmNode ast.Node) *mdast.Node {
	switch gmn := gmNode.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		// Tight list items hold a TextBlock; both are prose paragraphs.
		return m.leaf(mdast.NodeParagraph, gmNode)

	case *ast.Heading:
		node := m.leaf(mdast.NodeHeading, gmNode)
		node.Level = gmn.Level
		return node

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		return m.leaf(mdast.NodeCodeBlock, gmNode)

	case *ast.HTMLBlock:
		return m.leaf(mdast.NodeHTMLBlock, gmNode)

	case *ast.ThematicBreak:
		return mdast.NewNode(mdast.NodeThematicBreak)

	case *ast.List:
		return m.container(mdast.NodeList, gmNode)

	case *ast.ListItem:
		return m.container(mdast.NodeListItem, gmNode)

	case *ast.Blockquote:
		return m.container(mdast.NodeBlockquote, gmNode)

	case *east.Table:
		return mdast.NewNode(mdast.NodeTable)

	default:
		return m.container(mdast.NodeRaw, gmNode)
	}
}

// leaf maps a block whose text is held in its Lines.
func (m *mapper) leaf(kind mdast.NodeKind, gmNode ast.Node) *mdast.Node {
	node := mdast.NewNode(kind)
	node.Range = m.linesRange(gmNode)
	return node
}

// container maps a block whose range is the union of its children.
func (m *mapper) container(kind mdast.NodeKind, gmNode ast.Node) *mdast.Node {
	node := mdast.NewNode(kind)
	node.Range = mdast.SourceRange{StartOffset: -1, EndOffset: -1}
	m.mapChildren(gmNode, node)
	if node.Range.StartOffset < 0 {
		node.Range = mdast.SourceRange{}
	}
	return node
}

// linesRange spans from the first line's start to the last line's end,
// excluding the trailing line terminator.
func (m *mapper) linesRange(gmNode ast.Node) mdast.SourceRange {
	lines := gmNode.Lines()
	if lines == nil || lines.Len() == 0 {
		return mdast.SourceRange{}
	}

	start := lines.At(0).Start
	if start == 0 && bytes.HasPrefix(m.content, utf8BOM) {
		start = len(utf8BOM)
	}
	end := lines.At(lines.Len() - 1).Stop
	for end > start && (m.content[end-1] == '\n' || m.content[end-1] == '\r') {
		end--
	}

	return mdast.SourceRange{StartOffset: start, EndOffset: end}
}

// widen grows a container's range to include r. Empty ranges are ignored.
func widen(parent *mdast.Node, r mdast.SourceRange) {
	if parent.Kind == mdast.NodeDocument || r.IsEmpty() {
		return
	}
	if parent.Range.StartOffset < 0 || r.StartOffset < parent.Range.StartOffset {
		parent.Range.StartOffset = r.StartOffset
	}
	if r.EndOffset > parent.Range.EndOffset {
		parent.Range.EndOffset = r.EndOffset
	}
}
