package mdast

// NodeKind classifies a block in the document tree.
type NodeKind uint16

// Block kinds. Inline structure is not modelled; rules read the raw source
// of a block instead.
const (
	NodeDocument NodeKind = iota
	NodeParagraph
	NodeHeading
	NodeList
	NodeListItem
	NodeBlockquote
	NodeCodeBlock
	NodeThematicBreak
	NodeHTMLBlock
	NodeTable

	// NodeRaw is the fallback for blocks the parser does not classify.
	NodeRaw
)

//nolint:gochecknoglobals // Read-only lookup table.
var kindNames = [...]string{
	NodeDocument:      "Document",
	NodeParagraph:     "Paragraph",
	NodeHeading:       "Heading",
	NodeList:          "List",
	NodeListItem:      "ListItem",
	NodeBlockquote:    "Blockquote",
	NodeCodeBlock:     "CodeBlock",
	NodeThematicBreak: "ThematicBreak",
	NodeHTMLBlock:     "HTMLBlock",
	NodeTable:         "Table",
	NodeRaw:           "Raw",
}

func (k NodeKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "NodeKind(?)"
}

// Node is one block in the document tree.
type Node struct {
	Kind NodeKind

	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// Range is the byte span of the block's own text in File.Content.
	// For paragraphs it starts at the first character of the first line and
	// ends after the last character of the last line, so list markers and
	// blockquote markers before the first line are excluded.
	Range SourceRange

	// Level is the heading level (1-6); zero for other kinds.
	Level int

	// File is a back-reference to the containing snapshot.
	File *FileSnapshot
}

// HasChildren reports whether the node has any children.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for child := n.FirstChild; child != nil; child = child.Next {
		count++
	}
	return count
}

// Children returns the direct children in order.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}

// HasAncestor reports whether any ancestor of n has the given kind.
func (n *Node) HasAncestor(kind NodeKind) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Kind == kind {
			return true
		}
	}
	return false
}
