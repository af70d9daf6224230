package novel

// Paragraph is a read-only view of one paragraph block.
type Paragraph struct {
	// Text is the raw source of the paragraph.
	Text string

	// Offset is the byte offset of Text within the document.
	Offset int

	// Quoted is set when any ancestor block is a blockquote.
	Quoted bool
}

// Admit reports whether the paragraph is checked at all. Quoted material
// is reproduced speech and exempt from house style.
func Admit(p Paragraph) bool {
	return !p.Quoted
}

// CheckParagraph runs the enabled rules against an admitted paragraph, or
// only the rules named by keys when any are given. Offsets in the result
// stay paragraph-local; add p.Offset for document positions.
func CheckParagraph(p Paragraph, opts Options, keys ...RuleKey) []Violation {
	if !Admit(p) {
		return nil
	}
	if len(keys) == 0 {
		return Check(p.Text, opts)
	}

	var violations []Violation
	for _, key := range keys {
		violations = append(violations, CheckRule(key, p.Text, opts)...)
	}
	return violations
}
