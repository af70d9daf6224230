package novel

// Range is a half-open byte range [Start, End) within a paragraph.
type Range struct {
	Start int
	End   int
}

// Shift returns the range moved by delta bytes.
func (r Range) Shift(delta int) Range {
	return Range{Start: r.Start + delta, End: r.End + delta}
}

// FixKind describes the shape of a proposed edit.
type FixKind int

const (
	// FixInsertBefore inserts Text before Range.Start.
	FixInsertBefore FixKind = iota
	// FixInsertAfter inserts Text after Range.End.
	FixInsertAfter
	// FixReplace replaces Range with Text.
	FixReplace
	// FixRemove deletes Range.
	FixRemove
)

// String returns a short name for the kind.
func (k FixKind) String() string {
	switch k {
	case FixInsertBefore:
		return "insert-before"
	case FixInsertAfter:
		return "insert-after"
	case FixReplace:
		return "replace"
	case FixRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// Fix is a minimal text edit that resolves one violation.
type Fix struct {
	Kind  FixKind
	Range Range
	Text  string
}

// InsertBefore returns a fix inserting text at pos.
func InsertBefore(pos int, text string) *Fix {
	return &Fix{Kind: FixInsertBefore, Range: Range{Start: pos, End: pos}, Text: text}
}

// InsertAfter returns a fix inserting text right after r.
func InsertAfter(r Range, text string) *Fix {
	return &Fix{Kind: FixInsertAfter, Range: r, Text: text}
}

// Replace returns a fix replacing r with text.
func Replace(r Range, text string) *Fix {
	return &Fix{Kind: FixReplace, Range: r, Text: text}
}

// Remove returns a fix deleting r.
func Remove(r Range) *Fix {
	return &Fix{Kind: FixRemove, Range: r}
}

// Edit lowers the fix to a plain replacement of [start, end) with text.
func (f Fix) Edit() (start, end int, text string) {
	switch f.Kind {
	case FixInsertBefore:
		return f.Range.Start, f.Range.Start, f.Text
	case FixInsertAfter:
		return f.Range.End, f.Range.End, f.Text
	case FixRemove:
		return f.Range.Start, f.Range.End, ""
	default:
		return f.Range.Start, f.Range.End, f.Text
	}
}

// Apply returns s with the fix applied. The fix range must lie within s.
func (f Fix) Apply(s string) string {
	start, end, text := f.Edit()
	return s[:start] + text + s[end:]
}

// Violation is one rule failure inside a paragraph.
// Offset and Range are paragraph-local byte offsets.
type Violation struct {
	Rule    RuleKey
	Offset  int
	Range   Range
	Message string
	Fix     *Fix
}
