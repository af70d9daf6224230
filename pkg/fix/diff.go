package fix

import (
	"fmt"
	"strings"
)

// Diff is a unified line diff between a file and its fixed version.
type Diff struct {
	Path     string
	Original []byte
	Modified []byte
	Hunks    []DiffHunk

	// Additions and Deletions count added and removed lines.
	Additions int
	Deletions int
}

// DiffHunk is one "@@" section of a unified diff. Starts are 1-based.
type DiffHunk struct {
	OriginalStart int
	OriginalCount int
	ModifiedStart int
	ModifiedCount int
	Lines         []DiffLine
}

// DiffLine is a single line of a hunk, without its prefix character.
type DiffLine struct {
	Kind    DiffLineKind
	Content string
}

// DiffLineKind indicates whether a line is context, added or removed.
type DiffLineKind int

const (
	DiffLineContext DiffLineKind = iota
	DiffLineAdd
	DiffLineRemove
)

// contextLines is the number of unchanged lines shown around a change.
const contextLines = 3

// GenerateDiff returns the unified diff between original and modified, or
// nil when they hold the same lines.
//
// Fixes rewrite text inside lines and rarely change the line count, so
// the common prefix and suffix are trimmed first and an equal-length middle
// is compared line by line. Only a middle whose length changed goes through
// the quadratic LCS.
func GenerateDiff(path string, original, modified []byte) *Diff {
	origLines := splitLines(original)
	modLines := splitLines(modified)

	ops := diffLines(origLines, modLines)
	hunks := groupIntoHunks(ops)
	if len(hunks) == 0 {
		return nil
	}

	diff := &Diff{
		Path:     path,
		Original: original,
		Modified: modified,
		Hunks:    hunks,
	}
	for _, op := range ops {
		switch op.kind {
		case DiffLineAdd:
			diff.Additions++
		case DiffLineRemove:
			diff.Deletions++
		}
	}

	return diff
}

// GitHeader returns the "diff --git" header line.
func (d *Diff) GitHeader() string {
	if d == nil {
		return ""
	}
	path := strings.TrimPrefix(d.Path, "/")
	return fmt.Sprintf("diff --git a/%s b/%s", path, path)
}

// String renders the diff in unified format without the git header.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- a/%s\n", path)
	fmt.Fprintf(&sb, "+++ b/%s\n", path)

	for _, hunk := range d.Hunks {
		fmt.Fprintf(&sb, "@@ -%d,%d +%d,%d @@\n",
			hunk.OriginalStart, hunk.OriginalCount,
			hunk.ModifiedStart, hunk.ModifiedCount)

		for _, line := range hunk.Lines {
			sb.WriteByte(line.Kind.prefix())
			sb.WriteString(line.Content)
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}

// FullString returns the diff including the git header.
func (d *Diff) FullString() string {
	if !d.HasChanges() {
		return ""
	}
	return d.GitHeader() + "\n" + d.String()
}

// HasChanges returns true if the diff contains any changes.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

func (k DiffLineKind) prefix() byte {
	switch k {
	case DiffLineAdd:
		return '+'
	case DiffLineRemove:
		return '-'
	default:
		return ' '
	}
}

// splitLines splits content into lines without terminators. A trailing
// newline does not produce an empty last line; CR of CRLF is kept so a
// line-ending change still shows as a difference.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	lines := strings.Split(string(content), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

type diffOp struct {
	kind    DiffLineKind
	content string
}

// diffLines produces the full edit script between orig and mod.
func diffLines(orig, mod []string) []diffOp {
	prefix := 0
	for prefix < len(orig) && prefix < len(mod) && orig[prefix] == mod[prefix] {
		prefix++
	}

	suffix := 0
	for suffix < len(orig)-prefix && suffix < len(mod)-prefix &&
		orig[len(orig)-1-suffix] == mod[len(mod)-1-suffix] {
		suffix++
	}

	ops := make([]diffOp, 0, len(orig)+len(mod)-prefix-suffix)
	for _, line := range orig[:prefix] {
		ops = append(ops, diffOp{kind: DiffLineContext, content: line})
	}

	origMid := orig[prefix : len(orig)-suffix]
	modMid := mod[prefix : len(mod)-suffix]
	if len(origMid) == len(modMid) {
		ops = appendPairwise(ops, origMid, modMid)
	} else {
		ops = appendLCS(ops, origMid, modMid)
	}

	for _, line := range orig[len(orig)-suffix:] {
		ops = append(ops, diffOp{kind: DiffLineContext, content: line})
	}

	return ops
}

// appendPairwise compares lines at equal indices. Each run of changed
// lines becomes its removals followed by its additions.
func appendPairwise(ops []diffOp, orig, mod []string) []diffOp {
	for i := 0; i < len(orig); {
		if orig[i] == mod[i] {
			ops = append(ops, diffOp{kind: DiffLineContext, content: orig[i]})
			i++
			continue
		}

		j := i
		for j < len(orig) && orig[j] != mod[j] {
			j++
		}
		for _, line := range orig[i:j] {
			ops = append(ops, diffOp{kind: DiffLineRemove, content: line})
		}
		for _, line := range mod[i:j] {
			ops = append(ops, diffOp{kind: DiffLineAdd, content: line})
		}
		i = j
	}
	return ops
}

// appendLCS diffs two line slices through their longest common subsequence.
func appendLCS(ops []diffOp, orig, mod []string) []diffOp {
	rows, cols := len(orig), len(mod)
	dp := make([][]int, rows+1)
	for i := range dp {
		dp[i] = make([]int, cols+1)
	}
	for i := rows - 1; i >= 0; i-- {
		for j := cols - 1; j >= 0; j-- {
			if orig[i] == mod[j] {
				dp[i][j] = dp[i+1][j+1] + 1
			} else {
				dp[i][j] = max(dp[i+1][j], dp[i][j+1])
			}
		}
	}

	i, j := 0, 0
	for i < rows || j < cols {
		switch {
		case i < rows && j < cols && orig[i] == mod[j]:
			ops = append(ops, diffOp{kind: DiffLineContext, content: orig[i]})
			i++
			j++
		case j >= cols || (i < rows && dp[i+1][j] >= dp[i][j+1]):
			ops = append(ops, diffOp{kind: DiffLineRemove, content: orig[i]})
			i++
		default:
			ops = append(ops, diffOp{kind: DiffLineAdd, content: mod[j]})
			j++
		}
	}
	return ops
}

// groupIntoHunks cuts the edit script into hunks with contextLines of
// context, joining changes separated by at most twice that many lines.
func groupIntoHunks(ops []diffOp) []DiffHunk {
	type span struct{ start, end int }

	var changes []span
	for i := 0; i < len(ops); {
		if ops[i].kind == DiffLineContext {
			i++
			continue
		}
		j := i
		for j < len(ops) && ops[j].kind != DiffLineContext {
			j++
		}
		changes = append(changes, span{i, j})
		i = j
	}

	var hunks []DiffHunk
	for i := 0; i < len(changes); {
		j := i + 1
		for j < len(changes) && changes[j].start-changes[j-1].end <= contextLines*2 {
			j++
		}
		hunks = append(hunks, buildHunk(ops, changes[i].start, changes[j-1].end))
		i = j
	}

	return hunks
}

func buildHunk(ops []diffOp, changeStart, changeEnd int) DiffHunk {
	start := max(changeStart-contextLines, 0)
	end := min(changeEnd+contextLines, len(ops))

	hunk := DiffHunk{OriginalStart: 1, ModifiedStart: 1}
	for _, op := range ops[:start] {
		if op.kind != DiffLineAdd {
			hunk.OriginalStart++
		}
		if op.kind != DiffLineRemove {
			hunk.ModifiedStart++
		}
	}

	for _, op := range ops[start:end] {
		hunk.Lines = append(hunk.Lines, DiffLine{Kind: op.kind, Content: op.content})
		switch op.kind {
		case DiffLineContext:
			hunk.OriginalCount++
			hunk.ModifiedCount++
		case DiffLineRemove:
			hunk.OriginalCount++
		case DiffLineAdd:
			hunk.ModifiedCount++
		}
	}

	return hunk
}
