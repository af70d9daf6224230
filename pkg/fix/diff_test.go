package fix_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/novelint/pkg/fix"
)

func TestGenerateDiff(t *testing.T) {
	t.Parallel()

	t.Run("nil for identical content", func(t *testing.T) {
		t.Parallel()

		if d := fix.GenerateDiff("a.md", nil, nil); d != nil {
			t.Error("expected nil for empty inputs")
		}
		content := []byte("一行目\n二行目\n")
		if d := fix.GenerateDiff("a.md", content, content); d != nil {
			t.Error("expected nil for identical content")
		}
	})

	t.Run("single line change", func(t *testing.T) {
		t.Parallel()

		original := []byte("a\nb\nなぜ？あ\nc\n")
		modified := []byte("a\nb\nなぜ？　あ\nc\n")

		d := fix.GenerateDiff("ch1.md", original, modified)
		if d == nil {
			t.Fatal("expected diff")
		}
		if d.Additions != 1 || d.Deletions != 1 {
			t.Errorf("additions=%d deletions=%d, want 1 and 1", d.Additions, d.Deletions)
		}

		want := "--- a/ch1.md\n" +
			"+++ b/ch1.md\n" +
			"@@ -1,4 +1,4 @@\n" +
			" a\n" +
			" b\n" +
			"-なぜ？あ\n" +
			"+なぜ？　あ\n" +
			" c\n"
		if got := d.String(); got != want {
			t.Errorf("String() =\n%s\nwant\n%s", got, want)
		}
		if !strings.HasPrefix(d.FullString(), "diff --git a/ch1.md b/ch1.md\n") {
			t.Errorf("FullString() missing git header: %q", d.FullString())
		}
	})

	t.Run("distant changes make separate hunks", func(t *testing.T) {
		t.Parallel()

		var orig, mod []string
		for i := range 20 {
			line := strings.Repeat("x", i+1)
			orig = append(orig, line)
			mod = append(mod, line)
		}
		mod[1] = "changed"
		mod[18] = "changed"

		d := fix.GenerateDiff("a.txt",
			[]byte(strings.Join(orig, "\n")+"\n"),
			[]byte(strings.Join(mod, "\n")+"\n"))
		if d == nil {
			t.Fatal("expected diff")
		}
		if len(d.Hunks) != 2 {
			t.Fatalf("len(Hunks) = %d, want 2", len(d.Hunks))
		}
		if d.Hunks[1].OriginalStart != 16 {
			t.Errorf("second hunk OriginalStart = %d, want 16", d.Hunks[1].OriginalStart)
		}
	})

	t.Run("line count change", func(t *testing.T) {
		t.Parallel()

		d := fix.GenerateDiff("a.md", []byte("a\nb\nc\n"), []byte("a\nc\n"))
		if d == nil {
			t.Fatal("expected diff")
		}
		if d.Deletions != 1 || d.Additions != 0 {
			t.Errorf("additions=%d deletions=%d, want 0 and 1", d.Additions, d.Deletions)
		}
		if d.Hunks[0].OriginalCount != 3 || d.Hunks[0].ModifiedCount != 2 {
			t.Errorf("counts = %d,%d, want 3,2", d.Hunks[0].OriginalCount, d.Hunks[0].ModifiedCount)
		}
	})

	t.Run("nil diff renders empty", func(t *testing.T) {
		t.Parallel()

		var d *fix.Diff
		if d.String() != "" || d.FullString() != "" || d.HasChanges() {
			t.Error("nil diff should render empty")
		}
	})
}
