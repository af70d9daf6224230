package fix_test

import (
	"testing"

	"github.com/yaklabco/novelint/pkg/fix"
)

func FuzzGenerateDiff(f *testing.F) {
	f.Add([]byte(""), []byte(""))
	f.Add([]byte("はい。。。\n"), []byte("はい……\n"))
	f.Add([]byte("a\nb\nc\n"), []byte("a\nx\nc\n"))
	f.Add([]byte("line1\nline2\n"), []byte("line1\nline2\nline3\n"))
	f.Add([]byte("line1\r\nline2\r\n"), []byte("line1\nline2\n"))

	f.Fuzz(func(t *testing.T, original, modified []byte) {
		d := fix.GenerateDiff("test.md", original, modified)
		if d == nil {
			return
		}

		_ = d.String()

		for i, hunk := range d.Hunks {
			var orig, mod int
			for _, line := range hunk.Lines {
				switch line.Kind {
				case fix.DiffLineContext:
					orig++
					mod++
				case fix.DiffLineRemove:
					orig++
				case fix.DiffLineAdd:
					mod++
				}
			}
			if orig != hunk.OriginalCount || mod != hunk.ModifiedCount {
				t.Errorf("hunk %d: counted %d/%d, header says %d/%d",
					i, orig, mod, hunk.OriginalCount, hunk.ModifiedCount)
			}
			if hunk.OriginalStart < 1 || hunk.ModifiedStart < 1 {
				t.Errorf("hunk %d: starts must be 1-based", i)
			}
		}
	})
}

func FuzzApply(f *testing.F) {
	f.Add([]byte("なぜ？あ"), 9, 9, "　")
	f.Add([]byte("abc"), 0, 3, "")
	f.Add([]byte("abc"), 2, 1, "x")

	f.Fuzz(func(t *testing.T, content []byte, start, end int, text string) {
		got, _, err := fix.Apply(content, []fix.TextEdit{{StartOffset: start, EndOffset: end, NewText: text}})
		if err != nil {
			return
		}
		if want := len(content) - (end - start) + len(text); len(got) != want {
			t.Errorf("len = %d, want %d", len(got), want)
		}
	})
}
