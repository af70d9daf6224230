package fix_test

import (
	"testing"

	"github.com/yaklabco/novelint/pkg/fix"
)

func TestApplyEdits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		edits   []fix.TextEdit
		want    string
	}{
		{
			name:    "no edits returns original",
			content: "吾輩は猫である。",
			want:    "吾輩は猫である。",
		},
		{
			name:    "insertion after mark",
			content: "なぜ？あ",
			edits:   []fix.TextEdit{{StartOffset: 9, EndOffset: 9, NewText: "　"}},
			want:    "なぜ？　あ",
		},
		{
			name:    "replacement of a run",
			content: "はい。。。",
			edits:   []fix.TextEdit{{StartOffset: 6, EndOffset: 15, NewText: "……"}},
			want:    "はい……",
		},
		{
			name:    "deletion before closer",
			content: "「はい。」",
			edits:   []fix.TextEdit{{StartOffset: 9, EndOffset: 12}},
			want:    "「はい」",
		},
		{
			name:    "several edits in order",
			content: "ab…cd",
			edits: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 0, NewText: "　"},
				{StartOffset: 5, EndOffset: 5, NewText: "…"},
			},
			want: "　ab……cd",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := string(fix.ApplyEdits([]byte(tt.content), tt.edits))
			if got != tt.want {
				t.Errorf("ApplyEdits() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("sorts and applies", func(t *testing.T) {
		t.Parallel()

		content := []byte("abc")
		got, skipped, err := fix.Apply(content, []fix.TextEdit{
			{StartOffset: 2, EndOffset: 3, NewText: "C"},
			{StartOffset: 0, EndOffset: 1, NewText: "A"},
		})
		if err != nil {
			t.Fatalf("Apply() error = %v", err)
		}
		if string(got) != "AbC" {
			t.Errorf("Apply() = %q, want %q", got, "AbC")
		}
		if len(skipped) != 0 {
			t.Errorf("skipped = %v, want none", skipped)
		}
	})

	t.Run("first edit wins on identical range", func(t *testing.T) {
		t.Parallel()

		content := []byte("x。。」")
		got, skipped, err := fix.Apply(content, []fix.TextEdit{
			{StartOffset: 1, EndOffset: 7, NewText: "……"},
			{StartOffset: 1, EndOffset: 7},
		})
		if err != nil {
			t.Fatalf("Apply() error = %v", err)
		}
		if string(got) != "x……」" {
			t.Errorf("Apply() = %q, want %q", got, "x……」")
		}
		if len(skipped) != 1 {
			t.Errorf("len(skipped) = %d, want 1", len(skipped))
		}
	})

	t.Run("rejects out of range edit", func(t *testing.T) {
		t.Parallel()

		_, _, err := fix.Apply([]byte("ab"), []fix.TextEdit{{StartOffset: 1, EndOffset: 5}})
		if err == nil {
			t.Fatal("Apply() expected error")
		}
	})
}

func TestEditBuilder(t *testing.T) {
	t.Parallel()

	b := fix.NewEditBuilder()
	b.Insert(0, "　")
	b.Delete(3, 6)
	b.ReplaceRange(6, 9, "ー")

	if len(b.Edits) != 3 {
		t.Fatalf("len(Edits) = %d, want 3", len(b.Edits))
	}
	if !b.Edits[0].IsInsertion() {
		t.Error("first edit should be an insertion")
	}
	if b.Edits[1].NewText != "" {
		t.Errorf("delete NewText = %q, want empty", b.Edits[1].NewText)
	}
	if b.Edits[2].StartOffset != 6 || b.Edits[2].EndOffset != 9 || b.Edits[2].NewText != "ー" {
		t.Errorf("replace = %+v, want [6:9] ー", b.Edits[2])
	}
}
