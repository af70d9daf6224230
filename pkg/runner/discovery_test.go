package runner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeTree creates files (with parents) under a fresh temp dir.
func makeTree(t *testing.T, files ...string) string {
	t.Helper()

	root := t.TempDir()
	for _, name := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("　本文\n"), 0o644))
	}
	return root
}

func relAll(t *testing.T, root string, paths []string) []string {
	t.Helper()

	out := make([]string, len(paths))
	for i, p := range paths {
		rel, err := filepath.Rel(root, p)
		require.NoError(t, err)
		out[i] = filepath.ToSlash(rel)
	}
	return out
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	tree := []string{
		"chapter1.md",
		"chapter2.txt",
		"notes.markdown",
		"cover.png",
		"drafts/old.md",
		"drafts/deep/older.txt",
		"part2/chapter3.MD",
		".hidden/secret.md",
		".draft.md",
	}

	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{
			name: "default extensions",
			want: []string{
				"chapter1.md", "chapter2.txt",
				"drafts/deep/older.txt", "drafts/old.md",
				"notes.markdown", "part2/chapter3.MD",
			},
		},
		{
			name: "custom extensions",
			opts: Options{Extensions: []string{".txt"}},
			want: []string{"chapter2.txt", "drafts/deep/older.txt"},
		},
		{
			name: "exclude directory",
			opts: Options{ExcludeGlobs: []string{"drafts/**"}},
			want: []string{"chapter1.md", "chapter2.txt", "notes.markdown", "part2/chapter3.MD"},
		},
		{
			name: "exclude base name pattern",
			opts: Options{ExcludeGlobs: []string{"*.txt"}},
			want: []string{"chapter1.md", "drafts/old.md", "notes.markdown", "part2/chapter3.MD"},
		},
		{
			name: "include restricts",
			opts: Options{IncludeGlobs: []string{"part2/**", "chapter1.md"}},
			want: []string{"chapter1.md", "part2/chapter3.MD"},
		},
		{
			name: "explicit paths deduplicated",
			opts: Options{Paths: []string{"drafts", "drafts/old.md", "./drafts"}},
			want: []string{"drafts/deep/older.txt", "drafts/old.md"},
		},
		{
			name: "explicit file ignores extension filter",
			opts: Options{Paths: []string{"cover.png"}},
			want: []string{"cover.png"},
		},
		{
			name: "explicit file still excluded",
			opts: Options{Paths: []string{"drafts/old.md"}, ExcludeGlobs: []string{"drafts/**"}},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := makeTree(t, tree...)
			opts := tt.opts
			opts.WorkingDir = root

			files, err := Discover(context.Background(), opts)
			require.NoError(t, err)

			got := relAll(t, root, files)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDiscover_MissingPath(t *testing.T) {
	t.Parallel()

	root := makeTree(t, "a.md")

	_, err := Discover(context.Background(), Options{WorkingDir: root, Paths: []string{"nope"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoPathMatch))
}

func TestDiscover_InvalidGlob(t *testing.T) {
	t.Parallel()

	root := makeTree(t, "a.md")

	_, err := Discover(context.Background(), Options{WorkingDir: root, ExcludeGlobs: []string{"[unclosed"}})
	require.Error(t, err)
}

func TestDiscover_Symlinks(t *testing.T) {
	t.Parallel()

	root := makeTree(t, "book/a.md")
	outside := makeTree(t, "b.md")
	if err := os.Symlink(outside, filepath.Join(root, "book", "linked")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	files, err := Discover(context.Background(), Options{WorkingDir: root})
	require.NoError(t, err)
	assert.Len(t, files, 1)

	files, err = Discover(context.Background(), Options{WorkingDir: root, FollowSymlinks: true})
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestDiscover_Cancelled(t *testing.T) {
	t.Parallel()

	root := makeTree(t, "a.md")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Discover(ctx, Options{WorkingDir: root})
	require.ErrorIs(t, err, context.Canceled)
}

func TestMatcher(t *testing.T) {
	t.Parallel()

	m, err := compileMatcher([]string{"drafts/**", "*.bak", "./notes/*.md"})
	require.NoError(t, err)

	tests := []struct {
		path string
		want bool
	}{
		{"drafts/a.md", true},
		{"drafts/x/y.md", true},
		{"book/drafts.md", false},
		{"a.bak", true},
		{"deep/dir/a.bak", true},
		{"notes/a.md", true},
		{"notes/sub/a.md", false},
		{"chapter.md", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, m.match(tt.path), tt.path)
	}

	assert.True(t, m.matchDir("drafts"))
	assert.False(t, m.matchDir("notes"))

	var none *matcher
	assert.False(t, none.match("anything"))
}
