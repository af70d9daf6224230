package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyEvent(t *testing.T) {
	t.Parallel()

	configPath := filepath.Join("/work", ".novelint.yml")

	tests := []struct {
		name  string
		event fsnotify.Event
		exts  []string
		want  eventKind
	}{
		{
			name:  "manuscript write",
			event: fsnotify.Event{Name: "/work/chapter01.txt", Op: fsnotify.Write},
			want:  eventManuscript,
		},
		{
			name:  "markdown create",
			event: fsnotify.Event{Name: "/work/chapter02.md", Op: fsnotify.Create},
			want:  eventManuscript,
		},
		{
			name:  "extension is case insensitive",
			event: fsnotify.Event{Name: "/work/CHAPTER03.TXT", Op: fsnotify.Write},
			want:  eventManuscript,
		},
		{
			name:  "chmod ignored",
			event: fsnotify.Event{Name: "/work/chapter01.txt", Op: fsnotify.Chmod},
			want:  eventIgnored,
		},
		{
			name:  "other extension ignored",
			event: fsnotify.Event{Name: "/work/cover.png", Op: fsnotify.Write},
			want:  eventIgnored,
		},
		{
			name:  "editor swap file ignored",
			event: fsnotify.Event{Name: "/work/.chapter01.txt.swp", Op: fsnotify.Write},
			want:  eventIgnored,
		},
		{
			name:  "config edit reloads",
			event: fsnotify.Event{Name: configPath, Op: fsnotify.Write},
			want:  eventConfig,
		},
		{
			name:  "custom extensions",
			event: fsnotify.Event{Name: "/work/draft.md", Op: fsnotify.Write},
			exts:  []string{".txt"},
			want:  eventIgnored,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, classifyEvent(tt.event, tt.exts, []string{configPath}))
		})
	}
}

func TestWatchDirs(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	for _, dir := range []string{"part1", "part2/scenes", ".git/objects", "part1/.cache"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, dir), 0o755))
	}
	file := filepath.Join(root, "part2", "scenes", "scene01.txt")
	require.NoError(t, os.WriteFile(file, []byte("　本文。\n"), 0o644))

	t.Run("directory argument walks non-hidden dirs", func(t *testing.T) {
		t.Parallel()

		dirs, err := watchDirs(root, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{
			root,
			filepath.Join(root, "part1"),
			filepath.Join(root, "part2"),
			filepath.Join(root, "part2", "scenes"),
		}, dirs)
	})

	t.Run("file argument watches its parent", func(t *testing.T) {
		t.Parallel()

		configDir := filepath.Join(root, "config")
		dirs, err := watchDirs(root, []string{"part2/scenes/scene01.txt"}, []string{configDir})
		require.NoError(t, err)
		assert.Equal(t, []string{configDir, filepath.Join(root, "part2", "scenes")}, dirs)
	})

	t.Run("missing path", func(t *testing.T) {
		t.Parallel()

		_, err := watchDirs(root, []string{"missing"}, nil)
		require.Error(t, err)
	})
}
