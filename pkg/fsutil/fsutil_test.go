package fsutil_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/novelint/pkg/fsutil"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()

	t.Run("reads content and info", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, dir, "ch1.txt", "「はい」\n")
		content, info, err := fsutil.ReadFile(ctx, path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if string(content) != "「はい」\n" {
			t.Errorf("content = %q", content)
		}
		if info.Size != int64(len(content)) {
			t.Errorf("Size = %d, want %d", info.Size, len(content))
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(ctx, filepath.Join(dir, "missing.md"))
		if !errors.Is(err, fsutil.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(ctx, dir)
		if !errors.Is(err, fsutil.ErrIsDirectory) {
			t.Errorf("error = %v, want ErrIsDirectory", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, _, err := fsutil.ReadFile(cctx, filepath.Join(dir, "x.md"))
		if !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	})
}

func TestCheckModified(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	path := writeFile(t, dir, "a.md", "一")

	_, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	if changed, err := fsutil.CheckModified(ctx, info); err != nil || changed {
		t.Fatalf("CheckModified() = %v, %v; want false, nil", changed, err)
	}

	// Same size, different bytes, restored mtime: only the hash notices.
	if err := os.WriteFile(path, []byte("二"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, info.ModTime, info.ModTime); err != nil {
		t.Fatal(err)
	}

	if changed, _ := fsutil.CheckModifiedQuick(ctx, info); changed {
		t.Error("CheckModifiedQuick() should not see a same-size edit with restored mtime")
	}
	if changed, err := fsutil.CheckModified(ctx, info); err != nil || !changed {
		t.Errorf("CheckModified() = %v, %v; want true, nil", changed, err)
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if changed, err := fsutil.CheckModifiedQuick(ctx, info); err != nil || !changed {
		t.Errorf("deleted file: CheckModifiedQuick() = %v, %v; want true, nil", changed, err)
	}

	if _, err := fsutil.CheckModified(ctx, nil); !errors.Is(err, fsutil.ErrNilFileInfo) {
		t.Errorf("nil info: error = %v, want ErrNilFileInfo", err)
	}
}

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	path := writeFile(t, dir, "a.md", "old")

	if err := fsutil.WriteAtomic(ctx, path, []byte("新しい"), 0o600); err != nil {
		t.Fatalf("WriteAtomic() error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "新しい" {
		t.Errorf("content = %q", got)
	}

	stat, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if stat.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600", stat.Mode().Perm())
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %v", entries)
	}
}

func TestBackupPath(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/state")

	tests := []struct {
		name string
		mode fsutil.BackupMode
		want string
	}{
		{name: "sidecar", mode: fsutil.BackupModeSidecar, want: "/books/ch1.md.novelint.bak"},
		{name: "unknown is sidecar", mode: fsutil.BackupMode("odd"), want: "/books/ch1.md.novelint.bak"},
		{name: "none", mode: fsutil.BackupModeNone, want: ""},
		{name: "xdg", mode: fsutil.BackupModeXDG, want: filepath.FromSlash("/state/novelint/backups/books/ch1.md.novelint.bak")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fsutil.BackupPath("/books/ch1.md", tt.mode)
			if err != nil {
				t.Fatalf("BackupPath() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("BackupPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseBackupMode(t *testing.T) {
	t.Parallel()

	for name, want := range map[string]fsutil.BackupMode{
		"":        fsutil.BackupModeSidecar,
		"sidecar": fsutil.BackupModeSidecar,
		"XDG":     fsutil.BackupModeXDG,
		"none":    fsutil.BackupModeNone,
	} {
		got, ok := fsutil.ParseBackupMode(name)
		if !ok || got != want {
			t.Errorf("ParseBackupMode(%q) = %q, %v; want %q", name, got, ok, want)
		}
	}
	if _, ok := fsutil.ParseBackupMode("tape"); ok {
		t.Error("ParseBackupMode(tape) should fail")
	}
}

func TestCreateBackup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	path := writeFile(t, dir, "a.md", "original")
	cfg := fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}

	created, err := fsutil.CreateBackup(ctx, path, cfg)
	if err != nil || !created {
		t.Fatalf("CreateBackup() = %v, %v; want true, nil", created, err)
	}

	if err := os.WriteFile(path, []byte("changed"), 0o644); err != nil {
		t.Fatal(err)
	}
	created, err = fsutil.CreateBackup(ctx, path, cfg)
	if err != nil || created {
		t.Fatalf("second CreateBackup() = %v, %v; want false, nil", created, err)
	}

	backup, err := os.ReadFile(path + fsutil.BackupSuffix)
	if err != nil {
		t.Fatal(err)
	}
	if string(backup) != "original" {
		t.Errorf("backup = %q, want the first content", backup)
	}

	created, err = fsutil.CreateBackup(ctx, path, fsutil.BackupConfig{Enabled: false})
	if err != nil || created {
		t.Errorf("disabled CreateBackup() = %v, %v; want false, nil", created, err)
	}
}

func TestCreateBackup_XDG(t *testing.T) {
	state := t.TempDir()
	t.Setenv("XDG_STATE_HOME", state)

	path := writeFile(t, t.TempDir(), "b.txt", "本文")
	created, err := fsutil.CreateBackup(context.Background(), path,
		fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeXDG})
	if err != nil || !created {
		t.Fatalf("CreateBackup() = %v, %v; want true, nil", created, err)
	}

	backupPath, err := fsutil.BackupPath(path, fsutil.BackupModeXDG)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(backupPath); err != nil {
		t.Errorf("backup missing at %s: %v", backupPath, err)
	}
}
