package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// BackupMode selects where backups are written.
type BackupMode string

const (
	// BackupModeSidecar writes "<file>.novelint.bak" next to the file.
	BackupModeSidecar BackupMode = "sidecar"

	// BackupModeXDG writes under $XDG_STATE_HOME/novelint/backups, mirroring
	// the file's absolute path.
	BackupModeXDG BackupMode = "xdg"

	BackupModeNone BackupMode = "none"
)

// BackupSuffix is appended to backup file names.
const BackupSuffix = ".novelint.bak"

// BackupConfig controls backup creation.
type BackupConfig struct {
	Enabled bool
	Mode    BackupMode
}

// DefaultBackupConfig returns backups disabled in sidecar mode.
func DefaultBackupConfig() BackupConfig {
	return BackupConfig{Mode: BackupModeSidecar}
}

// ParseBackupMode parses a mode name; the empty string means sidecar.
func ParseBackupMode(name string) (BackupMode, bool) {
	switch BackupMode(strings.ToLower(name)) {
	case "", BackupModeSidecar:
		return BackupModeSidecar, true
	case BackupModeXDG:
		return BackupModeXDG, true
	case BackupModeNone:
		return BackupModeNone, true
	default:
		return "", false
	}
}

// BackupPath returns where the backup of path goes, or "" for
// BackupModeNone. Unknown modes behave like sidecar.
func BackupPath(path string, mode BackupMode) (string, error) {
	switch mode {
	case BackupModeNone:
		return "", nil
	case BackupModeXDG:
		abs, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("resolve %s: %w", path, err)
		}
		dir, err := stateDir()
		if err != nil {
			return "", err
		}
		rel := strings.TrimPrefix(filepath.ToSlash(abs), "/")
		rel = strings.ReplaceAll(rel, ":", "")
		return filepath.Join(dir, "novelint", "backups", filepath.FromSlash(rel)) + BackupSuffix, nil
	default:
		return path + BackupSuffix, nil
	}
}

func stateDir() (string, error) {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate state directory: %w", err)
	}
	return filepath.Join(home, ".local", "state"), nil
}

// CreateBackup copies path to its backup location. An existing backup is
// kept, so the backup always holds the content from before the first fix.
// Returns true if a backup was written.
func CreateBackup(ctx context.Context, path string, cfg BackupConfig) (bool, error) {
	if !cfg.Enabled || cfg.Mode == BackupModeNone {
		return false, nil
	}
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("create backup: %w", err)
	}

	backupPath, err := BackupPath(path, cfg.Mode)
	if err != nil || backupPath == "" {
		return false, err
	}

	if _, err := os.Stat(backupPath); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("stat backup path: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat original for backup: %w", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read original for backup: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(backupPath), 0o755); err != nil {
		return false, fmt.Errorf("create backup directory: %w", err)
	}

	if err := WriteAtomic(ctx, backupPath, content, stat.Mode()); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}

	return true, nil
}
