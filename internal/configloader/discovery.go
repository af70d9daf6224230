package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ConfigPaths represents discovered configuration file paths.
type ConfigPaths struct {
	// System is the system-wide config path (e.g., /etc/novelint/config.yml).
	System string

	// User is the user-level config path (e.g., ~/.config/novelint/config.yml).
	User string

	// Project is the project-level config path (e.g., ./.novelint.yml).
	Project string

	// Explicit is a config path provided via --config flag.
	Explicit string

	// Textlint is a detected textlint config file path.
	Textlint string
}

// ProjectConfigFile is the name written by init and migrate.
const ProjectConfigFile = ".novelint.yml"

// novelintConfigFiles are the config file names we search for, in order of preference.
//
//nolint:gochecknoglobals // Read-only lookup table.
var novelintConfigFiles = []string{
	ProjectConfigFile,
	".novelint.yaml",
	"novelint.yml",
	"novelint.yaml",
}

// textlintConfigFiles are the textlint config files detected for migration.
//
//nolint:gochecknoglobals // Read-only lookup table.
var textlintConfigFiles = []string{
	".textlintrc",
	".textlintrc.json",
	".textlintrc.yml",
	".textlintrc.yaml",
	".textlintrc.js",
	".textlintrc.cjs",
}

// vcsRootMarkers are directories that indicate a VCS root.
//
//nolint:gochecknoglobals // Read-only lookup table.
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// DiscoverPaths finds configuration files in standard locations:
//   - system config at /etc/novelint/config.{yml,yaml}
//   - user config at $XDG_CONFIG_HOME/novelint/config.{yml,yaml}
//   - project config by searching upward from workDir
//   - a textlint config in workDir, for migration
//
// Missing files are represented as empty strings (not errors).
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
	default:
	}

	paths := &ConfigPaths{
		System: findSystemConfig(),
		User:   findUserConfig(),
	}

	projectConfig, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}
	paths.Project = projectConfig
	paths.Textlint = FindTextlintConfig(workDir)

	return paths, nil
}

func findSystemConfig() string {
	if runtime.GOOS == "windows" {
		programData := os.Getenv("ProgramData")
		if programData == "" {
			programData = `C:\ProgramData`
		}
		return findConfigInDir(filepath.Join(programData, "novelint"))
	}
	return findConfigInDir("/etc/novelint")
}

func findUserConfig() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return findConfigInDir(filepath.Join(configHome, "novelint"))
}

// findConfigInDir returns the first config.yml or config.yaml in dir.
func findConfigInDir(dir string) string {
	for _, name := range []string{"config.yml", "config.yaml"} {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// FindProjectConfig searches upward from startDir for a project config file.
// Returns the path to the first config file found, or empty string if none.
// Stops at VCS roots, the home directory, or the filesystem root.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		var err error
		startDir, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
	}

	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		homeDir = ""
	}

	currentDir := absDir
	for {
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		for _, name := range novelintConfigFiles {
			path := filepath.Join(currentDir, name)
			if fileExists(path) {
				return path, nil
			}
		}

		if isVCSRoot(currentDir) {
			return "", nil
		}
		if homeDir != "" && currentDir == homeDir {
			return "", nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", nil
		}
		currentDir = parentDir
	}
}

// FindTextlintConfig returns the first textlint config file in dir, or
// the empty string.
func FindTextlintConfig(dir string) string {
	for _, name := range textlintConfigFiles {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		info, err := os.Stat(filepath.Join(dir, marker))
		if err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

// fileExists returns true if the path exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsJavaScriptConfig returns true if the path is a JavaScript config file.
// These cannot be converted and require user action.
func IsJavaScriptConfig(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".js" || ext == ".cjs" || ext == ".mjs"
}

// DetectConfigFormat determines the format of a config file. A bare
// .textlintrc is JSON or YAML; both parse as YAML.
func DetectConfigFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return "json"
	case ".yaml", ".yml", ".textlintrc":
		return "yaml"
	case ".js", ".cjs", ".mjs":
		return "javascript"
	default:
		return "unknown"
	}
}
