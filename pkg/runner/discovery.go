package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/novelint/internal/logging"
)

// ErrNoPathMatch is returned when a path given explicitly does not exist.
var ErrNoPathMatch = errors.New("path does not exist")

// discoverer holds the state of one discovery run.
type discoverer struct {
	workDir    string
	extensions []string
	include    *matcher
	exclude    *matcher
	follow     bool

	seen    map[string]struct{}
	visited map[string]struct{} // real paths of walked directories
	files   []string
}

// Discover finds the manuscripts selected by opts. It returns sorted,
// deduplicated absolute paths.
//
// Files named explicitly are kept regardless of extension, but exclude
// patterns still apply. Directories are walked for files with a listed
// extension; hidden files and directories are skipped.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	include, err := compileMatcher(opts.IncludeGlobs)
	if err != nil {
		return nil, fmt.Errorf("include patterns: %w", err)
	}
	exclude, err := compileMatcher(opts.ExcludeGlobs)
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}

	d := &discoverer{
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		include:    include,
		exclude:    exclude,
		follow:     opts.FollowSymlinks,
		seen:       make(map[string]struct{}),
		visited:    make(map[string]struct{}),
	}

	for _, input := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		abs := input
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(workDir, abs)
		}
		abs = filepath.Clean(abs)

		info, err := os.Stat(abs)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrNoPathMatch, input)
			}
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}

		if info.IsDir() {
			if err := d.walk(ctx, abs); err != nil {
				return nil, err
			}
			continue
		}

		if !d.exclude.match(d.rel(abs)) {
			d.add(abs)
		}
	}

	slices.Sort(d.files)

	logging.FromContext(ctx).Debug("discovered files",
		logging.FieldWorkingDir, workDir,
		logging.FieldFilesDiscovered, len(d.files))

	return d.files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return abs, nil
}

func (d *discoverer) rel(path string) string {
	rel, err := filepath.Rel(d.workDir, path)
	if err != nil {
		return path
	}
	return rel
}

func (d *discoverer) add(path string) {
	if _, ok := d.seen[path]; ok {
		return
	}
	d.seen[path] = struct{}{}
	d.files = append(d.files, path)
}

// walk collects matching files below root.
func (d *discoverer) walk(ctx context.Context, root string) error {
	if real, err := filepath.EvalSymlinks(root); err == nil {
		if _, ok := d.visited[real]; ok {
			return nil
		}
		d.visited[real] = struct{}{}
	}

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		hidden := path != root && strings.HasPrefix(entry.Name(), ".")
		rel := d.rel(path)

		if entry.IsDir() {
			if hidden || (path != root && d.exclude.matchDir(rel)) {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			info, err := os.Stat(path)
			if err != nil {
				// Broken link.
				return nil //nolint:nilerr // Skipped silently.
			}
			if info.IsDir() {
				if !d.follow || d.exclude.matchDir(rel) {
					return nil
				}
				target, err := filepath.EvalSymlinks(path)
				if err != nil {
					return nil //nolint:nilerr // Skipped silently.
				}
				return d.walk(ctx, target)
			}
		}

		if d.wanted(path, rel) {
			d.add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}

	return nil
}

// wanted applies the extension, exclude and include filters to a file
// found while walking.
func (d *discoverer) wanted(path, rel string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if !slices.ContainsFunc(d.extensions, func(e string) bool { return strings.ToLower(e) == ext }) {
		return false
	}
	if d.exclude.match(rel) {
		return false
	}
	return d.include.empty() || d.include.match(rel)
}
