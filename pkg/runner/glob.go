package runner

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// matcher tests slash-separated relative paths against a set of globs.
// "*" stays within one path segment and "**" crosses segments. A pattern
// without a slash also matches the base name, so "*.bak.md" works at any
// depth.
type matcher struct {
	full []glob.Glob
	base []glob.Glob
}

func compileMatcher(patterns []string) (*matcher, error) {
	m := &matcher{}
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(strings.TrimPrefix(pattern, "./"))
		if pattern == "" {
			continue
		}

		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid glob %q: %w", pattern, err)
		}

		if strings.Contains(pattern, "/") {
			m.full = append(m.full, g)
		} else {
			m.base = append(m.base, g)
		}
	}
	return m, nil
}

func (m *matcher) empty() bool {
	return m == nil || len(m.full)+len(m.base) == 0
}

// match reports whether rel matches any pattern.
func (m *matcher) match(rel string) bool {
	if m.empty() {
		return false
	}

	rel = filepath.ToSlash(rel)
	for _, g := range m.full {
		if g.Match(rel) {
			return true
		}
	}

	base := path.Base(rel)
	for _, g := range m.base {
		if g.Match(base) || g.Match(rel) {
			return true
		}
	}
	return false
}

// matchDir reports whether a directory and everything below it is
// covered, as with "drafts/**" for "drafts".
func (m *matcher) matchDir(rel string) bool {
	return m.match(rel) || m.match(filepath.ToSlash(rel)+"/")
}
