// Package files resolves the header lists read by each extraction pass.
package files

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// List returns the regular files under base matching any of patterns,
// deduplicated and sorted lexicographically. Patterns are slash separated,
// relative to base, and may use "**" to cross directory levels.
//
// A missing or unreadable base is an error; a pattern that matches nothing
// is not.
func List(base string, patterns []string) ([]string, error) {
	info, err := os.Stat(base)
	if err != nil {
		return nil, fmt.Errorf("source directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source directory: %s is not a directory", base)
	}

	fsys := os.DirFS(base)
	seen := make(map[string]bool)
	var paths []string

	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, doublestar.ErrBadPattern)
		}

		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("expanding %q: %w", pattern, err)
		}

		for _, m := range matches {
			st, err := fs.Stat(fsys, m)
			if err != nil {
				return nil, fmt.Errorf("stat %s: %w", m, err)
			}
			if st.IsDir() {
				continue
			}
			p := filepath.Join(base, filepath.FromSlash(m))
			if seen[p] {
				continue
			}
			seen[p] = true
			paths = append(paths, p)
		}
	}

	sort.Strings(paths)
	return paths, nil
}

// Display returns path relative to root in slash form, for use in artifact
// comments. Paths outside root are returned unchanged in slash form.
func Display(root, path string) string {
	if root != "" {
		if rel, err := filepath.Rel(root, path); err == nil && !startsWithParent(rel) {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(path)
}

func startsWithParent(rel string) bool {
	return rel == ".." || len(rel) > 2 && rel[:3] == ".."+string(filepath.Separator)
}
