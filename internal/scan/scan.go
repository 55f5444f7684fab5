// Package scan walks a directory tree and adds every matching file to
// an index in one pass, the batch counterpart to a single "add file".
package scan

import (
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/standardbeagle/textdex/internal/diag"
	"github.com/standardbeagle/textdex/internal/index"
)

// Result reports how a scan went.
type Result struct {
	Added   []string
	Skipped []string
	Errors  map[string]error
}

// Run walks root, adding every file whose path (relative to root)
// matches one of includes and none of excludes. Patterns are
// doublestar globs, e.g. "**/*.txt". Files are added in lexicographic
// order so the resulting filebase order is deterministic.
func Run(idx *index.Index, root string, includes, excludes []string) (Result, error) {
	res := Result{Errors: make(map[string]error)}

	var matches []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			diag.Index("scan: cannot visit %q: %v", path, err)
			return nil
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		if !Match(rel, includes, excludes) {
			res.Skipped = append(res.Skipped, path)
			return nil
		}
		matches = append(matches, path)
		return nil
	})
	if err != nil {
		return res, err
	}

	sort.Strings(matches)
	for _, path := range matches {
		if err := idx.Add(path); err != nil {
			res.Errors[path] = err
			continue
		}
		res.Added = append(res.Added, path)
	}
	return res, nil
}

// Match reports whether path should be scanned: it must match one of
// includes and none of excludes.
func Match(path string, includes, excludes []string) bool {
	return matchesAny(path, includes) && !matchesAny(path, excludes)
}

func matchesAny(path string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, path); err == nil && ok {
			return true
		}
	}
	return false
}
