// Package stopword loads and queries the stopword set used to filter
// tokens before they reach the stemmer.
package stopword

import (
	"bufio"
	"os"
	"strings"

	"github.com/standardbeagle/textdex/internal/diag"
)

// Set holds the loaded stopwords. The zero value is an empty, usable
// set. Unlike the teacher's process-wide lazy-init pattern, Set is an
// explicit object owned by whoever needs it (per spec.md §9's redesign
// note: lazy init is a convenience, not a requirement).
type Set struct {
	words map[string]struct{}
}

// Load reads one lower-case word per line from path. A missing file is
// not an error: it yields an empty set and a single diagnostic, matching
// spec.md §4.2 and §7.
func Load(path string) *Set {
	s := &Set{words: make(map[string]struct{})}

	f, err := os.Open(path)
	if err != nil {
		diag.Index("stopwords file %q not found, proceeding without stopwords", path)
		return s
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := strings.TrimSuffix(scanner.Text(), "\r")
		if word == "" {
			continue
		}
		s.words[word] = struct{}{}
	}
	return s
}

// Contains reports whether word is a stopword. The comparison is
// case-sensitive against the stored (already lower-case) form, since
// callers are expected to normalize their input first.
func (s *Set) Contains(word string) bool {
	if s == nil {
		return false
	}
	_, ok := s.words[word]
	return ok
}

// Len reports the number of loaded stopwords.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.words)
}
