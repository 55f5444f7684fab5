// Package fingerprint tracks a fast content hash per indexed document
// in a sidecar file, separate from the spec-mandated filebase/index
// formats, so textdex can report documents whose on-disk content has
// changed since their hash was last recorded, without widening those
// wire formats. Hashes are recorded by the doctor command, not when a
// document is added to the index.
package fingerprint

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/standardbeagle/textdex/internal/diag"
	"github.com/standardbeagle/textdex/internal/xerrors"
)

// Store maps a document name to the xxhash of its content the last
// time it was recorded.
type Store struct {
	path string
	sums map[string]uint64
}

// Load reads the sidecar file at path. A missing file yields an empty
// store; this is not an error.
func Load(path string) *Store {
	s := &Store{path: path, sums: make(map[string]uint64)}

	f, err := os.Open(path)
	if err != nil {
		diag.Index("no checksum sidecar at %q, starting empty", path)
		return s
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "|", 2)
		if len(parts) != 2 {
			continue
		}
		sum, err := strconv.ParseUint(parts[1], 16, 64)
		if err != nil {
			continue
		}
		s.sums[parts[0]] = sum
	}
	return s
}

// Record computes and stores the fingerprint for name's content.
func (s *Store) Record(name string, content []byte) {
	s.sums[name] = xxhash.Sum64(content)
}

// Forget removes name's fingerprint, e.g. after the document is
// removed from the index.
func (s *Store) Forget(name string) {
	delete(s.sums, name)
}

// Drifted reports whether content's hash no longer matches the
// recorded fingerprint for name. An unrecorded name is reported as
// drifted, since there is nothing to compare against.
func (s *Store) Drifted(name string, content []byte) bool {
	sum, ok := s.sums[name]
	if !ok {
		return true
	}
	return sum != xxhash.Sum64(content)
}

// Save rewrites the sidecar file.
func (s *Store) Save() error {
	f, err := os.Create(s.path)
	if err != nil {
		return xerrors.NewFileError("save fingerprints", s.path, err)
	}
	defer f.Close()

	names := make([]string, 0, len(s.sums))
	for name := range s.sums {
		names = append(names, name)
	}
	sort.Strings(names)

	w := bufio.NewWriter(f)
	for _, name := range names {
		fmt.Fprintf(w, "%s|%x\n", name, s.sums[name])
	}
	return w.Flush()
}
