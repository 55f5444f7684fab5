// Package index implements the inverted index: its in-memory data
// model, its on-disk persistence, and the mutator operations that keep
// both in sync (see mutate.go).
package index

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/standardbeagle/textdex/internal/diag"
	"github.com/standardbeagle/textdex/internal/stopword"
	"github.com/standardbeagle/textdex/internal/xerrors"
)

// Document is one entry in the filebase: its display name and the
// number of non-stopword, non-empty-stemmed tokens it contributed.
type Document struct {
	Name    string
	NrWords int
}

// Posting is one (doc_id, tf) pair in a stem's posting list.
type Posting struct {
	DocID int
	TF    float64
}

// IndexedWord is a stem together with its posting list, sorted
// ascending by DocID.
type IndexedWord struct {
	Stem     string
	Postings []Posting
}

// Index is the whole inverted index: the document table (sorted by
// Name) and the indexed-word list (sorted by Stem), plus the stopword
// set consulted while parsing and the paths it persists to.
type Index struct {
	Docs  []Document
	Words []IndexedWord

	stop         *stopword.Set
	filebasePath string
	indexPath    string
}

// New returns an empty index that persists to the given paths.
func New(stop *stopword.Set, filebasePath, indexPath string) *Index {
	return &Index{stop: stop, filebasePath: filebasePath, indexPath: indexPath}
}

// docPosition returns the position name would occupy (or already
// occupies) in the lexicographically sorted document table.
func (idx *Index) docPosition(name string) int {
	return sort.Search(len(idx.Docs), func(i int) bool { return idx.Docs[i].Name >= name })
}

// wordPosition returns the position stem would occupy (or already
// occupies) in the stem-sorted word list.
func (idx *Index) wordPosition(stem string) int {
	return sort.Search(len(idx.Words), func(i int) bool { return idx.Words[i].Stem >= stem })
}

// postingPosition returns the position docID would occupy (or already
// occupies) within a DocID-sorted posting list.
func postingPosition(postings []Posting, docID int) int {
	return sort.Search(len(postings), func(i int) bool { return postings[i].DocID >= docID })
}

func insertPosting(postings []Posting, at int, p Posting) []Posting {
	postings = append(postings, Posting{})
	copy(postings[at+1:], postings[at:])
	postings[at] = p
	return postings
}

func insertWord(words []IndexedWord, at int, w IndexedWord) []IndexedWord {
	words = append(words, IndexedWord{})
	copy(words[at+1:], words[at:])
	words[at] = w
	return words
}

func insertDoc(docs []Document, at int, d Document) []Document {
	docs = append(docs, Document{})
	copy(docs[at+1:], docs[at:])
	docs[at] = d
	return docs
}

// Load reads the filebase and index files produced by Persist. A
// missing filebase yields an empty index; a missing index file yields
// the loaded document table with no indexed words. Either case emits a
// diagnostic, per the non-fatal error handling rules; it is not an
// error.
func Load(filebasePath, indexPath string, stop *stopword.Set) (*Index, error) {
	idx := New(stop, filebasePath, indexPath)

	docs, err := loadFilebase(filebasePath)
	if err != nil {
		diag.Index("filebase %q not found, starting empty", filebasePath)
		return idx, nil
	}
	idx.Docs = docs

	words, err := loadIndexFile(indexPath)
	if err != nil {
		diag.Index("index file %q not found, starting with no indexed words", indexPath)
		return idx, nil
	}
	idx.Words = words
	return idx, nil
}

func loadFilebase(path string) ([]Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var docs []Document
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "|", 2)
		if len(parts) != 2 {
			diag.Index("malformed filebase line %q, skipping", line)
			continue
		}
		nr, err := strconv.Atoi(parts[1])
		if err != nil {
			diag.Index("malformed filebase line %q, skipping", line)
			continue
		}
		docs = append(docs, Document{Name: parts[0], NrWords: nr})
	}
	return docs, scanner.Err()
}

func loadIndexFile(path string) ([]IndexedWord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var words []IndexedWord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		w, ok := parseIndexLine(line)
		if !ok {
			diag.Index("malformed index line %q, skipping", line)
			continue
		}
		words = append(words, w)
	}
	return words, scanner.Err()
}

// parseIndexLine parses "<stem>:<nr_docs>:<id>/<tf>|<id>/<tf>|...".
func parseIndexLine(line string) (IndexedWord, bool) {
	fields := strings.SplitN(line, ":", 3)
	if len(fields) != 3 {
		return IndexedWord{}, false
	}
	stem := fields[0]
	nrDocs, err := strconv.Atoi(fields[1])
	if err != nil {
		return IndexedWord{}, false
	}

	var postings []Posting
	for _, entry := range strings.Split(fields[2], "|") {
		if entry == "" {
			continue
		}
		idTF := strings.SplitN(entry, "/", 2)
		if len(idTF) != 2 {
			return IndexedWord{}, false
		}
		id, err := strconv.Atoi(idTF[0])
		if err != nil {
			return IndexedWord{}, false
		}
		tf, err := strconv.ParseFloat(idTF[1], 64)
		if err != nil {
			return IndexedWord{}, false
		}
		postings = append(postings, Posting{DocID: id, TF: tf})
	}
	if len(postings) != nrDocs {
		diag.Index("stem %q declares %d postings but has %d, trusting the postings", stem, nrDocs, len(postings))
	}
	return IndexedWord{Stem: stem, Postings: postings}, true
}

// Persist rewrites the filebase and index files from the current
// in-memory state.
func (idx *Index) Persist() error {
	if err := idx.writeFilebase(); err != nil {
		diag.Index("failed to write filebase %q: %v", idx.filebasePath, err)
		return xerrors.NewFileError("persist", idx.filebasePath, err)
	}
	if err := idx.writeIndexFile(); err != nil {
		diag.Index("failed to write index %q: %v", idx.indexPath, err)
		return xerrors.NewFileError("persist", idx.indexPath, err)
	}
	return nil
}

func (idx *Index) writeFilebase() error {
	f, err := os.Create(idx.filebasePath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, d := range idx.Docs {
		fmt.Fprintf(w, "%s|%d\n", d.Name, d.NrWords)
	}
	return w.Flush()
}

func (idx *Index) writeIndexFile() error {
	f, err := os.Create(idx.indexPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, word := range idx.Words {
		fmt.Fprintf(w, "%s:%d:", word.Stem, len(word.Postings))
		for i, p := range word.Postings {
			if i > 0 {
				w.WriteByte('|')
			}
			fmt.Fprintf(w, "%d/%f", p.DocID, p.TF)
		}
		w.WriteByte('\n')
	}
	return w.Flush()
}
