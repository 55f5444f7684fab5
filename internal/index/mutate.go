package index

import (
	"bufio"
	"fmt"
	"os"

	"github.com/standardbeagle/textdex/internal/diag"
	"github.com/standardbeagle/textdex/internal/normalize"
	"github.com/standardbeagle/textdex/internal/porter"
	"github.com/standardbeagle/textdex/internal/xerrors"
)

// Add indexes the file at path under a document named path. A missing
// or unreadable file leaves the index unchanged. Adding a name already
// present leaves the index unchanged.
func (idx *Index) Add(path string) error {
	if _, err := os.Stat(path); err != nil {
		diag.Index("cannot add %q: %v", path, err)
		return xerrors.NewFileError("add", path, err)
	}

	pos := idx.docPosition(path)
	if pos < len(idx.Docs) && idx.Docs[pos].Name == path {
		diag.Index("document %q is already indexed", path)
		return nil
	}

	return idx.insertAndParse(pos, path, path)
}

// AddSynthetic inserts a document at position 0 regardless of its
// lexicographic position, the one exception to Add's ordering rule.
// It is used by the query engine to materialize a query as a
// transient document (see internal/query).
func (idx *Index) AddSynthetic(name, path string) error {
	return idx.insertAndParse(0, name, path)
}

// insertAndParse renumbers existing postings to make room at pos,
// inserts the new document, parses its content, and normalizes term
// frequencies, then persists. If the content cannot be read, the
// insertion is undone so the index is left as it was.
func (idx *Index) insertAndParse(pos int, name, path string) error {
	idx.renumberFrom(pos, 1)
	idx.Docs = insertDoc(idx.Docs, pos, Document{Name: name})

	if err := idx.parseInto(pos, path); err != nil {
		if rmErr := idx.Remove(pos); rmErr != nil {
			diag.Index("cannot undo insertion of %q: %v", name, rmErr)
		}
		return err
	}
	idx.normalizeTF(pos)
	return idx.Persist()
}

// renumberFrom shifts every posting with DocID >= from by delta.
func (idx *Index) renumberFrom(from, delta int) {
	for wi := range idx.Words {
		postings := idx.Words[wi].Postings
		for pi := range postings {
			if postings[pi].DocID >= from {
				postings[pi].DocID += delta
			}
		}
	}
}

func (idx *Index) parseInto(pos int, path string) error {
	f, err := os.Open(path)
	if err != nil {
		diag.Index("cannot parse %q: %v", path, err)
		return xerrors.NewFileError("parse", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		idx.parseLine(pos, scanner.Text())
	}
	return scanner.Err()
}

func (idx *Index) parseLine(pos int, line string) {
	for _, tok := range normalize.Tokens(line) {
		if idx.stop.Contains(tok) {
			continue
		}
		stem := porter.Stem(tok)
		if stem == "" {
			continue
		}
		idx.addToken(pos, stem)
	}
}

func (idx *Index) addToken(pos int, stem string) {
	wi := idx.wordPosition(stem)
	if wi < len(idx.Words) && idx.Words[wi].Stem == stem {
		postings := idx.Words[wi].Postings
		pi := postingPosition(postings, pos)
		if pi < len(postings) && postings[pi].DocID == pos {
			postings[pi].TF++
		} else {
			idx.Words[wi].Postings = insertPosting(postings, pi, Posting{DocID: pos, TF: 1})
		}
	} else {
		idx.Words = insertWord(idx.Words, wi, IndexedWord{
			Stem:     stem,
			Postings: []Posting{{DocID: pos, TF: 1}},
		})
	}
	idx.Docs[pos].NrWords++
}

// normalizeTF divides every posting counted for doc pos by that
// document's total token count, turning raw counts into relative
// term frequencies.
func (idx *Index) normalizeTF(pos int) {
	nr := idx.Docs[pos].NrWords
	if nr == 0 {
		return
	}
	for wi := range idx.Words {
		postings := idx.Words[wi].Postings
		pi := postingPosition(postings, pos)
		if pi < len(postings) && postings[pi].DocID == pos {
			postings[pi].TF /= float64(nr)
		}
	}
}

// Remove deletes the document at docID, renumbers surviving postings,
// drops any word left with an empty posting list, and persists. An
// out-of-range docID is a hard stop: the source's latent bug of
// printing an error but continuing is not reproduced here.
func (idx *Index) Remove(docID int) error {
	if len(idx.Docs) == 0 {
		diag.Index("remove: filebase is empty")
		return nil
	}
	if docID < 0 || docID >= len(idx.Docs) {
		diag.Index("remove: doc id %d out of range", docID)
		return xerrors.NewIndexError("remove", fmt.Errorf("doc id %d out of range [0,%d)", docID, len(idx.Docs)))
	}

	idx.Docs = append(idx.Docs[:docID], idx.Docs[docID+1:]...)

	kept := idx.Words[:0]
	for _, w := range idx.Words {
		w.Postings = removeAndShift(w.Postings, docID)
		if len(w.Postings) > 0 {
			kept = append(kept, w)
		}
	}
	idx.Words = kept

	return idx.Persist()
}

func removeAndShift(postings []Posting, docID int) []Posting {
	out := postings[:0]
	for _, p := range postings {
		switch {
		case p.DocID == docID:
			continue
		case p.DocID > docID:
			p.DocID--
			out = append(out, p)
		default:
			out = append(out, p)
		}
	}
	return out
}

// RemoveByName looks up name in the document table and removes it.
func (idx *Index) RemoveByName(name string) error {
	pos := idx.docPosition(name)
	if pos >= len(idx.Docs) || idx.Docs[pos].Name != name {
		diag.Index("remove: %q is not indexed", name)
		return xerrors.NewIndexError("remove", fmt.Errorf("document %q not found", name))
	}
	return idx.Remove(pos)
}

// Rebuild discards the indexed-word list and every document's word
// count, then re-parses each document in table order, preserving the
// document table itself.
func (idx *Index) Rebuild() error {
	names := make([]string, len(idx.Docs))
	for i, d := range idx.Docs {
		names[i] = d.Name
		idx.Docs[i].NrWords = 0
	}
	idx.Words = nil

	for i, name := range names {
		if err := idx.parseInto(i, name); err != nil {
			diag.Index("rebuild: skipping %q: %v", name, err)
			continue
		}
		idx.normalizeTF(i)
	}
	return idx.Persist()
}
