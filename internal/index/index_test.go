package index

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/standardbeagle/textdex/internal/stopword"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestIndex(t *testing.T) (*Index, string) {
	t.Helper()
	dir := t.TempDir()
	idx := New(stopword.Load(filepath.Join(dir, "stopwords")),
		filepath.Join(dir, "filebase"), filepath.Join(dir, "index"))
	return idx, dir
}

func TestAddTwoDocumentsScenario(t *testing.T) {
	idx, dir := newTestIndex(t)
	a := writeTemp(t, dir, "a.txt", "cats and dogs")

	require.NoError(t, idx.Add(a))
	require.Len(t, idx.Docs, 1)
	assert.Equal(t, 3, idx.Docs[0].NrWords)

	cat := findWord(idx, "cat")
	require.NotNil(t, cat)
	require.Len(t, cat.Postings, 1)
	assert.InDelta(t, 1.0/3.0, cat.Postings[0].TF, 1e-9)

	b := writeTemp(t, dir, "b.txt", "the cat sat")
	require.NoError(t, idx.Add(b))
	require.Len(t, idx.Docs, 2)
	assert.Equal(t, a, idx.Docs[0].Name)
	assert.Equal(t, b, idx.Docs[1].Name)

	cat = findWord(idx, "cat")
	require.NotNil(t, cat)
	require.Len(t, cat.Postings, 2)
	assert.Equal(t, 0, cat.Postings[0].DocID)
	assert.Equal(t, 1, cat.Postings[1].DocID)
}

func TestRemoveRenumbers(t *testing.T) {
	idx, dir := newTestIndex(t)
	a := writeTemp(t, dir, "a.txt", "cats and dogs")
	b := writeTemp(t, dir, "b.txt", "the cat sat")
	require.NoError(t, idx.Add(a))
	require.NoError(t, idx.Add(b))

	require.NoError(t, idx.RemoveByName(a))
	require.Len(t, idx.Docs, 1)
	assert.Equal(t, b, idx.Docs[0].Name)

	cat := findWord(idx, "cat")
	require.NotNil(t, cat)
	require.Len(t, cat.Postings, 1)
	assert.Equal(t, 0, cat.Postings[0].DocID)

	assert.Nil(t, findWord(idx, "and"))
	assert.Nil(t, findWord(idx, "dog"))
}

func TestAddRemoveInverse(t *testing.T) {
	idx, dir := newTestIndex(t)
	a := writeTemp(t, dir, "a.txt", "cats and dogs")
	require.NoError(t, idx.Add(a))

	before := snapshot(idx)

	b := writeTemp(t, dir, "b.txt", "the cat sat")
	require.NoError(t, idx.Add(b))
	require.NoError(t, idx.RemoveByName(b))

	assert.Equal(t, before, snapshot(idx))
}

func TestRebuildIdempotent(t *testing.T) {
	idx, dir := newTestIndex(t)
	a := writeTemp(t, dir, "a.txt", "cats and dogs")
	b := writeTemp(t, dir, "b.txt", "the cat sat")
	require.NoError(t, idx.Add(a))
	require.NoError(t, idx.Add(b))

	require.NoError(t, idx.Rebuild())
	once := snapshot(idx)
	require.NoError(t, idx.Rebuild())
	assert.Equal(t, once, snapshot(idx))
}

func TestPersistenceRoundTrip(t *testing.T) {
	idx, dir := newTestIndex(t)
	a := writeTemp(t, dir, "a.txt", "cats and dogs")
	b := writeTemp(t, dir, "b.txt", "the cat sat")
	require.NoError(t, idx.Add(a))
	require.NoError(t, idx.Add(b))

	loaded, err := Load(filepath.Join(dir, "filebase"), filepath.Join(dir, "index"), stopword.Load(filepath.Join(dir, "stopwords")))
	require.NoError(t, err)
	assert.Equal(t, snapshot(idx), snapshot(loaded))
}

func TestAddDuplicateIsNoOp(t *testing.T) {
	idx, dir := newTestIndex(t)
	a := writeTemp(t, dir, "a.txt", "cats and dogs")
	require.NoError(t, idx.Add(a))
	require.NoError(t, idx.Add(a))
	assert.Len(t, idx.Docs, 1)
}

func TestAddMissingFileIsError(t *testing.T) {
	idx, dir := newTestIndex(t)
	err := idx.Add(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
	assert.Empty(t, idx.Docs)
}

func TestRemoveOutOfRangeIsHardStop(t *testing.T) {
	idx, dir := newTestIndex(t)
	a := writeTemp(t, dir, "a.txt", "cats")
	require.NoError(t, idx.Add(a))

	err := idx.Remove(5)
	assert.Error(t, err)
	assert.Len(t, idx.Docs, 1)
}

func TestInvariantsAfterMutations(t *testing.T) {
	idx, dir := newTestIndex(t)
	require.NoError(t, idx.Add(writeTemp(t, dir, "a.txt", "cats and dogs")))
	require.NoError(t, idx.Add(writeTemp(t, dir, "b.txt", "the cat sat on a mat")))
	require.NoError(t, idx.Add(writeTemp(t, dir, "c.txt", "dogs chase cats")))
	require.NoError(t, idx.RemoveByName(filepath.Join(dir, "b.txt")))

	assertInvariants(t, idx)
}

func assertInvariants(t *testing.T, idx *Index) {
	t.Helper()
	for i := 1; i < len(idx.Docs); i++ {
		assert.Less(t, idx.Docs[i-1].Name, idx.Docs[i].Name)
	}
	for _, w := range idx.Words {
		require.NotEmpty(t, w.Stem)
		require.NotEmpty(t, w.Postings)
		for i, p := range w.Postings {
			assert.GreaterOrEqual(t, p.DocID, 0)
			assert.Less(t, p.DocID, len(idx.Docs))
			assert.Greater(t, p.TF, 0.0)
			assert.LessOrEqual(t, p.TF, 1.0)
			if i > 0 {
				assert.Less(t, w.Postings[i-1].DocID, p.DocID)
			}
		}
	}
	for i := 1; i < len(idx.Words); i++ {
		assert.Less(t, idx.Words[i-1].Stem, idx.Words[i].Stem)
	}
}

func findWord(idx *Index, stem string) *IndexedWord {
	for i := range idx.Words {
		if idx.Words[i].Stem == stem {
			return &idx.Words[i]
		}
	}
	return nil
}

type snap struct {
	Docs  []Document
	Words []IndexedWord
}

func snapshot(idx *Index) snap {
	docs := append([]Document(nil), idx.Docs...)
	words := make([]IndexedWord, len(idx.Words))
	for i, w := range idx.Words {
		words[i] = IndexedWord{Stem: w.Stem, Postings: append([]Posting(nil), w.Postings...)}
	}
	return snap{Docs: docs, Words: words}
}
