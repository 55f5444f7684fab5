package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/standardbeagle/textdex/internal/index"
	"github.com/standardbeagle/textdex/internal/stopword"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunAddsMatchingFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("cats and dogs"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("cat sat"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("ignored"), 0o644))

	idx := index.New(stopword.Load(filepath.Join(dir, "stopwords")),
		filepath.Join(dir, "filebase"), filepath.Join(dir, "index"))

	res, err := Run(idx, dir, []string{"**/*.txt"}, nil)
	require.NoError(t, err)
	assert.Len(t, res.Added, 2)
	assert.Empty(t, res.Errors)
	assert.Len(t, idx.Docs, 2)
}

func TestRunHonorsExcludes(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "vendor"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("cats"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vendor", "b.txt"), []byte("dogs"), 0o644))

	idx := index.New(stopword.Load(filepath.Join(dir, "stopwords")),
		filepath.Join(dir, "filebase"), filepath.Join(dir, "index"))

	res, err := Run(idx, dir, []string{"**/*.txt"}, []string{"vendor/**"})
	require.NoError(t, err)
	assert.Len(t, res.Added, 1)
	assert.Len(t, idx.Docs, 1)
}
