package fingerprint

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAndDrift(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "checksums")

	s := Load(path)
	s.Record("a.txt", []byte("cats and dogs"))
	assert.False(t, s.Drifted("a.txt", []byte("cats and dogs")))
	assert.True(t, s.Drifted("a.txt", []byte("cats and cats")))
	assert.True(t, s.Drifted("unknown.txt", []byte("anything")))
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "checksums")

	s := Load(path)
	s.Record("a.txt", []byte("cats and dogs"))
	s.Record("b.txt", []byte("the cat sat"))
	require.NoError(t, s.Save())

	loaded := Load(path)
	assert.False(t, loaded.Drifted("a.txt", []byte("cats and dogs")))
	assert.False(t, loaded.Drifted("b.txt", []byte("the cat sat")))
}

func TestForget(t *testing.T) {
	dir := t.TempDir()
	s := Load(filepath.Join(dir, "checksums"))
	s.Record("a.txt", []byte("x"))
	s.Forget("a.txt")
	assert.True(t, s.Drifted("a.txt", []byte("x")))
}
