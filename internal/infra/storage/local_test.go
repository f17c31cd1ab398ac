package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalPut(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "orcamentos", "gerados")
	s, err := NewLocal(dir)
	require.NoError(t, err)

	loc, err := s.Put(context.Background(), "orcamento_Ana.pdf", "application/pdf", []byte("%PDF-1.3"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "orcamento_Ana.pdf"), loc)

	data, err := os.ReadFile(loc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestLocalPutOverwrites(t *testing.T) {
	s, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	_, err = s.Put(context.Background(), "a.png", "image/png", []byte("one"))
	require.NoError(t, err)
	loc, err := s.Put(context.Background(), "a.png", "image/png", []byte("two"))
	require.NoError(t, err)

	data, err := os.ReadFile(loc)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))
}

func TestLocalPutRejectsPaths(t *testing.T) {
	s, err := NewLocal(t.TempDir())
	require.NoError(t, err)
	for _, name := range []string{"", "..", "../escape.pdf", `a\b.pdf`, "sub/a.pdf"} {
		_, err := s.Put(context.Background(), name, "", nil)
		assert.ErrorIs(t, err, ErrInvalidName, name)
	}
}

func TestLocalPutFailsWhenDirectoryIsGone(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	s, err := NewLocal(dir)
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(dir))

	_, err = s.Put(context.Background(), "a.pdf", "application/pdf", []byte("x"))
	assert.Error(t, err)
}

func TestLocalPutHonoursContext(t *testing.T) {
	s, err := NewLocal(t.TempDir())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Put(ctx, "a.pdf", "", nil)
	assert.ErrorIs(t, err, context.Canceled)
}
