package storage

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndOpen(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	size, err := s.Save("documents/g1/notes.txt", strings.NewReader("hello"))
	require.NoError(t, err)
	assert.Equal(t, int64(5), size)
	assert.True(t, s.Exists("documents/g1/notes.txt"))

	f, err := s.Open("documents/g1/notes.txt")
	require.NoError(t, err)
	defer f.Close()

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestSaveOverwrites(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = s.Save("a.txt", strings.NewReader("first"))
	require.NoError(t, err)
	size, err := s.Save("a.txt", strings.NewReader("second version"))
	require.NoError(t, err)
	assert.Equal(t, int64(14), size)
}

func TestDelete(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = s.Save("a.txt", strings.NewReader("x"))
	require.NoError(t, err)
	require.NoError(t, s.Delete("a.txt"))
	assert.False(t, s.Exists("a.txt"))

	// Deleting a missing file is not an error.
	assert.NoError(t, s.Delete("a.txt"))
}

func TestPathsStayInsideRoot(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	// Traversal segments are stripped, never escaping the root.
	full, err := s.FullPath("../outside.txt")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(full, s.Root()))

	full, err = s.FullPath("documents/../../etc/passwd")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(full, s.Root()))
}
