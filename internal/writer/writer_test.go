package writer

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWriterSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.bin")

	require.NoError(t, WriteFile(path, []byte{1, 2, 3}))
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got)

	// Overwrite keeps no temp files around.
	require.NoError(t, FileWriter{FullSync: true}.Save(path, []byte{4}))
	got, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{4}, got)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileWriterKeepsPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on windows")
	}
	path := filepath.Join(t.TempDir(), "exec.bin")
	require.NoError(t, os.WriteFile(path, []byte{0}, 0o755))

	require.NoError(t, WriteFile(path, []byte{1}))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0o755), info.Mode().Perm())
}

func TestFileWriterMissingDir(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "nope", "out.bin"), []byte{1})
	assert.Error(t, err)
}

func TestMemWriter(t *testing.T) {
	var w MemWriter
	src := []byte{7, 8}
	require.NoError(t, w.Save("a", src))
	src[0] = 0

	got, err := w.File("a")
	require.NoError(t, err)
	assert.Equal(t, []byte{7, 8}, got)

	_, err = w.File("b")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	w.Err = errors.New("disk full")
	assert.EqualError(t, w.Save("a", nil), "disk full")
}
