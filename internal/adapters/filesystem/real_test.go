package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadWriteExists(t *testing.T) {
	fs := NewReal()
	path := filepath.Join(t.TempDir(), "file.txt")

	assert.False(t, fs.Exists(path))

	require.NoError(t, fs.WriteFile(path, []byte("content"), 0o644))
	assert.True(t, fs.Exists(path))
	assert.False(t, fs.IsDir(path))

	data, err := fs.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}

func TestMkdirAllAndIsDir(t *testing.T) {
	fs := NewReal()
	dir := filepath.Join(t.TempDir(), "a", "b", "c")

	require.NoError(t, fs.MkdirAll(dir, 0o755))
	assert.True(t, fs.IsDir(dir))
	assert.True(t, fs.Exists(dir))
}

func TestCopyFilePreservesMode(t *testing.T) {
	fs := NewReal()
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dest := filepath.Join(dir, "dest")

	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o600))
	require.NoError(t, fs.CopyFile(src, dest))

	data, err := fs.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	info, err := fs.GetFileInfo(dest)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode.Perm())
}

func TestFileHash(t *testing.T) {
	fs := NewReal()
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	c := filepath.Join(dir, "c")

	require.NoError(t, os.WriteFile(a, []byte("same"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("same"), 0o644))
	require.NoError(t, os.WriteFile(c, []byte("different"), 0o644))

	hashA, err := fs.FileHash(a)
	require.NoError(t, err)
	hashB, err := fs.FileHash(b)
	require.NoError(t, err)
	hashC, err := fs.FileHash(c)
	require.NoError(t, err)

	assert.Equal(t, hashA, hashB)
	assert.NotEqual(t, hashA, hashC)

	_, err = fs.FileHash(filepath.Join(dir, "absent"))
	require.Error(t, err)
}

func TestGlob(t *testing.T) {
	fs := NewReal()
	dir := t.TempDir()
	for _, name := range []string{"one.vim", "two.vim", "other.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	matches, err := fs.Glob(filepath.Join(dir, "*.vim"))
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestChmodAndRemove(t *testing.T) {
	fs := NewReal()
	path := filepath.Join(t.TempDir(), "f")
	require.NoError(t, fs.WriteFile(path, []byte("x"), 0o644))

	require.NoError(t, fs.Chmod(path, 0o400))
	info, err := fs.GetFileInfo(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o400), info.Mode.Perm())

	require.NoError(t, fs.Remove(path))
	assert.False(t, fs.Exists(path))
}
