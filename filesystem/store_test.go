package filesystem_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarc03/smallserver"
	"github.com/sagarc03/smallserver/filesystem"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestStore_Stat_Success(t *testing.T) {
	path := writeFile(t, t.TempDir(), "test.txt", "test content")

	store := filesystem.NewFileStorage()
	info, err := store.Stat(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, int64(12), info.Size())
	assert.False(t, info.IsDir())
}

func TestStore_Stat_Directory(t *testing.T) {
	store := filesystem.NewFileStorage()
	info, err := store.Stat(context.Background(), t.TempDir())

	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestStore_Stat_NotFound(t *testing.T) {
	store := filesystem.NewFileStorage()
	_, err := store.Stat(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))

	assert.ErrorIs(t, err, smallserver.ErrNotFound)
}

func TestStore_Stat_FileAsDirectory(t *testing.T) {
	path := writeFile(t, t.TempDir(), "file.txt", "x")

	store := filesystem.NewFileStorage()
	_, err := store.Stat(context.Background(), filepath.Join(path, "child.txt"))

	assert.ErrorIs(t, err, smallserver.ErrNotFound)
}

func TestStore_Stat_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := filesystem.NewFileStorage()
	_, err := store.Stat(ctx, t.TempDir())

	assert.ErrorIs(t, err, context.Canceled)
}

func TestStore_Open_Success(t *testing.T) {
	path := writeFile(t, t.TempDir(), "test.txt", "0123456789")

	store := filesystem.NewFileStorage()
	f, err := store.Open(context.Background(), path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	_, err = f.Seek(4, io.SeekStart)
	require.NoError(t, err)

	content, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "456789", string(content))
}

func TestStore_Open_NotFound(t *testing.T) {
	store := filesystem.NewFileStorage()
	f, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))

	assert.ErrorIs(t, err, smallserver.ErrNotFound)
	assert.Nil(t, f)
}

func TestStore_Open_ReadAfterCancel(t *testing.T) {
	path := writeFile(t, t.TempDir(), "test.txt", "test content")

	ctx, cancel := context.WithCancel(context.Background())
	store := filesystem.NewFileStorage()
	f, err := store.Open(ctx, path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	buf := make([]byte, 4)
	n, err := f.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "test", string(buf[:n]))

	cancel()

	_, err = f.Read(buf)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFSStore_StatAndOpen(t *testing.T) {
	modTime := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	fsys := fstest.MapFS{
		"404.html":   {Data: []byte("<h1>missing</h1>"), ModTime: modTime},
		"dir/a.html": {Data: []byte("a")},
	}

	store := filesystem.NewFSStorage(fsys)
	ctx := context.Background()

	info, err := store.Stat(ctx, "404.html")
	require.NoError(t, err)
	assert.Equal(t, int64(16), info.Size())
	assert.True(t, modTime.Equal(info.ModTime()))

	f, err := store.Open(ctx, "404.html")
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	_, err = f.Seek(4, io.SeekStart)
	require.NoError(t, err)
	content, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "missing</h1>", string(content))

	info, err = store.Stat(ctx, "dir")
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFSStore_NotFound(t *testing.T) {
	store := filesystem.NewFSStorage(fstest.MapFS{})
	ctx := context.Background()

	_, err := store.Stat(ctx, "index.html")
	assert.ErrorIs(t, err, smallserver.ErrNotFound)

	_, err = store.Open(ctx, "index.html")
	assert.ErrorIs(t, err, smallserver.ErrNotFound)
}

func TestFSStore_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := filesystem.NewFSStorage(fstest.MapFS{"a.txt": {Data: []byte("a")}})

	_, err := store.Stat(ctx, "a.txt")
	assert.ErrorIs(t, err, context.Canceled)

	_, err = store.Open(ctx, "a.txt")
	assert.ErrorIs(t, err, context.Canceled)
}
