package file_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrkit/pkg/file"
)

func newLocalStorage(t *testing.T) (*file.LocalStorage, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "codes"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "codes", "a.png"), pngHeader, 0o644))

	store, err := file.NewLocalStorage(dir)
	require.NoError(t, err)
	return store, dir
}

func TestNewLocalStorage(t *testing.T) {
	t.Parallel()

	_, err := file.NewLocalStorage("")
	assert.ErrorIs(t, err, file.ErrInvalidConfig)

	_, err = file.NewLocalStorage(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, file.ErrDirectoryNotFound)

	regular := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(regular, nil, 0o644))
	_, err = file.NewLocalStorage(regular)
	assert.ErrorIs(t, err, file.ErrInvalidConfig)
}

func TestLocalStorage_Open(t *testing.T) {
	t.Parallel()
	store, _ := newLocalStorage(t)
	ctx := context.Background()

	t.Run("reads file content", func(t *testing.T) {
		t.Parallel()
		rc, err := store.Open(ctx, "codes/a.png")
		require.NoError(t, err)
		defer rc.Close()

		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, pngHeader, data)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := store.Open(ctx, "codes/b.png")
		assert.ErrorIs(t, err, file.ErrFileNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()
		_, err := store.Open(ctx, "codes")
		assert.ErrorIs(t, err, file.ErrIsDirectory)
	})

	t.Run("path traversal", func(t *testing.T) {
		t.Parallel()
		_, err := store.Open(ctx, "../../etc/passwd")
		assert.ErrorIs(t, err, file.ErrInvalidPath)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := store.Open(cctx, "codes/a.png")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestLocalStorage_Exists(t *testing.T) {
	t.Parallel()
	store, _ := newLocalStorage(t)
	ctx := context.Background()

	assert.True(t, store.Exists(ctx, "codes/a.png"))
	assert.False(t, store.Exists(ctx, "codes"))
	assert.False(t, store.Exists(ctx, "codes/missing.png"))
	assert.False(t, store.Exists(ctx, "../outside.png"))
}

func TestLocalStorage_Object(t *testing.T) {
	t.Parallel()
	store, dir := newLocalStorage(t)

	obj := store.Object("codes/a.png")
	assert.Equal(t, "codes/a.png", obj.Name())

	// the object is lazy: later writes are visible when it is opened
	require.NoError(t, os.WriteFile(filepath.Join(dir, "codes", "a.png"), []byte("updated"), 0o644))

	rc, err := obj.Open(context.Background())
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "updated", string(data))

	var _ file.Source = store
}
