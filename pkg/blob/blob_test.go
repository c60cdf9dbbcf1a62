package blob_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kart-io/docquery/pkg/blob"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveOpenRemove(t *testing.T) {
	store, err := blob.NewFileStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	data := []byte("file content")

	path, err := store.Save(ctx, "scan.pdf", data)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "_scan.pdf"))

	got, err := store.Open(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	require.NoError(t, store.Remove(ctx, path))
	_, err = store.Open(ctx, path)
	assert.Error(t, err)
}

func TestSaveSameNameNoCollision(t *testing.T) {
	store, err := blob.NewFileStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	p1, err := store.Save(ctx, "doc.png", []byte("one"))
	require.NoError(t, err)
	p2, err := store.Save(ctx, "doc.png", []byte("two"))
	require.NoError(t, err)

	assert.NotEqual(t, p1, p2)
}

func TestSaveSanitizesFileName(t *testing.T) {
	root := t.TempDir()
	store, err := blob.NewFileStore(root)
	require.NoError(t, err)

	path, err := store.Save(context.Background(), "../../etc/passwd", []byte("x"))
	require.NoError(t, err)
	// 路径穿越被消除，文件落在根目录内
	assert.Equal(t, root, filepath.Dir(path))
}

func TestRemoveMissingFile(t *testing.T) {
	store, err := blob.NewFileStore(t.TempDir())
	require.NoError(t, err)
	assert.NoError(t, store.Remove(context.Background(), filepath.Join(store.Root(), "missing")))
}

func TestNewFileStoreEmptyRoot(t *testing.T) {
	_, err := blob.NewFileStore("")
	assert.Error(t, err)
}
