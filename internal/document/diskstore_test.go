package document

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiskStoreWriteCreatesDirectoryLazily(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "blobs")
	store := NewDiskStore(dir)

	_, err := os.Stat(dir)
	require.True(t, os.IsNotExist(err), "directory must not exist before first write")

	n, err := store.Write(context.Background(), "abc-test.pdf", bytes.NewReader([]byte("%PDF")))
	require.NoError(t, err)
	require.Equal(t, int64(4), n)

	data, err := os.ReadFile(filepath.Join(dir, "abc-test.pdf"))
	require.NoError(t, err)
	require.Equal(t, []byte("%PDF"), data)
}

func TestDiskStoreOpenRoundTrips(t *testing.T) {
	store := NewDiskStore(t.TempDir())

	content := []byte("%PDF-1.4 content")
	_, err := store.Write(context.Background(), "doc.pdf", bytes.NewReader(content))
	require.NoError(t, err)

	reader, err := store.Open(context.Background(), "doc.pdf")
	require.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	require.Equal(t, content, data)
}

func TestDiskStoreOpenMissingBlob(t *testing.T) {
	store := NewDiskStore(t.TempDir())

	_, err := store.Open(context.Background(), "nope.pdf")
	require.ErrorIs(t, err, ErrBlobMissing)
}

func TestDiskStoreRemoveIsIdempotent(t *testing.T) {
	store := NewDiskStore(t.TempDir())

	_, err := store.Write(context.Background(), "doc.pdf", bytes.NewReader([]byte("%PDF")))
	require.NoError(t, err)

	require.NoError(t, store.Remove(context.Background(), "doc.pdf"))
	require.NoError(t, store.Remove(context.Background(), "doc.pdf"), "removing an absent blob is success")
}

func TestDiskStoreWriteOverwrites(t *testing.T) {
	store := NewDiskStore(t.TempDir())

	_, err := store.Write(context.Background(), "doc.pdf", bytes.NewReader([]byte("first version")))
	require.NoError(t, err)
	n, err := store.Write(context.Background(), "doc.pdf", bytes.NewReader([]byte("second")))
	require.NoError(t, err)
	require.Equal(t, int64(6), n)

	reader, err := store.Open(context.Background(), "doc.pdf")
	require.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	require.Equal(t, []byte("second"), data)
}
