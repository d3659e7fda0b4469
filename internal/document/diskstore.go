package document

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DiskStore keeps blobs as plain files in a single directory.
// The directory is created lazily on the first write.
type DiskStore struct {
	dir string
}

// NewDiskStore builds a blob store rooted at dir.
func NewDiskStore(dir string) *DiskStore {
	return &DiskStore{dir: dir}
}

// Write persists the reader's content under name, overwriting any existing
// file, and returns the number of bytes written.
func (s *DiskStore) Write(ctx context.Context, name string, r io.Reader) (int64, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return 0, fmt.Errorf("create blob directory: %w", err)
	}

	path := filepath.Join(s.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create blob file: %w", err)
	}

	n, err := io.Copy(f, r)
	if err != nil {
		f.Close()
		os.Remove(path)
		return 0, fmt.Errorf("write blob content: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return 0, fmt.Errorf("close blob file: %w", err)
	}
	return n, nil
}

// Open returns a reader over the named blob, or ErrBlobMissing.
func (s *DiskStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrBlobMissing
		}
		return nil, fmt.Errorf("open blob file: %w", err)
	}
	return f, nil
}

// Remove deletes the named blob. An already-absent blob is treated as success.
func (s *DiskStore) Remove(ctx context.Context, name string) error {
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove blob file: %w", err)
	}
	return nil
}
