package document

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
)

// MinIOStore keeps blobs as objects in a MinIO/S3 bucket, behind the same
// contract as DiskStore.
type MinIOStore struct {
	client *minio.Client
	bucket string
}

// NewMinIOStore builds a blob store over the given bucket.
func NewMinIOStore(client *minio.Client, bucket string) *MinIOStore {
	return &MinIOStore{client: client, bucket: bucket}
}

// Write streams the reader's content into the bucket under name.
func (s *MinIOStore) Write(ctx context.Context, name string, r io.Reader) (int64, error) {
	info, err := s.client.PutObject(ctx, s.bucket, name, r, -1, minio.PutObjectOptions{})
	if err != nil {
		return 0, fmt.Errorf("put object: %w", err)
	}
	return info.Size, nil
}

// Open returns a reader over the named object, or ErrBlobMissing.
func (s *MinIOStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object: %w", err)
	}

	// GetObject is lazy; Stat forces the existence check.
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrBlobMissing
		}
		return nil, fmt.Errorf("stat object: %w", err)
	}
	return obj, nil
}

// Remove deletes the named object. S3 treats a missing key as success.
func (s *MinIOStore) Remove(ctx context.Context, name string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, name, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object: %w", err)
	}
	return nil
}
