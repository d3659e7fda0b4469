package document

import (
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	defaultMaxFileSize = 50 * 1024 * 1024 // 50 MiB
	pdfContentType     = "application/pdf"
)

type metadataStore interface {
	Create(ctx context.Context, rec Record) (Record, error)
	List(ctx context.Context) ([]Record, error)
	GetByID(ctx context.Context, id uuid.UUID) (Record, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type blobStore interface {
	Write(ctx context.Context, name string, r io.Reader) (int64, error)
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Remove(ctx context.Context, name string) error
}

// Service manages document lifecycle operations.
type Service struct {
	repo        metadataStore
	blobs       blobStore
	maxFileSize int64
}

// NewService constructs a document service. A non-positive maxFileSize falls
// back to the 50 MiB default.
func NewService(repo metadataStore, blobs blobStore, maxFileSize int64) *Service {
	if maxFileSize <= 0 {
		maxFileSize = defaultMaxFileSize
	}
	return &Service{
		repo:        repo,
		blobs:       blobs,
		maxFileSize: maxFileSize,
	}
}

// Upload validates the submission, stores the blob, then inserts the record.
// The blob is written first so an insert failure never leaves a record
// pointing at nothing; the reverse window (blob without record) is accepted.
func (s *Service) Upload(ctx context.Context, fileHeader *multipart.FileHeader) (Record, error) {
	if fileHeader == nil {
		return Record{}, ErrMissingFile
	}

	if declaredContentType(fileHeader) != pdfContentType {
		return Record{}, ErrInvalidType
	}

	if fileHeader.Size > s.maxFileSize {
		return Record{}, ErrTooLarge
	}

	id := uuid.New()
	originalName := sanitizeFilename(fileHeader.Filename)
	storedName := fmt.Sprintf("%s-%s", id.String(), originalName)

	file, err := fileHeader.Open()
	if err != nil {
		return Record{}, fmt.Errorf("open upload file: %w", err)
	}
	defer file.Close()

	// Bound the reader one byte past the ceiling so an understated
	// multipart header still cannot smuggle an oversized payload through.
	written, err := s.blobs.Write(ctx, storedName, io.LimitReader(file, s.maxFileSize+1))
	if err != nil {
		return Record{}, fmt.Errorf("store blob: %w", err)
	}
	if written > s.maxFileSize {
		_ = s.blobs.Remove(ctx, storedName)
		return Record{}, ErrTooLarge
	}

	rec := Record{
		ID:           id,
		OriginalName: originalName,
		StoredName:   storedName,
		SizeBytes:    written,
		ContentType:  pdfContentType,
		UploadedAt:   time.Now().UTC(),
	}

	stored, err := s.repo.Create(ctx, rec)
	if err != nil {
		_ = s.blobs.Remove(ctx, storedName)
		return Record{}, err
	}
	return stored, nil
}

// List returns every document, newest first.
func (s *Service) List(ctx context.Context) ([]Record, error) {
	return s.repo.List(ctx)
}

// Get returns metadata for a single document.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Record, error) {
	return s.repo.GetByID(ctx, id)
}

// Download resolves the record and opens its blob. When the blob is gone the
// record is still returned alongside ErrBlobMissing so callers can report the
// orphan before collapsing it to a not-found response.
func (s *Service) Download(ctx context.Context, id uuid.UUID) (Record, io.ReadCloser, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Record{}, nil, err
	}

	reader, err := s.blobs.Open(ctx, rec.StoredName)
	if err != nil {
		return rec, nil, err
	}
	return rec, reader, nil
}

// Delete removes the blob then the record. The two steps are sequenced, not
// atomic; a crash in between leaves an orphan record that later surfaces as
// not-found on download.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.blobs.Remove(ctx, rec.StoredName); err != nil {
		return fmt.Errorf("remove blob: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	return nil
}

func declaredContentType(fileHeader *multipart.FileHeader) string {
	raw := fileHeader.Header.Get("Content-Type")
	if raw == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(raw)
	if err != nil {
		return ""
	}
	return mediaType
}

func sanitizeFilename(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "upload.pdf"
	}
	return name
}
