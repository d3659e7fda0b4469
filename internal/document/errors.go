package document

import "errors"

var (
	// ErrNotFound signals that no record exists for the requested id.
	ErrNotFound = errors.New("document not found")
	// ErrBlobMissing signals that a record exists but its blob is gone from storage.
	ErrBlobMissing = errors.New("document blob missing")
	// ErrInvalidType signals a declared content type other than application/pdf.
	ErrInvalidType = errors.New("invalid file type")
	// ErrTooLarge signals that the upload exceeds the configured size ceiling.
	ErrTooLarge = errors.New("file too large")
	// ErrMissingFile signals a multipart submission without a file part.
	ErrMissingFile = errors.New("missing file")
	// ErrDuplicateID signals an id collision on insert.
	ErrDuplicateID = errors.New("duplicate document id")
)
