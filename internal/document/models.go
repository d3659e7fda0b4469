package document

import (
	"time"

	"github.com/google/uuid"
)

// Record describes one uploaded document.
type Record struct {
	ID           uuid.UUID `json:"id"`
	OriginalName string    `json:"originalName"`
	StoredName   string    `json:"-"`
	SizeBytes    int64     `json:"fileSize"`
	ContentType  string    `json:"contentType"`
	UploadedAt   time.Time `json:"uploadDate"`
}
