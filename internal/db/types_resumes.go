package db

import (
	"time"

	"github.com/google/uuid"
)

// Resume represents one uploaded résumé document. ExtractedText is populated
// synchronously on upload and, redundantly, by the dispatcher if still empty;
// once set it is stable.
type Resume struct {
	ID            uuid.UUID `json:"id"`
	Seq           int64     `json:"-"` // insertion order, breaks upload-time ties
	UserID        uuid.UUID `json:"user_id"`
	FileName      string    `json:"file_name"`
	FileFormat    string    `json:"file_format"`
	RawFile       []byte    `json:"-"`
	ExtractedText string    `json:"-"`
	UploadedAt    time.Time `json:"uploaded_at"`
}
