package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Job represents a catalog job posting. Postings are immutable after
// creation.
type Job struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Keywords    []string  `json:"keywords"`
	CreatedAt   time.Time `json:"created_at"`
}

// decodeKeywords parses a JSONB keyword array defensively: non-string entries
// are skipped rather than failing the whole row.
func decodeKeywords(raw []byte) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var entries []any
	if err := json.Unmarshal(raw, &entries); err != nil {
		return []string{}
	}
	keywords := make([]string, 0, len(entries))
	for _, e := range entries {
		if s, ok := e.(string); ok {
			keywords = append(keywords, s)
		}
	}
	return keywords
}
