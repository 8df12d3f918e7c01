package db

import (
	"time"

	"github.com/google/uuid"
)

// MatchScore is the cached compatibility percentage for one (user, job) pair.
// At most one row exists per pair; only the latest value is kept.
type MatchScore struct {
	UserID          uuid.UUID `json:"user_id"`
	JobID           uuid.UUID `json:"job_id"`
	ScorePercentage int       `json:"score_percentage"`
	UpdatedAt       time.Time `json:"updated_at"`
}
