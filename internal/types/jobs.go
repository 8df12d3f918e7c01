package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CreateJobRequest represents the catalog request to publish a job posting.
type CreateJobRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=200"`
	Company     string   `json:"company" validate:"required,min=1,max=200"`
	Location    string   `json:"location" validate:"required,min=1,max=200"`
	Description string   `json:"description" validate:"required"`
	Keywords    []string `json:"keywords"`
}

// JobView is a job posting annotated with the viewer's gated match data.
type JobView struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Company         string    `json:"company"`
	Location        string    `json:"location"`
	Description     string    `json:"description"`
	Keywords        []string  `json:"keywords"`
	CreatedAt       time.Time `json:"created_at"`
	MatchScore      *int      `json:"match_score"`
	MatchedKeywords []string  `json:"matched_keywords"`
	Locked          bool      `json:"locked"`
	ScoreHint       *int      `json:"score_hint"`
}

// UploadResponse is returned synchronously after a résumé upload.
type UploadResponse struct {
	ResumeID    uuid.UUID `json:"resume_id"`
	ATSFriendly bool      `json:"ats_friendly"`
	Issues      []string  `json:"issues"`
	Chars       int       `json:"chars"`
}

// Validate validates the CreateJobRequest using the validator.
func (r *CreateJobRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
