package server

import (
	"context"

	"github.com/google/uuid"

	"github.com/jonathan/resume-matcher/internal/db"
)

// Store is the persistence surface the handlers need. *db.DB satisfies it;
// tests substitute an in-memory fake.
type Store interface {
	CreateUser(ctx context.Context, username, email, passwordHash string) (uuid.UUID, error)
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	SetPremium(ctx context.Context, id uuid.UUID, premium bool) error

	CreateResume(ctx context.Context, userID uuid.UUID, fileName, fileFormat string, rawFile []byte, extractedText string) (uuid.UUID, error)
	LatestResumeForUser(ctx context.Context, userID uuid.UUID) (*db.Resume, error)

	CreateJob(ctx context.Context, title, company, location, description string, keywords []string) (uuid.UUID, error)
	GetJob(ctx context.Context, id uuid.UUID) (*db.Job, error)
	ListJobs(ctx context.Context, opts db.ListJobsOptions) ([]db.Job, error)

	GetMatchScore(ctx context.Context, userID, jobID uuid.UUID) (*int, error)
	GetMatchScores(ctx context.Context, userID uuid.UUID, jobIDs []uuid.UUID) (map[uuid.UUID]int, error)
}

// ScoreDispatcher is the async trigger surface; dispatch.Dispatcher satisfies
// it.
type ScoreDispatcher interface {
	ResumeIngested(userID uuid.UUID)
	JobCreated(jobID uuid.UUID)
}
