package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ListJobsOptions holds optional filters for listing jobs
type ListJobsOptions struct {
	Keyword  string // matches title, company, or description (case-insensitive)
	Location string // matches location (case-insensitive)
	Limit    int
}

// CreateJob creates a new job posting and returns its ID
func (db *DB) CreateJob(ctx context.Context, title, company, location, description string, keywords []string) (uuid.UUID, error) {
	if keywords == nil {
		keywords = []string{}
	}
	keywordsJSON, err := json.Marshal(keywords)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal keywords: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO jobs (title, company, location, description, keywords)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		title, company, location, description, keywordsJSON,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create job: %w", err)
	}
	return id, nil
}

// GetJob retrieves a job posting by ID. Returns nil if not found.
func (db *DB) GetJob(ctx context.Context, id uuid.UUID) (*Job, error) {
	var j Job
	var keywordsJSON []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, title, company, location, description, keywords, created_at
		 FROM jobs WHERE id = $1`,
		id,
	).Scan(&j.ID, &j.Title, &j.Company, &j.Location, &j.Description, &keywordsJSON, &j.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	j.Keywords = decodeKeywords(keywordsJSON)
	return &j, nil
}

// ListJobs lists postings newest-first with optional filters
func (db *DB) ListJobs(ctx context.Context, opts ListJobsOptions) ([]Job, error) {
	query := `SELECT id, title, company, location, description, keywords, created_at
	          FROM jobs WHERE TRUE`
	args := []any{}

	if opts.Keyword != "" {
		args = append(args, "%"+opts.Keyword+"%")
		n := len(args)
		query += fmt.Sprintf(" AND (title ILIKE $%d OR company ILIKE $%d OR description ILIKE $%d)", n, n, n)
	}
	if opts.Location != "" {
		args = append(args, "%"+opts.Location+"%")
		query += fmt.Sprintf(" AND location ILIKE $%d", len(args))
	}

	query += " ORDER BY created_at DESC"
	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		var j Job
		var keywordsJSON []byte
		if err := rows.Scan(&j.ID, &j.Title, &j.Company, &j.Location, &j.Description, &keywordsJSON, &j.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		j.Keywords = decodeKeywords(keywordsJSON)
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate jobs: %w", err)
	}
	return jobs, nil
}
