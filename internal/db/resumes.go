package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateResume stores an uploaded résumé with its already-extracted text and
// returns the new resume ID.
func (db *DB) CreateResume(ctx context.Context, userID uuid.UUID, fileName, fileFormat string, rawFile []byte, extractedText string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO resumes (user_id, file_name, file_format, raw_file, extracted_text)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		userID, fileName, fileFormat, rawFile, extractedText,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create resume: %w", err)
	}
	return id, nil
}

// GetResume retrieves a résumé by ID. Returns nil if not found.
func (db *DB) GetResume(ctx context.Context, id uuid.UUID) (*Resume, error) {
	var r Resume
	err := db.pool.QueryRow(ctx,
		`SELECT id, seq, user_id, file_name, file_format, raw_file, extracted_text, uploaded_at
		 FROM resumes WHERE id = $1`,
		id,
	).Scan(&r.ID, &r.Seq, &r.UserID, &r.FileName, &r.FileFormat, &r.RawFile, &r.ExtractedText, &r.UploadedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return &r, nil
}

// LatestResumeForUser returns the user's authoritative résumé: most recent
// upload wins, insertion order breaks ties. Returns nil if the user has no
// résumé.
func (db *DB) LatestResumeForUser(ctx context.Context, userID uuid.UUID) (*Resume, error) {
	var r Resume
	err := db.pool.QueryRow(ctx,
		`SELECT id, seq, user_id, file_name, file_format, raw_file, extracted_text, uploaded_at
		 FROM resumes WHERE user_id = $1
		 ORDER BY uploaded_at DESC, seq DESC
		 LIMIT 1`,
		userID,
	).Scan(&r.ID, &r.Seq, &r.UserID, &r.FileName, &r.FileFormat, &r.RawFile, &r.ExtractedText, &r.UploadedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest resume: %w", err)
	}
	return &r, nil
}

// ListLatestResumes returns each user's authoritative résumé, one row per
// user that has uploaded at least one.
func (db *DB) ListLatestResumes(ctx context.Context) ([]Resume, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT DISTINCT ON (user_id)
		        id, seq, user_id, file_name, file_format, raw_file, extracted_text, uploaded_at
		 FROM resumes
		 ORDER BY user_id, uploaded_at DESC, seq DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list latest resumes: %w", err)
	}
	defer rows.Close()

	var resumes []Resume
	for rows.Next() {
		var r Resume
		if err := rows.Scan(&r.ID, &r.Seq, &r.UserID, &r.FileName, &r.FileFormat, &r.RawFile, &r.ExtractedText, &r.UploadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		resumes = append(resumes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate resumes: %w", err)
	}
	return resumes, nil
}

// UpdateResumeText persists lazily-extracted text for a résumé.
func (db *DB) UpdateResumeText(ctx context.Context, id uuid.UUID, text string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE resumes SET extracted_text = $1 WHERE id = $2`,
		text, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update resume text: %w", err)
	}
	return nil
}
