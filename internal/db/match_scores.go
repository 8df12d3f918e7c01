package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UpsertMatchScore creates or overwrites the cached score for a (user, job)
// pair. The ON CONFLICT clause makes the write atomic per key, so concurrent
// dispatch workers resolve to last write wins without lost updates.
func (db *DB) UpsertMatchScore(ctx context.Context, userID, jobID uuid.UUID, percentage int) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO match_scores (user_id, job_id, score_percentage, updated_at)
		 VALUES ($1, $2, $3, NOW())
		 ON CONFLICT (user_id, job_id) DO UPDATE SET score_percentage = $3, updated_at = NOW()`,
		userID, jobID, percentage,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert match score: %w", err)
	}
	return nil
}

// GetMatchScore retrieves the cached score for a (user, job) pair. A cache
// miss returns (nil, nil), never a zero score, since 0 is a valid computed
// value.
func (db *DB) GetMatchScore(ctx context.Context, userID, jobID uuid.UUID) (*int, error) {
	var score int
	err := db.pool.QueryRow(ctx,
		`SELECT score_percentage FROM match_scores WHERE user_id = $1 AND job_id = $2`,
		userID, jobID,
	).Scan(&score)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get match score: %w", err)
	}
	return &score, nil
}

// GetMatchScores retrieves cached scores for a user across many jobs in one
// query. Jobs with no cached score are absent from the returned map.
func (db *DB) GetMatchScores(ctx context.Context, userID uuid.UUID, jobIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	scores := make(map[uuid.UUID]int)
	if len(jobIDs) == 0 {
		return scores, nil
	}

	rows, err := db.pool.Query(ctx,
		`SELECT job_id, score_percentage FROM match_scores
		 WHERE user_id = $1 AND job_id = ANY($2)`,
		userID, jobIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get match scores: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var jobID uuid.UUID
		var score int
		if err := rows.Scan(&jobID, &score); err != nil {
			return nil, fmt.Errorf("failed to scan match score: %w", err)
		}
		scores[jobID] = score
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate match scores: %w", err)
	}
	return scores, nil
}
