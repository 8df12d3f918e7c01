package dispatch

import (
	"context"
	"log"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/extraction"
	"github.com/jonathan/resume-matcher/internal/scoring"
)

// pairParallelism bounds concurrent (user, job) pair computations inside one
// dispatch unit. Pairs within a unit are disjoint keys, so parallel upserts
// are safe under the store's atomic-upsert contract.
const pairParallelism = 4

// runResumeIngested recomputes scores for every job in the catalog against
// the user's latest résumé. Idempotent: re-running with unchanged inputs
// produces identical store contents.
func (d *Dispatcher) runResumeIngested(ctx context.Context, userID uuid.UUID) {
	user, err := d.store.GetUser(ctx, userID)
	if err != nil {
		log.Printf("[dispatch] resume unit: get user %s: %v", userID, err)
		return
	}
	if user == nil {
		// Deleted between enqueue and execution; nothing to do.
		return
	}

	resume, err := d.store.LatestResumeForUser(ctx, userID)
	if err != nil {
		log.Printf("[dispatch] resume unit: latest resume for %s: %v", userID, err)
		return
	}
	if resume == nil {
		return
	}
	text := d.ensureText(ctx, resume)

	jobs, err := d.store.ListJobs(ctx, db.ListJobsOptions{})
	if err != nil {
		log.Printf("[dispatch] resume unit: list jobs: %v", err)
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(pairParallelism)
	for _, job := range jobs {
		job := job
		g.Go(func() error {
			score := scoring.Score(text, job.Title, job.Keywords)
			if err := d.store.UpsertMatchScore(gctx, userID, job.ID, score); err != nil {
				// Skip the pair, keep the batch going.
				log.Printf("[dispatch] resume unit: upsert (%s,%s): %v", userID, job.ID, err)
			}
			return nil
		})
	}
	_ = g.Wait()
}

// runJobCreated computes a score for the new job against every user that has
// a résumé, lazily extracting text where it is still missing.
func (d *Dispatcher) runJobCreated(ctx context.Context, jobID uuid.UUID) {
	job, err := d.store.GetJob(ctx, jobID)
	if err != nil {
		log.Printf("[dispatch] job unit: get job %s: %v", jobID, err)
		return
	}
	if job == nil {
		// Deleted between enqueue and execution; nothing to do.
		return
	}

	resumes, err := d.store.ListLatestResumes(ctx)
	if err != nil {
		log.Printf("[dispatch] job unit: list resumes: %v", err)
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(pairParallelism)
	for _, resume := range resumes {
		resume := resume
		g.Go(func() error {
			text := d.ensureText(gctx, &resume)
			score := scoring.Score(text, job.Title, job.Keywords)
			if err := d.store.UpsertMatchScore(gctx, resume.UserID, job.ID, score); err != nil {
				log.Printf("[dispatch] job unit: upsert (%s,%s): %v", resume.UserID, job.ID, err)
			}
			return nil
		})
	}
	_ = g.Wait()
}

// ensureText returns the résumé's extracted text, parsing the raw document if
// the text is still empty. Extraction is idempotent: text already present is
// returned as is.
func (d *Dispatcher) ensureText(ctx context.Context, resume *db.Resume) string {
	if resume.ExtractedText != "" {
		return resume.ExtractedText
	}

	text := extraction.Truncate(extraction.Extract(resume.RawFile, extraction.Format(resume.FileFormat)))
	if text == "" {
		return ""
	}
	if err := d.store.UpdateResumeText(ctx, resume.ID, text); err != nil {
		// Scoring can still proceed with the in-memory text.
		log.Printf("[dispatch] persist extracted text for resume %s: %v", resume.ID, err)
	}
	resume.ExtractedText = text
	return text
}
