// Package dispatch decouples match-score computation from the requests that
// trigger it. Mutations enqueue a unit of work keyed by the entity id and
// return immediately; a pool of background workers processes each unit to
// completion.
package dispatch

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/jonathan/resume-matcher/internal/db"
)

// Store is the persistence surface the dispatcher needs. *db.DB satisfies it;
// tests substitute an in-memory fake.
type Store interface {
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	GetJob(ctx context.Context, id uuid.UUID) (*db.Job, error)
	ListJobs(ctx context.Context, opts db.ListJobsOptions) ([]db.Job, error)
	LatestResumeForUser(ctx context.Context, userID uuid.UUID) (*db.Resume, error)
	ListLatestResumes(ctx context.Context) ([]db.Resume, error)
	UpdateResumeText(ctx context.Context, id uuid.UUID, text string) error
	UpsertMatchScore(ctx context.Context, userID, jobID uuid.UUID, percentage int) error
}

type taskKind int

const (
	taskResumeIngested taskKind = iota
	taskJobCreated
)

// task is one dispatch unit, keyed by the entity that changed.
type task struct {
	kind taskKind
	id   uuid.UUID
}

// Dispatcher runs a fixed pool of workers draining a buffered task queue.
type Dispatcher struct {
	store   Store
	tasks   chan task
	workers int

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// New creates a Dispatcher with the given worker count and queue capacity.
func New(store Store, workers, queueSize int) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 64
	}
	return &Dispatcher{
		store:   store,
		tasks:   make(chan task, queueSize),
		workers: workers,
	}
}

// Start launches the worker pool. Workers run until Stop is called.
func (d *Dispatcher) Start(ctx context.Context) {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			for t := range d.tasks {
				d.run(ctx, t)
			}
		}()
	}
}

// Stop closes the intake and waits for in-flight units to finish.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.tasks)
	d.mu.Unlock()

	d.wg.Wait()
}

// ResumeIngested schedules score recomputation for every job against the
// user's latest résumé. Fire-and-forget: it returns as soon as the unit is
// queued.
func (d *Dispatcher) ResumeIngested(userID uuid.UUID) {
	d.enqueue(task{kind: taskResumeIngested, id: userID})
}

// JobCreated schedules score computation for the new job against every user
// with a résumé.
func (d *Dispatcher) JobCreated(jobID uuid.UUID) {
	d.enqueue(task{kind: taskJobCreated, id: jobID})
}

// enqueue holds the read lock across the send so Stop cannot close the
// channel out from under a blocked sender.
func (d *Dispatcher) enqueue(t task) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		log.Printf("[dispatch] dropping task after shutdown")
		return
	}
	d.tasks <- t
}

func (d *Dispatcher) run(ctx context.Context, t task) {
	switch t.kind {
	case taskResumeIngested:
		d.runResumeIngested(ctx, t.id)
	case taskJobCreated:
		d.runJobCreated(ctx, t.id)
	}
}
