package server

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/google/uuid"

	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/scoring"
	"github.com/jonathan/resume-matcher/internal/server/middleware"
	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/jonathan/resume-matcher/internal/visibility"
)

// jobListCap bounds a single listing response.
const jobListCap = 200

// handleCreateJob publishes a posting and triggers score precomputation for
// every résumé-holding user.
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var req types.CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		verr := &ErrValidation{Message: err.Error()}
		writeError(w, HTTPStatus(verr), verr.Error())
		return
	}

	jobID, err := s.store.CreateJob(r.Context(), req.Title, req.Company, req.Location, req.Description, req.Keywords)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create job: "+err.Error())
		return
	}

	// On JobCreated(jobID), enqueue a dispatch unit.
	s.dispatcher.JobCreated(jobID)

	job, err := s.store.GetJob(r.Context(), jobID)
	if err != nil || job == nil {
		writeJSON(w, http.StatusCreated, map[string]any{"id": jobID})
		return
	}
	writeJSON(w, http.StatusCreated, job)
}

// handleListJobs lists postings newest-first, annotated with the viewer's
// gated match data. Anonymous viewers get the catalog without scores.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	opts := db.ListJobsOptions{
		Keyword:  r.URL.Query().Get("keyword"),
		Location: r.URL.Query().Get("location"),
		Limit:    parseQueryInt(r, "limit", jobListCap, jobListCap),
	}
	jobs, err := s.store.ListJobs(ctx, opts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list jobs: "+err.Error())
		return
	}

	user := s.viewerUser(r)
	viewer := s.viewerFor(user)

	// Stored-score fast path, one query for the whole page.
	stored := map[uuid.UUID]int{}
	if user != nil && (user.IsPremium || s.showMatchToFree) {
		jobIDs := make([]uuid.UUID, len(jobs))
		for i, j := range jobs {
			jobIDs[i] = j.ID
		}
		stored, err = s.store.GetMatchScores(ctx, user.ID, jobIDs)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to load scores: "+err.Error())
			return
		}
	}

	// On-demand fallback input when nothing is precomputed yet. The fallback
	// never writes back; the dispatcher owns the cache.
	resumeText := ""
	if user != nil && len(stored) == 0 {
		if resume, err := s.store.LatestResumeForUser(ctx, user.ID); err == nil && resume != nil {
			resumeText = resume.ExtractedText
		}
	}

	items := make([]types.JobView, 0, len(jobs))
	for _, job := range jobs {
		view := jobView(job)

		if score, ok := stored[job.ID]; ok {
			score := score
			view.MatchScore = &score
		} else if resumeText != "" {
			score := scoring.Score(resumeText, job.Title, job.Keywords)
			view.MatchScore = &score
		}
		if view.MatchScore != nil && resumeText != "" {
			view.MatchedKeywords = scoring.MatchedKeywords(resumeText, job.Keywords)
		}

		applyGate(viewer, &view)
		items = append(items, view)
	}

	if r.URL.Query().Get("sort") == "match" {
		if user == nil || !user.IsPremium {
			writeJSON(w, http.StatusOK, map[string]any{
				"warning": "Premium required for sort=match",
				"results": items,
			})
			return
		}
		sort.SliceStable(items, func(i, j int) bool {
			return scoreOrZero(items[i].MatchScore) > scoreOrZero(items[j].MatchScore)
		})
	}

	writeJSON(w, http.StatusOK, items)
}

// handleGetJob returns one posting with the viewer's gated match data.
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	job, err := s.store.GetJob(ctx, jobID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get job: "+err.Error())
		return
	}
	if job == nil {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	view := jobView(*job)
	user := s.viewerUser(r)

	if user != nil {
		resumeText := ""
		if resume, err := s.store.LatestResumeForUser(ctx, user.ID); err == nil && resume != nil {
			resumeText = resume.ExtractedText
		}

		stored, err := s.store.GetMatchScore(ctx, user.ID, jobID)
		if err == nil && stored != nil {
			view.MatchScore = stored
		} else if resumeText != "" {
			// Dispatch has not run yet; compute in the read path without
			// writing back.
			score := scoring.Score(resumeText, job.Title, job.Keywords)
			view.MatchScore = &score
		}
		if view.MatchScore != nil && resumeText != "" {
			view.MatchedKeywords = scoring.MatchedKeywords(resumeText, job.Keywords)
		}
	}

	applyGate(s.viewerFor(user), &view)
	writeJSON(w, http.StatusOK, view)
}

// viewerUser resolves the authenticated user, or nil for anonymous requests.
func (s *Server) viewerUser(r *http.Request) *db.User {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		return nil
	}
	user, err := s.store.GetUser(r.Context(), userID)
	if err != nil {
		return nil
	}
	return user
}

func (s *Server) viewerFor(user *db.User) visibility.Viewer {
	return visibility.Viewer{
		Premium:         user != nil && user.IsPremium,
		ShowMatchToFree: s.showMatchToFree,
	}
}

func jobView(job db.Job) types.JobView {
	return types.JobView{
		ID:              job.ID,
		Title:           job.Title,
		Company:         job.Company,
		Location:        job.Location,
		Description:     job.Description,
		Keywords:        job.Keywords,
		CreatedAt:       job.CreatedAt,
		MatchedKeywords: []string{},
	}
}

// applyGate routes the view's match fields through the visibility gate.
func applyGate(viewer visibility.Viewer, view *types.JobView) {
	gated := visibility.View{
		MatchScore:      view.MatchScore,
		MatchedKeywords: view.MatchedKeywords,
	}
	visibility.Apply(viewer, &gated)
	view.MatchScore = gated.MatchScore
	view.MatchedKeywords = gated.MatchedKeywords
	view.Locked = gated.Locked
	view.ScoreHint = gated.ScoreHint
}

func scoreOrZero(score *int) int {
	if score == nil {
		return 0
	}
	return *score
}
