package server

import (
	"io"
	"net/http"

	"github.com/jonathan/resume-matcher/internal/extraction"
	"github.com/jonathan/resume-matcher/internal/server/middleware"
	"github.com/jonathan/resume-matcher/internal/types"
)

// maxUploadBytes bounds the inline extraction cost of a single upload.
const maxUploadBytes = 16 << 20

// handleUploadResume ingests a résumé: the document is parsed synchronously
// so the caller gets extraction diagnostics in the response, then score
// precomputation is handed to the dispatcher.
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to read upload: "+err.Error())
		return
	}
	if len(content) > maxUploadBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "File exceeds upload limit")
		return
	}

	format := extraction.DetectFormat(header.Filename)
	text := extraction.Extract(content, format)
	ok, issues := extraction.Check(text, format)

	resumeID, err := s.store.CreateResume(r.Context(), userID, header.Filename, string(format), content, extraction.Truncate(text))
	if err != nil {
		// Storage failure on the synchronous upload path is surfaced to the
		// caller, unlike background scoring failures.
		writeError(w, http.StatusInternalServerError, "Failed to store resume: "+err.Error())
		return
	}

	s.dispatcher.ResumeIngested(userID)

	writeJSON(w, http.StatusCreated, types.UploadResponse{
		ResumeID:    resumeID,
		ATSFriendly: ok,
		Issues:      issues,
		Chars:       len(text),
	})
}
