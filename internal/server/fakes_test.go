package server

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/db"
)

// fakeStore is an in-memory Store for handler tests.
type fakeStore struct {
	mu      sync.Mutex
	users   map[uuid.UUID]*db.User
	resumes []db.Resume
	jobs    []db.Job
	scores  map[string]int
	nextSeq int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:  make(map[uuid.UUID]*db.User),
		scores: make(map[string]int),
	}
}

func scoreKey(userID, jobID uuid.UUID) string {
	return userID.String() + "/" + jobID.String()
}

func (f *fakeStore) CreateUser(_ context.Context, username, email, passwordHash string) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.New()
	f.users[id] = &db.User{
		ID:           id,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	return id, nil
}

func (f *fakeStore) GetUser(_ context.Context, id uuid.UUID) (*db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CheckEmailExists(_ context.Context, email string) (bool, error) {
	u, _ := f.GetUserByEmail(context.Background(), email)
	return u != nil, nil
}

func (f *fakeStore) SetPremium(_ context.Context, id uuid.UUID, premium bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return fmt.Errorf("user not found: %s", id)
	}
	u.IsPremium = premium
	return nil
}

func (f *fakeStore) CreateResume(_ context.Context, userID uuid.UUID, fileName, fileFormat string, rawFile []byte, extractedText string) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextSeq++
	r := db.Resume{
		ID:            uuid.New(),
		Seq:           f.nextSeq,
		UserID:        userID,
		FileName:      fileName,
		FileFormat:    fileFormat,
		RawFile:       rawFile,
		ExtractedText: extractedText,
		UploadedAt:    time.Now(),
	}
	f.resumes = append(f.resumes, r)
	return r.ID, nil
}

func (f *fakeStore) LatestResumeForUser(_ context.Context, userID uuid.UUID) (*db.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var latest *db.Resume
	for i := range f.resumes {
		r := &f.resumes[i]
		if r.UserID != userID {
			continue
		}
		if latest == nil || r.Seq > latest.Seq {
			latest = r
		}
	}
	if latest == nil {
		return nil, nil
	}
	copied := *latest
	return &copied, nil
}

func (f *fakeStore) CreateJob(_ context.Context, title, company, location, description string, keywords []string) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if keywords == nil {
		keywords = []string{}
	}
	j := db.Job{
		ID:          uuid.New(),
		Title:       title,
		Company:     company,
		Location:    location,
		Description: description,
		Keywords:    keywords,
		CreatedAt:   time.Now(),
	}
	f.jobs = append(f.jobs, j)
	return j.ID, nil
}

func (f *fakeStore) GetJob(_ context.Context, id uuid.UUID) (*db.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, j := range f.jobs {
		if j.ID == id {
			copied := j
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ListJobs(_ context.Context, opts db.ListJobsOptions) ([]db.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db.Job
	// Newest first, same ordering the real store uses.
	for i := len(f.jobs) - 1; i >= 0; i-- {
		j := f.jobs[i]
		if opts.Keyword != "" {
			kw := strings.ToLower(opts.Keyword)
			if !strings.Contains(strings.ToLower(j.Title), kw) &&
				!strings.Contains(strings.ToLower(j.Company), kw) &&
				!strings.Contains(strings.ToLower(j.Description), kw) {
				continue
			}
		}
		if opts.Location != "" && !strings.Contains(strings.ToLower(j.Location), strings.ToLower(opts.Location)) {
			continue
		}
		out = append(out, j)
		if opts.Limit > 0 && len(out) >= opts.Limit {
			break
		}
	}
	return out, nil
}

func (f *fakeStore) GetMatchScore(_ context.Context, userID, jobID uuid.UUID) (*int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	score, ok := f.scores[scoreKey(userID, jobID)]
	if !ok {
		return nil, nil
	}
	return &score, nil
}

func (f *fakeStore) GetMatchScores(_ context.Context, userID uuid.UUID, jobIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[uuid.UUID]int)
	for _, jobID := range jobIDs {
		if score, ok := f.scores[scoreKey(userID, jobID)]; ok {
			out[jobID] = score
		}
	}
	return out, nil
}

func (f *fakeStore) setScore(userID, jobID uuid.UUID, score int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scores[scoreKey(userID, jobID)] = score
}

// fakeDispatcher records trigger calls instead of scoring.
type fakeDispatcher struct {
	mu           sync.Mutex
	resumeEvents []uuid.UUID
	jobEvents    []uuid.UUID
}

func (d *fakeDispatcher) ResumeIngested(userID uuid.UUID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.resumeEvents = append(d.resumeEvents, userID)
}

func (d *fakeDispatcher) JobCreated(jobID uuid.UUID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.jobEvents = append(d.jobEvents, jobID)
}

// testServer bundles the handler under test with its collaborators.
type testServer struct {
	handler    http.Handler
	server     *Server
	store      *fakeStore
	dispatcher *fakeDispatcher
	jwtService *JWTService
}

func newTestServer(t *testing.T, showMatchToFree bool) *testServer {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret-key-for-handlers")
	t.Setenv("BCRYPT_COST", "10")

	passwordConfig, err := config.NewPasswordConfig()
	require.NoError(t, err)
	jwtConfig, err := config.NewJWTConfig()
	require.NoError(t, err)
	jwtService := NewJWTService(jwtConfig)

	store := newFakeStore()
	dispatcher := &fakeDispatcher{}

	s := &Server{
		store:           store,
		dispatcher:      dispatcher,
		showMatchToFree: showMatchToFree,
	}
	s.userService = NewUserService(store, passwordConfig)
	s.authHandler = NewAuthHandler(s.userService, jwtService)

	return &testServer{
		handler:    s.routes(jwtService),
		server:     s,
		store:      store,
		dispatcher: dispatcher,
		jwtService: jwtService,
	}
}

// addUser inserts a user directly and returns its ID and a valid token.
func (ts *testServer) addUser(t *testing.T, premium bool) (uuid.UUID, string) {
	t.Helper()
	id, err := ts.store.CreateUser(context.Background(), "tester", uuid.NewString()+"@example.com", "unused-hash")
	require.NoError(t, err)
	if premium {
		require.NoError(t, ts.store.SetPremium(context.Background(), id, true))
	}
	token, err := ts.jwtService.GenerateToken(id)
	require.NoError(t, err)
	return id, token
}

// buildDOCX assembles a minimal .docx file with one paragraph per entry.
func buildDOCX(t *testing.T, paragraphs ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)

	var doc bytes.Buffer
	doc.WriteString(`<?xml version="1.0"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		doc.WriteString(`<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`)
	}
	doc.WriteString(`</w:body></w:document>`)

	_, err = w.Write(doc.Bytes())
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// multipartUpload builds a multipart body with a single file field.
func multipartUpload(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}
