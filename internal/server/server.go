// Package server provides the HTTP REST API for the match scoring service.
package server

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/dispatch"
	"github.com/jonathan/resume-matcher/internal/server/middleware"
	"github.com/jonathan/resume-matcher/internal/server/ratelimit"
)

// Server represents the HTTP server
type Server struct {
	httpServer      *http.Server
	database        *db.DB
	store           Store
	dispatcher      ScoreDispatcher
	showMatchToFree bool
	webhookSecret   string
	rateLimiter     *ratelimit.Limiter
	userService     *UserService
	authHandler     *AuthHandler
	stopDispatcher  func()
}

// New creates a new server instance
func New(cfg *config.AppConfig) (*Server, error) {
	// Connect to database
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.EnsureSchema(context.Background()); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	// Background score precomputation
	dispatcher := dispatch.New(database, cfg.MatchWorkers, cfg.MatchQueueSize)
	dispatcher.Start(context.Background())

	s := &Server{
		database:        database,
		store:           database,
		dispatcher:      dispatcher,
		showMatchToFree: cfg.ShowMatchToFree,
		webhookSecret:   cfg.WebhookSecret,
		stopDispatcher:  dispatcher.Stop,
	}

	// Initialize rate limiter
	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	// Initialize authentication services
	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(s.store, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	jwtService := NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, jwtService)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes(jwtService)))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the route table.
func (s *Server) routes(jwtService *JWTService) *http.ServeMux {
	requireAuth := middleware.RequireAuth(jwtService.AsTokenValidator())
	optionalAuth := middleware.OptionalAuth(jwtService.AsTokenValidator())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Accounts
	mux.HandleFunc("POST /auth/register", s.authHandler.handleRegister)
	mux.HandleFunc("POST /auth/login", s.authHandler.handleLogin)
	mux.Handle("POST /upgrade", requireAuth(http.HandlerFunc(s.handleUpgrade)))
	mux.HandleFunc("POST /billing/webhook", s.handlePaymentWebhook)

	// Résumés
	mux.Handle("POST /resumes", requireAuth(http.HandlerFunc(s.handleUploadResume)))

	// Job catalog; listings are visible to everyone, scores depend on tier
	mux.Handle("POST /jobs", requireAuth(http.HandlerFunc(s.handleCreateJob)))
	mux.Handle("GET /jobs", optionalAuth(http.HandlerFunc(s.handleListJobs)))
	mux.Handle("GET /jobs/{id}", optionalAuth(http.HandlerFunc(s.handleGetJob)))

	return mux
}

// handleHealth reports service liveness
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "status": "healthy"})
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Drain in-flight dispatch units before closing the store.
	if s.stopDispatcher != nil {
		s.stopDispatcher()
	}
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	s.database.Close()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID)
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		if !allowed {
			writeError(w, http.StatusTooManyRequests, "Rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// extractClientID identifies the client for rate limiting, preferring the
// forwarded address set by a proxy.
func (s *Server) extractClientID(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
