// Package ratelimit provides per-client token-bucket rate limiting for the
// HTTP API.
package ratelimit

import (
	"sync"
	"time"
)

// Config controls limiter behavior.
type Config struct {
	Enabled           bool
	RequestsPerMinute int
	Burst             int
}

// Info describes the limiter state returned with each decision, for response
// headers.
type Info struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
}

type bucket struct {
	tokens   float64
	lastSeen time.Time
}

// Limiter is a token-bucket rate limiter keyed by client identifier.
type Limiter struct {
	cfg     Config
	mu      sync.Mutex
	buckets map[string]*bucket
	done    chan struct{}
}

// NewLimiter creates a limiter and starts its idle-bucket cleanup loop.
func NewLimiter(cfg Config) *Limiter {
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = 120
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 30
	}
	l := &Limiter{
		cfg:     cfg,
		buckets: make(map[string]*bucket),
		done:    make(chan struct{}),
	}
	go l.cleanupLoop()
	return l
}

// Allow reports whether the client may proceed and the limiter state to
// advertise.
func (l *Limiter) Allow(clientID string) (bool, Info) {
	if !l.cfg.Enabled {
		return true, Info{Limit: l.cfg.RequestsPerMinute, Remaining: l.cfg.RequestsPerMinute}
	}

	now := time.Now()
	refillPerSec := float64(l.cfg.RequestsPerMinute) / 60.0

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[clientID]
	if !ok {
		b = &bucket{tokens: float64(l.cfg.Burst), lastSeen: now}
		l.buckets[clientID] = b
	} else {
		b.tokens += now.Sub(b.lastSeen).Seconds() * refillPerSec
		if b.tokens > float64(l.cfg.Burst) {
			b.tokens = float64(l.cfg.Burst)
		}
		b.lastSeen = now
	}

	info := Info{
		Limit:   l.cfg.RequestsPerMinute,
		ResetAt: now.Add(time.Duration((1.0 / refillPerSec) * float64(time.Second))),
	}

	if b.tokens < 1 {
		info.Remaining = 0
		return false, info
	}
	b.tokens--
	info.Remaining = int(b.tokens)
	return true, info
}

// Stop terminates the cleanup goroutine.
func (l *Limiter) Stop() {
	close(l.done)
}

// cleanupLoop evicts buckets idle long enough to be fully refilled.
func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-5 * time.Minute)
			l.mu.Lock()
			for id, b := range l.buckets {
				if b.lastSeen.Before(cutoff) {
					delete(l.buckets, id)
				}
			}
			l.mu.Unlock()
		}
	}
}
