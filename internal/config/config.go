// Package config provides environment-driven configuration for the match
// scoring service.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// AppConfig holds service-level configuration read from the environment.
type AppConfig struct {
	DatabaseURL string
	Port        int

	// Dispatcher sizing
	MatchWorkers   int
	MatchQueueSize int

	// ShowMatchToFree reveals real scores to free-tier viewers when set.
	// It is passed explicitly into the visibility gate, never read there.
	ShowMatchToFree bool

	// WebhookSecret authenticates payment webhook deliveries. When empty the
	// check is skipped, which is only acceptable for local bring-up.
	WebhookSecret string
}

// NewAppConfig reads DATABASE_URL (required), PORT (default 8080),
// MATCH_WORKERS (default 4), MATCH_QUEUE_SIZE (default 256),
// SHOW_MATCH_TO_FREE (default false), and WEBHOOK_SECRET (optional).
func NewAppConfig() (*AppConfig, error) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required but not set")
	}

	port, err := envInt("PORT", 8080)
	if err != nil {
		return nil, err
	}
	workers, err := envInt("MATCH_WORKERS", 4)
	if err != nil {
		return nil, err
	}
	queueSize, err := envInt("MATCH_QUEUE_SIZE", 256)
	if err != nil {
		return nil, err
	}

	config := &AppConfig{
		DatabaseURL:     databaseURL,
		Port:            port,
		MatchWorkers:    workers,
		MatchQueueSize:  queueSize,
		ShowMatchToFree: envBool("SHOW_MATCH_TO_FREE"),
		WebhookSecret:   envString("WEBHOOK_SECRET", ""),
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize validates the configuration.
func (c *AppConfig) normalize() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	if c.MatchWorkers < 1 {
		return fmt.Errorf("MATCH_WORKERS must be at least 1, got: %d", c.MatchWorkers)
	}
	if c.MatchQueueSize < 1 {
		return fmt.Errorf("MATCH_QUEUE_SIZE must be at least 1, got: %d", c.MatchQueueSize)
	}
	return nil
}

func envInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", key, err)
	}
	return v, nil
}

func envString(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}
