package ratelimit

import (
	"os"
	"strconv"
)

// LoadConfig reads limiter settings from the environment: RATE_LIMIT_ENABLED
// (default true), RATE_LIMIT_RPM (default 120), RATE_LIMIT_BURST (default 30).
func LoadConfig() Config {
	cfg := Config{
		Enabled:           true,
		RequestsPerMinute: 120,
		Burst:             30,
	}

	if raw := os.Getenv("RATE_LIMIT_ENABLED"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			cfg.Enabled = v
		}
	}
	if raw := os.Getenv("RATE_LIMIT_RPM"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			cfg.RequestsPerMinute = v
		}
	}
	if raw := os.Getenv("RATE_LIMIT_BURST"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			cfg.Burst = v
		}
	}
	return cfg
}
