package ratelimit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllow_WithinBurst(t *testing.T) {
	l := NewLimiter(Config{Enabled: true, RequestsPerMinute: 60, Burst: 3})
	defer l.Stop()

	for i := 0; i < 3; i++ {
		allowed, _ := l.Allow("client-a")
		assert.True(t, allowed, "request %d", i)
	}

	allowed, info := l.Allow("client-a")
	assert.False(t, allowed)
	assert.Zero(t, info.Remaining)
}

func TestAllow_ClientsAreIndependent(t *testing.T) {
	l := NewLimiter(Config{Enabled: true, RequestsPerMinute: 60, Burst: 1})
	defer l.Stop()

	allowed, _ := l.Allow("client-a")
	assert.True(t, allowed)
	allowed, _ = l.Allow("client-a")
	assert.False(t, allowed)

	allowed, _ = l.Allow("client-b")
	assert.True(t, allowed)
}

func TestAllow_DisabledPassesEverything(t *testing.T) {
	l := NewLimiter(Config{Enabled: false, RequestsPerMinute: 1, Burst: 1})
	defer l.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := l.Allow("client-a")
		assert.True(t, allowed)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "")
	t.Setenv("RATE_LIMIT_RPM", "")
	t.Setenv("RATE_LIMIT_BURST", "")

	cfg := LoadConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 120, cfg.RequestsPerMinute)
	assert.Equal(t, 30, cfg.Burst)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("RATE_LIMIT_RPM", "10")
	t.Setenv("RATE_LIMIT_BURST", "5")

	cfg := LoadConfig()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, 10, cfg.RequestsPerMinute)
	assert.Equal(t, 5, cfg.Burst)
}
