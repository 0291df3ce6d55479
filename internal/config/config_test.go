package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("COURIER_RATE", "")
	t.Setenv("SESSION_TIMEOUT", "")

	cfg := Load()
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "14", cfg.CourierRate)
	assert.Equal(t, 3600, cfg.SessionTimeout)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("COURIER_RATE", "15.5")
	t.Setenv("SESSION_TIMEOUT", "60")
	t.Setenv("CACHE_TTL", "not-a-number")
	t.Setenv("TIMEZONE", "UTC")

	cfg := Load()
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "15.5", cfg.CourierRate)
	assert.Equal(t, 60, cfg.SessionTimeout)
	assert.Equal(t, 1800, cfg.CacheTTL)
	assert.Equal(t, "UTC", cfg.Timezone)
}
