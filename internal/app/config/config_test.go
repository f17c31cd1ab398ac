package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("INTERNAL_TOKEN", "secret")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_ADDR", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 1080, cfg.ImageWidth)
	assert.Equal(t, "https://api.telegram.org", cfg.TelegramBaseURL)
	assert.False(t, cfg.JobsEnabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("INTERNAL_TOKEN", "secret")
	t.Setenv("DATABASE_URL", "postgres://localhost/app")
	t.Setenv("JWT_SECRET", "jwt")
	t.Setenv("IMAGE_WIDTH", "720")
	t.Setenv("REDIS_ADDR", "127.0.0.1:6379")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 720, cfg.ImageWidth)
	assert.True(t, cfg.JobsEnabled())
}

func TestLoadRequiresToken(t *testing.T) {
	t.Setenv("INTERNAL_TOKEN", "")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRequiresJWTSecretWithDatabase(t *testing.T) {
	t.Setenv("INTERNAL_TOKEN", "secret")
	t.Setenv("DATABASE_URL", "postgres://localhost/app")
	t.Setenv("JWT_SECRET", "")
	_, err := Load()
	assert.Error(t, err)
}
