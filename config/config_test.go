package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":80", cfg.HTTPAddr)
	assert.Equal(t, 10*time.Second, cfg.UserAPITimeout)
	assert.False(t, cfg.ServeAccountAPI)
	assert.Equal(t, "root", cfg.DB.User)
	assert.Equal(t, "signup-go", cfg.DB.Name)
	assert.Equal(t, 30*time.Minute, cfg.ScreenTTL)
	assert.Equal(t, "ko", cfg.Locale)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":8080")
	t.Setenv("USER_API_URL", "http://accounts.internal")
	t.Setenv("SERVE_ACCOUNT_API", "true")
	t.Setenv("DB_ADDR", "db:3306")
	t.Setenv("SCREEN_TTL", "5m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "http://accounts.internal", cfg.UserAPIURL)
	assert.True(t, cfg.ServeAccountAPI)
	assert.Equal(t, "db:3306", cfg.DB.Addr)
	assert.Equal(t, 5*time.Minute, cfg.ScreenTTL)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("USER_API_TIMEOUT", "soon")

	_, err := Load()
	assert.Error(t, err)
}
