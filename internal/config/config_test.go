package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("MONGO_DATABASE", "clinic")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("ADMIN_EMAIL", "admin@clinic.test")
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$12$fakehash")
	t.Setenv("SMTP_PORT", "")
	t.Setenv("SESSION_TTL", "")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "clinic_session", cfg.SessionCookie)
	assert.Equal(t, 587, cfg.SMTPPort)
}

func TestLoadParsesSMTPPort(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SMTP_PORT", "2525")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 2525, cfg.SMTPPort)
}

func TestLoadRejectsMalformedSMTPPort(t *testing.T) {
	setRequiredEnv(t)
	// Trailing garbage must be an error, not silently truncated.
	t.Setenv("SMTP_PORT", "587x")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SMTP_PORT")
}

func TestLoadMissingRequiredValue(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ADMIN_EMAIL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADMIN_EMAIL")
}
