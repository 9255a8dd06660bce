package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 24, cfg.JWTExpiry)
	assert.Equal(t, "./storage", cfg.StoragePath)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("API_PORT", "9090")
	t.Setenv("JWT_EXPIRY", "72")
	t.Setenv("SMTP_USE_TLS", "true")
	t.Setenv("SSO_BASE_URL", "https://sso.example.com")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 72, cfg.JWTExpiry)
	assert.True(t, cfg.SMTPUseTLS)
	assert.Equal(t, "https://sso.example.com", cfg.SSOBaseURL)
}

func TestLoadIgnoresBadInt(t *testing.T) {
	t.Setenv("JWT_EXPIRY", "not-a-number")

	cfg := Load()
	assert.Equal(t, 24, cfg.JWTExpiry)
}
