package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/giglance")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRES_MIN", "120")
	t.Setenv("APP_PORT", "9090")

	cfg := Load()

	assert.Equal(t, "postgres://localhost/giglance", cfg.DBDSN)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, 120, cfg.JWTExpiresMin)
	assert.Equal(t, "9090", cfg.AppPort)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/giglance")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRES_MIN", "")
	t.Setenv("APP_PORT", "")
	t.Setenv("FRONTEND_BASE_URL", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, 10080, cfg.JWTExpiresMin)
	assert.Equal(t, "http://localhost:5173", cfg.FrontendBaseURL)
}
