package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brgykonek/brgykonek-backend/internal/apperrors"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 7*24*time.Hour, cfg.JWTExpiresIn)
	assert.Equal(t, 587, cfg.EmailPort)
	assert.NotEmpty(t, cfg.AllowedOrigins)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "supersecret")
	t.Setenv("JWT_EXPIRES_IN", "24h")
	t.Setenv("ALLOWED_ORIGINS", "https://www.brgykonek.ph, https://brgykonek.ph")
	t.Setenv("ENV", "Production")

	cfg := Load()

	assert.Equal(t, "supersecret", cfg.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiresIn)
	assert.Equal(t, []string{"https://www.brgykonek.ph", "https://brgykonek.ph"}, cfg.AllowedOrigins)
	assert.True(t, cfg.IsProduction())
}

func TestValidate(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	cfg := Load()

	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindSigningKeyMissing))

	cfg.JWTSecret = "secret"
	assert.NoError(t, cfg.Validate())
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, time.Hour, parseDuration("1h", time.Minute))
	assert.Equal(t, time.Minute, parseDuration("garbage", time.Minute))
	assert.Equal(t, time.Minute, parseDuration("-5m", time.Minute))
}
