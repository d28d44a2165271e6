package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, "appointment.events", cfg.RabbitMQ.Queue)
	assert.Equal(t, 10, cfg.RateLimit.Requests)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Empty(t, cfg.Origins())
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://x@db/gym")
	t.Setenv("RATELIMIT_WINDOW", "30s")
	t.Setenv("SERVER_ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, "postgres://x@db/gym", cfg.Database.URL)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Origins())
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	yaml := "gym:\n  name: Riverside\n  timezone: Europe/Berlin\ns3:\n  bucket: photos\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "Riverside", cfg.Gym.Name)
	assert.Equal(t, "Europe/Berlin", cfg.Gym.Timezone)
	assert.Equal(t, "photos", cfg.S3.Bucket)
	assert.Equal(t, "us-east-1", cfg.S3.Region)
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [unclosed"), 0o600))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestLoadRefusesDefaultSecretOutsideDevelopment(t *testing.T) {
	t.Setenv("SERVER_ENV", "production")

	_, err := Load(t.TempDir())
	assert.ErrorIs(t, err, ErrInsecureSecret)

	t.Setenv("JWT_SECRET", " ")
	_, err = Load(t.TempDir())
	assert.ErrorIs(t, err, ErrInsecureSecret)

	t.Setenv("JWT_SECRET", "s3cr3t-from-vault")
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "s3cr3t-from-vault", cfg.JWT.Secret)
}

func TestLoadAllowsDefaultSecretInDevelopment(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, DefaultJWTSecret, cfg.JWT.Secret)
}
