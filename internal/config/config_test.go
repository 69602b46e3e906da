package config

import (
	"os"
	"path"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigs(t *testing.T, public, private string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(path.Join(dir, "public.yaml"), []byte(public), 0o644))
	require.NoError(t, os.WriteFile(path.Join(dir, "private.yaml"), []byte(private), 0o644))
	return dir
}

func TestMustLoad(t *testing.T) {
	dir := writeConfigs(t, `
jwt_ttl: 30m
refresh_ttl: 48h
base_url: "https://jobs.example.com"
jobs_per_page: 12
secure_cookies: true
allowed_origins:
  - "https://app.example.com"
`, `
jwt_key: "secret"
pg:
  host: "db"
  port: 5432
  user: "jobdeck"
  password: "pw"
  dbname: "jobdeck"
redis:
  addr: "redis:6379"
smtp:
  host: "smtp"
  port: 587
  from: "no-reply@example.com"
`)

	cfg := MustLoad(dir)

	assert.Equal(t, 30*time.Minute, cfg.Public.JwtTTL)
	assert.Equal(t, 48*time.Hour, cfg.Public.RefreshTTL)
	assert.Equal(t, "https://jobs.example.com", cfg.Public.BaseURL)
	assert.Equal(t, 12, cfg.Public.JobsPerPage)
	assert.True(t, cfg.Public.SecureCookies)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.Public.AllowedOrigins)
	assert.Equal(t, "secret", cfg.JwtKey())
	assert.Equal(t, "db", cfg.Private.Pg.Host)
	assert.Equal(t, "redis:6379", cfg.Private.Redis.Addr)
}

func TestMustLoadDefaults(t *testing.T) {
	dir := writeConfigs(t, `
base_url: "http://localhost:8080"
`, `
jwt_key: "secret"
`)

	cfg := MustLoad(dir)

	assert.Equal(t, 15*time.Minute, cfg.Public.JwtTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.Public.RefreshTTL)
	assert.Equal(t, 24*time.Hour, cfg.Public.ActivationTTL)
	assert.Equal(t, time.Hour, cfg.Public.PasswordResetTTL)
	assert.Equal(t, 9, cfg.Public.JobsPerPage)
	assert.Equal(t, 4, cfg.Public.DispatchWorkers)
	assert.Equal(t, "info", cfg.Public.LogLevel)
}

func TestMustLoadMissingFile(t *testing.T) {
	assert.Panics(t, func() { MustLoad(t.TempDir()) })
}
