package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("LAUNCHLIST_DATABASE_URL", "postgres://localhost:5432/launchlist")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "9090", cfg.Server.MetricsPort)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, float64(5), cfg.RateLimit.RPS)
	assert.False(t, cfg.SMS.Enabled)
	assert.Equal(t, "US", cfg.SMS.DefaultRegion)
	assert.Equal(t, "2026-12-01T00:00:00Z", cfg.Countdown.LaunchTime)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LAUNCHLIST_DATABASE_URL", "postgres://localhost:5432/launchlist")
	t.Setenv("LAUNCHLIST_SERVER_PORT", "9999")
	t.Setenv("LAUNCHLIST_SERVER_READTIMEOUT", "45s")
	t.Setenv("LAUNCHLIST_DATABASE_MAXOPENCONNS", "25")
	t.Setenv("LAUNCHLIST_CORS_ALLOWEDORIGINS", "https://a.example.com,https://b.example.com")
	t.Setenv("LAUNCHLIST_RATELIMIT_ENABLED", "false")
	t.Setenv("LAUNCHLIST_COUNTDOWN_LAUNCHTIME", "2027-03-01T12:00:00Z")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Server.Port)
	assert.Equal(t, 45*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, "2027-03-01T12:00:00Z", cfg.Countdown.LaunchTime)
}

func TestLoad_YAMLFile(t *testing.T) {
	t.Setenv("LAUNCHLIST_DATABASE_URL", "postgres://localhost:5432/launchlist")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: "8181"
sms:
  enabled: true
  accountsid: AC00000000000000000000000000000000
  authtoken: secret
  fromnumber: "+15005550006"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "8181", cfg.Server.Port)
	assert.True(t, cfg.SMS.Enabled)
	assert.Equal(t, "+15005550006", cfg.SMS.FromNumber)
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	_, err := Load("")

	assert.ErrorContains(t, err, "database url is required")
}

func TestLoad_SMSEnabledWithoutSID(t *testing.T) {
	t.Setenv("LAUNCHLIST_DATABASE_URL", "postgres://localhost:5432/launchlist")
	t.Setenv("LAUNCHLIST_SMS_ENABLED", "true")

	_, err := Load("")

	assert.ErrorContains(t, err, "sms account SID is required")
}

func TestLoad_InvalidLaunchTime(t *testing.T) {
	t.Setenv("LAUNCHLIST_DATABASE_URL", "postgres://localhost:5432/launchlist")
	t.Setenv("LAUNCHLIST_COUNTDOWN_LAUNCHTIME", "tomorrow-ish")

	_, err := Load("")

	assert.ErrorContains(t, err, "invalid countdown launch time")
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("LAUNCHLIST_DATABASE_URL", "postgres://localhost:5432/launchlist")

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	assert.ErrorContains(t, err, "load config file")
}
