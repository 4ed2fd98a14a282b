package app

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mkraev/launchlist/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler(t *testing.T) {
	a := &App{startTime: time.Now().Add(-2 * time.Second)}

	rec := httptest.NewRecorder()
	a.healthHandler(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status        string  `json:"status"`
		Timestamp     string  `json:"timestamp"`
		UptimeSeconds float64 `json:"uptime_seconds"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.GreaterOrEqual(t, body.UptimeSeconds, 2.0)

	_, err := time.Parse(time.RFC3339, body.Timestamp)
	assert.NoError(t, err)
}

func TestConfigJSHandler(t *testing.T) {
	a := &App{config: &config.Config{
		Countdown: config.CountdownConfig{LaunchTime: "2027-01-01T00:00:00Z"},
	}}

	rec := httptest.NewRecorder()
	a.configJSHandler(rec, httptest.NewRequest(http.MethodGet, "/config.js", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/javascript", rec.Header().Get("Content-Type"))
	assert.Equal(t, "window.LAUNCHLIST_CONFIG = { launchAt: \"2027-01-01T00:00:00Z\" };\n", rec.Body.String())
}

func TestInitLogger(t *testing.T) {
	tests := []struct {
		name  string
		cfg   config.LogConfig
		level slog.Level
	}{
		{name: "debug", cfg: config.LogConfig{Level: "debug", Format: "json"}, level: slog.LevelDebug},
		{name: "warn", cfg: config.LogConfig{Level: "warn", Format: "text"}, level: slog.LevelWarn},
		{name: "unknown falls back to info", cfg: config.LogConfig{Level: "chatty"}, level: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := initLogger(tt.cfg)
			require.NotNil(t, logger)
			assert.True(t, logger.Enabled(context.Background(), tt.level))
			assert.False(t, logger.Enabled(context.Background(), tt.level-1))
		})
	}
}
