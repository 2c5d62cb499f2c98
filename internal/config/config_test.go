package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every override so the host environment can't leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"BOARD_API_BASE_URL", "BOARD_PORT", "HTTPS_PROXY", "SQLITE_PATH", "LOG_LEVEL", "DASHBOARD_POLL_INTERVAL"} {
		t.Setenv(k, "")
	}
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, 8090, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 15*time.Second, cfg.Pages.DashboardPollInterval)
	assert.Zero(t, cfg.Pages.ListPollInterval)
	assert.Equal(t, 30, cfg.Pages.ListLimit)
	assert.Equal(t, 5, cfg.Pages.TransferLimit)
	assert.Empty(t, cfg.Database.SQLitePath)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
api:
  base_url: https://monitor.example.com/api/
  timeout: 5s
server:
  port: 9000
pages:
  dashboard_poll_interval: 1m
  list_limit: 50
database:
  sqlite_path: data/board.db
log:
  level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://monitor.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, time.Minute, cfg.Pages.DashboardPollInterval)
	assert.Equal(t, 50, cfg.Pages.ListLimit)
	assert.Equal(t, "data/board.db", cfg.Database.SQLitePath)
	lvl, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "server:\n  port: 9000\n")
	t.Setenv("BOARD_API_BASE_URL", "http://backend:8080/api")
	t.Setenv("BOARD_PORT", "9100")
	t.Setenv("HTTPS_PROXY", "http://proxy:3128")
	t.Setenv("SQLITE_PATH", "/tmp/board.db")
	t.Setenv("DASHBOARD_POLL_INTERVAL", "30s")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://backend:8080/api", cfg.API.BaseURL)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "http://proxy:3128", cfg.Proxy)
	assert.Equal(t, "/tmp/board.db", cfg.Database.SQLitePath)
	assert.Equal(t, 30*time.Second, cfg.Pages.DashboardPollInterval)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("BOARD_PORT") // godotenv skips variables that are already set
	require.NoError(t, os.WriteFile(".env", []byte("BOARD_PORT=9200\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("BOARD_PORT") })

	cfg, err := Load("missing.yaml")
	require.NoError(t, err)
	assert.Equal(t, 9200, cfg.Server.Port)
}

func TestLoad_BadValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOARD_PORT", "eighty")
	_, err := Load("missing.yaml")
	assert.ErrorContains(t, err, "BOARD_PORT")

	clearEnv(t)
	_, err = Load(writeConfig(t, "api: [not, a, map]"))
	assert.ErrorContains(t, err, "parse config")
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	base := func() *Config {
		cfg, err := Load("missing.yaml")
		require.NoError(t, err)
		return cfg
	}

	cfg := base()
	cfg.API.BaseURL = "localhost/api"
	assert.ErrorContains(t, cfg.Validate(), "api.base_url")

	cfg = base()
	cfg.Server.Port = 70000
	assert.ErrorContains(t, cfg.Validate(), "server.port")

	cfg = base()
	cfg.Log.Level = "loud"
	assert.ErrorContains(t, cfg.Validate(), "log.level")

	cfg = base()
	cfg.Pages.ListPollInterval = -time.Second
	assert.Error(t, cfg.Validate())
}
