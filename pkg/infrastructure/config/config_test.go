package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "aim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 0.05, cfg.Reports.FailureRateThreshold)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
store:
  driver: SQLite
  sqlite:
    path: /var/lib/aim/aim.db
http:
  addr: 127.0.0.1:9090
log:
  level: debug
  format: console
reports:
  failure_rate_threshold: 0.1
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "/var/lib/aim/aim.db", cfg.Store.SQLite.Path)
	assert.Equal(t, "127.0.0.1:9090", cfg.HTTP.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 0.1, cfg.Reports.FailureRateThreshold)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, "store:\n  driver: memory\n")
	t.Setenv("AIM_STORE_DRIVER", "sqlite")
	t.Setenv("AIM_SQLITE_PATH", "/tmp/override.db")
	t.Setenv("AIM_HTTP_ADDR", ":7000")
	t.Setenv("AIM_LOG_LEVEL", "warn")
	t.Setenv("AIM_FAILURE_RATE_THRESHOLD", "0.2")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "/tmp/override.db", cfg.Store.SQLite.Path)
	assert.Equal(t, ":7000", cfg.HTTP.Addr)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 0.2, cfg.Reports.FailureRateThreshold)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{"unknown driver", "store:\n  driver: postgres\n", "unsupported store driver: postgres"},
		{"sqlite without path", "store:\n  driver: sqlite\n  sqlite:\n    path: \"\"\n", "store.sqlite.path is required for the sqlite driver"},
		{"negative threshold", "reports:\n  failure_rate_threshold: -1\n", "reports.failure_rate_threshold must be non-negative, got -1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Equal(t, tt.expected, err.Error())
		})
	}
}

func TestLoad_BadInputs(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "store: [unterminated\n"))
	assert.Error(t, err)

	t.Setenv("AIM_FAILURE_RATE_THRESHOLD", "high")
	_, err = Load("")
	assert.EqualError(t, err, `AIM_FAILURE_RATE_THRESHOLD: invalid number "high"`)
}
