package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"HTTP_PORT", "SQLITE_DB_PATH", "JWT_SECRET", "JWT_ISSUER", "JWT_TTL",
	"NOTIFY_ON_LIKE", "SHUTDOWN_TIMEOUT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.NotifyOnLike)
	assert.Equal(t, "./photogram.db", cfg.SQLite.Path)
	assert.Equal(t, "photogram", cfg.Tokens.Issuer)
	assert.Equal(t, 24*time.Hour, cfg.Tokens.TTL)
	assert.Empty(t, cfg.Tokens.Secret)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("SQLITE_DB_PATH", "/tmp/x.db")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_TTL", "1h")
	t.Setenv("NOTIFY_ON_LIKE", "true")
	t.Setenv("SHUTDOWN_TIMEOUT", "10s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "/tmp/x.db", cfg.SQLite.Path)
	assert.Equal(t, []byte("s3cret"), cfg.Tokens.Secret)
	assert.Equal(t, time.Hour, cfg.Tokens.TTL)
	assert.True(t, cfg.NotifyOnLike)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"HTTP_PORT", "eighty"},
		{"HTTP_PORT", "70000"},
		{"JWT_TTL", "forever"},
		{"NOTIFY_ON_LIKE", "sometimes"},
		{"SHUTDOWN_TIMEOUT", "5"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)

	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("JWT_ISSUER=from-file\nHTTP_PORT=7000\n"), 0o600))
	t.Setenv("HTTP_PORT", "7001")
	// godotenv only fills unset variables; clearEnv set JWT_ISSUER to empty
	require.NoError(t, os.Unsetenv("JWT_ISSUER"))

	require.NoError(t, LoadDotEnv(path))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Tokens.Issuer)
	assert.Equal(t, 7001, cfg.Port)
}
