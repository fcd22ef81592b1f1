package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnv = []string{
	"PORT", "TRACKER_ADDR", "TRACKER_DB_DRIVER", "TRACKER_DB_DSN", "TRACKER_STATIC_DIR",
	"JWT_SECRET", "TRACKER_TOKEN_TTL", "TRACKER_CORS_ORIGINS", "TRACKER_LOG_LEVEL", "TRACKER_LOG_FORMAT",
}

// clearEnv blanks every variable Load reads; EnvOrDefault treats empty as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnv {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, "sqlite3", cfg.DBDriver)
	assert.Equal(t, "data/tracker.db", cfg.DBDSN)
	assert.Equal(t, "web/dist", cfg.StaticDir)
	assert.Equal(t, DefaultSecret, cfg.JWTSecret)
	assert.Zero(t, cfg.TokenTTL)
	assert.Empty(t, cfg.CORSOrigins)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_Env(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("TRACKER_TOKEN_TTL", "24h")
	t.Setenv("TRACKER_CORS_ORIGINS", "http://localhost:5173, http://example.com")
	t.Setenv("TRACKER_DB_DRIVER", "postgres")
	t.Setenv("TRACKER_DB_DSN", "postgres://tracker@localhost/tracker")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "from-env", cfg.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"http://localhost:5173", "http://example.com"}, cfg.CORSOrigins)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "postgres://tracker@localhost/tracker", cfg.DBDSN)
}

func TestLoad_AddrOverridesPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("TRACKER_ADDR", "127.0.0.1:9000")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := Load("", []string{
		"-addr", ":4000",
		"-secret", "from-flag",
		"-db", ":memory:",
		"-static", "",
		"-token-ttl", "1h",
		"-cors", "http://a.test",
		"-log-format", "json",
	})
	require.NoError(t, err)
	assert.Equal(t, ":4000", cfg.Addr)
	assert.Equal(t, "from-flag", cfg.JWTSecret)
	assert.Equal(t, ":memory:", cfg.DBDSN)
	assert.Equal(t, "", cfg.StaticDir)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"http://a.test"}, cfg.CORSOrigins)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv does not override variables that are already set, so the
	// blanked ones must be removed for the file to apply.
	os.Unsetenv("JWT_SECRET")
	os.Unsetenv("TRACKER_LOG_LEVEL")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("JWT_SECRET=from-file\nTRACKER_LOG_LEVEL=debug\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("JWT_SECRET")
		os.Unsetenv("TRACKER_LOG_LEVEL")
	})

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.JWTSecret)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_MissingEnvFileIsIgnored(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"), nil)
	require.NoError(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"driver", []string{"-db-driver", "mysql"}},
		{"secret", []string{"-secret", ""}},
		{"ttl", []string{"-token-ttl", "-1h"}},
		{"unknown flag", []string{"-nope"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			_, err := Load("", tc.args)
			require.Error(t, err)
		})
	}
}
