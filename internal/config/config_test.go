package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	for _, k := range []string{
		"WISHLIST_BACKEND", "WISHLIST_DATA_DIR", "WISHLIST_SQLITE_PATH", "WISHLIST_KEY_PREFIX",
		"WISHLIST_REDIS_ADDR", "WISHLIST_REDIS_DB", "WISHLIST_LOG_LEVEL", "WISHLIST_LOG_FORMAT",
		"WISHLIST_THEME", "NO_COLOR",
	} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	cfg, err := Load(missingEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, BackendFile, cfg.Backend)
	assert.Equal(t, filepath.Join(os.Getenv("HOME"), ".wishlist"), cfg.DataDir)
	assert.Equal(t, filepath.Join(cfg.DataDir, "wishlist.db"), cfg.SQLitePath)
	assert.Equal(t, "wishlist_", cfg.KeyPrefix)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "classic", cfg.Theme)
	assert.False(t, cfg.NoColor)
}

func TestLoad_FromEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("WISHLIST_BACKEND", "SQLite")
	t.Setenv("WISHLIST_DATA_DIR", dir)
	t.Setenv("WISHLIST_REDIS_DB", "3")
	t.Setenv("WISHLIST_LOG_LEVEL", "debug")
	t.Setenv("NO_COLOR", "true")

	cfg, err := Load(missingEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, filepath.Join(dir, "wishlist.db"), cfg.SQLitePath)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.True(t, cfg.NoColor)
}

func TestLoad_EnvFileDoesNotOverride(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("WISHLIST_BACKEND=redis\nWISHLIST_REDIS_ADDR=cache:6380\nWISHLIST_THEME=neon\n"), 0o600))

	t.Setenv("WISHLIST_DATA_DIR", t.TempDir())
	t.Setenv("WISHLIST_THEME", "mono")
	// registered so the values the file sets are cleaned up afterwards
	t.Setenv("WISHLIST_BACKEND", "")
	t.Setenv("WISHLIST_REDIS_ADDR", "")
	require.NoError(t, os.Unsetenv("WISHLIST_BACKEND"))
	require.NoError(t, os.Unsetenv("WISHLIST_REDIS_ADDR"))

	cfg, err := Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, BackendRedis, cfg.Backend)
	assert.Equal(t, "cache:6380", cfg.Redis.Addr)
	assert.Equal(t, "mono", cfg.Theme)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string][2]string{
		"backend": {"WISHLIST_BACKEND", "postgres"},
		"level":   {"WISHLIST_LOG_LEVEL", "loud"},
		"format":  {"WISHLIST_LOG_FORMAT", "xml"},
		"db":      {"WISHLIST_REDIS_DB", "-1"},
		"db type": {"WISHLIST_REDIS_DB", "one"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("WISHLIST_DATA_DIR", t.TempDir())
			t.Setenv(kv[0], kv[1])
			_, err := Load(missingEnvFile(t))
			require.Error(t, err)
		})
	}
}
