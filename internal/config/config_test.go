package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{"LOGIN_SERVER_ADDR", "SESSION_BACKEND", "REDIS_URL", "DATABASE_URL", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, BackendMemory, cfg.Session.Backend)
	assert.Equal(t, 500*time.Millisecond, cfg.GetQuietPeriod())
	assert.Equal(t, 10*time.Second, cfg.GetShutdownTimeout())
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9000"
  allowed_origins: ["https://app.example"]
session:
  backend: redis
  redis_url: redis://cache:6379/1
form:
  quiet_period: 250ms
logging:
  level: debug
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, []string{"https://app.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, BackendRedis, cfg.Session.Backend)
	assert.Equal(t, "redis://cache:6379/1", cfg.Session.RedisURL)
	assert.Equal(t, 250*time.Millisecond, cfg.GetQuietPeriod())
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOGIN_SERVER_ADDR", ":7000")
	t.Setenv("SESSION_BACKEND", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/login")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, BackendPostgres, cfg.Session.Backend)
	assert.Equal(t, "postgres://localhost/login", cfg.Session.DBUrl)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestValidate(t *testing.T) {
	t.Run("unknown backend", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Session.Backend = "etcd"
		assert.ErrorContains(t, cfg.Validate(), "unknown session.backend")
	})

	t.Run("postgres without url", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Session.Backend = BackendPostgres
		assert.Error(t, cfg.Validate())
	})

	t.Run("bad quiet period", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Form.QuietPeriod = "-1s"
		assert.ErrorContains(t, cfg.Validate(), "form.quiet_period")
		assert.Equal(t, 500*time.Millisecond, cfg.GetQuietPeriod())
	})

	t.Run("defaults", func(t *testing.T) {
		assert.NoError(t, DefaultConfig().Validate())
	})
}

func TestLoadRejectsBadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: ["), 0644))
	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Form.QuietPeriod = "1s"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, time.Second, loaded.GetQuietPeriod())
}
