package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/NeerajGithb/furniture-client-sub000/internal/config"
)

func writeConfig(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("CONFIG_PATH", path)
}

func TestMustLoad_Defaults(t *testing.T) {
	writeConfig(t, "env: local\n")

	cfg := config.MustLoad()

	require.Equal(t, "local", cfg.Env)
	require.Equal(t, ":3000", cfg.HTTP.Port)
	require.Equal(t, "http://localhost:8080", cfg.Backend.BaseURL)
	require.Equal(t, 5*time.Second, cfg.Backend.Timeout)
	require.Equal(t, "file", cfg.Storage.Driver)
	require.Equal(t, 10*time.Minute, cfg.Catalog.CacheTTL)
	require.Equal(t, 20, cfg.Limiter.Max)
	require.Equal(t, "info", cfg.Logger.Level)
}

func TestMustLoad_FileOverridesDefaults(t *testing.T) {
	writeConfig(t, `
env: prod
http:
  port: ":8090"
storage:
  driver: redis
logger:
  level: warn
`)

	cfg := config.MustLoad()

	require.Equal(t, "prod", cfg.Env)
	require.Equal(t, ":8090", cfg.HTTP.Port)
	require.Equal(t, "redis", cfg.Storage.Driver)
	require.Equal(t, "warn", cfg.Logger.Level)
}

func TestMustLoad_EnvOverridesFile(t *testing.T) {
	writeConfig(t, "env: local\nstorage:\n  driver: file\n")
	t.Setenv("STORAGE_DRIVER", "memory")

	cfg := config.MustLoad()
	require.Equal(t, "memory", cfg.Storage.Driver)
}

func TestNewLogger_LevelParsing(t *testing.T) {
	logger, err := config.NewLogger(config.Logger{Level: "debug"}, "local")
	require.NoError(t, err)
	require.NotNil(t, logger)

	_, err = config.NewLogger(config.Logger{Level: "nonsense"}, "local")
	require.Error(t, err)
}
