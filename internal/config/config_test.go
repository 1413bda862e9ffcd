package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_Defaults(t *testing.T) {
	cfg, err := LoadFile("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, "csv", cfg.Catalog.Backend)
	assert.Equal(t, "static", cfg.Recommend.DefaultSource)
	assert.Equal(t, 1, cfg.Recommend.MaxResults)
	assert.Equal(t, "./data/example_recommendations_retail.csv", cfg.Recommend.StaticDatasetPath)
}

func TestLoadFile_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9000
  read_timeout: 3s
logging:
  level: debug
recommend:
  default_source: remote
  endpoint: https://scoring.example.com/recommendations
`), 0o644))

	t.Setenv("SERVER_PORT", "9100")
	t.Setenv("RECOMMEND_API_KEY", "secret")
	t.Setenv("RECOMMEND_BREAKER_ENABLED", "true")
	t.Setenv("RECOMMEND_TIMEOUT", "2s")
	t.Setenv("LOG_FORMAT", "JSON")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.HTTP.Port)
	assert.Equal(t, 3*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "remote", cfg.Recommend.DefaultSource)
	assert.Equal(t, "secret", cfg.Recommend.APIKey)
	assert.Equal(t, 2*time.Second, cfg.Recommend.Timeout)
	assert.True(t, cfg.Recommend.Breaker.Enabled)
}

func TestLoadFile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "port out of range", env: map[string]string{"SERVER_PORT": "70000"}},
		{name: "unknown backend", env: map[string]string{"CATALOG_BACKEND": "mongo"}},
		{name: "graph without uri", env: map[string]string{"CATALOG_BACKEND": "graph"}},
		{name: "sql without dsn", env: map[string]string{"CATALOG_BACKEND": "sql"}},
		{name: "remote without endpoint", env: map[string]string{"RECOMMEND_DEFAULT_SOURCE": "remote"}},
		{name: "relative endpoint", env: map[string]string{"RECOMMEND_ENDPOINT": "/recommend"}},
		{name: "zero max results", env: map[string]string{"RECOMMEND_MAX_RESULTS": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadFile("")
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_UsesPathEnvVar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("catalog:\n  backend: sql\n  sql_dsn: file::memory:\n"), 0o644))
	t.Setenv(PathEnvVar, path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sql", cfg.Catalog.Backend)
	assert.Equal(t, "file::memory:", cfg.Catalog.SQLDSN)
}
