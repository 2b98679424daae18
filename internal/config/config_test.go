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
	t.Helper()
	t.Setenv("HOBBYTRACK_BACKEND_URL", "")
	t.Setenv("HOBBYTRACK_LOG_LEVEL", "")
	t.Setenv("HOBBYTRACK_COMMIT_MODE", "")
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, 5*time.Second, cfg.StatusTTL())
	assert.Equal(t, 10*time.Second, cfg.BackendTimeout())
	assert.Equal(t, CommitLog, cfg.CommitMode)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
backend:
  base_url: http://hobbies.internal:9000
wizard:
  status_ttl: 2s
commit_mode: http
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "http://hobbies.internal:9000", cfg.Backend.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.StatusTTL())
	assert.Equal(t, CommitHTTP, cfg.CommitMode)
	// Untouched keys keep their defaults.
	assert.Equal(t, "10s", cfg.Backend.Timeout)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend: [unclosed"), 0644))

	_, err := Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestLoad_InvalidValues(t *testing.T) {
	clearEnv(t)
	tests := map[string]string{
		"bad duration":      "wizard:\n  status_ttl: soon\n",
		"negative duration": "backend:\n  timeout: -1s\n",
		"bad commit mode":   "commit_mode: carrier-pigeon\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(content), 0644))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Run("backend url", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("HOBBYTRACK_BACKEND_URL", "http://override:1234")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "http://override:1234", cfg.Backend.BaseURL)
	})

	t.Run("log level", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("HOBBYTRACK_LOG_LEVEL", "debug")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "debug", cfg.Logging.Level)
	})

	t.Run("commit mode is lowercased", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("HOBBYTRACK_COMMIT_MODE", "HTTP")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, CommitHTTP, cfg.CommitMode)
	})

	t.Run("empty values are ignored", func(t *testing.T) {
		clearEnv(t)

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, DefaultConfig(), cfg)
	})
}

func TestSave_RoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Server.DataFile = "catalog.json"
	cfg.CommitMode = CommitHTTP

	require.NoError(t, cfg.Save(path))
	loaded, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestParseCommitMode(t *testing.T) {
	for _, in := range []string{"log", "LOG", " http "} {
		_, err := ParseCommitMode(in)
		assert.NoError(t, err, in)
	}
	_, err := ParseCommitMode("")
	assert.Error(t, err)
}
