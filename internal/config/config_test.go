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
	for _, key := range []string{"CONSOLE_CONFIG", "CONSOLE_ADDR", "BACKEND_URL", "SESSION_FILE", "HTTP_TIMEOUT", "ENABLE_METRICS", "LOG_LEVEL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8090", cfg.ListenAddr)
	assert.Equal(t, "http://localhost:8080", cfg.BackendURL)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.False(t, cfg.EnableMetrics)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONSOLE_ADDR", ":9000")
	t.Setenv("BACKEND_URL", "https://activos.example.com")
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("ENABLE_METRICS", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "https://activos.example.com", cfg.BackendURL)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.True(t, cfg.EnableMetrics)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadFromYAMLFileWithEnvOverride(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "console.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"listen_addr: \":7000\"\nbackend_url: https://yaml.example.com\nhttp_timeout: 10s\n"), 0o600))
	t.Setenv("CONSOLE_CONFIG", path)
	t.Setenv("BACKEND_URL", "https://env.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.ListenAddr)
	// Environment wins over the file.
	assert.Equal(t, "https://env.example.com", cfg.BackendURL)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_TIMEOUT", "not-a-duration")

	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		config      *Config
		expectError bool
	}{
		{
			name:        "valid config",
			config:      &Config{ListenAddr: ":8090", BackendURL: "http://localhost:8080", HTTPTimeout: time.Second},
			expectError: false,
		},
		{
			name:        "missing backend URL",
			config:      &Config{ListenAddr: ":8090", HTTPTimeout: time.Second},
			expectError: true,
		},
		{
			name:        "missing listen address",
			config:      &Config{BackendURL: "http://localhost:8080"},
			expectError: true,
		},
		{
			name:        "negative timeout",
			config:      &Config{ListenAddr: ":8090", BackendURL: "http://localhost:8080", HTTPTimeout: -time.Second},
			expectError: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
