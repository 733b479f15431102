package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupEnv sets environment variables for the duration of the test.
// An empty value is treated as unset by the loader.
func setupEnv(t *testing.T, envVars map[string]string) {
	t.Helper()
	for name, value := range envVars {
		t.Setenv(name, value)
	}
}

// TestLoadDefaults verifies that Load applies defaults when nothing is set.
func TestLoadDefaults(t *testing.T) {
	setupEnv(t, map[string]string{
		"TASKS_SERVER_HOST":          "",
		"TASKS_SERVER_PORT":          "",
		"TASKS_SERVER_LOG_LEVEL":     "",
		"TASKS_APP_NAME":             "",
		"TASKS_APP_VERSION":          "",
		"TASKS_CORS_ALLOWED_ORIGINS": "",
	})

	cfg, err := Load()

	require.NoError(t, err, "Load() should not return an error with default values")
	require.NotNil(t, cfg)
	assert.Equal(t, DefaultHost, cfg.Server.Host)
	assert.Equal(t, 8000, cfg.Server.Port, "Default server port should be 8000")
	assert.Equal(t, "info", cfg.Server.LogLevel, "Default log level should be 'info'")
	assert.Equal(t, DefaultShutdownTimeoutSeconds, cfg.Server.ShutdownTimeoutSeconds)
	assert.Equal(t, "Task Manager API", cfg.App.Name)
	assert.Equal(t, "1.0", cfg.App.Version)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, DefaultCORSMaxAgeSeconds, cfg.CORS.MaxAgeSeconds)
}

// TestLoadFromEnv verifies that Load reads values from environment variables.
func TestLoadFromEnv(t *testing.T) {
	setupEnv(t, map[string]string{
		"TASKS_SERVER_HOST":          "127.0.0.1",
		"TASKS_SERVER_PORT":          "9090",
		"TASKS_SERVER_LOG_LEVEL":     "debug",
		"TASKS_APP_NAME":             "Todo Service",
		"TASKS_APP_VERSION":          "2.3",
		"TASKS_CORS_ALLOWED_ORIGINS": "https://a.example,https://b.example",
		"TASKS_CORS_MAX_AGE_SECONDS": "60",
	})

	cfg, err := Load()

	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "Todo Service", cfg.App.Name)
	assert.Equal(t, "2.3", cfg.App.Version)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 60, cfg.CORS.MaxAgeSeconds)
}

// TestLoadValidationErrors verifies that Load rejects invalid configuration.
func TestLoadValidationErrors(t *testing.T) {
	testCases := []struct {
		name    string
		envVars map[string]string
	}{
		{
			name:    "Port out of range",
			envVars: map[string]string{"TASKS_SERVER_PORT": "999999"},
		},
		{
			name:    "Invalid log level",
			envVars: map[string]string{"TASKS_SERVER_LOG_LEVEL": "invalid-level"},
		},
		{
			name:    "Invalid host",
			envVars: map[string]string{"TASKS_SERVER_HOST": "not a host!"},
		},
		{
			name:    "Shutdown timeout too small",
			envVars: map[string]string{"TASKS_SERVER_SHUTDOWN_TIMEOUT_SECONDS": "0"},
		},
		{
			name:    "Negative CORS max age",
			envVars: map[string]string{"TASKS_CORS_MAX_AGE_SECONDS": "-1"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			setupEnv(t, tc.envVars)

			cfg, err := Load()

			require.Error(t, err, "Load() should return an error with invalid configuration")
			assert.Contains(t, err.Error(), "validation failed")
			assert.Nil(t, cfg, "Config should be nil when an error occurs")
		})
	}
}
