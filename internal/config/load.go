package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable the loader reads,
// e.g. TASKS_SERVER_PORT for server.port.
const EnvPrefix = "TASKS"

// Defaults applied before any file or environment value.
const (
	DefaultHost                   = "0.0.0.0"
	DefaultPort                   = 8000
	DefaultLogLevel               = "info"
	DefaultShutdownTimeoutSeconds = 10
	DefaultAppName                = "Task Manager API"
	DefaultAppVersion             = "1.0"
	DefaultCORSMaxAgeSeconds      = 300
)

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	// Optional config.yaml in the working directory.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about; binding
	// explicitly keeps Unmarshal aware of every env override.
	for _, key := range []string{
		"server.host",
		"server.port",
		"server.log_level",
		"server.shutdown_timeout_seconds",
		"app.name",
		"app.version",
		"cors.allowed_origins",
		"cors.max_age_seconds",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", DefaultHost)
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.log_level", DefaultLogLevel)
	v.SetDefault("server.shutdown_timeout_seconds", DefaultShutdownTimeoutSeconds)
	v.SetDefault("app.name", DefaultAppName)
	v.SetDefault("app.version", DefaultAppVersion)
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.max_age_seconds", DefaultCORSMaxAgeSeconds)
}
