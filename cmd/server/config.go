package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/task-manager-api/internal/config"
)

// loadAppConfig loads the application configuration from environment variables or config file.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	slog.Info("Server configuration loaded",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)
	slog.Debug("CORS configuration", "allowed_origins", cfg.CORS.AllowedOrigins)

	return cfg, nil
}
