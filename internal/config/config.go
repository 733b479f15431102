package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	App    AppConfig    `mapstructure:"app"    validate:"required"`
	CORS   CORSConfig   `mapstructure:"cors"   validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Host                   string `mapstructure:"host"                     validate:"omitempty,hostname|ip"`
	Port                   int    `mapstructure:"port"                     validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level"                validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gte=1,lte=300"`
}

// AppConfig identifies the service in the root endpoint.
type AppConfig struct {
	Name    string `mapstructure:"name"    validate:"required"`
	Version string `mapstructure:"version" validate:"required"`
}

// CORSConfig controls cross-origin access.
// The default allows every origin; a production deployment should narrow it.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins" validate:"required,min=1,dive,required"`
	MaxAgeSeconds  int      `mapstructure:"max_age_seconds" validate:"gte=0"`
}
