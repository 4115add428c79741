package config

import (
	"errors"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the application.
type Config struct {
	ServerPort     string `envconfig:"SERVER_PORT" default:"8080"`
	DatabaseURL    string `envconfig:"DATABASE_URL" required:"true"`
	OpenAIAPIKey   string `envconfig:"OPENAI_API_KEY"`
	JWTSecret      string `envconfig:"JWT_SECRET" required:"true"`
	AllowedOrigins string `envconfig:"ALLOWED_ORIGINS"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"console"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT secret must be provided")
	}
	return &cfg, nil
}
