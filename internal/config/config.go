// Package config loads application settings from environment variables.
package config

import (
	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// HTTP
	Port string `env:"PORT" envDefault:"3000"`

	// Auth
	JWTSecret string `env:"JWT_SECRET,required"`

	// Root directory for uploaded recipe images
	MediaRoot string `env:"MEDIA_ROOT" envDefault:"./media"`

	// Comma-separated list of allowed CORS origins
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:5173"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
