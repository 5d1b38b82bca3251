/**
* Name: 			config.go
* Description: 		Runtime configuration loaded once at startup
* Workflow: 		.env load, environment parse, required key check
 */

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var ErrMissingAPIKey = errors.New("GOOGLE_API_KEY environment variable is not set")

type Config struct {
	GoogleAPIKey   string        `env:"GOOGLE_API_KEY"`
	Model          string        `env:"GEMINI_MODEL" envDefault:"gemini-1.5-pro"`
	Endpoint       string        `env:"GEMINI_ENDPOINT" envDefault:"https://generativelanguage.googleapis.com/v1beta"`
	RequestTimeout time.Duration `env:"GEMINI_TIMEOUT" envDefault:"60s"`

	Addr           string   `env:"HTTP_ADDR" envDefault:":8080"`
	GinMode        string   `env:"GIN_MODE" envDefault:"release"`
	AllowedOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
	MaxImageBytes  int64    `env:"MAX_IMAGE_BYTES" envDefault:"10485760"`
}

// Load reads an optional .env file into the process environment and then
// builds the Config from it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to load .env: %w", err)
	}
	return FromEnv()
}

func FromEnv() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.GoogleAPIKey == "" {
		return ErrMissingAPIKey
	}
	if c.Model == "" {
		return errors.New("config: GEMINI_MODEL must not be empty")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("config: GEMINI_TIMEOUT must be positive")
	}
	if c.MaxImageBytes <= 0 {
		return errors.New("config: MAX_IMAGE_BYTES must be positive")
	}
	return nil
}
