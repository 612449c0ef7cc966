package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	// Database
	DatabaseURL     string        `env:"DATABASE_URL,required,notEmpty"`
	DBRetryAttempts int           `env:"DB_RETRY_ATTEMPTS" envDefault:"3"`
	DBRetryBackoff  time.Duration `env:"DB_RETRY_BACKOFF" envDefault:"1s"`

	// Identity provider tokens
	JWTSecret   string `env:"JWT_SECRET"`
	AuthJWKSURL string `env:"AUTH_JWKS_URL"`

	// AI Providers
	GeminiAPIKey string `env:"GEMINI_API_KEY,required,notEmpty"`
	GeminiAPIURL string `env:"GEMINI_API_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta"`
	GeminiModel  string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`

	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	OpenAIModel  string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`

	AITimeout time.Duration `env:"AI_TIMEOUT" envDefault:"60s"`

	// Server
	Port        string `env:"PORT" envDefault:"8080"`
	CORSOrigins string `env:"CORS_ORIGINS" envDefault:"*"`
	BodyLimitMB int    `env:"BODY_LIMIT_MB" envDefault:"25"`
	MaxImageMB  int    `env:"MAX_IMAGE_MB" envDefault:"10"`

	// Observability
	LogRetentionDays int    `env:"LOG_RETENTION_DAYS" envDefault:"30"`
	SentryDSN        string `env:"SENTRY_DSN"`
	AppEnv           string `env:"APP_ENV" envDefault:"development"`
}

// Load reads a local .env file when one exists, then parses the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" && c.AuthJWKSURL == "" {
		return errors.New("either JWT_SECRET or AUTH_JWKS_URL is required")
	}
	if c.DBRetryAttempts < 1 {
		return fmt.Errorf("DB_RETRY_ATTEMPTS must be at least 1, got %d", c.DBRetryAttempts)
	}
	if c.AITimeout <= 0 {
		c.AITimeout = 60 * time.Second
	}
	if c.MaxImageMB <= 0 {
		c.MaxImageMB = 10
	}
	return nil
}

func (c *Config) BodyLimitBytes() int {
	return c.BodyLimitMB * 1024 * 1024
}

func (c *Config) LogRetention() time.Duration {
	return time.Duration(c.LogRetentionDays) * 24 * time.Hour
}
