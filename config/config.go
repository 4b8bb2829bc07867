package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

// Config holds all configuration for the application, parsed from the
// environment.
type Config struct {
	// Server configuration
	ServerHost string `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	ServerPort string `env:"SERVER_PORT" envDefault:"8080"`

	// Database configuration
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"forkful"`
	DBSSLMode  string `env:"DB_SSL_MODE" envDefault:"disable"`

	// Redis configuration. Rate limiting is enabled only when an address
	// is configured.
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// JWT configuration
	JWTSecret string `env:"JWT_SECRET"`

	// Upload storage. Images go to the local uploads directory unless an
	// S3 bucket is configured.
	UploadDir    string `env:"UPLOAD_DIR" envDefault:"uploads"`
	StaticDir    string `env:"STATIC_DIR" envDefault:"static"`
	S3BucketName string `env:"S3_BUCKET_NAME"`
	AWSRegion    string `env:"AWS_REGION"`

	// CORS
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
}

// Load parses the configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

// DSN returns the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// RedisEnabled reports whether a Redis instance is configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

// S3Enabled reports whether uploads should go to S3 instead of local disk.
func (c *Config) S3Enabled() bool {
	return c.S3BucketName != ""
}
