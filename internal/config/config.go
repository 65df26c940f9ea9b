package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds everything the server needs to start. It is built once in
// main and passed into constructors so nothing reads ambient env vars at
// request time.
type Config struct {
	Port        string
	DatabaseURL string

	// Token signing
	JWTSecret []byte
	TokenTTL  time.Duration

	// Media storage
	AWSRegion  string
	AWSBucket  string
	CDNBaseURL string
	MediaDir   string

	// Logging
	LogLevel string
	LogFile  string
}

// Load reads configuration from the environment. JWT_SECRET is the only
// hard requirement; everything else has a development default.
func Load() (*Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	ttl := time.Hour
	if raw := os.Getenv("TOKEN_TTL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid TOKEN_TTL %q: %w", raw, err)
		}
		ttl = parsed
	}

	cfg := &Config{
		Port:        getEnvOrDefault("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   []byte(secret),
		TokenTTL:    ttl,
		AWSRegion:   os.Getenv("AWS_REGION"),
		AWSBucket:   os.Getenv("AWS_BUCKET"),
		CDNBaseURL:  os.Getenv("CDN_BASE_URL"),
		MediaDir:    getEnvOrDefault("MEDIA_DIR", "uploads"),
		LogLevel:    getEnvOrDefault("LOG_LEVEL", "info"),
		LogFile:     getEnvOrDefault("LOG_FILE", "server.log"),
	}

	if cfg.DatabaseURL == "" {
		host := getEnvOrDefault("DB_HOST", "localhost")
		port := getEnvOrDefault("DB_PORT", "5432")
		user := getEnvOrDefault("DB_USER", "postgres")
		password := getEnvOrDefault("DB_PASSWORD", "")
		dbname := getEnvOrDefault("DB_NAME", "hearthside")
		sslmode := getEnvOrDefault("DB_SSLMODE", "disable")

		cfg.DatabaseURL = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			host, port, user, password, dbname, sslmode)
	}

	return cfg, nil
}

// UseS3 reports whether media uploads should go to S3 instead of local disk.
func (c *Config) UseS3() bool {
	return c.AWSBucket != ""
}

// getEnvOrDefault returns environment variable or default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
