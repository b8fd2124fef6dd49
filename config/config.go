// Package config loads runtime configuration once at startup and hands
// it to the components that need it. Nothing else in the codebase reads
// environment variables.
package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// ErrMissingJWTSecret makes a missing signing secret a startup-fatal
// condition in production instead of a silent auth failure later.
var ErrMissingJWTSecret = errors.New("JWT_SECRET is not set")

type Config struct {
	Env  string
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret string

	RedisAddr string
	RedisPass string

	S3Region     string
	S3Bucket     string
	MediaBaseURL string

	CORSOrigins []string
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads .env if present, then the environment. A missing JWT
// secret is an error in production and a logged warning otherwise, so
// local development stays unblocked while a misconfigured deploy never
// starts.
func Load(log *logrus.Logger) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:          getenv("APP_ENV", "development"),
		Port:         getenv("APP_PORT", "8080"),
		DBHost:       os.Getenv("DB_HOST"),
		DBPort:       getenv("DB_PORT", "5432"),
		DBUser:       os.Getenv("DB_USER"),
		DBPassword:   os.Getenv("DB_PASSWORD"),
		DBName:       os.Getenv("DB_NAME"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		RedisPass:    os.Getenv("REDIS_PASS"),
		S3Region:     getenv("S3_REGION", os.Getenv("AWS_REGION")),
		S3Bucket:     os.Getenv("S3_BUCKET"),
		MediaBaseURL: os.Getenv("MEDIA_BASE_URL"),
	}

	if origins := os.Getenv("FRONTEND_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return nil, ErrMissingJWTSecret
		}
		log.Warn("JWT_SECRET is not set; token issuance will fail until it is configured")
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
