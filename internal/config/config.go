// Package config centralises environment configuration for the service.
package config

import (
	"os"
	"time"
)

// Config captures runtime configuration values, populated from environment
// variables with local-dev defaults.
type Config struct {
	Addr        string
	WebDir      string
	DatabaseURL string

	OIDCIssuer       string
	OIDCClientID     string
	OIDCClientSecret string
	OIDCRedirectURL  string

	SessionSweepInterval time.Duration
}

// Load reads environment variables into Config. DatabaseURL has no default;
// main treats an empty value as fatal.
func Load() Config {
	return Config{
		Addr:                 getEnv("ADDR", ":8080"),
		WebDir:               getEnv("WEB_DIR", "web"),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		OIDCIssuer:           os.Getenv("OIDC_ISSUER"),
		OIDCClientID:         os.Getenv("OIDC_CLIENT_ID"),
		OIDCClientSecret:     os.Getenv("OIDC_CLIENT_SECRET"),
		OIDCRedirectURL:      getEnv("OIDC_REDIRECT_URL", "http://localhost:8080/api/auth/sso/callback"),
		SessionSweepInterval: getDurationEnv("SESSION_SWEEP_INTERVAL", time.Hour),
	}
}

// SSOEnabled reports whether OIDC single sign-on is configured.
func (c Config) SSOEnabled() bool {
	return c.OIDCIssuer != "" && c.OIDCClientID != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return fallback
}
