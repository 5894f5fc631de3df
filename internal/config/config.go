// Copyright (c) 2025-2026 BrightPath Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// MinJWTSecretLength is the minimum required length for the token secret.
const MinJWTSecretLength = 32

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"BRIGHTPATH_DB_PATH" envDefault:"./data/brightpath.db"`
	JWTSecret  string `env:"BRIGHTPATH_JWT_SECRET,required"`
	ServerHost string `env:"BRIGHTPATH_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"BRIGHTPATH_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"BRIGHTPATH_ENV" envDefault:"development"`
	LogLevel   string `env:"BRIGHTPATH_LOG_LEVEL" envDefault:"info"`
	LogFormat  string `env:"BRIGHTPATH_LOG_FORMAT" envDefault:"text"` // text or json

	// CORS configuration
	AllowedOrigins []string `env:"BRIGHTPATH_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	// Cache configuration
	RedisURL    string `env:"BRIGHTPATH_REDIS_URL"`                       // Optional Redis URL for distributed caching
	CachePrefix string `env:"BRIGHTPATH_CACHE_PREFIX" envDefault:"bp:"`   // Redis key prefix
	CacheTTL    int    `env:"BRIGHTPATH_CACHE_TTL" envDefault:"300"`      // Default cache TTL in seconds
	CacheSize   int    `env:"BRIGHTPATH_CACHE_MAX_SIZE" envDefault:"10000"`

	// Rate limiting for auth and public submission endpoints
	RateLimitRPS   float64 `env:"BRIGHTPATH_RATE_LIMIT_RPS" envDefault:"5"`
	RateLimitBurst int     `env:"BRIGHTPATH_RATE_LIMIT_BURST" envDefault:"10"`

	// Seeding configuration
	DoSeed bool `env:"BRIGHTPATH_DO_SEED" envDefault:"false"` // Enable database seeding
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.JWTSecret) < MinJWTSecretLength {
		return nil, fmt.Errorf("BRIGHTPATH_JWT_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinJWTSecretLength, len(cfg.JWTSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.JWTSecret == weak {
			return nil, fmt.Errorf("BRIGHTPATH_JWT_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	switch strings.ToLower(cfg.LogFormat) {
	case "text", "json":
	default:
		return nil, fmt.Errorf("BRIGHTPATH_LOG_FORMAT must be \"text\" or \"json\", got %q", cfg.LogFormat)
	}

	return cfg, nil
}
