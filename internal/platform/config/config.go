// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.blog

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, Gatekeeper) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Inkwell API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis). Empty falls back to the in-process store,
	// suitable for single-instance deployments only.
	RedisURL string `env:"REDIS_URL"`

	// AuthEnabled toggles request authentication globally. When false the
	// deployment runs in single-operator mode: every admin request acts as
	// the first registered user and no token handling occurs.
	AuthEnabled bool `env:"AUTH_ENABLED" envDefault:"true"`

	// Session token lifetimes. The access lifetime must be strictly shorter
	// than the refresh lifetime; Load enforces this.
	AccessTokenExpiredSeconds int `env:"ACCESS_TOKEN_EXPIRED_SECONDS" envDefault:"86400"`
	RefreshTokenExpiredDays   int `env:"REFRESH_TOKEN_EXPIRED_DAYS"   envDefault:"30"`

	// Protected/excluded request path globs for the gatekeeper.
	// Exclusions win over protections.
	ProtectedPaths []string `env:"PROTECTED_PATHS" envSeparator:"," envDefault:"/api/admin/**,/api/content/comments"`
	ExcludedPaths  []string `env:"EXCLUDED_PATHS"  envSeparator:"," envDefault:"/api/admin/login,/api/admin/login/precheck,/api/admin/refresh/*,/api/admin/password/code,/api/admin/password/reset,/api/admin/installations,/api/admin/is_installed"`

	// Outbound email (password reset codes)
	MailEnabled  bool   `env:"MAIL_ENABLED"  envDefault:"false"`
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT"     envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPFrom     string `env:"SMTP_FROM"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	// The refresh token must always outlive the access token, otherwise the
	// rotation flow could mint access tokens from an already-dead session.
	if cfg.AccessTokenTTL() >= cfg.RefreshTokenTTL() {
		return nil, fmt.Errorf("config: access token TTL (%s) must be shorter than refresh token TTL (%s)",
			cfg.AccessTokenTTL(), cfg.RefreshTokenTTL())
	}

	return cfg, nil
}

// AccessTokenTTL returns the configured access token lifetime.
func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenExpiredSeconds) * time.Second
}

// RefreshTokenTTL returns the configured refresh token lifetime.
func (c *Config) RefreshTokenTTL() time.Duration {
	return time.Duration(c.RefreshTokenExpiredDays) * 24 * time.Hour
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
