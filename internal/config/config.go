// Haven - Handcrafted Artisan Marketplace
// Copyright 2026 Caleb Morton (cmorton)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cmorton/haven

// Package config provides layered configuration loading via Koanf v2.
//
// Precedence (highest wins): environment variables, config file, built-in
// defaults. Environment variables use the HAVEN_ prefix with underscores
// mapping to nesting, e.g. HAVEN_SECURITY_JWT_SECRET -> security.jwt_secret.
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the Haven server.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Security SecurityConfig `koanf:"security"`
	Database DatabaseConfig `koanf:"database"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// ShutdownTimeout bounds graceful shutdown when draining connections.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// CORSOrigins lists allowed origins for cross-origin API requests.
	CORSOrigins []string `koanf:"cors_origins"`

	// RateLimit is the general per-IP request budget per minute.
	RateLimit int `koanf:"rate_limit"`

	// LoginRateLimit is the per-IP login attempt budget per five minutes.
	// Login gets the strictest limit to slow credential stuffing.
	LoginRateLimit int `koanf:"login_rate_limit"`
}

// SecurityConfig holds authentication settings.
type SecurityConfig struct {
	// JWTSecret signs session tokens. Minimum 32 characters. Rotating the
	// secret invalidates all outstanding sessions.
	JWTSecret string `koanf:"jwt_secret"`

	// SessionTTL is the fixed token and cookie lifetime.
	SessionTTL time.Duration `koanf:"session_ttl"`

	// BcryptCost is the adaptive cost factor for password hashing.
	BcryptCost int `koanf:"bcrypt_cost"`

	// CookieSecure marks the session cookie Secure. Enable in production
	// behind TLS.
	CookieSecure bool `koanf:"cookie_secure"`
}

// DatabaseConfig holds document store settings.
type DatabaseConfig struct {
	// Path is the BadgerDB directory. Empty selects an in-memory store
	// (tests and local development).
	Path string `koanf:"path"`

	// GCInterval is how often the value log garbage collector runs.
	GCInterval time.Duration `koanf:"gc_interval"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by config file and environment variables.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
			CORSOrigins:     nil,
			RateLimit:       300,
			LoginRateLimit:  5,
		},
		Security: SecurityConfig{
			JWTSecret:    "",
			SessionTTL:   7 * 24 * time.Hour,
			BcryptCost:   10,
			CookieSecure: false,
		},
		Database: DatabaseConfig{
			Path:       "/data/haven",
			GCInterval: 10 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Validate checks invariants that would otherwise surface as confusing
// runtime failures. Called by Load; exported for tests and embedders.
func (c *Config) Validate() error {
	if c.Security.JWTSecret == "" {
		return fmt.Errorf("security.jwt_secret is required")
	}
	if len(c.Security.JWTSecret) < 32 {
		return fmt.Errorf("security.jwt_secret must be at least 32 characters, got %d", len(c.Security.JWTSecret))
	}
	if c.Security.SessionTTL <= 0 {
		return fmt.Errorf("security.session_ttl must be positive")
	}
	if c.Security.BcryptCost < 4 || c.Security.BcryptCost > 31 {
		return fmt.Errorf("security.bcrypt_cost must be between 4 and 31, got %d", c.Security.BcryptCost)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Server.RateLimit <= 0 {
		return fmt.Errorf("server.rate_limit must be positive")
	}
	if c.Server.LoginRateLimit <= 0 {
		return fmt.Errorf("server.login_rate_limit must be positive")
	}
	return nil
}
