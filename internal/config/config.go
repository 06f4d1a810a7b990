// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-pet-life server. It aggregates all sub-configurations and is populated
// by merging values from defaults, environment variables, command-line
// flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the token signing key,
	// token lifetime, the public URL used in emailed links and the version.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the relational database and the
	// Redis session store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address, timeout and CORS settings for the HTTP
	// server.
	Server Server `envPrefix:"SERVER_"`

	// Session holds session cookie and lifetime settings.
	Session Session `envPrefix:"SESSION_"`

	// Mail holds SMTP settings for outgoing confirmation and reset emails.
	Mail Mail `envPrefix:"MAIL_"`

	// OAuth holds client credentials of the social login providers.
	OAuth OAuth `envPrefix:"OAUTH_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values that control token
// signing, token lifetime and versioning.
type App struct {
	// TokenSignKey is the server secret used to sign and verify
	// confirmation and password-reset tokens. Must be kept confidential.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenMaxAge is how long confirmation and reset links stay valid
	// (e.g. "1h").
	// Env: APP_TOKEN_MAX_AGE
	TokenMaxAge time.Duration `env:"TOKEN_MAX_AGE"`

	// PublicURL is the externally reachable base URL used to build links
	// sent by email (e.g. "https://petlife.example.com").
	// Env: APP_PUBLIC_URL
	PublicURL string `env:"PUBLIC_URL"`

	// LogLevel is the minimum zerolog level name ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// Version is the semantic version string of the running application.
	// Exposed via the /api/version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for all storage backends used by the
// application.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`

	// Redis holds the session store connection settings.
	Redis Redis `envPrefix:"REDIS_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN is the database Data Source Name. A "postgres://" or
	// "postgresql://" DSN selects PostgreSQL; a "file:" DSN or a path ending
	// in ".db" selects SQLite.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Redis holds connection settings for the session store.
type Redis struct {
	// Address is the Redis server address in "host:port" format.
	// Env: STORAGE_REDIS_ADDRESS
	Address string `env:"ADDRESS"`

	// Password is the optional Redis AUTH password.
	// Env: STORAGE_REDIS_PASSWORD
	Password string `env:"PASSWORD"`

	// DB is the Redis logical database index.
	// Env: STORAGE_REDIS_DB
	DB int `env:"DB"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// AllowedOrigins lists the origins allowed by the CORS middleware.
	// Env: SERVER_ALLOWED_ORIGINS (comma separated)
	AllowedOrigins []string `env:"ALLOWED_ORIGINS"`
}

// Session holds cookie and lifetime settings of server-side sessions.
type Session struct {
	// CookieName is the name of the cookie carrying the session ID.
	// Env: SESSION_COOKIE_NAME
	CookieName string `env:"COOKIE_NAME"`

	// Lifetime is the server-side lifetime of a regular session.
	// The cookie itself expires with the browser session.
	// Env: SESSION_LIFETIME
	Lifetime time.Duration `env:"LIFETIME"`

	// PermanentLifetime is the lifetime of a "remember me" session.
	// Env: SESSION_PERMANENT_LIFETIME
	PermanentLifetime time.Duration `env:"PERMANENT_LIFETIME"`

	// HashKey is the HMAC key used to derive storage keys from session IDs,
	// so that raw session IDs never reach the session store.
	// Env: SESSION_HASH_KEY
	HashKey string `env:"HASH_KEY"`

	// SecureCookie sets the Secure attribute on session cookies.
	// Env: SESSION_SECURE_COOKIE
	SecureCookie bool `env:"SECURE_COOKIE"`
}

// Mail holds SMTP settings. When Host is empty outgoing emails are written
// to the log instead of being sent.
type Mail struct {
	// Env: MAIL_HOST
	Host string `env:"HOST"`
	// Env: MAIL_PORT
	Port int `env:"PORT"`
	// Env: MAIL_USERNAME
	Username string `env:"USERNAME"`
	// Env: MAIL_PASSWORD
	Password string `env:"PASSWORD"`
	// From is the sender address of outgoing emails.
	// Env: MAIL_FROM
	From string `env:"FROM"`
}

// OAuth groups the credentials of every supported social login provider.
// A provider with an empty ClientID is disabled.
type OAuth struct {
	Google   OAuthProvider `envPrefix:"GOOGLE_"`
	Facebook OAuthProvider `envPrefix:"FACEBOOK_"`
	GitHub   OAuthProvider `envPrefix:"GITHUB_"`
}

// OAuthProvider holds the client credentials registered with one provider.
type OAuthProvider struct {
	// Env: OAUTH_<PROVIDER>_CLIENT_ID
	ClientID string `env:"CLIENT_ID"`
	// Env: OAUTH_<PROVIDER>_CLIENT_SECRET
	ClientSecret string `env:"CLIENT_SECRET"`
	// RedirectURL is the callback URL registered with the provider.
	// Env: OAUTH_<PROVIDER>_REDIRECT_URL
	RedirectURL string `env:"REDIRECT_URL"`
}

// Enabled reports whether the provider is configured.
func (p OAuthProvider) Enabled() bool {
	return p.ClientID != "" && p.ClientSecret != ""
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  0. Built-in defaults
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		build()
}
