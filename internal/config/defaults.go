// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

// Default values applied before any other source.
const (
	DefaultHTTPAddress       = "localhost:8080"
	DefaultRequestTimeout    = 30 * time.Second
	DefaultTokenIssuer       = "go-pet-life"
	DefaultTokenMaxAge       = time.Hour
	DefaultPublicURL         = "http://localhost:8080"
	DefaultCookieName        = "session_id"
	DefaultSessionLifetime   = 24 * time.Hour
	DefaultPermanentLifetime = 31 * 24 * time.Hour
	DefaultMailPort          = 587
	DefaultMailFrom          = "no-reply@petlife.local"
	DefaultRedisAddress      = "localhost:6379"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer: DefaultTokenIssuer,
			TokenMaxAge: DefaultTokenMaxAge,
			PublicURL:   DefaultPublicURL,
		},
		Storage: Storage{
			Redis: Redis{Address: DefaultRedisAddress},
		},
		Server: Server{
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		Session: Session{
			CookieName:        DefaultCookieName,
			Lifetime:          DefaultSessionLifetime,
			PermanentLifetime: DefaultPermanentLifetime,
		},
		Mail: Mail{
			Port: DefaultMailPort,
			From: DefaultMailFrom,
		},
	}
}
