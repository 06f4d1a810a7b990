// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, hashing,
// HTTP response writing, HTTP client initialization, action token signing
// and parsing, and other common operations.
package utils

import (
	"context"

	"github.com/MKhiriev/go-pet-life/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// SessionCtxKey is the key under which the request's *models.Session is
// stored by the session middleware.
var SessionCtxKey = contextKey("session")

// GetUserIDFromContext returns the account signed in on the request session.
// ok is false for anonymous requests and contexts without a session.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	session, ok := GetSessionFromContext(ctx)
	if !ok {
		return 0, false
	}
	return session.Current()
}

// WithSession returns a copy of ctx carrying session.
func WithSession(ctx context.Context, session *models.Session) context.Context {
	return context.WithValue(ctx, SessionCtxKey, session)
}

// GetSessionFromContext returns the session attached by WithSession.
// When none is attached, a fresh anonymous session is returned with ok == false.
func GetSessionFromContext(ctx context.Context) (*models.Session, bool) {
	session, ok := ctx.Value(SessionCtxKey).(*models.Session)
	if !ok || session == nil {
		return models.NewAnonymousSession(), false
	}
	return session, true
}
