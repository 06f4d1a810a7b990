// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// AuthProvider names the party that authenticated an account.
type AuthProvider string

const (
	// ProviderLocal marks accounts registered with a username and password.
	ProviderLocal AuthProvider = "local"
	// ProviderGoogle marks accounts created from a Google identity.
	ProviderGoogle AuthProvider = "google"
	// ProviderFacebook marks accounts created from a Facebook identity.
	ProviderFacebook AuthProvider = "facebook"
	// ProviderGitHub marks accounts created from a GitHub identity.
	ProviderGitHub AuthProvider = "github"
)

// Account represents a registered user of the application.
// It carries identity attributes, the credential hash and the
// email-verification state.
// Sensitive fields must never be exposed outside trusted boundaries.
type Account struct {
	// UserID is the server-assigned unique identifier of the account.
	UserID int64 `json:"user_id"`

	// Username is unique across all accounts (compared case-insensitively).
	Username string `json:"username"`

	// Email is unique across all accounts and stored lower-cased.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the account password.
	// Empty for externally-authenticated accounts, which have no usable
	// local password. Never serialized.
	PasswordHash string `json:"-"`

	// EmailVerified reports whether the owner completed email confirmation.
	EmailVerified bool `json:"email_verified"`

	// Provider is the party that authenticated the account.
	Provider AuthProvider `json:"provider"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Account model.
func (a Account) TableName() string {
	return "accounts"
}

// HasLocalPassword reports whether the account can authenticate with a
// local password.
func (a Account) HasLocalPassword() bool {
	return a.PasswordHash != ""
}

// AccountExistence reports which unique attributes are already taken.
type AccountExistence struct {
	UsernameExists bool `json:"username_exists"`
	EmailExists    bool `json:"email_exists"`
}

// Any reports whether either attribute is taken.
func (e AccountExistence) Any() bool {
	return e.UsernameExists || e.EmailExists
}

// ExternalIdentity is the pre-verified identity asserted by an OAuth
// provider after a successful callback.
type ExternalIdentity struct {
	Provider AuthProvider
	Email    string
	Username string
}
