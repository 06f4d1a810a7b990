// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Errors raised by the transport layer itself. Callers can match against
// them with [errors.Is].
var (
	// ErrInvalidBody is returned when a request body cannot be decoded.
	ErrInvalidBody = errors.New("invalid request body")

	// ErrInvalidPetID is returned when the {petID} path segment is not a
	// positive integer.
	ErrInvalidPetID = errors.New("invalid pet id")

	// ErrOAuthStateMismatch is returned when the state echoed by the
	// provider differs from the one stored in the oauth_state cookie.
	ErrOAuthStateMismatch = errors.New("oauth state mismatch")

	// ErrOAuthDenied is returned when the provider redirects back with an
	// error instead of an authorization code.
	ErrOAuthDenied = errors.New("oauth authorization denied")
)
