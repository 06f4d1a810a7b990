// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter talks to third-party OAuth providers on behalf of the
// account service.
//
// The primary abstraction is [Provider], which hides the authorization-code
// exchange and the provider-specific user-info call behind a single
// [Provider.Identity] method. Google, Facebook and GitHub implementations are
// built on golang.org/x/oauth2; user-info requests go through resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] regardless of provider.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-pet-life/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/oauth_provider_mock.go -package=mock

// Provider is one OAuth 2.0 identity provider.
type Provider interface {
	// Name identifies the provider, e.g. "github".
	Name() models.AuthProvider

	// AuthCodeURL returns the provider consent page URL. state is echoed back
	// on the callback and must be checked by the caller.
	AuthCodeURL(state string) string

	// Identity exchanges an authorization code for an access token and
	// fetches the identity it grants access to. The returned email is
	// lower-cased and never empty.
	Identity(ctx context.Context, code string) (models.ExternalIdentity, error)
}
