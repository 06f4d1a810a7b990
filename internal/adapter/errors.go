package adapter

import "errors"

var (
	// ErrUnknownProvider is returned for provider names that are not
	// configured.
	ErrUnknownProvider = errors.New("unknown oauth provider")
	// ErrExchangeFailed is returned when the authorization code could not be
	// exchanged for a token.
	ErrExchangeFailed = errors.New("oauth code exchange failed")
	// ErrNoEmail is returned when the provider does not disclose a usable
	// email address.
	ErrNoEmail = errors.New("oauth provider returned no email")

	// ErrTokenRejected is returned when the profile API refuses the access
	// token (401, 403).
	ErrTokenRejected = errors.New("provider rejected access token")
	// ErrProviderUnavailable is returned for 5xx replies.
	ErrProviderUnavailable = errors.New("provider unavailable")
	ErrUnexpectedResponse  = errors.New("unexpected provider response")
)
