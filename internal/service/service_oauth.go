package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pet-life/internal/adapter"
	"github.com/MKhiriev/go-pet-life/internal/logger"
	"github.com/MKhiriev/go-pet-life/models"
)

type oauthService struct {
	providers ProviderRegistry
	accounts  AccountService
	logger    *logger.Logger
}

// NewOAuthService signs OAuth identities in through accounts.
func NewOAuthService(providers ProviderRegistry, accounts AccountService, logger *logger.Logger) OAuthService {
	return &oauthService{providers: providers, accounts: accounts, logger: logger}
}

func (o *oauthService) AuthCodeURL(provider, state string) (string, error) {
	p, err := o.provider(provider)
	if err != nil {
		return "", err
	}
	return p.AuthCodeURL(state), nil
}

// Callback resolves code to an identity with the provider and hands it to
// AccountService.ExternalLogin. Provider failures are reported as
// ErrOAuthFailed.
func (o *oauthService) Callback(ctx context.Context, sess *models.Session, provider, code string) (models.Outcome, error) {
	p, err := o.provider(provider)
	if err != nil {
		return models.Outcome{}, err
	}

	identity, err := p.Identity(ctx, code)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("provider", provider).Msg("oauth identity lookup failed")
		return models.Outcome{}, fmt.Errorf("%w: %w", ErrOAuthFailed, err)
	}

	return o.accounts.ExternalLogin(ctx, sess, identity)
}

func (o *oauthService) provider(name string) (adapter.Provider, error) {
	if o.providers == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
	p, err := o.providers.Get(name)
	if errors.Is(err, adapter.ErrUnknownProvider) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
