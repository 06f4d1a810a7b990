package adapter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-pet-life/internal/config"
	"github.com/MKhiriev/go-pet-life/internal/logger"
	"github.com/MKhiriev/go-pet-life/internal/utils"
	"github.com/MKhiriev/go-pet-life/models"
	"golang.org/x/oauth2"
)

// fetchIdentityFunc reads the identity behind token from a provider API.
type fetchIdentityFunc func(ctx context.Context, client *utils.HTTPClient, token *oauth2.Token) (models.ExternalIdentity, error)

type oauthProvider struct {
	name   models.AuthProvider
	config *oauth2.Config
	client *utils.HTTPClient
	fetch  fetchIdentityFunc
}

func newOAuthProvider(name models.AuthProvider, cfg *oauth2.Config, client *utils.HTTPClient, fetch fetchIdentityFunc) *oauthProvider {
	return &oauthProvider{
		name:   name,
		config: cfg,
		client: client,
		fetch:  fetch,
	}
}

func (p *oauthProvider) Name() models.AuthProvider {
	return p.name
}

func (p *oauthProvider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

func (p *oauthProvider) Identity(ctx context.Context, code string) (models.ExternalIdentity, error) {
	log := logger.FromContext(ctx)

	// oauth2 picks the HTTP client for the token request from the context
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.client.GetClient())

	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		log.Err(err).Str("func", "*oauthProvider.Identity").Str("provider", string(p.name)).Msg("error exchanging code")
		return models.ExternalIdentity{}, fmt.Errorf("%w: %w", ErrExchangeFailed, err)
	}

	identity, err := p.fetch(ctx, p.client, token)
	if err != nil {
		log.Err(err).Str("func", "*oauthProvider.Identity").Str("provider", string(p.name)).Msg("error fetching identity")
		return models.ExternalIdentity{}, fmt.Errorf("%s user info: %w", p.name, err)
	}

	identity.Provider = p.name
	identity.Email = strings.ToLower(strings.TrimSpace(identity.Email))
	if identity.Email == "" {
		return models.ExternalIdentity{}, ErrNoEmail
	}
	if identity.Username == "" {
		identity.Username, _, _ = strings.Cut(identity.Email, "@")
	}

	return identity, nil
}

// Providers holds the enabled providers by name.
type Providers map[models.AuthProvider]Provider

// Get returns the provider registered under name.
func (p Providers) Get(name string) (Provider, error) {
	provider, ok := p[models.AuthProvider(strings.ToLower(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
	return provider, nil
}

// NewProviders builds every provider enabled in cfg. Missing redirect URLs
// default to <publicURL>/api/auth/oauth/<provider>/callback.
func NewProviders(cfg config.OAuth, publicURL string, timeout time.Duration, log *logger.Logger) Providers {
	providers := make(Providers)
	client := utils.NewHTTPClient(timeout)

	add := func(name models.AuthProvider, pc config.OAuthProvider, build func(config.OAuthProvider, *utils.HTTPClient) Provider) {
		if !pc.Enabled() {
			return
		}
		if pc.RedirectURL == "" {
			pc.RedirectURL = CallbackURL(publicURL, name)
		}
		providers[name] = build(pc, client)
		log.Info().Str("provider", string(name)).Msg("oauth provider enabled")
	}

	add(models.ProviderGoogle, cfg.Google, NewGoogleProvider)
	add(models.ProviderFacebook, cfg.Facebook, NewFacebookProvider)
	add(models.ProviderGitHub, cfg.GitHub, NewGitHubProvider)

	return providers
}

// CallbackURL returns the default callback URL of provider.
func CallbackURL(publicURL string, provider models.AuthProvider) string {
	return strings.TrimRight(publicURL, "/") + "/api/auth/oauth/" + string(provider) + "/callback"
}

func oauthConfig(pc config.OAuthProvider, endpoint oauth2.Endpoint, scopes ...string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     pc.ClientID,
		ClientSecret: pc.ClientSecret,
		RedirectURL:  pc.RedirectURL,
		Endpoint:     endpoint,
		Scopes:       scopes,
	}
}
