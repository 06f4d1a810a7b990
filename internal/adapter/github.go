package adapter

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-pet-life/internal/config"
	"github.com/MKhiriev/go-pet-life/internal/utils"
	"github.com/MKhiriev/go-pet-life/models"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

const githubAPIURL = "https://api.github.com"

type githubUser struct {
	Login string `json:"login"`
	Email string `json:"email"`
}

type githubEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

// NewGitHubProvider returns the GitHub OAuth app provider.
func NewGitHubProvider(pc config.OAuthProvider, client *utils.HTTPClient) Provider {
	return newGitHubProvider(pc, client, endpoints.GitHub, githubAPIURL)
}

func newGitHubProvider(pc config.OAuthProvider, client *utils.HTTPClient, endpoint oauth2.Endpoint, apiURL string) *oauthProvider {
	cfg := oauthConfig(pc, endpoint, "user:email", "read:user")
	apiURL = strings.TrimRight(apiURL, "/")

	return newOAuthProvider(models.ProviderGitHub, cfg, client,
		func(ctx context.Context, client *utils.HTTPClient, token *oauth2.Token) (models.ExternalIdentity, error) {
			var user githubUser
			resp, err := client.R().
				SetContext(ctx).
				SetAuthToken(token.AccessToken).
				SetResult(&user).
				Get(apiURL + "/user")
			if err != nil {
				return models.ExternalIdentity{}, fmt.Errorf("user request: %w", err)
			}
			if err = mapHTTPError(resp); err != nil {
				return models.ExternalIdentity{}, err
			}

			identity := models.ExternalIdentity{Email: user.Email, Username: user.Login}
			if identity.Email != "" {
				return identity, nil
			}

			// the public profile hides private addresses
			var emails []githubEmail
			resp, err = client.R().
				SetContext(ctx).
				SetAuthToken(token.AccessToken).
				SetResult(&emails).
				Get(apiURL + "/user/emails")
			if err != nil {
				return models.ExternalIdentity{}, fmt.Errorf("emails request: %w", err)
			}
			if err = mapHTTPError(resp); err != nil {
				return models.ExternalIdentity{}, err
			}

			identity.Email = primaryVerifiedEmail(emails)
			return identity, nil
		})
}

func primaryVerifiedEmail(emails []githubEmail) string {
	var fallback string
	for _, e := range emails {
		if !e.Verified {
			continue
		}
		if e.Primary {
			return e.Email
		}
		if fallback == "" {
			fallback = e.Email
		}
	}
	return fallback
}
