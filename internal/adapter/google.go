package adapter

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-pet-life/internal/config"
	"github.com/MKhiriev/go-pet-life/internal/utils"
	"github.com/MKhiriev/go-pet-life/models"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

const googleUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

type googleUserInfo struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
}

// NewGoogleProvider returns the Google OpenID Connect provider.
func NewGoogleProvider(pc config.OAuthProvider, client *utils.HTTPClient) Provider {
	return newGoogleProvider(pc, client, endpoints.Google, googleUserInfoURL)
}

func newGoogleProvider(pc config.OAuthProvider, client *utils.HTTPClient, endpoint oauth2.Endpoint, userInfoURL string) *oauthProvider {
	cfg := oauthConfig(pc, endpoint,
		"openid",
		"https://www.googleapis.com/auth/userinfo.email",
		"https://www.googleapis.com/auth/userinfo.profile",
	)

	return newOAuthProvider(models.ProviderGoogle, cfg, client,
		func(ctx context.Context, client *utils.HTTPClient, token *oauth2.Token) (models.ExternalIdentity, error) {
			var info googleUserInfo
			resp, err := client.R().
				SetContext(ctx).
				SetAuthToken(token.AccessToken).
				SetResult(&info).
				Get(userInfoURL)
			if err != nil {
				return models.ExternalIdentity{}, fmt.Errorf("userinfo request: %w", err)
			}
			if err = mapHTTPError(resp); err != nil {
				return models.ExternalIdentity{}, err
			}
			if !info.EmailVerified {
				return models.ExternalIdentity{}, ErrNoEmail
			}

			username := info.GivenName
			if username == "" {
				username = info.Name
			}
			return models.ExternalIdentity{Email: info.Email, Username: username}, nil
		})
}
