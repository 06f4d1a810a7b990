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

const facebookUserInfoURL = "https://graph.facebook.com/me"

type facebookUserInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NewFacebookProvider returns the Facebook Login provider.
func NewFacebookProvider(pc config.OAuthProvider, client *utils.HTTPClient) Provider {
	return newFacebookProvider(pc, client, endpoints.Facebook, facebookUserInfoURL)
}

func newFacebookProvider(pc config.OAuthProvider, client *utils.HTTPClient, endpoint oauth2.Endpoint, userInfoURL string) *oauthProvider {
	cfg := oauthConfig(pc, endpoint, "email")

	return newOAuthProvider(models.ProviderFacebook, cfg, client,
		func(ctx context.Context, client *utils.HTTPClient, token *oauth2.Token) (models.ExternalIdentity, error) {
			var info facebookUserInfo
			resp, err := client.R().
				SetContext(ctx).
				SetQueryParam("fields", "id,name,email").
				SetAuthToken(token.AccessToken).
				SetResult(&info).
				Get(userInfoURL)
			if err != nil {
				return models.ExternalIdentity{}, fmt.Errorf("me request: %w", err)
			}
			if err = mapHTTPError(resp); err != nil {
				return models.ExternalIdentity{}, err
			}

			return models.ExternalIdentity{Email: info.Email, Username: info.Name}, nil
		})
}
