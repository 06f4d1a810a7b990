package service

import (
	"fmt"
	"time"

	"github.com/MKhiriev/go-pet-life/internal/config"
	"github.com/MKhiriev/go-pet-life/internal/utils"
	"github.com/MKhiriev/go-pet-life/models"
	"github.com/golang-jwt/jwt/v5"
)

// tokenKeyLabel prefixes the purpose when deriving a per-purpose signing key.
const tokenKeyLabel = "pet-life/action-token/"

// tokenService signs email-bound action tokens (confirmation, password
// reset) as HS256 JWTs. Each purpose signs with its own key derived from
// the application secret, so a token never verifies for another purpose.
type tokenService struct {
	signKey string
	issuer  string
	now     func() time.Time
}

// NewTokenService builds a TokenService from the application secret and
// issuer.
func NewTokenService(cfg config.App) TokenService {
	return newTokenService(cfg.TokenSignKey, cfg.TokenIssuer, time.Now)
}

func newTokenService(signKey, issuer string, now func() time.Time) *tokenService {
	return &tokenService{signKey: signKey, issuer: issuer, now: now}
}

func (t *tokenService) Issue(email string, purpose models.TokenPurpose) (string, error) {
	claims := &models.ActionClaims{
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  email,
			Issuer:   t.issuer,
			IssuedAt: jwt.NewNumericDate(t.now()),
		},
	}

	token, err := utils.SignActionToken(claims, t.key(purpose))
	if err != nil {
		return "", fmt.Errorf("error issuing %s token: %w", purpose, err)
	}
	return token, nil
}

// Verify returns the email the token was issued for. Tokens older than
// maxAge fail with ErrTokenExpired, anything else that does not check out
// fails with ErrTokenInvalid.
func (t *tokenService) Verify(token string, purpose models.TokenPurpose, maxAge time.Duration) (string, error) {
	if token == "" {
		return "", fmt.Errorf("%w: empty token", ErrTokenInvalid)
	}

	claims, err := utils.ParseActionToken(token, t.key(purpose), t.issuer)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}
	if claims.Purpose != purpose {
		return "", fmt.Errorf("%w: purpose %q, expected %q", ErrTokenInvalid, claims.Purpose, purpose)
	}

	if age := t.now().Sub(claims.IssuedAt.Time); age > maxAge {
		return "", fmt.Errorf("%w: issued %s ago", ErrTokenExpired, age.Truncate(time.Second))
	}

	return claims.Email(), nil
}

func (t *tokenService) key(purpose models.TokenPurpose) []byte {
	return utils.DeriveKey(t.signKey, tokenKeyLabel+purpose.String())
}
