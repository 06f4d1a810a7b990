package utils

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pet-life/models"
	"github.com/golang-jwt/jwt/v5"
)

// SignActionToken creates a signed HMAC-SHA256 JWT carrying claims.
//
// The caller fills in Subject, IssuedAt, Issuer and Purpose. The key is
// normally obtained from DeriveKey so that each purpose signs with its own
// key.
//
// Example usage:
//
//	key := utils.DeriveKey(secret, models.PurposeConfirm.String())
//	token, err := utils.SignActionToken(&claims, key)
func SignActionToken(claims *models.ActionClaims, signKey []byte) (string, error) {
	if claims == nil || claims.Subject == "" || claims.IssuedAt == nil || len(signKey) == 0 {
		return "", errors.New("invalid params for signing action token")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(signKey)
	if err != nil {
		return "", fmt.Errorf("error occurred during signing action token: %w", err)
	}

	return tokenString, nil
}

// ParseActionToken verifies the signature of tokenString and extracts its
// claims.
//
// Validation includes:
//   - HS256 signature verification with signKey
//   - Issuer (iss) claim check against tokenIssuer, when non-empty
//   - Presence of the subject (sub) and issued-at (iat) claims
//
// Token age is not checked here; callers compare IssuedAt with their own
// clock and maximum age.
func ParseActionToken(tokenString string, signKey []byte, tokenIssuer string) (*models.ActionClaims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if tokenIssuer != "" {
		opts = append(opts, jwt.WithIssuer(tokenIssuer))
	}

	claims := &models.ActionClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return signKey, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	if claims.Subject == "" {
		return nil, errors.New("empty subject error")
	}
	if claims.IssuedAt == nil {
		return nil, errors.New("missing issued-at claim")
	}

	return claims, nil
}
