// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenPurpose binds an action token to a single flow. Tokens issued for
// one purpose never verify for another.
type TokenPurpose string

const (
	// PurposeConfirm is used for email-confirmation links.
	PurposeConfirm TokenPurpose = "confirm"
	// PurposeReset is used for password-reset links.
	PurposeReset TokenPurpose = "reset"
)

// String returns the purpose as a plain string.
func (p TokenPurpose) String() string {
	return string(p)
}

// ActionClaims is the claim set carried by confirmation and reset tokens.
//
// The "sub" claim holds the email address the token was issued for and the
// "iat" claim its issue time; the token age is measured against "iat" at
// verification time.
type ActionClaims struct {
	// Purpose repeats the purpose the token was signed for.
	Purpose TokenPurpose `json:"purpose"`

	jwt.RegisteredClaims
}

// Email returns the address the token was issued for.
func (c *ActionClaims) Email() string {
	return c.Subject
}
