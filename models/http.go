// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// RegisterRequest is the body of the registration form.
type RegisterRequest struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Confirmation string `json:"confirmation"`
}

// LoginRequest is the body of the login form. Identifier is either the
// username or the email address.
type LoginRequest struct {
	Identifier string `json:"username"`
	Password   string `json:"password"`
	Remember   bool   `json:"remember"`
}

// ChangePasswordRequest is the body of the change-password form.
type ChangePasswordRequest struct {
	OldPassword  string `json:"old_password"`
	NewPassword  string `json:"new_password"`
	Confirmation string `json:"confirmation"`
}

// EmailRequest carries a single email address (resend confirmation,
// request password reset).
type EmailRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest is the body of the reset-password form.
type ResetPasswordRequest struct {
	Token        string `json:"token"`
	NewPassword  string `json:"new_password"`
	Confirmation string `json:"confirmation"`
}
