// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// go-pet-life services, handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies to describe the outcome of an operation. Keeping them
// in one place ensures consistent wording throughout the API.
package app

// Registration.
const (
	MsgUsernameRequired     = "Username required."
	MsgUsernameHasAt        = "Username cannot contain @."
	MsgEmailRequired        = "Email required."
	MsgPasswordRequired     = "Password required."
	MsgConfirmationRequired = "Confirmation required."
	MsgInvalidEmailFormat   = "Invalid email format."
	MsgPasswordsMustMatch   = "Passwords must match."

	// MsgCheckEmail is returned after a successful registration or resend.
	MsgCheckEmail = "Please check your email to confirm your registration."

	// MsgAlreadyRegistered is returned when the email is already taken. The
	// client is redirected to the login view.
	MsgAlreadyRegistered = "Already registered"

	// MsgUsernameTaken is returned when only the username is taken.
	MsgUsernameTaken = "Username is already taken."

	// MsgEmailDispatchFailed is returned when the account was created but
	// the confirmation email could not be sent.
	MsgEmailDispatchFailed = "Email sending failed. Please request a new confirmation link."
)

// Email confirmation.
const (
	MsgConfirmationExpired = "The confirmation link has expired"
	MsgEmailConfirmed      = "Your email has been confirmed!"
	MsgVerificationFailed  = "Email verification failed. Please try registering again."
)

// Login and logout.
const (
	MsgIdentifierRequired  = "Username or email is required."
	MsgLoginPasswordNeeded = "Password is required."
	MsgInvalidCredentials  = "Invalid username/email or password."
	MsgLoginSuccessful     = "Login successful."
	MsgVerifyEmailFirst    = "Please verify your email first."
	MsgLoggedOut           = "You have been logged out."
)

// Password change and reset.
const (
	MsgAllFieldsRequired    = "All fields are required."
	MsgNewPasswordSameAsOld = "New password must be different from the old password."
	MsgNewPasswordsMismatch = "New passwords do not match."
	MsgInvalidOldPassword   = "Invalid old password."
	MsgPasswordChanged      = "Your password has been changed."

	// MsgResetRequested is returned for every reset request, whether or not
	// an account owns the address.
	MsgResetRequested   = "If an account exists for that email, a password reset link has been sent."
	MsgResetLinkExpired = "The password reset link has expired"
	MsgResetLinkInvalid = "The password reset link is invalid."
	MsgPasswordReset    = "Your password has been reset."
)

// OAuth.
const (
	MsgExternalLoginFailed = "Login with the external provider failed."
	MsgUnknownProvider     = "Unknown login provider."
)

// Generic.
const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails basic validation.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgLoginRequired is returned by guarded routes without a session.
	MsgLoginRequired = "Please log in to access this page."

	// MsgAccessDenied is returned when the authenticated user attempts to
	// access or modify a resource that belongs to a different user.
	MsgAccessDenied = "access denied"

	// MsgAccountNotFound is returned when the account behind a token or
	// session no longer exists.
	MsgAccountNotFound = "account not found"

	// MsgPetNotFound is returned when a pet does not exist.
	MsgPetNotFound = "pet not found"

	// MsgPetCreated is returned after a pet record was stored.
	MsgPetCreated = "Pet added."

	// MsgTrackerUpdated is returned after a tracker update.
	MsgTrackerUpdated = "Tracker updated."
)
