package service

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the service layer. The transport layer maps
// them to status codes with [errors.Is].
var (
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("account already exists")
	ErrTokenExpired       = errors.New("token is expired")
	ErrTokenInvalid       = errors.New("token is invalid")
	ErrDispatch           = errors.New("email dispatch failed")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotVerified   = errors.New("email is not verified")
	ErrSessionRequired    = errors.New("session required")
	ErrPetNotFound        = errors.New("pet not found")
	ErrForbidden          = errors.New("forbidden")

	ErrUnknownProvider = errors.New("unknown oauth provider")
	ErrOAuthFailed     = errors.New("oauth login failed")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

// FieldError is a user-facing failure tied to an optional form field.
// Kind is one of the sentinels above and is what errors.Is matches.
type FieldError struct {
	Kind    error
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%v: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%v: %s: %s", e.Kind, e.Field, e.Message)
}

func (e *FieldError) Unwrap() error {
	return e.Kind
}

func invalidField(field, message string) error {
	return &FieldError{Kind: ErrValidation, Field: field, Message: message}
}

// ConflictError reports which unique account attributes are already taken.
type ConflictError struct {
	UsernameExists bool
	EmailExists    bool
}

func (e *ConflictError) Error() string {
	switch {
	case e.EmailExists && e.UsernameExists:
		return "username and email already exist"
	case e.EmailExists:
		return "email already exists"
	default:
		return "username already exists"
	}
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}
