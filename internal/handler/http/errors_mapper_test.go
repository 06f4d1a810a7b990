package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-pet-life/internal/app"
	"github.com/MKhiriev/go-pet-life/internal/service"
	"github.com/MKhiriev/go-pet-life/models"
	"github.com/stretchr/testify/assert"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{service.ErrValidation, http.StatusBadRequest},
		{&service.FieldError{Kind: service.ErrValidation, Field: "email"}, http.StatusBadRequest},
		{&service.ConflictError{EmailExists: true}, http.StatusConflict},
		{fmt.Errorf("confirm: %w", service.ErrTokenExpired), http.StatusGone},
		{service.ErrTokenInvalid, http.StatusBadRequest},
		{service.ErrDispatch, http.StatusBadGateway},
		{service.ErrInvalidCredentials, http.StatusUnauthorized},
		{service.ErrEmailNotVerified, http.StatusForbidden},
		{service.ErrSessionRequired, http.StatusUnauthorized},
		{service.ErrPetNotFound, http.StatusNotFound},
		{service.ErrForbidden, http.StatusForbidden},
		{service.ErrUnknownProvider, http.StatusNotFound},
		{service.ErrOAuthFailed, http.StatusBadGateway},
		{ErrInvalidBody, http.StatusBadRequest},
		{ErrInvalidPetID, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}

func TestStatusFromError_FirstListedSentinelWins(t *testing.T) {
	err := errors.Join(service.ErrValidation, service.ErrDispatch)
	for range 50 {
		assert.Equal(t, http.StatusBadGateway, statusFromError(err))
	}
}

func TestOutcomeFromError_OverridesWin(t *testing.T) {
	override := failure(service.ErrTokenExpired, app.MsgResetLinkExpired, "/login")

	got := outcomeFromError(service.ErrTokenExpired, override)
	assert.Equal(t, app.MsgResetLinkExpired, got.Message)
	assert.Equal(t, "/login", got.Redirect)

	got = outcomeFromError(service.ErrTokenExpired)
	assert.Equal(t, app.MsgConfirmationExpired, got.Message)
	assert.Equal(t, "/register", got.Redirect)
}

func TestOutcomeFromError_EmailNotVerified(t *testing.T) {
	err := &service.FieldError{Kind: service.ErrEmailNotVerified, Message: app.MsgVerifyEmailFirst}

	assert.Equal(t, models.Failure(app.MsgVerifyEmailFirst, ""), outcomeFromError(err))
	assert.Equal(t, http.StatusForbidden, statusFromError(err))
}
