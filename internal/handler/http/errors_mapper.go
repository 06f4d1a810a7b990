package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-pet-life/internal/app"
	"github.com/MKhiriev/go-pet-life/internal/service"
	"github.com/MKhiriev/go-pet-life/models"
)

type errorStatus struct {
	target error
	status int
}

// errorStatuses is checked in order, so an error wrapping several
// sentinels always gets the status of the first one listed.
var errorStatuses = []errorStatus{
	{service.ErrDispatch, http.StatusBadGateway},
	{service.ErrOAuthFailed, http.StatusBadGateway},
	{service.ErrInvalidCredentials, http.StatusUnauthorized},
	{service.ErrSessionRequired, http.StatusUnauthorized},
	{service.ErrEmailNotVerified, http.StatusForbidden},
	{service.ErrForbidden, http.StatusForbidden},
	{service.ErrAccountNotFound, http.StatusNotFound},
	{service.ErrPetNotFound, http.StatusNotFound},
	{service.ErrUnknownProvider, http.StatusNotFound},
	{service.ErrConflict, http.StatusConflict},
	{service.ErrTokenExpired, http.StatusGone},
	{service.ErrTokenInvalid, http.StatusBadRequest},
	{service.ErrValidation, http.StatusBadRequest},
	{ErrInvalidBody, http.StatusBadRequest},
	{ErrInvalidPetID, http.StatusBadRequest},
}

func statusFromError(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.target) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// errorOutcome pairs an error with the reply shown for it.
type errorOutcome struct {
	target  error
	outcome models.Outcome
}

func failure(target error, message, redirect string) errorOutcome {
	outcome := models.Failure(message, "")
	outcome.Redirect = redirect
	return errorOutcome{target: target, outcome: outcome}
}

// defaultOutcomes is checked in order after any per-route overrides.
var defaultOutcomes = []errorOutcome{
	failure(service.ErrDispatch, app.MsgEmailDispatchFailed, ""),
	failure(service.ErrInvalidCredentials, app.MsgInvalidCredentials, ""),
	failure(service.ErrSessionRequired, app.MsgLoginRequired, "/login"),
	failure(service.ErrAccountNotFound, app.MsgAccountNotFound, ""),
	failure(service.ErrPetNotFound, app.MsgPetNotFound, ""),
	failure(service.ErrForbidden, app.MsgAccessDenied, ""),
	failure(service.ErrTokenExpired, app.MsgConfirmationExpired, "/register"),
	failure(service.ErrTokenInvalid, app.MsgVerificationFailed, "/register"),
	failure(service.ErrUnknownProvider, app.MsgUnknownProvider, "/login"),
	failure(service.ErrOAuthFailed, app.MsgExternalLoginFailed, "/login"),
	failure(service.ErrValidation, app.MsgInvalidDataProvided, ""),
	failure(ErrInvalidBody, app.MsgInvalidDataProvided, ""),
	failure(ErrInvalidPetID, app.MsgInvalidDataProvided, ""),
}

// outcomeFromError builds the reply for err. Field errors and conflicts
// carry their own wording, everything else is looked up in overrides and
// then defaultOutcomes. Unknown errors never leak their text.
func outcomeFromError(err error, overrides ...errorOutcome) models.Outcome {
	var fieldErr *service.FieldError
	if errors.As(err, &fieldErr) {
		return models.Failure(fieldErr.Message, fieldErr.Field)
	}

	var conflict *service.ConflictError
	if errors.As(err, &conflict) {
		if conflict.EmailExists {
			outcome := models.Failure(app.MsgAlreadyRegistered, "email")
			outcome.Redirect = "/login"
			return outcome
		}
		return models.Failure(app.MsgUsernameTaken, "username")
	}

	for _, list := range [][]errorOutcome{overrides, defaultOutcomes} {
		for _, candidate := range list {
			if errors.Is(err, candidate.target) {
				return candidate.outcome
			}
		}
	}

	return models.Failure(app.MsgInternalServerError, "")
}
