// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Outcome categories mirror the flash categories used by the web client.
const (
	CategorySuccess = "success"
	CategoryDanger  = "danger"
)

// Outcome is the response body of every form-style endpoint.
//
// On success Redirect points at the view the client should show next.
// On failure Message is a human-readable explanation, Field optionally
// names the form field to highlight, and Redirect is set only when the
// user has to continue elsewhere (e.g. "already registered" → login).
type Outcome struct {
	Message  string `json:"message"`
	Category string `json:"category"`
	Field    string `json:"field,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

// Success builds a success outcome.
func Success(message, redirect string) Outcome {
	return Outcome{Message: message, Category: CategorySuccess, Redirect: redirect}
}

// Failure builds a failure outcome.
func Failure(message, field string) Outcome {
	return Outcome{Message: message, Category: CategoryDanger, Field: field}
}

// PetsResponse lists the pets owned by the current account.
type PetsResponse struct {
	Pets   []Pet `json:"pets"`
	Length int   `json:"length"`
}
