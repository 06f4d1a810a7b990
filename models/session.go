// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Session is the per-request view of a server-side session.
//
// An anonymous session has an empty ID and zero UserID. The transport layer
// loads a Session from the session cookie, hands it to service operations
// and writes the cookie back from the resulting state.
type Session struct {
	// ID is the opaque session identifier carried in the session cookie.
	// It is never stored in plain form on the server.
	ID string `json:"-"`

	// UserID is the authenticated account, zero when anonymous.
	UserID int64 `json:"user_id"`

	// Permanent is set by "remember me" and extends the session lifetime.
	Permanent bool `json:"permanent"`
}

// NewAnonymousSession returns an empty, unauthenticated session.
func NewAnonymousSession() *Session {
	return &Session{}
}

// Current returns the authenticated user ID, if any.
func (s *Session) Current() (int64, bool) {
	if s == nil || s.ID == "" || s.UserID == 0 {
		return 0, false
	}
	return s.UserID, true
}

// Authenticated reports whether the session belongs to a signed-in account.
func (s *Session) Authenticated() bool {
	_, ok := s.Current()
	return ok
}

// Reset turns the session into an anonymous one in place.
func (s *Session) Reset() {
	s.ID = ""
	s.UserID = 0
	s.Permanent = false
}
