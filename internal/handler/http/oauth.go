package http

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"time"

	"github.com/MKhiriev/go-pet-life/internal/service"
	"github.com/MKhiriev/go-pet-life/internal/utils"
	"github.com/MKhiriev/go-pet-life/models"
	"github.com/go-chi/chi/v5"
)

const (
	oauthStateCookie   = "oauth_state"
	oauthStateLifetime = 10 * time.Minute
	oauthCookiePath    = "/api/auth/oauth"
)

// oauthLogin stores a random state in a short-lived cookie and redirects to
// the provider's consent page.
func (h *Handler) oauthLogin(w http.ResponseWriter, r *http.Request) {
	state := utils.NewUUIDGenerator().Random()

	url, err := h.services.OAuthService.AuthCodeURL(chi.URLParam(r, "provider"), state)
	if err != nil {
		h.respond(w, r, session(r), models.Outcome{}, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     oauthCookiePath,
		MaxAge:   int(oauthStateLifetime.Seconds()),
		HttpOnly: true,
		Secure:   h.session.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, url, http.StatusFound)
}

// oauthCallback checks the echoed state and signs in the identity behind
// the authorization code.
func (h *Handler) oauthCallback(w http.ResponseWriter, r *http.Request) {
	sess := session(r)
	query := r.URL.Query()

	// the state is single-use
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Path:     oauthCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.session.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	if reason := query.Get("error"); reason != "" {
		h.respond(w, r, sess, models.Outcome{}, fmt.Errorf("%w: %w: %s", service.ErrOAuthFailed, ErrOAuthDenied, reason))
		return
	}

	stored, err := r.Cookie(oauthStateCookie)
	state := query.Get("state")
	if err != nil || state == "" || subtle.ConstantTimeCompare([]byte(stored.Value), []byte(state)) != 1 {
		h.respond(w, r, sess, models.Outcome{}, fmt.Errorf("%w: %w", service.ErrOAuthFailed, ErrOAuthStateMismatch))
		return
	}

	out, err := h.services.OAuthService.Callback(r.Context(), sess, chi.URLParam(r, "provider"), query.Get("code"))
	h.respond(w, r, sess, out, err)
}
