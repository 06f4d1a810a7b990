// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-pet-life/internal/app"
	"github.com/MKhiriev/go-pet-life/internal/logger"
	"github.com/MKhiriev/go-pet-life/internal/service"
	"github.com/MKhiriev/go-pet-life/internal/utils"
	"github.com/MKhiriev/go-pet-life/models"
)

// withSession loads the session named by the session cookie and stores it
// in the request context under [utils.SessionCtxKey]. Requests without a
// cookie, or with an unknown one, get an anonymous session. A session store
// outage is logged and the request continues anonymously.
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		var id string
		if cookie, err := r.Cookie(h.session.CookieName); err == nil {
			id = cookie.Value
		}

		sess, err := h.services.SessionService.Load(r.Context(), id)
		if err != nil {
			log.Err(err).Msg("error loading session")
		}

		ctx := utils.WithSession(r.Context(), sess)
		if userID, ok := utils.GetUserIDFromContext(ctx); ok {
			ctx = logger.FromContext(ctx).WithUserID(userID).WithContext(ctx)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireSession rejects anonymous requests with 401 and a redirect to the
// login view before the wrapped handler runs.
func (h *Handler) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, _ := utils.GetSessionFromContext(r.Context())
		if _, err := service.RequireSession(sess); err != nil {
			logger.FromRequest(r).Info().Str("uri", r.RequestURI).Msg("anonymous request to guarded route")

			outcome := models.Failure(app.MsgLoginRequired, "")
			outcome.Redirect = "/login"
			h.writeSessionCookie(w, r, sess)
			utils.WriteJSON(w, outcome, http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// writeSessionCookie brings the session cookie in line with sess: a new id
// is set, a cleared session expires the cookie, an unchanged one is left
// alone. Must be called before the response header is written.
func (h *Handler) writeSessionCookie(w http.ResponseWriter, r *http.Request, sess *models.Session) {
	var current string
	if cookie, err := r.Cookie(h.session.CookieName); err == nil {
		current = cookie.Value
	}

	if sess == nil || sess.ID == current {
		return
	}

	cookie := &http.Cookie{
		Name:     h.session.CookieName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.session.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	}

	// regular sessions keep a browser-session cookie
	switch {
	case sess.ID == "":
		cookie.MaxAge = -1
	case sess.Permanent:
		cookie.MaxAge = int(h.session.PermanentLifetime.Seconds())
	}

	http.SetCookie(w, cookie)
}

// session returns the request session attached by withSession.
func session(r *http.Request) *models.Session {
	sess, _ := utils.GetSessionFromContext(r.Context())
	return sess
}

// respond syncs the session cookie and writes either out or the reply for
// err as JSON.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, sess *models.Session, out models.Outcome, err error, overrides ...errorOutcome) {
	h.writeSessionCookie(w, r, sess)

	if err == nil {
		utils.WriteJSON(w, out, http.StatusOK)
		return
	}

	status := statusFromError(err)
	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Info().Err(err).Int("status", status).Msg("request rejected")
	}

	utils.WriteJSON(w, outcomeFromError(err, overrides...), status)
}
