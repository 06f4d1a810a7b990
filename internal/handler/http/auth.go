package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-pet-life/internal/app"
	"github.com/MKhiriev/go-pet-life/internal/service"
	"github.com/MKhiriev/go-pet-life/internal/utils"
	"github.com/MKhiriev/go-pet-life/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	sess := session(r)

	var req models.RegisterRequest
	if err := decode(r, &req); err != nil {
		h.respond(w, r, sess, models.Outcome{}, err)
		return
	}

	out, err := h.services.AccountService.Register(r.Context(), req)
	h.respond(w, r, sess, out, err)
}

func (h *Handler) confirmEmail(w http.ResponseWriter, r *http.Request) {
	sess := session(r)

	out, err := h.services.AccountService.ConfirmEmail(r.Context(), sess, chi.URLParam(r, "token"))
	h.respond(w, r, sess, out, err)
}

func (h *Handler) resendConfirmation(w http.ResponseWriter, r *http.Request) {
	sess := session(r)

	var req models.EmailRequest
	if err := decode(r, &req); err != nil {
		h.respond(w, r, sess, models.Outcome{}, err)
		return
	}

	out, err := h.services.AccountService.ResendConfirmation(r.Context(), req.Email)
	h.respond(w, r, sess, out, err)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	sess := session(r)

	var req models.LoginRequest
	if err := decode(r, &req); err != nil {
		h.respond(w, r, sess, models.Outcome{}, err)
		return
	}

	out, err := h.services.AccountService.Login(r.Context(), sess, req)
	h.respond(w, r, sess, out, err)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	sess := session(r)

	out, err := h.services.AccountService.Logout(r.Context(), sess)
	h.respond(w, r, sess, out, err)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	sess := session(r)

	var req models.ChangePasswordRequest
	if err := decode(r, &req); err != nil {
		h.respond(w, r, sess, models.Outcome{}, err)
		return
	}

	out, err := h.services.AccountService.ChangePassword(r.Context(), sess, req)
	h.respond(w, r, sess, out, err)
}

func (h *Handler) requestPasswordReset(w http.ResponseWriter, r *http.Request) {
	sess := session(r)

	var req models.EmailRequest
	if err := decode(r, &req); err != nil {
		h.respond(w, r, sess, models.Outcome{}, err)
		return
	}

	out, err := h.services.AccountService.RequestPasswordReset(r.Context(), req.Email)
	h.respond(w, r, sess, out, err)
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	sess := session(r)

	var req models.ResetPasswordRequest
	if err := decode(r, &req); err != nil {
		h.respond(w, r, sess, models.Outcome{}, err)
		return
	}

	out, err := h.services.AccountService.ResetPassword(r.Context(), sess, req)
	h.respond(w, r, sess, out, err,
		failure(service.ErrTokenExpired, app.MsgResetLinkExpired, "/login"),
		failure(service.ErrTokenInvalid, app.MsgResetLinkInvalid, "/login"),
	)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	sess := session(r)

	account, err := h.services.AccountService.CurrentAccount(r.Context(), sess)
	if err != nil {
		h.respond(w, r, sess, models.Outcome{}, err)
		return
	}

	utils.WriteJSON(w, account, http.StatusOK)
}

// decode reads a JSON body into dst, reporting failures as ErrInvalidBody.
func decode(r *http.Request, dst any) error {
	if err := utils.DecodeJSON(r, dst); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}
	return nil
}
