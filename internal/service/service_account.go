// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/MKhiriev/go-pet-life/internal/app"
	"github.com/MKhiriev/go-pet-life/internal/config"
	"github.com/MKhiriev/go-pet-life/internal/logger"
	"github.com/MKhiriev/go-pet-life/internal/mailer"
	"github.com/MKhiriev/go-pet-life/internal/metrics"
	"github.com/MKhiriev/go-pet-life/internal/store"
	"github.com/MKhiriev/go-pet-life/internal/validators"
	"github.com/MKhiriev/go-pet-life/models"
)

// maxUsernameSuffix bounds the numeric suffixes tried when an external
// identity's username is already taken.
const maxUsernameSuffix = 1000

// Email kinds recorded by metrics.
const (
	emailConfirmation  = "confirmation"
	emailPasswordReset = "password_reset"
)

// accountService is the concrete implementation of AccountService.
//
// It validates form input, persists accounts through an AccountRepository,
// issues confirmation and reset links with a TokenService, sends them with a
// mailer.Sender and opens sessions with a SessionService.
type accountService struct {
	accounts store.AccountRepository
	sessions SessionService
	tokens   TokenService
	hasher   PasswordHasher
	sender   mailer.Sender
	metrics  *metrics.Metrics

	// publicURL is the base of links sent by email, without trailing slash.
	publicURL string

	// tokenMaxAge is how long confirmation and reset links stay valid.
	tokenMaxAge time.Duration

	logger *logger.Logger
}

// NewAccountService wires an AccountService. m may be nil.
func NewAccountService(
	accounts store.AccountRepository,
	sessions SessionService,
	tokens TokenService,
	hasher PasswordHasher,
	sender mailer.Sender,
	m *metrics.Metrics,
	cfg config.App,
	logger *logger.Logger,
) AccountService {
	return &accountService{
		accounts:    accounts,
		sessions:    sessions,
		tokens:      tokens,
		hasher:      hasher,
		sender:      sender,
		metrics:     m,
		publicURL:   strings.TrimRight(cfg.PublicURL, "/"),
		tokenMaxAge: cfg.TokenMaxAge,
		logger:      logger,
	}
}

// Register creates a local account pending email verification and sends
// the confirmation link.
//
// Input is checked in order: presence of every field, username shape,
// email syntax, password strength, confirmation match. Usernames may not
// contain "@" so they never collide with an email at login. A taken email is reported as a
// *ConflictError with EmailExists set, a taken username with only
// UsernameExists set. When the email cannot be sent the account stays
// created and ErrDispatch is returned.
func (s *accountService) Register(ctx context.Context, req models.RegisterRequest) (_ models.Outcome, err error) {
	defer func() { s.metrics.RecordAuthEvent(metrics.EventRegister, err) }()
	log := logger.FromContext(ctx)

	username := strings.TrimSpace(req.Username)
	email := validators.NormalizeEmail(req.Email)

	switch {
	case username == "":
		return models.Outcome{}, invalidField("username", app.MsgUsernameRequired)
	case email == "":
		return models.Outcome{}, invalidField("email", app.MsgEmailRequired)
	case req.Password == "":
		return models.Outcome{}, invalidField("password", app.MsgPasswordRequired)
	case req.Confirmation == "":
		return models.Outcome{}, invalidField("confirmation", app.MsgConfirmationRequired)
	}

	if strings.Contains(username, "@") {
		return models.Outcome{}, invalidField("username", app.MsgUsernameHasAt)
	}
	if err = validators.ValidateEmail(email); err != nil {
		return models.Outcome{}, invalidField("email", app.MsgInvalidEmailFormat)
	}
	if err = checkPassword("password", req.Password); err != nil {
		return models.Outcome{}, err
	}
	if req.Password != req.Confirmation {
		return models.Outcome{}, invalidField("confirmation", app.MsgPasswordsMustMatch)
	}

	existence, err := s.accounts.Exists(ctx, username, email)
	if err != nil {
		log.Err(err).Msg("error checking account existence")
		return models.Outcome{}, fmt.Errorf("error checking account existence: %w", err)
	}
	if existence.Any() {
		return models.Outcome{}, &ConflictError{UsernameExists: existence.UsernameExists, EmailExists: existence.EmailExists}
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		log.Err(err).Msg("error hashing password")
		return models.Outcome{}, err
	}

	account, err := s.accounts.CreateAccount(ctx, models.Account{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Provider:     models.ProviderLocal,
	})
	if err != nil {
		if conflict := conflictFromStore(err); conflict != nil {
			return models.Outcome{}, conflict
		}
		log.Err(err).Msg("account creation ended with error")
		return models.Outcome{}, fmt.Errorf("account creation ended with error: %w", err)
	}
	log.Info().Int64("user_id", account.UserID).Msg("account registered")

	if err = s.sendConfirmation(ctx, account.Email); err != nil {
		return models.Outcome{}, err
	}

	return models.Success(app.MsgCheckEmail, "/login"), nil
}

// ConfirmEmail marks the address behind a confirmation token verified and
// signs its owner in. Confirming twice is harmless.
func (s *accountService) ConfirmEmail(ctx context.Context, sess *models.Session, token string) (_ models.Outcome, err error) {
	defer func() { s.metrics.RecordAuthEvent(metrics.EventConfirm, err) }()
	log := logger.FromContext(ctx)

	email, err := s.tokens.Verify(token, models.PurposeConfirm, s.tokenMaxAge)
	if err != nil {
		if errors.Is(err, ErrTokenInvalid) {
			log.Warn().Err(err).Msg("rejected confirmation token")
		}
		return models.Outcome{}, err
	}

	if err = s.accounts.SetVerified(ctx, email); err != nil {
		return models.Outcome{}, s.accountError(ctx, err, "error marking email verified")
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		return models.Outcome{}, s.accountError(ctx, err, "error loading confirmed account")
	}

	if account.EmailVerified {
		if err = s.sessions.Start(ctx, sess, account.UserID, false); err != nil {
			log.Err(err).Msg("error starting session after confirmation")
			return models.Outcome{}, err
		}
	}

	log.Info().Int64("user_id", account.UserID).Msg("email confirmed")
	return models.Success(app.MsgEmailConfirmed, "/"), nil
}

// ResendConfirmation sends a fresh confirmation link when an unverified
// account owns email. The reply is the same whether or not one does.
func (s *accountService) ResendConfirmation(ctx context.Context, email string) (_ models.Outcome, err error) {
	defer func() { s.metrics.RecordAuthEvent(metrics.EventResend, err) }()
	log := logger.FromContext(ctx)

	email = validators.NormalizeEmail(email)
	if email == "" {
		return models.Outcome{}, invalidField("email", app.MsgEmailRequired)
	}
	if err = validators.ValidateEmail(email); err != nil {
		return models.Outcome{}, invalidField("email", app.MsgInvalidEmailFormat)
	}

	reply := models.Success(app.MsgCheckEmail, "/login")

	account, err := s.accounts.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrAccountNotFound) {
		return reply, nil
	}
	if err != nil {
		log.Err(err).Msg("error looking up account for resend")
		return models.Outcome{}, fmt.Errorf("error looking up account: %w", err)
	}
	if account.EmailVerified {
		return reply, nil
	}

	// same reply as for unknown emails, so a failed send does not reveal
	// that an unverified account exists
	if sendErr := s.sendConfirmation(ctx, account.Email); sendErr != nil {
		log.Err(sendErr).Int64("user_id", account.UserID).Msg("confirmation resend failed")
	}
	return reply, nil
}

// Login signs in with a username or email and a password. Any previous
// session is cleared first, so a failed attempt always leaves sess
// anonymous.
func (s *accountService) Login(ctx context.Context, sess *models.Session, req models.LoginRequest) (_ models.Outcome, err error) {
	defer func() { s.metrics.RecordAuthEvent(metrics.EventLogin, err) }()
	log := logger.FromContext(ctx)

	if clearErr := s.sessions.Clear(ctx, sess); clearErr != nil {
		log.Warn().Err(clearErr).Msg("error clearing session before login")
	}

	identifier := strings.TrimSpace(req.Identifier)
	if identifier == "" {
		return models.Outcome{}, invalidField("username", app.MsgIdentifierRequired)
	}
	if req.Password == "" {
		return models.Outcome{}, invalidField("password", app.MsgLoginPasswordNeeded)
	}

	account, err := s.accounts.FindByUsernameOrEmail(ctx, identifier)
	if errors.Is(err, store.ErrAccountNotFound) {
		return models.Outcome{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Msg("error looking up account for login")
		return models.Outcome{}, fmt.Errorf("error looking up account: %w", err)
	}

	if !account.HasLocalPassword() || !s.hasher.Compare(account.PasswordHash, req.Password) {
		log.Info().Int64("user_id", account.UserID).Msg("login rejected: wrong password")
		return models.Outcome{}, ErrInvalidCredentials
	}
	if !account.EmailVerified {
		return models.Outcome{}, &FieldError{Kind: ErrEmailNotVerified, Message: app.MsgVerifyEmailFirst}
	}

	if err = s.sessions.Start(ctx, sess, account.UserID, req.Remember); err != nil {
		log.Err(err).Msg("error starting session")
		return models.Outcome{}, err
	}

	log.Info().Int64("user_id", account.UserID).Bool("remember", req.Remember).Msg("logged in")
	return models.Success(app.MsgLoginSuccessful, "/"), nil
}

func (s *accountService) Logout(ctx context.Context, sess *models.Session) (_ models.Outcome, err error) {
	defer func() { s.metrics.RecordAuthEvent(metrics.EventLogout, err) }()

	if clearErr := s.sessions.Clear(ctx, sess); clearErr != nil {
		logger.FromContext(ctx).Warn().Err(clearErr).Msg("error clearing session on logout")
	}
	return models.Success(app.MsgLoggedOut, "/"), nil
}

// ChangePassword replaces the password of the signed-in account. The
// session stays open.
func (s *accountService) ChangePassword(ctx context.Context, sess *models.Session, req models.ChangePasswordRequest) (_ models.Outcome, err error) {
	defer func() { s.metrics.RecordAuthEvent(metrics.EventChangePassword, err) }()

	userID, err := RequireSession(sess)
	if err != nil {
		return models.Outcome{}, err
	}
	log := logger.FromContext(ctx).WithUserID(userID)

	switch {
	case req.OldPassword == "" || req.NewPassword == "" || req.Confirmation == "":
		return models.Outcome{}, invalidField("", app.MsgAllFieldsRequired)
	case req.NewPassword == req.OldPassword:
		return models.Outcome{}, invalidField("new_password", app.MsgNewPasswordSameAsOld)
	case req.NewPassword != req.Confirmation:
		return models.Outcome{}, invalidField("confirmation", app.MsgNewPasswordsMismatch)
	}
	if err = checkPassword("new_password", req.NewPassword); err != nil {
		return models.Outcome{}, err
	}

	current, err := s.accounts.GetPasswordHash(ctx, userID)
	if err != nil {
		return models.Outcome{}, s.accountError(ctx, err, "error reading password hash")
	}
	if !s.hasher.Compare(current, req.OldPassword) {
		return models.Outcome{}, invalidField("old_password", app.MsgInvalidOldPassword)
	}

	if err = s.storePassword(ctx, userID, req.NewPassword); err != nil {
		return models.Outcome{}, err
	}

	log.Info().Msg("password changed")
	return models.Success(app.MsgPasswordChanged, "/"), nil
}

// RequestPasswordReset sends a reset link to email whether or not an
// account owns it, so the reply never reveals registered addresses.
func (s *accountService) RequestPasswordReset(ctx context.Context, email string) (_ models.Outcome, err error) {
	defer func() { s.metrics.RecordAuthEvent(metrics.EventResetRequest, err) }()

	email = validators.NormalizeEmail(email)
	if email == "" {
		return models.Outcome{}, invalidField("email", app.MsgEmailRequired)
	}
	if err = validators.ValidateEmail(email); err != nil {
		return models.Outcome{}, invalidField("email", app.MsgInvalidEmailFormat)
	}

	token, err := s.tokens.Issue(email, models.PurposeReset)
	if err != nil {
		return models.Outcome{}, err
	}

	msg, err := mailer.NewPasswordResetMessage(email, s.resetLink(token))
	if err == nil {
		err = s.sender.Send(ctx, msg)
	}
	s.metrics.RecordEmail(emailPasswordReset, err)
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("password reset email failed")
		return models.Outcome{}, fmt.Errorf("%w: %w", ErrDispatch, err)
	}

	return models.Success(app.MsgResetRequested, "/login"), nil
}

// ResetPassword sets a new password for the owner of a reset token. The
// link proves ownership of the address, so the email is marked verified
// and the owner is signed in.
func (s *accountService) ResetPassword(ctx context.Context, sess *models.Session, req models.ResetPasswordRequest) (_ models.Outcome, err error) {
	defer func() { s.metrics.RecordAuthEvent(metrics.EventResetPassword, err) }()
	log := logger.FromContext(ctx)

	email, err := s.tokens.Verify(req.Token, models.PurposeReset, s.tokenMaxAge)
	if err != nil {
		if errors.Is(err, ErrTokenInvalid) {
			log.Warn().Err(err).Msg("rejected password reset token")
		}
		return models.Outcome{}, err
	}

	switch {
	case req.NewPassword == "" || req.Confirmation == "":
		return models.Outcome{}, invalidField("", app.MsgAllFieldsRequired)
	case req.NewPassword != req.Confirmation:
		return models.Outcome{}, invalidField("confirmation", app.MsgNewPasswordsMismatch)
	}
	if err = checkPassword("new_password", req.NewPassword); err != nil {
		return models.Outcome{}, err
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		return models.Outcome{}, s.accountError(ctx, err, "error loading account for reset")
	}

	if err = s.storePassword(ctx, account.UserID, req.NewPassword); err != nil {
		return models.Outcome{}, err
	}
	if !account.EmailVerified {
		if err = s.accounts.SetVerified(ctx, account.Email); err != nil {
			return models.Outcome{}, s.accountError(ctx, err, "error marking email verified")
		}
	}

	if err = s.sessions.Start(ctx, sess, account.UserID, false); err != nil {
		log.Err(err).Msg("error starting session after reset")
		return models.Outcome{}, err
	}

	log.Info().Int64("user_id", account.UserID).Msg("password reset")
	return models.Success(app.MsgPasswordReset, "/"), nil
}

// ExternalLogin signs in an identity asserted by an OAuth provider,
// creating a verified account without a local password on first use.
func (s *accountService) ExternalLogin(ctx context.Context, sess *models.Session, identity models.ExternalIdentity) (_ models.Outcome, err error) {
	defer func() { s.metrics.RecordAuthEvent(metrics.EventExternalLogin, err) }()
	log := logger.FromContext(ctx).WithString("provider", string(identity.Provider))

	identity.Email = validators.NormalizeEmail(identity.Email)
	if err = validators.ValidateEmail(identity.Email); err != nil {
		return models.Outcome{}, invalidField("email", app.MsgInvalidEmailFormat)
	}

	account, err := s.accounts.FindByEmail(ctx, identity.Email)
	switch {
	case errors.Is(err, store.ErrAccountNotFound):
		account, err = s.createExternalAccount(ctx, identity)
		if err != nil {
			log.Err(err).Msg("error creating external account")
			return models.Outcome{}, err
		}
		log.Info().Int64("user_id", account.UserID).Msg("external account created")
	case err != nil:
		log.Err(err).Msg("error looking up external account")
		return models.Outcome{}, fmt.Errorf("error looking up account: %w", err)
	case !account.EmailVerified:
		if err = s.accounts.SetVerified(ctx, account.Email); err != nil {
			return models.Outcome{}, s.accountError(ctx, err, "error marking email verified")
		}
	}

	if err = s.sessions.Start(ctx, sess, account.UserID, false); err != nil {
		log.Err(err).Msg("error starting session after external login")
		return models.Outcome{}, err
	}

	return models.Success(app.MsgLoginSuccessful, "/"), nil
}

func (s *accountService) CurrentAccount(ctx context.Context, sess *models.Session) (models.Account, error) {
	userID, err := RequireSession(sess)
	if err != nil {
		return models.Account{}, err
	}

	account, err := s.accounts.FindByID(ctx, userID)
	if err != nil {
		return models.Account{}, s.accountError(ctx, err, "error loading current account")
	}
	return account, nil
}

// createExternalAccount inserts an account for identity under the first
// free username among base, base1, base2, ...
func (s *accountService) createExternalAccount(ctx context.Context, identity models.ExternalIdentity) (models.Account, error) {
	base := usernameBase(identity)

	for suffix := 0; suffix <= maxUsernameSuffix; suffix++ {
		username := base
		if suffix > 0 {
			username = base + strconv.Itoa(suffix)
		}

		existence, err := s.accounts.Exists(ctx, username, "")
		if err != nil {
			return models.Account{}, fmt.Errorf("error checking username: %w", err)
		}
		if existence.UsernameExists {
			continue
		}

		account, err := s.accounts.CreateExternalAccount(ctx, models.Account{
			Username: username,
			Email:    identity.Email,
			Provider: identity.Provider,
		})
		switch {
		case err == nil:
			return account, nil
		case errors.Is(err, store.ErrUsernameAlreadyExists):
			continue
		case errors.Is(err, store.ErrEmailAlreadyExists):
			// created concurrently by another callback
			return s.accounts.FindByEmail(ctx, identity.Email)
		default:
			return models.Account{}, fmt.Errorf("error creating external account: %w", err)
		}
	}

	return models.Account{}, fmt.Errorf("no free username for %q", base)
}

func (s *accountService) sendConfirmation(ctx context.Context, email string) error {
	token, err := s.tokens.Issue(email, models.PurposeConfirm)
	if err != nil {
		return err
	}

	msg, err := mailer.NewConfirmationMessage(email, s.confirmLink(token))
	if err == nil {
		err = s.sender.Send(ctx, msg)
	}
	s.metrics.RecordEmail(emailConfirmation, err)
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("confirmation email failed")
		return fmt.Errorf("%w: %w", ErrDispatch, err)
	}
	return nil
}

func (s *accountService) storePassword(ctx context.Context, userID int64, password string) error {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}
	if err = s.accounts.SetPasswordHash(ctx, userID, hash); err != nil {
		return s.accountError(ctx, err, "error storing password hash")
	}
	return nil
}

// accountError translates a repository error, logging anything that is not
// a plain miss.
func (s *accountService) accountError(ctx context.Context, err error, msg string) error {
	if errors.Is(err, store.ErrAccountNotFound) {
		return fmt.Errorf("%w: %w", ErrAccountNotFound, err)
	}
	logger.FromContext(ctx).Err(err).Msg(msg)
	return fmt.Errorf("%s: %w", msg, err)
}

func (s *accountService) confirmLink(token string) string {
	return s.publicURL + "/api/auth/confirm/" + url.PathEscape(token)
}

func (s *accountService) resetLink(token string) string {
	return s.publicURL + "/reset-password?token=" + url.QueryEscape(token)
}

// checkPassword applies the password policy and the bcrypt input limit.
func checkPassword(field, password string) error {
	if ok, reason := validators.EvaluatePassword(password); !ok {
		return invalidField(field, validators.PasswordMessage(reason))
	}
	if len(password) > maxPasswordBytes {
		return invalidField(field, validators.PasswordMessage(fmt.Sprintf("be at most %d bytes long.", maxPasswordBytes)))
	}
	return nil
}

func conflictFromStore(err error) *ConflictError {
	switch {
	case errors.Is(err, store.ErrEmailAlreadyExists):
		return &ConflictError{EmailExists: true}
	case errors.Is(err, store.ErrUsernameAlreadyExists):
		return &ConflictError{UsernameExists: true}
	}
	return nil
}

// usernameBase derives a username from the provider's display name, or the
// email local part when the provider has none. Whitespace and "@" are
// dropped.
func usernameBase(identity models.ExternalIdentity) string {
	name := identity.Username
	if strings.TrimSpace(name) == "" {
		name, _, _ = strings.Cut(identity.Email, "@")
	}

	name = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '@' {
			return -1
		}
		return r
	}, name)
	if name == "" {
		return "user"
	}
	return name
}
