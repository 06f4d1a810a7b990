package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-pet-life/internal/adapter"
	"github.com/MKhiriev/go-pet-life/models"
)

// AccountService drives the account lifecycle: registration, email
// confirmation, login, password change and reset, logout and external
// (OAuth) login. Operations that read or change the signed-in state take
// the request session explicitly.
type AccountService interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.Outcome, error)
	ConfirmEmail(ctx context.Context, sess *models.Session, token string) (models.Outcome, error)
	ResendConfirmation(ctx context.Context, email string) (models.Outcome, error)

	Login(ctx context.Context, sess *models.Session, req models.LoginRequest) (models.Outcome, error)
	Logout(ctx context.Context, sess *models.Session) (models.Outcome, error)

	ChangePassword(ctx context.Context, sess *models.Session, req models.ChangePasswordRequest) (models.Outcome, error)
	RequestPasswordReset(ctx context.Context, email string) (models.Outcome, error)
	ResetPassword(ctx context.Context, sess *models.Session, req models.ResetPasswordRequest) (models.Outcome, error)

	ExternalLogin(ctx context.Context, sess *models.Session, identity models.ExternalIdentity) (models.Outcome, error)

	// CurrentAccount returns the account behind an authenticated session.
	CurrentAccount(ctx context.Context, sess *models.Session) (models.Account, error)
}

// SessionService loads, starts and clears server-side sessions.
type SessionService interface {
	// Load returns the session stored under id. Unknown and expired ids
	// yield an anonymous session.
	Load(ctx context.Context, id string) (*models.Session, error)
	// Start authenticates sess as userID under a freshly generated id.
	Start(ctx context.Context, sess *models.Session, userID int64, remember bool) error
	// Clear deletes the stored session and resets sess to anonymous.
	Clear(ctx context.Context, sess *models.Session) error
	// Lifetime is how long sess is kept on the server.
	Lifetime(sess *models.Session) time.Duration
}

// TokenService issues and verifies signed, purpose-bound action tokens.
type TokenService interface {
	Issue(email string, purpose models.TokenPurpose) (string, error)
	Verify(token string, purpose models.TokenPurpose, maxAge time.Duration) (string, error)
}

// PasswordHasher hashes and compares account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// PetService manages the pets of the signed-in account.
type PetService interface {
	CreatePet(ctx context.Context, sess *models.Session, pet models.Pet) (models.Pet, error)
	ListPets(ctx context.Context, sess *models.Session) ([]models.Pet, error)
	GetPet(ctx context.Context, sess *models.Session, petID int64) (models.Pet, error)
	UpdateTracker(ctx context.Context, sess *models.Session, update models.PetTrackerUpdate) error
}

// PetServiceWrapper defines middleware composition for PetService.
// Implementations wrap an existing PetService to add behavior such as
// validation.
type PetServiceWrapper interface {
	Wrap(PetService) PetService
}

// OAuthService runs the authorization-code flow against external providers.
type OAuthService interface {
	// AuthCodeURL returns the consent page URL of provider carrying state.
	AuthCodeURL(provider, state string) (string, error)
	// Callback exchanges code for an identity and signs it in.
	Callback(ctx context.Context, sess *models.Session, provider, code string) (models.Outcome, error)
}

// ProviderRegistry resolves OAuth providers by name.
type ProviderRegistry interface {
	Get(name string) (adapter.Provider, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) models.AppVersion
}
