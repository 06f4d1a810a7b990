package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-pet-life/models"
)

// AccountRepository persists accounts and enforces the uniqueness of
// usernames (case-insensitive) and email addresses.
type AccountRepository interface {
	// CreateAccount inserts a local account and returns it with the
	// server-assigned UserID and CreatedAt. A taken username or email is
	// reported as ErrUsernameAlreadyExists or ErrEmailAlreadyExists.
	CreateAccount(ctx context.Context, account models.Account) (models.Account, error)
	// CreateExternalAccount inserts a verified account without a local
	// password for an identity asserted by an OAuth provider.
	CreateExternalAccount(ctx context.Context, account models.Account) (models.Account, error)

	FindByUsernameOrEmail(ctx context.Context, identifier string) (models.Account, error)
	FindByEmail(ctx context.Context, email string) (models.Account, error)
	FindByID(ctx context.Context, userID int64) (models.Account, error)
	Exists(ctx context.Context, username, email string) (models.AccountExistence, error)

	SetVerified(ctx context.Context, email string) error
	GetPasswordHash(ctx context.Context, userID int64) (string, error)
	SetPasswordHash(ctx context.Context, userID int64, hash string) error
}

// PetRepository persists pet records.
type PetRepository interface {
	CreatePet(ctx context.Context, pet models.Pet) (models.Pet, error)
	ListPets(ctx context.Context, userID int64) ([]models.Pet, error)
	GetPet(ctx context.Context, petID int64) (models.Pet, error)
	UpdateTracker(ctx context.Context, update models.PetTrackerUpdate) error
}

// SessionStorage keeps server-side session records.
type SessionStorage interface {
	// Get returns the session stored under id or ErrSessionNotFound.
	Get(ctx context.Context, id string) (*models.Session, error)
	// Save stores session under session.ID for ttl.
	Save(ctx context.Context, session *models.Session, ttl time.Duration) error
	// Delete removes the session stored under id. Unknown ids are ignored.
	Delete(ctx context.Context, id string) error
}
