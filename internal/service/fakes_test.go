package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-pet-life/internal/store"
	"github.com/MKhiriev/go-pet-life/models"
)

// ─────────────────────────────────────────────
// Fake: store.AccountRepository
// ─────────────────────────────────────────────

// fakeAccountRepository keeps accounts in memory with the same uniqueness
// rules as the database. Any *Fn hook overrides the in-memory behavior.
type fakeAccountRepository struct {
	mu       sync.Mutex
	accounts []models.Account

	existsFn      func(ctx context.Context, username, email string) (models.AccountExistence, error)
	createFn      func(ctx context.Context, account models.Account) (models.Account, error)
	findByEmailFn func(ctx context.Context, email string) (models.Account, error)
	setVerifiedFn func(ctx context.Context, email string) error
}

func (f *fakeAccountRepository) CreateAccount(ctx context.Context, account models.Account) (models.Account, error) {
	if f.createFn != nil {
		return f.createFn(ctx, account)
	}
	return f.insert(account)
}

func (f *fakeAccountRepository) CreateExternalAccount(ctx context.Context, account models.Account) (models.Account, error) {
	account.PasswordHash = ""
	account.EmailVerified = true
	return f.insert(account)
}

func (f *fakeAccountRepository) insert(account models.Account) (models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	account.Email = strings.ToLower(account.Email)
	for _, a := range f.accounts {
		if a.Email == account.Email {
			return models.Account{}, store.ErrEmailAlreadyExists
		}
		if strings.EqualFold(a.Username, account.Username) {
			return models.Account{}, store.ErrUsernameAlreadyExists
		}
	}

	account.UserID = int64(len(f.accounts) + 1)
	account.CreatedAt = time.Now()
	f.accounts = append(f.accounts, account)
	return account, nil
}

func (f *fakeAccountRepository) FindByUsernameOrEmail(ctx context.Context, identifier string) (models.Account, error) {
	account, err := f.find(func(a models.Account) bool { return a.Email == strings.ToLower(identifier) })
	if !errors.Is(err, store.ErrAccountNotFound) {
		return account, err
	}
	return f.find(func(a models.Account) bool { return strings.EqualFold(a.Username, identifier) })
}

func (f *fakeAccountRepository) FindByEmail(ctx context.Context, email string) (models.Account, error) {
	if f.findByEmailFn != nil {
		return f.findByEmailFn(ctx, email)
	}
	return f.find(func(a models.Account) bool { return a.Email == strings.ToLower(email) })
}

func (f *fakeAccountRepository) FindByID(ctx context.Context, userID int64) (models.Account, error) {
	return f.find(func(a models.Account) bool { return a.UserID == userID })
}

func (f *fakeAccountRepository) find(match func(models.Account) bool) (models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, a := range f.accounts {
		if match(a) {
			return a, nil
		}
	}
	return models.Account{}, store.ErrAccountNotFound
}

func (f *fakeAccountRepository) Exists(ctx context.Context, username, email string) (models.AccountExistence, error) {
	if f.existsFn != nil {
		return f.existsFn(ctx, username, email)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	var existence models.AccountExistence
	for _, a := range f.accounts {
		if strings.EqualFold(a.Username, username) {
			existence.UsernameExists = true
		}
		if email != "" && a.Email == strings.ToLower(email) {
			existence.EmailExists = true
		}
	}
	return existence, nil
}

func (f *fakeAccountRepository) SetVerified(ctx context.Context, email string) error {
	if f.setVerifiedFn != nil {
		return f.setVerifiedFn(ctx, email)
	}
	return f.update(func(a *models.Account) bool {
		if a.Email != strings.ToLower(email) {
			return false
		}
		a.EmailVerified = true
		return true
	})
}

func (f *fakeAccountRepository) GetPasswordHash(ctx context.Context, userID int64) (string, error) {
	account, err := f.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return account.PasswordHash, nil
}

func (f *fakeAccountRepository) SetPasswordHash(ctx context.Context, userID int64, hash string) error {
	return f.update(func(a *models.Account) bool {
		if a.UserID != userID {
			return false
		}
		a.PasswordHash = hash
		return true
	})
}

func (f *fakeAccountRepository) update(apply func(*models.Account) bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.accounts {
		if apply(&f.accounts[i]) {
			return nil
		}
	}
	return store.ErrAccountNotFound
}

func (f *fakeAccountRepository) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.accounts)
}

// ─────────────────────────────────────────────
// Fake: store.SessionStorage
// ─────────────────────────────────────────────

type fakeSessionStorage struct {
	mu       sync.Mutex
	sessions map[string]models.Session
	ttls     map[string]time.Duration

	getFn  func(ctx context.Context, id string) (*models.Session, error)
	saveFn func(ctx context.Context, session *models.Session, ttl time.Duration) error
}

func newFakeSessionStorage() *fakeSessionStorage {
	return &fakeSessionStorage{
		sessions: make(map[string]models.Session),
		ttls:     make(map[string]time.Duration),
	}
}

func (f *fakeSessionStorage) Get(ctx context.Context, id string) (*models.Session, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	sess, ok := f.sessions[id]
	if !ok {
		return nil, store.ErrSessionNotFound
	}
	sess.ID = id
	return &sess, nil
}

func (f *fakeSessionStorage) Save(ctx context.Context, session *models.Session, ttl time.Duration) error {
	if f.saveFn != nil {
		return f.saveFn(ctx, session, ttl)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.sessions[session.ID] = *session
	f.ttls[session.ID] = ttl
	return nil
}

func (f *fakeSessionStorage) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.sessions, id)
	delete(f.ttls, id)
	return nil
}

func (f *fakeSessionStorage) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sessions)
}

// ─────────────────────────────────────────────
// Fake: store.PetRepository
// ─────────────────────────────────────────────

type fakePetRepository struct {
	createFn func(ctx context.Context, pet models.Pet) (models.Pet, error)
	listFn   func(ctx context.Context, userID int64) ([]models.Pet, error)
	getFn    func(ctx context.Context, petID int64) (models.Pet, error)
	updateFn func(ctx context.Context, update models.PetTrackerUpdate) error
}

func (f *fakePetRepository) CreatePet(ctx context.Context, pet models.Pet) (models.Pet, error) {
	if f.createFn != nil {
		return f.createFn(ctx, pet)
	}
	pet.PetID = 1
	return pet, nil
}

func (f *fakePetRepository) ListPets(ctx context.Context, userID int64) ([]models.Pet, error) {
	if f.listFn != nil {
		return f.listFn(ctx, userID)
	}
	return []models.Pet{}, nil
}

func (f *fakePetRepository) GetPet(ctx context.Context, petID int64) (models.Pet, error) {
	if f.getFn != nil {
		return f.getFn(ctx, petID)
	}
	return models.Pet{}, store.ErrPetNotFound
}

func (f *fakePetRepository) UpdateTracker(ctx context.Context, update models.PetTrackerUpdate) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, update)
	}
	return nil
}
