package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-pet-life/internal/logger"
	"github.com/MKhiriev/go-pet-life/models"
)

// accountRepository is the SQL implementation of [AccountRepository] over
// the "accounts" table. It works against both PostgreSQL and SQLite.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type accountRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewAccountRepository constructs an [AccountRepository] backed by the
// provided database connection and logger.
func NewAccountRepository(db *DB, logger *logger.Logger) AccountRepository {
	logger.Debug().Msg("creating account repository")
	return &accountRepository{
		db:     db,
		logger: logger,
	}
}

// CreateAccount persists a new local account and returns it with UserID and
// CreatedAt filled in.
//
// Error handling:
//   - unique violation on the username index → [ErrUsernameAlreadyExists]
//   - unique violation on the email index → [ErrEmailAlreadyExists]
//   - any other driver-level error → wrapped as "unexpected DB error"
func (r *accountRepository) CreateAccount(ctx context.Context, account models.Account) (models.Account, error) {
	if account.Provider == "" {
		account.Provider = models.ProviderLocal
	}
	return r.insert(ctx, account, account.PasswordHash)
}

// CreateExternalAccount persists a verified account that has no local
// password. The password_hash column is stored as NULL.
func (r *accountRepository) CreateExternalAccount(ctx context.Context, account models.Account) (models.Account, error) {
	account.PasswordHash = ""
	account.EmailVerified = true
	return r.insert(ctx, account, nil)
}

func (r *accountRepository) insert(ctx context.Context, account models.Account, passwordHash any) (models.Account, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCreateAccountQuery(r.db.builder(), account, passwordHash)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.insert").Msg("error building query")
		return models.Account{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var createdAt dbTime
	err = r.db.withInsertRetry(ctx, func(ctx context.Context) error {
		return r.db.QueryRowContext(ctx, query, args...).Scan(&account.UserID, &createdAt)
	})
	if err != nil {
		if constraint, ok := r.db.uniqueViolation(err); ok {
			log.Debug().Str("func", "*accountRepository.insert").Str("constraint", constraint).Msg("account already exists")
			return models.Account{}, conflictFromConstraint(constraint)
		}

		log.Err(err).Str("func", "*accountRepository.insert").Msg("error inserting account")
		return models.Account{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	account.Email = strings.ToLower(account.Email)
	account.CreatedAt = createdAt.Time
	return account, nil
}

// conflictFromConstraint maps the violated constraint to the attribute that
// is taken.
func conflictFromConstraint(constraint string) error {
	if strings.Contains(constraint, "username") {
		return ErrUsernameAlreadyExists
	}
	return ErrEmailAlreadyExists
}

// FindByUsernameOrEmail looks an account up by username (case-insensitive)
// or by email.
// An email match wins over a username match.
func (r *accountRepository) FindByUsernameOrEmail(ctx context.Context, identifier string) (models.Account, error) {
	query, args, err := buildFindByIdentifierQuery(r.db.builder(), identifier)
	return r.find(ctx, "*accountRepository.FindByUsernameOrEmail", query, args, err)
}

// FindByEmail looks an account up by email.
func (r *accountRepository) FindByEmail(ctx context.Context, email string) (models.Account, error) {
	query, args, err := buildFindAccountQuery(r.db.builder(), byEmail(email))
	return r.find(ctx, "*accountRepository.FindByEmail", query, args, err)
}

// FindByID looks an account up by its identifier.
func (r *accountRepository) FindByID(ctx context.Context, userID int64) (models.Account, error) {
	query, args, err := buildFindAccountQuery(r.db.builder(), byUserID(userID))
	return r.find(ctx, "*accountRepository.FindByID", query, args, err)
}

func (r *accountRepository) find(ctx context.Context, funcName, query string, args []any, err error) (models.Account, error) {
	log := logger.FromContext(ctx)

	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error building query")
		return models.Account{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var account models.Account
	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		var scanErr error
		account, scanErr = scanAccount(r.db.QueryRowContext(ctx, query, args...))
		return scanErr
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Account{}, ErrAccountNotFound
		}
		log.Err(err).Str("func", funcName).Msg("error querying account")
		return models.Account{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return account, nil
}

// Exists reports independently whether username and email are taken.
func (r *accountRepository) Exists(ctx context.Context, username, email string) (models.AccountExistence, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildExistsQuery(r.db.builder(), username, email)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.Exists").Msg("error building query")
		return models.AccountExistence{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var existence models.AccountExistence
	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		return r.db.QueryRowContext(ctx, query, args...).Scan(&existence.UsernameExists, &existence.EmailExists)
	})
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.Exists").Msg("error checking account existence")
		return models.AccountExistence{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return existence, nil
}

// SetVerified marks the account owning email as verified. Repeated calls
// succeed. Returns [ErrAccountNotFound] if no account owns email.
func (r *accountRepository) SetVerified(ctx context.Context, email string) error {
	query, args, err := buildSetVerifiedQuery(r.db.builder(), email)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execAffectingOne(ctx, "*accountRepository.SetVerified", query, args)
}

// GetPasswordHash returns the stored password hash of userID, which is empty
// for externally-authenticated accounts.
func (r *accountRepository) GetPasswordHash(ctx context.Context, userID int64) (string, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetPasswordHashQuery(r.db.builder(), userID)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var hash sql.NullString
	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		return r.db.QueryRowContext(ctx, query, args...).Scan(&hash)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrAccountNotFound
		}
		log.Err(err).Str("func", "*accountRepository.GetPasswordHash").Msg("error querying password hash")
		return "", fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return hash.String, nil
}

// SetPasswordHash replaces the password hash of userID.
func (r *accountRepository) SetPasswordHash(ctx context.Context, userID int64, hash string) error {
	query, args, err := buildSetPasswordHashQuery(r.db.builder(), userID, hash)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execAffectingOne(ctx, "*accountRepository.SetPasswordHash", query, args)
}

// execAffectingOne executes an UPDATE that must match an account row.
func (r *accountRepository) execAffectingOne(ctx context.Context, funcName, query string, args []any) error {
	log := logger.FromContext(ctx)

	var affected int64
	err := r.db.withRetry(ctx, func(ctx context.Context) error {
		res, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrAccountNotFound
	}

	return nil
}
