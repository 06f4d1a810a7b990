package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-pet-life/models"
	sq "github.com/Masterminds/squirrel"
	"github.com/mattn/go-sqlite3"
)

const (
	accountsTable = "accounts"
	petsTable     = "pets"
)

var accountColumns = []string{
	"user_id",
	"username",
	"email",
	"password_hash",
	"email_verified",
	"auth_provider",
	"created_at",
}

var petColumns = []string{
	"pet_id",
	"user_id",
	"pet_type",
	"pet_name",
	"pet_sex",
	"breed",
	"pet_dob",
	"tracker",
	"photo_path",
	"created_at",
}

// buildCreateAccountQuery builds an INSERT of account returning the
// server-assigned user_id and created_at. passwordHash is nil for
// externally-authenticated accounts.
func buildCreateAccountQuery(b sq.StatementBuilderType, account models.Account, passwordHash any) (string, []any, error) {
	return b.Insert(accountsTable).
		Columns("username", "email", "password_hash", "email_verified", "auth_provider").
		Values(account.Username, strings.ToLower(account.Email), passwordHash, account.EmailVerified, string(account.Provider)).
		Suffix("RETURNING user_id, created_at").
		ToSql()
}

// buildFindAccountQuery selects every account column filtered by where.
func buildFindAccountQuery(b sq.StatementBuilderType, where sq.Sqlizer) (string, []any, error) {
	return b.Select(accountColumns...).
		From(accountsTable).
		Where(where).
		Limit(1).
		ToSql()
}

// buildFindByIdentifierQuery matches identifier against the username
// (case-insensitively) or the email. An email match ranks first, so an
// identifier naming both one account's email and another's username
// resolves to the email owner.
func buildFindByIdentifierQuery(b sq.StatementBuilderType, identifier string) (string, []any, error) {
	email := strings.ToLower(identifier)
	return b.Select(accountColumns...).
		From(accountsTable).
		Where(sq.Or{
			sq.Expr("lower(username) = lower(?)", identifier),
			sq.Eq{"email": email},
		}).
		OrderByClause("CASE WHEN email = ? THEN 0 ELSE 1 END", email).
		Limit(1).
		ToSql()
}

func byEmail(email string) sq.Sqlizer {
	return sq.Eq{"email": strings.ToLower(email)}
}

func byUserID(userID int64) sq.Sqlizer {
	return sq.Eq{"user_id": userID}
}

// buildExistsQuery returns two booleans: whether username and whether
// email are taken.
func buildExistsQuery(b sq.StatementBuilderType, username, email string) (string, []any, error) {
	return b.Select().
		Column(sq.Expr("EXISTS (SELECT 1 FROM accounts WHERE lower(username) = lower(?))", username)).
		Column(sq.Expr("EXISTS (SELECT 1 FROM accounts WHERE email = ?)", strings.ToLower(email))).
		ToSql()
}

func buildSetVerifiedQuery(b sq.StatementBuilderType, email string) (string, []any, error) {
	return b.Update(accountsTable).
		Set("email_verified", true).
		Where(byEmail(email)).
		ToSql()
}

func buildGetPasswordHashQuery(b sq.StatementBuilderType, userID int64) (string, []any, error) {
	return b.Select("password_hash").
		From(accountsTable).
		Where(byUserID(userID)).
		ToSql()
}

func buildSetPasswordHashQuery(b sq.StatementBuilderType, userID int64, hash string) (string, []any, error) {
	return b.Update(accountsTable).
		Set("password_hash", hash).
		Where(byUserID(userID)).
		ToSql()
}

// buildCreatePetQuery builds an INSERT of pet returning the server-assigned
// pet_id and created_at.
func buildCreatePetQuery(b sq.StatementBuilderType, pet models.Pet) (string, []any, error) {
	return b.Insert(petsTable).
		Columns("user_id", "pet_type", "pet_name", "pet_sex", "breed", "pet_dob", "tracker", "photo_path").
		Values(pet.UserID, pet.Type, pet.Name, string(pet.Sex), pet.Breed, nullDate(pet.DateOfBirth), pet.Tracker, pet.PhotoPath).
		Suffix("RETURNING pet_id, created_at").
		ToSql()
}

func buildListPetsQuery(b sq.StatementBuilderType, userID int64) (string, []any, error) {
	return b.Select(petColumns...).
		From(petsTable).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("pet_id").
		ToSql()
}

func buildGetPetQuery(b sq.StatementBuilderType, petID int64) (string, []any, error) {
	return b.Select(petColumns...).
		From(petsTable).
		Where(sq.Eq{"pet_id": petID}).
		ToSql()
}

func buildUpdateTrackerQuery(b sq.StatementBuilderType, update models.PetTrackerUpdate) (string, []any, error) {
	return b.Update(petsTable).
		Set("tracker", update.Tracker).
		Where(sq.Eq{"pet_id": update.PetID, "user_id": update.UserID}).
		ToSql()
}

// nullDate stores a zero date as NULL.
func nullDate(d models.Date) sql.NullTime {
	if d.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: d.Time, Valid: true}
}

// dbTime scans timestamps and dates. pgx returns time.Time; SQLite may hand
// back text when the column type is not known to the driver.
type dbTime struct {
	Time  time.Time
	Valid bool
}

func (t *dbTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = dbTime{}
	case time.Time:
		*t = dbTime{Time: v, Valid: true}
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	default:
		return fmt.Errorf("cannot scan %T into timestamp", src)
	}
	return nil
}

func (t *dbTime) parse(s string) error {
	s = strings.TrimSuffix(s, "Z")
	for _, layout := range sqlite3.SQLiteTimestampFormats {
		if parsed, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			*t = dbTime{Time: parsed, Valid: true}
			return nil
		}
	}
	return fmt.Errorf("cannot parse timestamp %q", s)
}

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (models.Account, error) {
	var (
		account   models.Account
		hash      sql.NullString
		provider  string
		createdAt dbTime
	)

	if err := row.Scan(&account.UserID, &account.Username, &account.Email, &hash,
		&account.EmailVerified, &provider, &createdAt); err != nil {
		return models.Account{}, err
	}
	account.CreatedAt = createdAt.Time
	account.PasswordHash = hash.String
	account.Provider = models.AuthProvider(provider)

	return account, nil
}

func scanPet(row rowScanner) (models.Pet, error) {
	var (
		pet       models.Pet
		sex       string
		dob       dbTime
		createdAt dbTime
	)

	if err := row.Scan(&pet.PetID, &pet.UserID, &pet.Type, &pet.Name, &sex, &pet.Breed,
		&dob, &pet.Tracker, &pet.PhotoPath, &createdAt); err != nil {
		return models.Pet{}, err
	}
	pet.Sex = models.PetSex(sex)
	pet.CreatedAt = createdAt.Time
	if dob.Valid {
		pet.DateOfBirth = models.NewDate(dob.Time)
	}

	return pet, nil
}
