package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUsernameAlreadyExists is returned when an insert violates the
	// case-insensitive username uniqueness constraint.
	ErrUsernameAlreadyExists = errors.New("username already exists")

	// ErrEmailAlreadyExists is returned when an insert violates the email
	// uniqueness constraint.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrAccountNotFound is returned when a query expected to match an
	// account produces an empty result set.
	ErrAccountNotFound = errors.New("account was not found")

	// ErrPetNotFound is returned when a pet query or update matches no row.
	ErrPetNotFound = errors.New("pet was not found")

	// ErrSessionNotFound is returned when no session is stored under the
	// given id, including expired ones.
	ErrSessionNotFound = errors.New("session was not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrUnsupportedDSN is returned when the DSN names no known driver.
	ErrUnsupportedDSN = errors.New("unsupported database dsn")
)
