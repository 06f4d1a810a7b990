package store

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/MKhiriev/go-pet-life/internal/config"
	"github.com/MKhiriev/go-pet-life/internal/logger"
	"github.com/MKhiriev/go-pet-life/migrations"
	sq "github.com/Masterminds/squirrel"
	"github.com/sethvargo/go-retry"
)

// Dialect names the SQL backend behind a [DB].
type Dialect string

const (
	// DialectPostgres is the production backend, reached through pgx.
	DialectPostgres Dialect = "postgres"
	// DialectSQLite is the embedded backend used for development and tests.
	DialectSQLite Dialect = "sqlite3"
)

const (
	maxRetries     = 3
	retryBaseDelay = 50 * time.Millisecond
)

// ErrorClassificator maps driver errors of one dialect to retry decisions
// and uniqueness violations.
type ErrorClassificator interface {
	// Classify reports whether err is worth retrying.
	Classify(err error) ErrorClassification
	// UniqueViolation reports whether err is a unique constraint violation
	// and, if so, a description naming the violated constraint or column.
	UniqueViolation(err error) (string, bool)
}

// DB wraps a *sql.DB with the dialect-specific pieces the repositories need.
type DB struct {
	*sql.DB
	dialect            Dialect
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

func newDB(conn *sql.DB, dialect Dialect, classifier ErrorClassificator, log *logger.Logger) *DB {
	return &DB{
		DB:                 conn,
		dialect:            dialect,
		errorClassificator: classifier,
		logger:             log,
	}
}

// NewConnectDB opens the database named by cfg.DSN, picking the driver
// from the DSN.
func NewConnectDB(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	dialect, err := DialectFromDSN(cfg.DSN)
	if err != nil {
		return nil, err
	}

	switch dialect {
	case DialectPostgres:
		return NewConnectPostgres(ctx, cfg, log)
	default:
		return NewConnectSQLite(ctx, cfg, log)
	}
}

// DialectFromDSN infers the backend from a DSN. "postgres://" and
// "postgresql://" URLs and key=value strings containing "host=" select
// PostgreSQL; "file:" URIs, ":memory:" and *.db / *.sqlite paths select
// SQLite.
func DialectFromDSN(dsn string) (Dialect, error) {
	lower := strings.ToLower(strings.TrimSpace(dsn))
	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"),
		strings.Contains(lower, "host="):
		return DialectPostgres, nil
	case strings.HasPrefix(lower, "file:"), lower == ":memory:",
		strings.HasSuffix(lower, ".db"), strings.HasSuffix(lower, ".sqlite"), strings.HasSuffix(lower, ".sqlite3"):
		return DialectSQLite, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnsupportedDSN, dsn)
}

// Dialect returns the backend of db.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Migrate applies the embedded migrations of the db dialect.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Migrate(ctx, db.DB, string(db.dialect))
}

// builder returns a squirrel statement builder with the placeholder format
// of the db dialect.
func (db *DB) builder() sq.StatementBuilderType {
	if db.dialect == DialectPostgres {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

// uniqueViolation reports the violated constraint of err, if any.
func (db *DB) uniqueViolation(err error) (string, bool) {
	if db.errorClassificator == nil {
		return "", false
	}
	return db.errorClassificator.UniqueViolation(err)
}

// withRetry runs an idempotent statement, retrying with exponential backoff
// while it fails with errors the dialect classifies as [Retryable] or
// [RetryableIdempotent].
func (db *DB) withRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	return db.retry(ctx, fn, Retryable, RetryableIdempotent)
}

// withInsertRetry runs a statement that must not be applied twice. Only
// [Retryable] failures, which guarantee nothing was written, are retried.
func (db *DB) withInsertRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	return db.retry(ctx, fn, Retryable)
}

func (db *DB) retry(ctx context.Context, fn func(ctx context.Context) error, retryOn ...ErrorClassification) error {
	backoff := retry.WithMaxRetries(maxRetries, retry.NewExponential(retryBaseDelay))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := fn(ctx)
		if err != nil && db.errorClassificator != nil && slices.Contains(retryOn, db.errorClassificator.Classify(err)) {
			logger.FromContext(ctx).Warn().Err(err).Msg("transient database error, retrying")
			return retry.RetryableError(err)
		}
		return err
	})
}
