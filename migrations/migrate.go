package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedMigrations embed.FS

// Migrate applies the migrations of dialect ("postgres" or "sqlite3") to
// db. Already applied versions are skipped.
func Migrate(ctx context.Context, db *sql.DB, dialect string) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	dir, err := migrationsDir(dialect)
	if err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	migrationsFS, err := fs.Sub(embedMigrations, dir)
	if err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	provider, err := goose.NewProvider(goose.Dialect(dialect), db, migrationsFS)
	if err != nil {
		return fmt.Errorf("migration error creating provider: %w", err)
	}

	if _, err = provider.Up(ctx); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}

func migrationsDir(dialect string) (string, error) {
	switch dialect {
	case string(goose.DialectPostgres):
		return "postgres", nil
	case string(goose.DialectSQLite3):
		return "sqlite", nil
	}
	return "", fmt.Errorf("unsupported dialect %q", dialect)
}
