package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/hashicorp/go-multierror"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

func Open(dbPath string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_journal_mode=WAL&_foreign_keys=on", dbPath)
	return open(dsn)
}

// OpenForTesting opens a private in-memory database with migrations applied.
// The pool is pinned to one connection because every new sqlite connection
// to ":memory:" would see an empty database.
func OpenForTesting() (*sql.DB, error) {
	return open("file::memory:?mode=memory", withMaxConns(1))
}

type option func(*sql.DB)

func withMaxConns(n int) option {
	return func(db *sql.DB) { db.SetMaxOpenConns(n) }
}

func open(dsn string, opts ...option) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	for _, opt := range opts {
		opt(db)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, multierror.Append(fmt.Errorf("failed to ping database: %w", err), db.Close()).ErrorOrNil()
	}

	if err := runMigrations(db); err != nil {
		var result *multierror.Error
		result = multierror.Append(result, fmt.Errorf("failed to run migrations: %w", err))
		if cerr := db.Close(); cerr != nil {
			result = multierror.Append(result, fmt.Errorf("failed to close db: %w", cerr))
		}
		return nil, result.ErrorOrNil()
	}

	return db, nil
}

// runMigrations applies every pending up migration embedded in migrationsFS.
// The migrate instance is not closed: doing so would close db.
func runMigrations(db *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}

	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}
