// Package testdb provides helpers for store tests that run against a
// real PostgreSQL instance. Tests stay isolated by running inside a
// transaction that is always rolled back, so a shared test database
// never accumulates rows.
package testdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/missivelabs/missive/migrations"
)

// connectTimeout bounds the initial ping against the test database.
const connectTimeout = 5 * time.Second

// URL returns the configured test database URL, or "" when none is set.
func URL() string {
	for _, envVar := range []string{"MISSIVE_TEST_DATABASE_URL", "DATABASE_URL"} {
		if url := os.Getenv(envVar); url != "" {
			return url
		}
	}
	return ""
}

// Available reports whether a test database is configured.
func Available() bool {
	return URL() != ""
}

// Connect opens the configured test database, verifies connectivity,
// and applies the embedded migrations so the schema matches the code
// under test.
func Connect() (*sql.DB, error) {
	url := URL()
	if url == "" {
		return nil, errors.New("no test database configured; set MISSIVE_TEST_DATABASE_URL")
	}

	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open test database: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping test database: %w", err)
	}

	if err := migrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

func migrateUp(db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// WithTx runs fn inside a transaction that is rolled back when fn
// returns. Tests can write freely without affecting each other, which
// also makes them safe to run in parallel.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		t.Fatalf("failed to begin test transaction: %v", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Errorf("failed to roll back test transaction: %v", err)
		}
	}()

	fn(t, tx)
}
