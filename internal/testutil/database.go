// Package testutil provides testing utilities for database integration tests.
//
// Database Setup:
//
//	db := testutil.SetupDB(t)
//
// Each test gets its own SQLite database file under t.TempDir(), with all
// migrations applied. The connection is closed automatically when the test
// finishes.
//
// Migration Path:
//
// Migrations are automatically discovered by walking up from the current
// working directory until a "migrations/sqlite" directory is found.
package testutil

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/stretchr/testify/require"

	"github.com/allisson/pib/internal/database"
)

// SetupDB creates a fresh SQLite database in a per-test temp directory and
// runs all migrations against it.
func SetupDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "pib-test.db")
	db, err := database.Connect(database.Config{
		Path:               path,
		MaxOpenConnections: 1,
		MaxIdleConnections: 1,
	})
	require.NoError(t, err, "failed to open sqlite test database")

	t.Cleanup(func() {
		require.NoError(t, db.Close(), "failed to close test database")
	})

	runMigrations(t, db)
	return db
}

// CleanupDB removes all rows from every table, keeping the schema.
func CleanupDB(t *testing.T, db *sql.DB) {
	t.Helper()

	for _, table := range []string{"certificates", "keys", "identities"} {
		_, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)) //nolint:gosec // fixed table names
		require.NoError(t, err, "failed to clean table "+table)
	}
}

// runMigrations applies all pending migrations for the test database.
func runMigrations(t *testing.T, db *sql.DB) {
	t.Helper()

	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	require.NoError(t, err, "failed to create sqlite migrate driver")

	migrationsPath, err := getMigrationsPath()
	require.NoError(t, err, "failed to find sqlite migrations path")

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"sqlite",
		driver,
	)
	require.NoError(t, err, "failed to create migrate instance")

	// Note: the migrate instance is not closed because it wraps a database
	// connection owned by the caller; closing it would close that connection.

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		require.NoError(t, err, fmt.Sprintf("failed to run migrations from %s", migrationsPath))
	}
}

// getMigrationsPath resolves the absolute path to the sqlite migration files.
// Walks up the directory tree from the current working directory.
func getMigrationsPath() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	for {
		migrationsPath := filepath.Join(dir, "migrations", "sqlite")
		if _, err := os.Stat(migrationsPath); err == nil {
			return migrationsPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("migrations directory not found (started from %s)", dir)
		}
		dir = parent
	}
}
