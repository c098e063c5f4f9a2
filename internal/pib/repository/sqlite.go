// Package repository implements SQLite persistence for the public-key
// information base. All queries are fully parameterized and run through
// database.GetTx so multi-step operations compose under a single transaction.
package repository

import (
	"errors"
	"strings"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// isUniqueViolation reports whether err is a SQLite primary-key or unique
// constraint failure. Used as a backstop behind the transactional existence
// checks so a racing insert still maps to the duplicate sentinel.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
