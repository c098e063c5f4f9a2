package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/pib/internal/database"
	apperrors "github.com/allisson/pib/internal/errors"
	pibDomain "github.com/allisson/pib/internal/pib/domain"
)

// SQLiteIdentityRepository implements Identity persistence for SQLite.
type SQLiteIdentityRepository struct {
	db *sql.DB
}

// NewSQLiteIdentityRepository creates a new SQLite Identity repository instance.
func NewSQLiteIdentityRepository(db *sql.DB) *SQLiteIdentityRepository {
	return &SQLiteIdentityRepository{db: db}
}

// Exists reports whether an identity row with the given name is stored.
func (r *SQLiteIdentityRepository) Exists(ctx context.Context, identityName string) (bool, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT COUNT(*) FROM identities WHERE identity_name = ?`

	var count int
	if err := querier.QueryRowContext(ctx, query, identityName).Scan(&count); err != nil {
		return false, apperrors.Wrap(err, "failed to check identity existence")
	}
	return count > 0, nil
}

// Create inserts a new identity row.
func (r *SQLiteIdentityRepository) Create(ctx context.Context, identity *pibDomain.Identity) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO identities (identity_name, is_default) VALUES (?, ?)`

	if _, err := querier.ExecContext(ctx, query, identity.IdentityName, identity.IsDefault); err != nil {
		if isUniqueViolation(err) {
			return apperrors.Wrap(apperrors.ErrConflict, "identity already exists")
		}
		return apperrors.Wrap(err, "failed to create identity")
	}
	return nil
}

// GetDefault returns the identity currently flagged as default.
// Returns ErrNotFound when no identity is flagged.
func (r *SQLiteIdentityRepository) GetDefault(ctx context.Context) (*pibDomain.Identity, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT identity_name, is_default FROM identities WHERE is_default = 1 LIMIT 1`

	var identity pibDomain.Identity
	err := querier.QueryRowContext(ctx, query).Scan(&identity.IdentityName, &identity.IsDefault)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get default identity")
	}
	return &identity, nil
}

// ClearDefault removes the default flag from every identity.
func (r *SQLiteIdentityRepository) ClearDefault(ctx context.Context) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE identities SET is_default = 0 WHERE is_default = 1`

	if _, err := querier.ExecContext(ctx, query); err != nil {
		return apperrors.Wrap(err, "failed to clear default identity")
	}
	return nil
}

// SetDefault flags the named identity as default. Updating a missing name
// affects zero rows and is not an error.
func (r *SQLiteIdentityRepository) SetDefault(ctx context.Context, identityName string) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE identities SET is_default = 1 WHERE identity_name = ?`

	if _, err := querier.ExecContext(ctx, query, identityName); err != nil {
		return apperrors.Wrap(err, "failed to set default identity")
	}
	return nil
}

// Delete removes the identity row. Owned keys and certificates are the
// caller's responsibility.
func (r *SQLiteIdentityRepository) Delete(ctx context.Context, identityName string) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM identities WHERE identity_name = ?`

	if _, err := querier.ExecContext(ctx, query, identityName); err != nil {
		return apperrors.Wrap(err, "failed to delete identity")
	}
	return nil
}
