package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/pib/internal/database"
	apperrors "github.com/allisson/pib/internal/errors"
	pibDomain "github.com/allisson/pib/internal/pib/domain"
)

// SQLiteKeyRepository implements Key persistence for SQLite.
type SQLiteKeyRepository struct {
	db *sql.DB
}

// NewSQLiteKeyRepository creates a new SQLite Key repository instance.
func NewSQLiteKeyRepository(db *sql.DB) *SQLiteKeyRepository {
	return &SQLiteKeyRepository{db: db}
}

// Exists reports whether a key row with the given identity and key id is stored.
func (r *SQLiteKeyRepository) Exists(ctx context.Context, identityName, keyID string) (bool, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT COUNT(*) FROM keys WHERE identity_name = ? AND key_identifier = ?`

	var count int
	if err := querier.QueryRowContext(ctx, query, identityName, keyID).Scan(&count); err != nil {
		return false, apperrors.Wrap(err, "failed to check key existence")
	}
	return count > 0, nil
}

// Create inserts a new key row.
func (r *SQLiteKeyRepository) Create(ctx context.Context, key *pibDomain.Key) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO keys (identity_name, key_identifier, key_type, public_key, is_active, is_default)
			  VALUES (?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		key.IdentityName,
		key.KeyID,
		int(key.KeyType),
		key.PublicKey,
		key.IsActive,
		key.IsDefault,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return pibDomain.ErrKeyExists
		}
		return apperrors.Wrap(err, "failed to create key")
	}
	return nil
}

// Get retrieves one key row. Returns ErrNotFound when the key is absent.
func (r *SQLiteKeyRepository) Get(ctx context.Context, identityName, keyID string) (*pibDomain.Key, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT identity_name, key_identifier, key_type, public_key, is_active, is_default
			  FROM keys
			  WHERE identity_name = ? AND key_identifier = ?`

	key, err := scanKey(querier.QueryRowContext(ctx, query, identityName, keyID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get key")
	}
	return key, nil
}

// UpdateStatus sets the active flag unconditionally. Updating a missing key
// affects zero rows and is not an error.
func (r *SQLiteKeyRepository) UpdateStatus(ctx context.Context, identityName, keyID string, isActive bool) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE keys SET is_active = ? WHERE identity_name = ? AND key_identifier = ?`

	if _, err := querier.ExecContext(ctx, query, isActive, identityName, keyID); err != nil {
		return apperrors.Wrap(err, "failed to update key status")
	}
	return nil
}

// GetDefault returns the identity's default key. Returns ErrNotFound when no
// key of the identity is flagged.
func (r *SQLiteKeyRepository) GetDefault(ctx context.Context, identityName string) (*pibDomain.Key, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT identity_name, key_identifier, key_type, public_key, is_active, is_default
			  FROM keys
			  WHERE identity_name = ? AND is_default = 1
			  LIMIT 1`

	key, err := scanKey(querier.QueryRowContext(ctx, query, identityName))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get default key")
	}
	return key, nil
}

// ClearDefault removes the default flag from every key of the identity.
func (r *SQLiteKeyRepository) ClearDefault(ctx context.Context, identityName string) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE keys SET is_default = 0 WHERE identity_name = ? AND is_default = 1`

	if _, err := querier.ExecContext(ctx, query, identityName); err != nil {
		return apperrors.Wrap(err, "failed to clear default key")
	}
	return nil
}

// SetDefault flags one key of the identity as default.
func (r *SQLiteKeyRepository) SetDefault(ctx context.Context, identityName, keyID string) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE keys SET is_default = 1 WHERE identity_name = ? AND key_identifier = ?`

	if _, err := querier.ExecContext(ctx, query, identityName, keyID); err != nil {
		return apperrors.Wrap(err, "failed to set default key")
	}
	return nil
}

// List returns the identity's keys filtered by the default flag, matching the
// store's listing contract: either only the default key or only the
// non-default keys.
func (r *SQLiteKeyRepository) List(ctx context.Context, identityName string, isDefault bool) ([]*pibDomain.Key, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT identity_name, key_identifier, key_type, public_key, is_active, is_default
			  FROM keys
			  WHERE identity_name = ? AND is_default = ?`

	rows, err := querier.QueryContext(ctx, query, identityName, isDefault)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list keys")
	}
	defer func() { _ = rows.Close() }()

	var keys []*pibDomain.Key
	for rows.Next() {
		key, err := scanKey(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan key row")
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate key rows")
	}
	return keys, nil
}

// Delete removes one key row.
func (r *SQLiteKeyRepository) Delete(ctx context.Context, identityName, keyID string) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM keys WHERE identity_name = ? AND key_identifier = ?`

	if _, err := querier.ExecContext(ctx, query, identityName, keyID); err != nil {
		return apperrors.Wrap(err, "failed to delete key")
	}
	return nil
}

// DeleteByIdentity removes every key owned by the identity.
func (r *SQLiteKeyRepository) DeleteByIdentity(ctx context.Context, identityName string) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM keys WHERE identity_name = ?`

	if _, err := querier.ExecContext(ctx, query, identityName); err != nil {
		return apperrors.Wrap(err, "failed to delete keys for identity")
	}
	return nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanKey(row rowScanner) (*pibDomain.Key, error) {
	var key pibDomain.Key
	var keyType int
	err := row.Scan(
		&key.IdentityName,
		&key.KeyID,
		&keyType,
		&key.PublicKey,
		&key.IsActive,
		&key.IsDefault,
	)
	if err != nil {
		return nil, err
	}
	key.KeyType = pibDomain.KeyType(keyType)
	return &key, nil
}
