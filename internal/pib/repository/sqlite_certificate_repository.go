package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/pib/internal/database"
	apperrors "github.com/allisson/pib/internal/errors"
	pibDomain "github.com/allisson/pib/internal/pib/domain"
)

// SQLiteCertificateRepository implements Certificate persistence for SQLite.
type SQLiteCertificateRepository struct {
	db *sql.DB
}

// NewSQLiteCertificateRepository creates a new SQLite Certificate repository instance.
func NewSQLiteCertificateRepository(db *sql.DB) *SQLiteCertificateRepository {
	return &SQLiteCertificateRepository{db: db}
}

// Exists reports whether a certificate row with the given name is stored.
func (r *SQLiteCertificateRepository) Exists(ctx context.Context, certificateName string) (bool, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT COUNT(*) FROM certificates WHERE certificate_name = ?`

	var count int
	if err := querier.QueryRowContext(ctx, query, certificateName).Scan(&count); err != nil {
		return false, apperrors.Wrap(err, "failed to check certificate existence")
	}
	return count > 0, nil
}

// Create inserts a new certificate row.
func (r *SQLiteCertificateRepository) Create(ctx context.Context, cert *pibDomain.Certificate) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO certificates
			  (certificate_name, signer_name, identity_name, key_identifier, not_before, not_after, certificate_data, is_default)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		cert.CertificateName,
		cert.SignerName,
		cert.IdentityName,
		cert.KeyID,
		cert.NotBefore,
		cert.NotAfter,
		cert.Data,
		cert.IsDefault,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return pibDomain.ErrCertificateExists
		}
		return apperrors.Wrap(err, "failed to create certificate")
	}
	return nil
}

// Get retrieves one certificate row by name. Returns ErrNotFound when absent.
func (r *SQLiteCertificateRepository) Get(ctx context.Context, certificateName string) (*pibDomain.Certificate, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT certificate_name, signer_name, identity_name, key_identifier, not_before, not_after, certificate_data, is_default
			  FROM certificates
			  WHERE certificate_name = ?`

	var cert pibDomain.Certificate
	err := querier.QueryRowContext(ctx, query, certificateName).Scan(
		&cert.CertificateName,
		&cert.SignerName,
		&cert.IdentityName,
		&cert.KeyID,
		&cert.NotBefore,
		&cert.NotAfter,
		&cert.Data,
		&cert.IsDefault,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get certificate")
	}
	return &cert, nil
}

// GetDefault returns the default certificate of the (identity, key) pair.
// Returns ErrNotFound when no certificate of the pair is flagged.
func (r *SQLiteCertificateRepository) GetDefault(
	ctx context.Context,
	identityName, keyID string,
) (*pibDomain.Certificate, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT certificate_name, signer_name, identity_name, key_identifier, not_before, not_after, certificate_data, is_default
			  FROM certificates
			  WHERE identity_name = ? AND key_identifier = ? AND is_default = 1
			  LIMIT 1`

	var cert pibDomain.Certificate
	err := querier.QueryRowContext(ctx, query, identityName, keyID).Scan(
		&cert.CertificateName,
		&cert.SignerName,
		&cert.IdentityName,
		&cert.KeyID,
		&cert.NotBefore,
		&cert.NotAfter,
		&cert.Data,
		&cert.IsDefault,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get default certificate")
	}
	return &cert, nil
}

// ClearDefault removes the default flag from every certificate of the
// (identity, key) pair.
func (r *SQLiteCertificateRepository) ClearDefault(ctx context.Context, identityName, keyID string) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE certificates SET is_default = 0
			  WHERE identity_name = ? AND key_identifier = ? AND is_default = 1`

	if _, err := querier.ExecContext(ctx, query, identityName, keyID); err != nil {
		return apperrors.Wrap(err, "failed to clear default certificate")
	}
	return nil
}

// SetDefault flags one certificate of the (identity, key) pair as default.
func (r *SQLiteCertificateRepository) SetDefault(
	ctx context.Context,
	identityName, keyID, certificateName string,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE certificates SET is_default = 1
			  WHERE identity_name = ? AND key_identifier = ? AND certificate_name = ?`

	if _, err := querier.ExecContext(ctx, query, identityName, keyID, certificateName); err != nil {
		return apperrors.Wrap(err, "failed to set default certificate")
	}
	return nil
}

// Delete removes one certificate row by name.
func (r *SQLiteCertificateRepository) Delete(ctx context.Context, certificateName string) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM certificates WHERE certificate_name = ?`

	if _, err := querier.ExecContext(ctx, query, certificateName); err != nil {
		return apperrors.Wrap(err, "failed to delete certificate")
	}
	return nil
}

// DeleteByKey removes every certificate of the (identity, key) pair.
func (r *SQLiteCertificateRepository) DeleteByKey(ctx context.Context, identityName, keyID string) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM certificates WHERE identity_name = ? AND key_identifier = ?`

	if _, err := querier.ExecContext(ctx, query, identityName, keyID); err != nil {
		return apperrors.Wrap(err, "failed to delete certificates for key")
	}
	return nil
}

// DeleteByIdentity removes every certificate owned by the identity.
func (r *SQLiteCertificateRepository) DeleteByIdentity(ctx context.Context, identityName string) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM certificates WHERE identity_name = ?`

	if _, err := querier.ExecContext(ctx, query, identityName); err != nil {
		return apperrors.Wrap(err, "failed to delete certificates for identity")
	}
	return nil
}
