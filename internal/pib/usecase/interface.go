// Package usecase implements the credential store's operation set on top of
// the SQLite repositories. It owns name derivation (identity prefix, escaped
// key identifier) and wraps every multi-step mutation in a single
// transaction so the single-default invariants hold under interruption.
package usecase

import (
	"context"

	"github.com/allisson/pib/internal/ndn"
	pibDomain "github.com/allisson/pib/internal/pib/domain"
)

// IdentityRepository defines the persistence contract for identity rows.
type IdentityRepository interface {
	Exists(ctx context.Context, identityName string) (bool, error)
	Create(ctx context.Context, identity *pibDomain.Identity) error
	GetDefault(ctx context.Context) (*pibDomain.Identity, error)
	ClearDefault(ctx context.Context) error
	SetDefault(ctx context.Context, identityName string) error
	Delete(ctx context.Context, identityName string) error
}

// KeyRepository defines the persistence contract for key rows.
type KeyRepository interface {
	Exists(ctx context.Context, identityName, keyID string) (bool, error)
	Create(ctx context.Context, key *pibDomain.Key) error
	Get(ctx context.Context, identityName, keyID string) (*pibDomain.Key, error)
	UpdateStatus(ctx context.Context, identityName, keyID string, isActive bool) error
	GetDefault(ctx context.Context, identityName string) (*pibDomain.Key, error)
	ClearDefault(ctx context.Context, identityName string) error
	SetDefault(ctx context.Context, identityName, keyID string) error
	List(ctx context.Context, identityName string, isDefault bool) ([]*pibDomain.Key, error)
	Delete(ctx context.Context, identityName, keyID string) error
	DeleteByIdentity(ctx context.Context, identityName string) error
}

// CertificateRepository defines the persistence contract for certificate rows.
type CertificateRepository interface {
	Exists(ctx context.Context, certificateName string) (bool, error)
	Create(ctx context.Context, cert *pibDomain.Certificate) error
	Get(ctx context.Context, certificateName string) (*pibDomain.Certificate, error)
	GetDefault(ctx context.Context, identityName, keyID string) (*pibDomain.Certificate, error)
	ClearDefault(ctx context.Context, identityName, keyID string) error
	SetDefault(ctx context.Context, identityName, keyID, certificateName string) error
	Delete(ctx context.Context, certificateName string) error
	DeleteByKey(ctx context.Context, identityName, keyID string) error
	DeleteByIdentity(ctx context.Context, identityName string) error
}

// PibUseCase is the operation set of the public-key information base,
// consumed by the identity/signing manager.
type PibUseCase interface {
	// IdentityExists reports whether the identity is stored.
	IdentityExists(ctx context.Context, identityName ndn.Name) (bool, error)
	// AddIdentity inserts the identity if absent. Idempotent.
	AddIdentity(ctx context.Context, identityName ndn.Name) error
	// SetDefaultIdentity clears any current default identity and marks the
	// named one. A missing name still clears the old default (fail-forward).
	SetDefaultIdentity(ctx context.Context, identityName ndn.Name) error
	// DefaultIdentity returns the default identity's name, or
	// ErrNoDefaultIdentity when none is configured.
	DefaultIdentity(ctx context.Context) (ndn.Name, error)
	// DeleteIdentity removes the identity with all of its keys and
	// certificates.
	DeleteIdentity(ctx context.Context, identityName ndn.Name) error

	// KeyExists reports whether the full key name is stored.
	KeyExists(ctx context.Context, keyName ndn.Name) (bool, error)
	// AddKey stores a public key, creating the owning identity on demand.
	// Fails with ErrKeyExists when the exact key name is already stored.
	// A key name with zero components is a no-op.
	AddKey(ctx context.Context, keyName ndn.Name, keyType pibDomain.KeyType, publicKey []byte) error
	// Key returns the stored public key bytes, or nil (no error) when the
	// key is absent.
	Key(ctx context.Context, keyName ndn.Name) ([]byte, error)
	// UpdateKeyStatus sets the key's active flag. Updating an absent key
	// affects nothing and is not an error.
	UpdateKeyStatus(ctx context.Context, keyName ndn.Name, isActive bool) error
	// SetDefaultKey marks keyName as its identity's default key after
	// verifying it belongs to identityCheck.
	SetDefaultKey(ctx context.Context, keyName, identityCheck ndn.Name) error
	// DefaultKeyName returns the identity's default key name, or
	// ErrNoDefaultKey when none is configured.
	DefaultKeyName(ctx context.Context, identityName ndn.Name) (ndn.Name, error)
	// ListKeyNames returns the identity's full key names filtered by the
	// default flag. Order is not significant.
	ListKeyNames(ctx context.Context, identityName ndn.Name, isDefault bool) ([]ndn.Name, error)
	// DeleteKey removes the key and all of its certificates. A key name
	// with zero components is a no-op.
	DeleteKey(ctx context.Context, keyName ndn.Name) error

	// CertificateExists reports whether the certificate name is stored.
	CertificateExists(ctx context.Context, certificateName ndn.Name) (bool, error)
	// AddCertificate stores a certificate. Fails with ErrCertificateExists
	// when the name is already stored.
	AddCertificate(ctx context.Context, cert *ndn.Certificate) error
	// Certificate returns the decoded certificate, or nil (no error) when
	// absent. allowAny=false requests validity filtering, which is
	// intentionally unimplemented and always fails with
	// ErrValidityFilterNotImplemented.
	Certificate(ctx context.Context, certificateName ndn.Name, allowAny bool) (*ndn.Certificate, error)
	// SetDefaultCertificate marks the certificate as the key's default.
	SetDefaultCertificate(ctx context.Context, keyName, certificateName ndn.Name) error
	// DefaultCertificateName returns the key's default certificate name, or
	// ErrNoDefaultCertificate when none is configured.
	DefaultCertificateName(ctx context.Context, keyName ndn.Name) (ndn.Name, error)
	// DeleteCertificate removes one certificate by name. A name with zero
	// components is a no-op.
	DeleteCertificate(ctx context.Context, certificateName ndn.Name) error
}
