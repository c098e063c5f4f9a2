package usecase

import (
	"context"

	"github.com/allisson/pib/internal/database"
	apperrors "github.com/allisson/pib/internal/errors"
	"github.com/allisson/pib/internal/ndn"
	pibDomain "github.com/allisson/pib/internal/pib/domain"
)

// pibUseCase implements the PibUseCase interface over the SQLite repositories.
type pibUseCase struct {
	txManager    database.TxManager
	identityRepo IdentityRepository
	keyRepo      KeyRepository
	certRepo     CertificateRepository
}

// NewPibUseCase creates a new PibUseCase with the given dependencies.
func NewPibUseCase(
	txManager database.TxManager,
	identityRepo IdentityRepository,
	keyRepo KeyRepository,
	certRepo CertificateRepository,
) PibUseCase {
	return &pibUseCase{
		txManager:    txManager,
		identityRepo: identityRepo,
		keyRepo:      keyRepo,
		certRepo:     certRepo,
	}
}

// IdentityExists reports whether the identity is stored.
func (u *pibUseCase) IdentityExists(ctx context.Context, identityName ndn.Name) (bool, error) {
	return u.identityRepo.Exists(ctx, identityName.URI())
}

// AddIdentity inserts the identity if absent. Calling it twice leaves exactly
// one row.
func (u *pibUseCase) AddIdentity(ctx context.Context, identityName ndn.Name) error {
	return u.txManager.WithTx(ctx, func(txCtx context.Context) error {
		return u.addIdentityTx(txCtx, identityName.URI())
	})
}

// addIdentityTx is the transactional body of AddIdentity, reused by AddKey to
// auto-create the owning identity inside the same transaction. A concurrent
// insert of the same name is absorbed to keep the operation idempotent.
func (u *pibUseCase) addIdentityTx(ctx context.Context, identityName string) error {
	exists, err := u.identityRepo.Exists(ctx, identityName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	err = u.identityRepo.Create(ctx, &pibDomain.Identity{IdentityName: identityName})
	if err != nil && apperrors.Is(err, apperrors.ErrConflict) {
		return nil
	}
	return err
}

// SetDefaultIdentity clears the previous default and marks the named
// identity. When the name is not stored the clear still applies, so a later
// DefaultIdentity call reports ErrNoDefaultIdentity.
func (u *pibUseCase) SetDefaultIdentity(ctx context.Context, identityName ndn.Name) error {
	return u.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if err := u.identityRepo.ClearDefault(txCtx); err != nil {
			return err
		}
		return u.identityRepo.SetDefault(txCtx, identityName.URI())
	})
}

// DefaultIdentity returns the default identity's name.
func (u *pibUseCase) DefaultIdentity(ctx context.Context) (ndn.Name, error) {
	identity, err := u.identityRepo.GetDefault(ctx)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return ndn.Name{}, pibDomain.ErrNoDefaultIdentity
		}
		return ndn.Name{}, err
	}
	return ndn.ParseName(identity.IdentityName)
}

// DeleteIdentity removes the identity's certificates, then its keys, then the
// identity row itself, as one transaction.
func (u *pibUseCase) DeleteIdentity(ctx context.Context, identityName ndn.Name) error {
	identity := identityName.URI()
	return u.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if err := u.certRepo.DeleteByIdentity(txCtx, identity); err != nil {
			return err
		}
		if err := u.keyRepo.DeleteByIdentity(txCtx, identity); err != nil {
			return err
		}
		return u.identityRepo.Delete(txCtx, identity)
	})
}

// KeyExists reports whether the full key name is stored.
func (u *pibUseCase) KeyExists(ctx context.Context, keyName ndn.Name) (bool, error) {
	identity, keyID := splitKeyName(keyName)
	return u.keyRepo.Exists(ctx, identity, keyID)
}

// AddKey stores a public key under its identity, creating the identity on
// demand inside the same transaction.
func (u *pibUseCase) AddKey(
	ctx context.Context,
	keyName ndn.Name,
	keyType pibDomain.KeyType,
	publicKey []byte,
) error {
	if keyName.Size() == 0 {
		return nil
	}

	identity, keyID := splitKeyName(keyName)

	return u.txManager.WithTx(ctx, func(txCtx context.Context) error {
		exists, err := u.keyRepo.Exists(txCtx, identity, keyID)
		if err != nil {
			return err
		}
		if exists {
			return pibDomain.ErrKeyExists
		}

		if err := u.addIdentityTx(txCtx, identity); err != nil {
			return err
		}

		return u.keyRepo.Create(txCtx, &pibDomain.Key{
			IdentityName: identity,
			KeyID:        keyID,
			KeyType:      keyType,
			PublicKey:    publicKey,
			IsActive:     true,
		})
	})
}

// Key returns the stored public key bytes. An absent key yields nil bytes and
// no error so callers can branch on presence without error handling.
func (u *pibUseCase) Key(ctx context.Context, keyName ndn.Name) ([]byte, error) {
	identity, keyID := splitKeyName(keyName)

	key, err := u.keyRepo.Get(ctx, identity, keyID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return key.PublicKey, nil
}

// UpdateKeyStatus sets the key's active flag without an existence check.
func (u *pibUseCase) UpdateKeyStatus(ctx context.Context, keyName ndn.Name, isActive bool) error {
	identity, keyID := splitKeyName(keyName)
	return u.keyRepo.UpdateStatus(ctx, identity, keyID, isActive)
}

// SetDefaultKey verifies the key belongs to identityCheck, then clears and
// sets the identity-scoped default flag in one transaction.
func (u *pibUseCase) SetDefaultKey(ctx context.Context, keyName, identityCheck ndn.Name) error {
	if !keyName.Prefix(-1).Equals(identityCheck) {
		return pibDomain.ErrIdentityMismatch
	}

	identity, keyID := splitKeyName(keyName)

	return u.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if err := u.keyRepo.ClearDefault(txCtx, identity); err != nil {
			return err
		}
		return u.keyRepo.SetDefault(txCtx, identity, keyID)
	})
}

// DefaultKeyName reconstructs the identity's default key name from the stored
// identity name and key identifier.
func (u *pibUseCase) DefaultKeyName(ctx context.Context, identityName ndn.Name) (ndn.Name, error) {
	key, err := u.keyRepo.GetDefault(ctx, identityName.URI())
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return ndn.Name{}, pibDomain.ErrNoDefaultKey
		}
		return ndn.Name{}, err
	}
	return identityName.AppendEscaped(key.KeyID)
}

// ListKeyNames returns the identity's full key names filtered by the default
// flag.
func (u *pibUseCase) ListKeyNames(
	ctx context.Context,
	identityName ndn.Name,
	isDefault bool,
) ([]ndn.Name, error) {
	keys, err := u.keyRepo.List(ctx, identityName.URI(), isDefault)
	if err != nil {
		return nil, err
	}

	names := make([]ndn.Name, 0, len(keys))
	for _, key := range keys {
		name, err := identityName.AppendEscaped(key.KeyID)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

// DeleteKey removes the key's certificates, then the key row, as one
// transaction.
func (u *pibUseCase) DeleteKey(ctx context.Context, keyName ndn.Name) error {
	if keyName.Size() == 0 {
		return nil
	}

	identity, keyID := splitKeyName(keyName)

	return u.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if err := u.certRepo.DeleteByKey(txCtx, identity, keyID); err != nil {
			return err
		}
		return u.keyRepo.Delete(txCtx, identity, keyID)
	})
}

// CertificateExists reports whether the certificate name is stored.
func (u *pibUseCase) CertificateExists(ctx context.Context, certificateName ndn.Name) (bool, error) {
	return u.certRepo.Exists(ctx, certificateName.URI())
}

// AddCertificate extracts the structured columns from the certificate and
// stores them with its canonical wire encoding.
func (u *pibUseCase) AddCertificate(ctx context.Context, cert *ndn.Certificate) error {
	certificateName := cert.Name.URI()
	identity, keyID := splitKeyName(cert.PublicKeyName)

	record := &pibDomain.Certificate{
		CertificateName: certificateName,
		SignerName:      cert.SignerKeyName.URI(),
		IdentityName:    identity,
		KeyID:           keyID,
		NotBefore:       floorSeconds(cert.NotBefore),
		NotAfter:        floorSeconds(cert.NotAfter),
		Data:            cert.Encode(),
	}

	return u.txManager.WithTx(ctx, func(txCtx context.Context) error {
		exists, err := u.certRepo.Exists(txCtx, certificateName)
		if err != nil {
			return err
		}
		if exists {
			return pibDomain.ErrCertificateExists
		}
		return u.certRepo.Create(txCtx, record)
	})
}

// Certificate returns the decoded certificate for the name. The validity
// filtered path (allowAny=false) is intentionally unimplemented and fails
// before touching storage. An absent certificate yields nil and no error.
func (u *pibUseCase) Certificate(
	ctx context.Context,
	certificateName ndn.Name,
	allowAny bool,
) (*ndn.Certificate, error) {
	if !allowAny {
		return nil, pibDomain.ErrValidityFilterNotImplemented
	}

	record, err := u.certRepo.Get(ctx, certificateName.URI())
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	cert, err := ndn.DecodeCertificate(record.Data)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to decode stored certificate")
	}
	return cert, nil
}

// SetDefaultCertificate clears and sets the key-scoped default flag in one
// transaction.
func (u *pibUseCase) SetDefaultCertificate(ctx context.Context, keyName, certificateName ndn.Name) error {
	identity, keyID := splitKeyName(keyName)
	certificate := certificateName.URI()

	return u.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if err := u.certRepo.ClearDefault(txCtx, identity, keyID); err != nil {
			return err
		}
		return u.certRepo.SetDefault(txCtx, identity, keyID, certificate)
	})
}

// DefaultCertificateName returns the key's default certificate name.
func (u *pibUseCase) DefaultCertificateName(ctx context.Context, keyName ndn.Name) (ndn.Name, error) {
	identity, keyID := splitKeyName(keyName)

	cert, err := u.certRepo.GetDefault(ctx, identity, keyID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return ndn.Name{}, pibDomain.ErrNoDefaultCertificate
		}
		return ndn.Name{}, err
	}
	return ndn.ParseName(cert.CertificateName)
}

// DeleteCertificate removes one certificate row by name.
func (u *pibUseCase) DeleteCertificate(ctx context.Context, certificateName ndn.Name) error {
	if certificateName.Size() == 0 {
		return nil
	}
	return u.certRepo.Delete(ctx, certificateName.URI())
}

// splitKeyName decomposes a full key name into the owning identity's URI and
// the escaped key identifier. The two parts are stored separately and the
// full name is only ever reconstructed, never stored as one string.
func splitKeyName(keyName ndn.Name) (identityName, keyID string) {
	return keyName.Prefix(-1).URI(), keyName.GetEscaped(-1)
}

// floorSeconds converts epoch milliseconds to whole epoch seconds, rounding
// toward negative infinity. Sub-second precision is deliberately discarded.
func floorSeconds(millis int64) int64 {
	seconds := millis / 1000
	if millis%1000 < 0 {
		seconds--
	}
	return seconds
}
