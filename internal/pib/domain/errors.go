package domain

import (
	"github.com/allisson/pib/internal/errors"
)

// Credential store error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors so
// callers can branch on the broad category (errors.Is against ErrConflict,
// ErrNotFound, ...) or on the precise condition.
var (
	// ErrKeyExists indicates an addKey call for a full key name that is
	// already stored. addKey is not idempotent, unlike addIdentity.
	ErrKeyExists = errors.Wrap(errors.ErrConflict, "key already exists")

	// ErrCertificateExists indicates an addCertificate call for a
	// certificate name that is already stored.
	ErrCertificateExists = errors.Wrap(errors.ErrConflict, "certificate already exists")

	// ErrNoDefaultIdentity indicates no identity currently carries the
	// default flag.
	ErrNoDefaultIdentity = errors.Wrap(errors.ErrNotFound, "default identity is not set")

	// ErrNoDefaultKey indicates the identity has no default key configured.
	ErrNoDefaultKey = errors.Wrap(errors.ErrNotFound, "default key is not set for the identity")

	// ErrNoDefaultCertificate indicates the key has no default certificate
	// configured.
	ErrNoDefaultCertificate = errors.Wrap(errors.ErrNotFound, "default certificate is not set for the key")

	// ErrIdentityMismatch indicates a default-key update whose key name does
	// not belong to the asserted identity.
	ErrIdentityMismatch = errors.Wrap(errors.ErrInvalidInput, "key does not belong to the identity")

	// ErrValidityFilterNotImplemented is returned by certificate lookups that
	// request validity filtering. The filtered query path is intentionally
	// unimplemented; callers must pass allowAny=true.
	ErrValidityFilterNotImplemented = errors.Wrap(
		errors.ErrNotImplemented,
		"certificate lookup with validity filtering",
	)
)
