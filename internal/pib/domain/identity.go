// Package domain defines the core domain models for the public-key
// information base: identities, their keys, and the certificates that bind
// keys to identities. Every record is addressed by hierarchical name; at most
// one record per scope carries the default flag.
package domain

// Identity represents a namespace that owns keys and certificates.
type Identity struct {
	// IdentityName is the canonical URI form of the identity's name.
	IdentityName string
	// IsDefault marks the store-wide default identity. At most one identity
	// has this set.
	IsDefault bool
}

// Key represents a stored public key owned by an identity.
type Key struct {
	// IdentityName is the owning identity's name in URI form.
	IdentityName string
	// KeyID is the escaped final component of the key's full name. The full
	// key name is reconstructed as IdentityName + KeyID and never stored
	// as one string.
	KeyID string
	// KeyType is the signing-algorithm family of the key.
	KeyType KeyType
	// PublicKey is the opaque encoded public key material.
	PublicKey []byte
	// IsActive reports whether the key may be used for signing.
	IsActive bool
	// IsDefault marks the identity's default key. At most one key per
	// identity has this set.
	IsDefault bool
}

// Certificate represents a stored certificate row. The structured columns are
// extracted from the certificate at insert time; Data holds the canonical
// wire encoding verbatim.
type Certificate struct {
	// CertificateName is the certificate's own name in URI form.
	CertificateName string
	// SignerName is the name of the key that signed the certificate,
	// extracted from the certificate's signature structure.
	SignerName string
	// IdentityName and KeyID locate the certified key.
	IdentityName string
	KeyID        string
	// NotBefore and NotAfter bound the validity window in whole seconds
	// since the Unix epoch.
	NotBefore int64
	NotAfter  int64
	// Data is the certificate's canonical wire encoding.
	Data []byte
	// IsDefault marks the key's default certificate. At most one
	// certificate per (IdentityName, KeyID) has this set.
	IsDefault bool
}
