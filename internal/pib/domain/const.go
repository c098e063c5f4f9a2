package domain

// KeyType identifies the signing-algorithm family of a stored public key.
// The numeric values are persisted in the key_type column and must not be
// reordered.
type KeyType int

const (
	// KeyTypeRSA is an RSA public key.
	KeyTypeRSA KeyType = 0

	// KeyTypeECDSA is an elliptic-curve public key.
	KeyTypeECDSA KeyType = 1

	// KeyTypeAES is a symmetric key entry. Kept for parity with stores that
	// track symmetric keys alongside signing keys.
	KeyTypeAES KeyType = 128
)

// String returns the human-readable name of the key type.
func (k KeyType) String() string {
	switch k {
	case KeyTypeRSA:
		return "rsa"
	case KeyTypeECDSA:
		return "ecdsa"
	case KeyTypeAES:
		return "aes"
	default:
		return "unknown"
	}
}

// Valid reports whether the key type is one of the supported families.
func (k KeyType) Valid() bool {
	switch k {
	case KeyTypeRSA, KeyTypeECDSA, KeyTypeAES:
		return true
	default:
		return false
	}
}

// ParseKeyType converts a key type name into its enum value.
func ParseKeyType(value string) (KeyType, bool) {
	switch value {
	case "rsa":
		return KeyTypeRSA, true
	case "ecdsa":
		return KeyTypeECDSA, true
	case "aes":
		return KeyTypeAES, true
	default:
		return 0, false
	}
}
