package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyTypeString(t *testing.T) {
	assert.Equal(t, "rsa", KeyTypeRSA.String())
	assert.Equal(t, "ecdsa", KeyTypeECDSA.String())
	assert.Equal(t, "aes", KeyTypeAES.String())
	assert.Equal(t, "unknown", KeyType(42).String())
}

func TestKeyTypeValid(t *testing.T) {
	assert.True(t, KeyTypeRSA.Valid())
	assert.True(t, KeyTypeECDSA.Valid())
	assert.True(t, KeyTypeAES.Valid())
	assert.False(t, KeyType(42).Valid())
}

// The numeric values are persisted in the key_type column and must stay
// stable across releases.
func TestKeyTypePersistedValues(t *testing.T) {
	assert.Equal(t, 0, int(KeyTypeRSA))
	assert.Equal(t, 1, int(KeyTypeECDSA))
	assert.Equal(t, 128, int(KeyTypeAES))
}

func TestParseKeyType(t *testing.T) {
	tests := []struct {
		value string
		want  KeyType
		ok    bool
	}{
		{"rsa", KeyTypeRSA, true},
		{"ecdsa", KeyTypeECDSA, true},
		{"aes", KeyTypeAES, true},
		{"RSA", 0, false},
		{"", 0, false},
		{"dsa", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseKeyType(tt.value)
		assert.Equal(t, tt.ok, ok, tt.value)
		if tt.ok {
			assert.Equal(t, tt.want, got, tt.value)
		}
	}
}
