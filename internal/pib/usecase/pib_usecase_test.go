package usecase

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/allisson/pib/internal/database"
	apperrors "github.com/allisson/pib/internal/errors"
	"github.com/allisson/pib/internal/ndn"
	pibDomain "github.com/allisson/pib/internal/pib/domain"
	"github.com/allisson/pib/internal/pib/repository"
	"github.com/allisson/pib/internal/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// newTestUseCase wires the use case over a real SQLite file so the
// transactional behavior is exercised, not mocked.
func newTestUseCase(t *testing.T) (PibUseCase, *sql.DB) {
	t.Helper()

	db := testutil.SetupDB(t)
	useCase := NewPibUseCase(
		database.NewTxManager(db),
		repository.NewSQLiteIdentityRepository(db),
		repository.NewSQLiteKeyRepository(db),
		repository.NewSQLiteCertificateRepository(db),
	)
	return useCase, db
}

func testCert(keyName ndn.Name, version string) *ndn.Certificate {
	return &ndn.Certificate{
		Name:          keyName.Append("ID-CERT").Append(version),
		PublicKeyName: keyName,
		SignerKeyName: ndn.NewName("root", "KEY-0"),
		NotBefore:     1700000000500,
		NotAfter:      1800000000999,
		Content:       []byte("certified-key-bits"),
	}
}

func TestPibUseCase_AddIdentity(t *testing.T) {
	useCase, db := newTestUseCase(t)
	ctx := context.Background()
	alice := ndn.NewName("alice")

	exists, err := useCase.IdentityExists(ctx, alice)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, useCase.AddIdentity(ctx, alice))

	exists, err = useCase.IdentityExists(ctx, alice)
	require.NoError(t, err)
	assert.True(t, exists)

	t.Run("Idempotent", func(t *testing.T) {
		require.NoError(t, useCase.AddIdentity(ctx, alice))

		var count int
		query := `SELECT COUNT(*) FROM identities WHERE identity_name = ?`
		require.NoError(t, db.QueryRowContext(ctx, query, "/alice").Scan(&count))
		assert.Equal(t, 1, count)
	})
}

func TestPibUseCase_DefaultIdentity(t *testing.T) {
	useCase, db := newTestUseCase(t)
	ctx := context.Background()
	alice := ndn.NewName("alice")
	bob := ndn.NewName("bob")

	require.NoError(t, useCase.AddIdentity(ctx, alice))
	require.NoError(t, useCase.AddIdentity(ctx, bob))

	t.Run("NotSet", func(t *testing.T) {
		_, err := useCase.DefaultIdentity(ctx)
		assert.ErrorIs(t, err, pibDomain.ErrNoDefaultIdentity)
	})

	t.Run("SetAndGet", func(t *testing.T) {
		require.NoError(t, useCase.SetDefaultIdentity(ctx, alice))

		name, err := useCase.DefaultIdentity(ctx)
		require.NoError(t, err)
		assert.True(t, alice.Equals(name))
	})

	t.Run("SwitchKeepsSingleDefault", func(t *testing.T) {
		require.NoError(t, useCase.SetDefaultIdentity(ctx, bob))

		name, err := useCase.DefaultIdentity(ctx)
		require.NoError(t, err)
		assert.True(t, bob.Equals(name))

		var count int
		query := `SELECT COUNT(*) FROM identities WHERE is_default = 1`
		require.NoError(t, db.QueryRowContext(ctx, query).Scan(&count))
		assert.Equal(t, 1, count)
	})

	t.Run("SetToMissingNameStillClearsPrevious", func(t *testing.T) {
		require.NoError(t, useCase.SetDefaultIdentity(ctx, ndn.NewName("missing")))

		_, err := useCase.DefaultIdentity(ctx)
		assert.ErrorIs(t, err, pibDomain.ErrNoDefaultIdentity)
	})
}

func TestPibUseCase_AddKey(t *testing.T) {
	useCase, db := newTestUseCase(t)
	ctx := context.Background()
	keyName := ndn.NewName("alice", "KEY-1")

	t.Run("AutoCreatesIdentity", func(t *testing.T) {
		require.NoError(t, useCase.AddKey(ctx, keyName, pibDomain.KeyTypeRSA, []byte("rsa-bits")))

		exists, err := useCase.IdentityExists(ctx, ndn.NewName("alice"))
		require.NoError(t, err)
		assert.True(t, exists)

		publicKey, err := useCase.Key(ctx, keyName)
		require.NoError(t, err)
		assert.Equal(t, []byte("rsa-bits"), publicKey)
	})

	t.Run("DuplicateLeavesStoreUnchanged", func(t *testing.T) {
		err := useCase.AddKey(ctx, keyName, pibDomain.KeyTypeECDSA, []byte("other-bits"))
		assert.ErrorIs(t, err, pibDomain.ErrKeyExists)

		publicKey, err := useCase.Key(ctx, keyName)
		require.NoError(t, err)
		assert.Equal(t, []byte("rsa-bits"), publicKey)

		var count int
		require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM keys`).Scan(&count))
		assert.Equal(t, 1, count)
	})

	t.Run("EmptyNameIsIgnored", func(t *testing.T) {
		require.NoError(t, useCase.AddKey(ctx, ndn.Name{}, pibDomain.KeyTypeRSA, []byte("bits")))

		var count int
		require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM keys`).Scan(&count))
		assert.Equal(t, 1, count)
	})
}

func TestPibUseCase_Key(t *testing.T) {
	useCase, _ := newTestUseCase(t)
	ctx := context.Background()

	t.Run("MissingKeyYieldsNilAndNoError", func(t *testing.T) {
		publicKey, err := useCase.Key(ctx, ndn.NewName("alice", "missing"))
		require.NoError(t, err)
		assert.Nil(t, publicKey)
	})

	t.Run("ExistsMatchesPresence", func(t *testing.T) {
		keyName := ndn.NewName("alice", "KEY-1")

		exists, err := useCase.KeyExists(ctx, keyName)
		require.NoError(t, err)
		assert.False(t, exists)

		require.NoError(t, useCase.AddKey(ctx, keyName, pibDomain.KeyTypeECDSA, []byte("ec-bits")))

		exists, err = useCase.KeyExists(ctx, keyName)
		require.NoError(t, err)
		assert.True(t, exists)
	})
}

func TestPibUseCase_UpdateKeyStatus(t *testing.T) {
	useCase, db := newTestUseCase(t)
	ctx := context.Background()
	keyName := ndn.NewName("alice", "KEY-1")

	require.NoError(t, useCase.AddKey(ctx, keyName, pibDomain.KeyTypeRSA, []byte("bits")))
	require.NoError(t, useCase.UpdateKeyStatus(ctx, keyName, false))

	var isActive bool
	query := `SELECT is_active FROM keys WHERE identity_name = ? AND key_identifier = ?`
	require.NoError(t, db.QueryRowContext(ctx, query, "/alice", "KEY-1").Scan(&isActive))
	assert.False(t, isActive)

	// no existence check, missing keys are silently ignored
	assert.NoError(t, useCase.UpdateKeyStatus(ctx, ndn.NewName("alice", "missing"), true))
}

func TestPibUseCase_DefaultKey(t *testing.T) {
	useCase, db := newTestUseCase(t)
	ctx := context.Background()
	alice := ndn.NewName("alice")
	keyOne := ndn.NewName("alice", "KEY-1")
	keyTwo := ndn.NewName("alice", "KEY-2")

	require.NoError(t, useCase.AddKey(ctx, keyOne, pibDomain.KeyTypeRSA, []byte("one")))
	require.NoError(t, useCase.AddKey(ctx, keyTwo, pibDomain.KeyTypeRSA, []byte("two")))

	t.Run("NotSet", func(t *testing.T) {
		_, err := useCase.DefaultKeyName(ctx, alice)
		assert.ErrorIs(t, err, pibDomain.ErrNoDefaultKey)
	})

	t.Run("IdentityMismatchRejected", func(t *testing.T) {
		err := useCase.SetDefaultKey(ctx, keyOne, ndn.NewName("bob"))
		assert.ErrorIs(t, err, pibDomain.ErrIdentityMismatch)
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	})

	t.Run("SetAndGet", func(t *testing.T) {
		require.NoError(t, useCase.SetDefaultKey(ctx, keyOne, alice))

		name, err := useCase.DefaultKeyName(ctx, alice)
		require.NoError(t, err)
		assert.True(t, keyOne.Equals(name))
	})

	t.Run("SwitchKeepsSingleDefault", func(t *testing.T) {
		require.NoError(t, useCase.SetDefaultKey(ctx, keyTwo, alice))

		name, err := useCase.DefaultKeyName(ctx, alice)
		require.NoError(t, err)
		assert.True(t, keyTwo.Equals(name))

		var count int
		query := `SELECT COUNT(*) FROM keys WHERE identity_name = ? AND is_default = 1`
		require.NoError(t, db.QueryRowContext(ctx, query, "/alice").Scan(&count))
		assert.Equal(t, 1, count)
	})
}

func TestPibUseCase_ListKeyNames(t *testing.T) {
	useCase, _ := newTestUseCase(t)
	ctx := context.Background()
	alice := ndn.NewName("alice")

	require.NoError(t, useCase.AddKey(ctx, ndn.NewName("alice", "KEY-1"), pibDomain.KeyTypeRSA, []byte("one")))
	require.NoError(t, useCase.AddKey(ctx, ndn.NewName("alice", "KEY-2"), pibDomain.KeyTypeRSA, []byte("two")))
	require.NoError(t, useCase.SetDefaultKey(ctx, ndn.NewName("alice", "KEY-1"), alice))

	defaults, err := useCase.ListKeyNames(ctx, alice, true)
	require.NoError(t, err)
	require.Len(t, defaults, 1)
	assert.Equal(t, "/alice/KEY-1", defaults[0].URI())

	others, err := useCase.ListKeyNames(ctx, alice, false)
	require.NoError(t, err)
	require.Len(t, others, 1)
	assert.Equal(t, "/alice/KEY-2", others[0].URI())
}

func TestPibUseCase_DeleteIdentity(t *testing.T) {
	useCase, db := newTestUseCase(t)
	ctx := context.Background()
	keyName := ndn.NewName("alice", "KEY-1")

	require.NoError(t, useCase.AddKey(ctx, keyName, pibDomain.KeyTypeRSA, []byte("bits")))
	require.NoError(t, useCase.AddCertificate(ctx, testCert(keyName, "1")))
	require.NoError(t, useCase.AddKey(ctx, ndn.NewName("bob", "KEY-1"), pibDomain.KeyTypeRSA, []byte("bits")))

	require.NoError(t, useCase.DeleteIdentity(ctx, ndn.NewName("alice")))

	for table, want := range map[string]int{"identities": 1, "keys": 1, "certificates": 0} {
		var count int
		require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&count))
		assert.Equal(t, want, count, table)
	}

	exists, err := useCase.IdentityExists(ctx, ndn.NewName("bob"))
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestPibUseCase_DeleteKey(t *testing.T) {
	useCase, db := newTestUseCase(t)
	ctx := context.Background()
	keyName := ndn.NewName("alice", "KEY-1")

	require.NoError(t, useCase.AddKey(ctx, keyName, pibDomain.KeyTypeRSA, []byte("bits")))
	require.NoError(t, useCase.AddCertificate(ctx, testCert(keyName, "1")))
	require.NoError(t, useCase.AddCertificate(ctx, testCert(keyName, "2")))

	require.NoError(t, useCase.DeleteKey(ctx, keyName))

	exists, err := useCase.KeyExists(ctx, keyName)
	require.NoError(t, err)
	assert.False(t, exists)

	var count int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM certificates`).Scan(&count))
	assert.Equal(t, 0, count)

	// the owning identity survives
	exists, err = useCase.IdentityExists(ctx, ndn.NewName("alice"))
	require.NoError(t, err)
	assert.True(t, exists)

	assert.NoError(t, useCase.DeleteKey(ctx, ndn.Name{}))
}

func TestPibUseCase_AddCertificate(t *testing.T) {
	useCase, db := newTestUseCase(t)
	ctx := context.Background()
	keyName := ndn.NewName("alice", "KEY-1")
	cert := testCert(keyName, "1")

	require.NoError(t, useCase.AddCertificate(ctx, cert))

	t.Run("StructuredColumnsExtracted", func(t *testing.T) {
		var record struct {
			signer    string
			identity  string
			keyID     string
			notBefore int64
			notAfter  int64
		}
		query := `SELECT signer_name, identity_name, key_identifier, not_before, not_after
				  FROM certificates WHERE certificate_name = ?`
		require.NoError(t, db.QueryRowContext(ctx, query, cert.Name.URI()).Scan(
			&record.signer,
			&record.identity,
			&record.keyID,
			&record.notBefore,
			&record.notAfter,
		))

		assert.Equal(t, "/root/KEY-0", record.signer)
		assert.Equal(t, "/alice", record.identity)
		assert.Equal(t, "KEY-1", record.keyID)
		// millisecond timestamps are floored to whole seconds
		assert.Equal(t, int64(1700000000), record.notBefore)
		assert.Equal(t, int64(1800000000), record.notAfter)
	})

	t.Run("Duplicate", func(t *testing.T) {
		err := useCase.AddCertificate(ctx, testCert(keyName, "1"))
		assert.ErrorIs(t, err, pibDomain.ErrCertificateExists)
	})

	t.Run("RoundTrip", func(t *testing.T) {
		read, err := useCase.Certificate(ctx, cert.Name, true)
		require.NoError(t, err)
		require.NotNil(t, read)
		assert.True(t, cert.Name.Equals(read.Name))
		assert.True(t, cert.PublicKeyName.Equals(read.PublicKeyName))
		assert.True(t, cert.SignerKeyName.Equals(read.SignerKeyName))
		assert.Equal(t, cert.NotBefore, read.NotBefore)
		assert.Equal(t, cert.NotAfter, read.NotAfter)
		assert.Equal(t, cert.Content, read.Content)
		assert.Equal(t, cert.Encode(), read.Encode())
	})
}

func TestPibUseCase_Certificate(t *testing.T) {
	useCase, _ := newTestUseCase(t)
	ctx := context.Background()
	keyName := ndn.NewName("alice", "KEY-1")
	cert := testCert(keyName, "1")

	require.NoError(t, useCase.AddCertificate(ctx, cert))

	t.Run("MissingCertificateYieldsNilAndNoError", func(t *testing.T) {
		read, err := useCase.Certificate(ctx, ndn.NewName("missing"), true)
		require.NoError(t, err)
		assert.Nil(t, read)
	})

	t.Run("ValidityFilteringIsRejectedBeforeStorage", func(t *testing.T) {
		_, err := useCase.Certificate(ctx, cert.Name, false)
		assert.ErrorIs(t, err, pibDomain.ErrValidityFilterNotImplemented)
		assert.True(t, apperrors.Is(err, apperrors.ErrNotImplemented))

		// the filter is rejected even for names that are not stored
		_, err = useCase.Certificate(ctx, ndn.NewName("missing"), false)
		assert.ErrorIs(t, err, pibDomain.ErrValidityFilterNotImplemented)
	})
}

func TestPibUseCase_DefaultCertificate(t *testing.T) {
	useCase, db := newTestUseCase(t)
	ctx := context.Background()
	keyName := ndn.NewName("alice", "KEY-1")
	certOne := testCert(keyName, "1")
	certTwo := testCert(keyName, "2")

	require.NoError(t, useCase.AddCertificate(ctx, certOne))
	require.NoError(t, useCase.AddCertificate(ctx, certTwo))

	t.Run("NotSet", func(t *testing.T) {
		_, err := useCase.DefaultCertificateName(ctx, keyName)
		assert.ErrorIs(t, err, pibDomain.ErrNoDefaultCertificate)
	})

	t.Run("SetAndGet", func(t *testing.T) {
		require.NoError(t, useCase.SetDefaultCertificate(ctx, keyName, certOne.Name))

		name, err := useCase.DefaultCertificateName(ctx, keyName)
		require.NoError(t, err)
		assert.True(t, certOne.Name.Equals(name))
	})

	t.Run("SwitchKeepsSingleDefault", func(t *testing.T) {
		require.NoError(t, useCase.SetDefaultCertificate(ctx, keyName, certTwo.Name))

		name, err := useCase.DefaultCertificateName(ctx, keyName)
		require.NoError(t, err)
		assert.True(t, certTwo.Name.Equals(name))

		var count int
		query := `SELECT COUNT(*) FROM certificates WHERE is_default = 1`
		require.NoError(t, db.QueryRowContext(ctx, query).Scan(&count))
		assert.Equal(t, 1, count)
	})
}

func TestPibUseCase_DeleteCertificate(t *testing.T) {
	useCase, _ := newTestUseCase(t)
	ctx := context.Background()
	keyName := ndn.NewName("alice", "KEY-1")
	cert := testCert(keyName, "1")

	require.NoError(t, useCase.AddCertificate(ctx, cert))
	require.NoError(t, useCase.DeleteCertificate(ctx, cert.Name))

	exists, err := useCase.CertificateExists(ctx, cert.Name)
	require.NoError(t, err)
	assert.False(t, exists)

	assert.NoError(t, useCase.DeleteCertificate(ctx, ndn.Name{}))
}

func TestFloorSeconds(t *testing.T) {
	tests := []struct {
		millis int64
		want   int64
	}{
		{0, 0},
		{999, 0},
		{1000, 1},
		{1700000000500, 1700000000},
		{-1, -1},
		{-1000, -1},
		{-1001, -2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, floorSeconds(tt.millis), "millis=%d", tt.millis)
	}
}
