package commands

import (
	"bytes"
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/allisson/pib/internal/ndn"
	pibDomain "github.com/allisson/pib/internal/pib/domain"
	pibMocks "github.com/allisson/pib/internal/pib/usecase/mocks"
)

func TestRunAddKey(t *testing.T) {
	ctx := context.Background()
	logger := testLogger()
	publicKey := []byte("public-key-bits")

	t.Run("from-base64", func(t *testing.T) {
		mockUseCase := &pibMocks.MockPibUseCase{}
		mockUseCase.On("AddKey", ctx, ndn.NewName("alice", "ksk-1"), pibDomain.KeyTypeRSA, publicKey).Return(nil)

		var out bytes.Buffer
		err := RunAddKey(
			ctx, mockUseCase, logger, &out,
			"/alice/ksk-1", "rsa", "", base64.StdEncoding.EncodeToString(publicKey),
		)

		require.NoError(t, err)
		require.Contains(t, out.String(), "Key added: /alice/ksk-1 (rsa)")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("from-file", func(t *testing.T) {
		keyFile := filepath.Join(t.TempDir(), "key.der")
		require.NoError(t, os.WriteFile(keyFile, publicKey, 0o600))

		mockUseCase := &pibMocks.MockPibUseCase{}
		mockUseCase.On("AddKey", ctx, ndn.NewName("alice", "ksk-1"), pibDomain.KeyTypeECDSA, publicKey).Return(nil)

		var out bytes.Buffer
		err := RunAddKey(ctx, mockUseCase, logger, &out, "/alice/ksk-1", "ecdsa", keyFile, "")

		require.NoError(t, err)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("both-sources-rejected", func(t *testing.T) {
		mockUseCase := &pibMocks.MockPibUseCase{}

		err := RunAddKey(ctx, mockUseCase, logger, &bytes.Buffer{}, "/alice/ksk-1", "rsa", "key.der", "Ym l0cw==")
		require.Error(t, err)
		require.Contains(t, err.Error(), "not both")
	})

	t.Run("no-source-rejected", func(t *testing.T) {
		mockUseCase := &pibMocks.MockPibUseCase{}

		err := RunAddKey(ctx, mockUseCase, logger, &bytes.Buffer{}, "/alice/ksk-1", "rsa", "", "")
		require.Error(t, err)
	})

	t.Run("empty-file-rejected", func(t *testing.T) {
		keyFile := filepath.Join(t.TempDir(), "empty.der")
		require.NoError(t, os.WriteFile(keyFile, nil, 0o600))

		mockUseCase := &pibMocks.MockPibUseCase{}

		err := RunAddKey(ctx, mockUseCase, logger, &bytes.Buffer{}, "/alice/ksk-1", "rsa", keyFile, "")
		require.Error(t, err)
		require.Contains(t, err.Error(), "public key file is empty")
	})

	t.Run("invalid-key-type", func(t *testing.T) {
		mockUseCase := &pibMocks.MockPibUseCase{}

		err := RunAddKey(ctx, mockUseCase, logger, &bytes.Buffer{}, "/alice/ksk-1", "dsa", "", "Yml0cw==")
		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid key type")
	})

	t.Run("name-without-key-identifier", func(t *testing.T) {
		mockUseCase := &pibMocks.MockPibUseCase{}

		err := RunAddKey(ctx, mockUseCase, logger, &bytes.Buffer{}, "/alice", "rsa", "", "Yml0cw==")
		require.Error(t, err)
		require.Contains(t, err.Error(), "identity prefix and a key identifier")
	})

	t.Run("duplicate-key", func(t *testing.T) {
		mockUseCase := &pibMocks.MockPibUseCase{}
		mockUseCase.On("AddKey", ctx, ndn.NewName("alice", "ksk-1"), pibDomain.KeyTypeRSA, publicKey).
			Return(pibDomain.ErrKeyExists)

		err := RunAddKey(
			ctx, mockUseCase, logger, &bytes.Buffer{},
			"/alice/ksk-1", "rsa", "", base64.StdEncoding.EncodeToString(publicKey),
		)
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to add key")
	})
}
