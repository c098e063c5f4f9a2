package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/allisson/pib/internal/ndn"
	pibMocks "github.com/allisson/pib/internal/pib/usecase/mocks"
)

func TestRunListKeys(t *testing.T) {
	ctx := context.Background()
	logger := testLogger()

	t.Run("text-output", func(t *testing.T) {
		names := []ndn.Name{ndn.NewName("alice", "ksk-1"), ndn.NewName("alice", "ksk-2")}

		mockUseCase := &pibMocks.MockPibUseCase{}
		mockUseCase.On("ListKeyNames", ctx, ndn.NewName("alice"), false).Return(names, nil)

		var out bytes.Buffer
		err := RunListKeys(ctx, mockUseCase, logger, &out, "/alice", false, "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "Keys for /alice:")
		require.Contains(t, out.String(), "/alice/ksk-1")
		require.Contains(t, out.String(), "/alice/ksk-2")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("json-output", func(t *testing.T) {
		names := []ndn.Name{ndn.NewName("alice", "ksk-1")}

		mockUseCase := &pibMocks.MockPibUseCase{}
		mockUseCase.On("ListKeyNames", ctx, ndn.NewName("alice"), true).Return(names, nil)

		var out bytes.Buffer
		err := RunListKeys(ctx, mockUseCase, logger, &out, "/alice", true, "json")

		require.NoError(t, err)
		require.Contains(t, out.String(), `"/alice/ksk-1"`)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("no-keys", func(t *testing.T) {
		mockUseCase := &pibMocks.MockPibUseCase{}
		mockUseCase.On("ListKeyNames", ctx, ndn.NewName("alice"), false).Return([]ndn.Name{}, nil)

		var out bytes.Buffer
		err := RunListKeys(ctx, mockUseCase, logger, &out, "/alice", false, "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "No keys found for /alice")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("invalid-identity", func(t *testing.T) {
		mockUseCase := &pibMocks.MockPibUseCase{}

		err := RunListKeys(ctx, mockUseCase, logger, &bytes.Buffer{}, "", false, "text")
		require.Error(t, err)
	})
}
