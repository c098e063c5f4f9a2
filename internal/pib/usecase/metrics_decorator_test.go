package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/pib/internal/metrics"
	"github.com/allisson/pib/internal/ndn"
	pibDomain "github.com/allisson/pib/internal/pib/domain"
	pibUsecaseMocks "github.com/allisson/pib/internal/pib/usecase/mocks"
)

// mockBusinessMetrics is a mock implementation of metrics.BusinessMetrics for testing.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

var _ metrics.BusinessMetrics = (*mockBusinessMetrics)(nil)

func (m *mockBusinessMetrics) expectObservation(ctx context.Context, operation, status string) {
	m.On("RecordOperation", ctx, "pib", operation, status).Return().Once()
	m.On("RecordDuration", ctx, "pib", operation, mock.AnythingOfType("time.Duration"), status).
		Return().
		Once()
}

func TestNewPibUseCaseWithMetrics(t *testing.T) {
	decorator := NewPibUseCaseWithMetrics(&pibUsecaseMocks.MockPibUseCase{}, &mockBusinessMetrics{})

	assert.NotNil(t, decorator)
	assert.Implements(t, (*PibUseCase)(nil), decorator)
}

func TestMetricsDecorator_RecordsSuccess(t *testing.T) {
	ctx := context.Background()
	alice := ndn.NewName("alice")

	mockUseCase := &pibUsecaseMocks.MockPibUseCase{}
	mockMetrics := &mockBusinessMetrics{}

	mockUseCase.On("AddIdentity", ctx, alice).Return(nil).Once()
	mockMetrics.expectObservation(ctx, "identity_add", "success")

	decorator := NewPibUseCaseWithMetrics(mockUseCase, mockMetrics)
	assert.NoError(t, decorator.AddIdentity(ctx, alice))

	mockUseCase.AssertExpectations(t)
	mockMetrics.AssertExpectations(t)
}

func TestMetricsDecorator_RecordsError(t *testing.T) {
	ctx := context.Background()
	keyName := ndn.NewName("alice", "KEY-1")
	wantErr := errors.New("storage is down")

	mockUseCase := &pibUsecaseMocks.MockPibUseCase{}
	mockMetrics := &mockBusinessMetrics{}

	mockUseCase.On("AddKey", ctx, keyName, pibDomain.KeyTypeRSA, []byte("bits")).Return(wantErr).Once()
	mockMetrics.expectObservation(ctx, "key_add", "error")

	decorator := NewPibUseCaseWithMetrics(mockUseCase, mockMetrics)
	err := decorator.AddKey(ctx, keyName, pibDomain.KeyTypeRSA, []byte("bits"))
	assert.ErrorIs(t, err, wantErr)

	mockUseCase.AssertExpectations(t)
	mockMetrics.AssertExpectations(t)
}

func TestMetricsDecorator_PassesResultsThrough(t *testing.T) {
	ctx := context.Background()

	t.Run("Key", func(t *testing.T) {
		keyName := ndn.NewName("alice", "KEY-1")

		mockUseCase := &pibUsecaseMocks.MockPibUseCase{}
		mockMetrics := &mockBusinessMetrics{}

		mockUseCase.On("Key", ctx, keyName).Return([]byte("public-bits"), nil).Once()
		mockMetrics.expectObservation(ctx, "key_get", "success")

		decorator := NewPibUseCaseWithMetrics(mockUseCase, mockMetrics)
		publicKey, err := decorator.Key(ctx, keyName)
		assert.NoError(t, err)
		assert.Equal(t, []byte("public-bits"), publicKey)

		mockUseCase.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("DefaultCertificateName", func(t *testing.T) {
		keyName := ndn.NewName("alice", "KEY-1")
		certName := ndn.NewName("alice", "KEY-1", "ID-CERT", "1")

		mockUseCase := &pibUsecaseMocks.MockPibUseCase{}
		mockMetrics := &mockBusinessMetrics{}

		mockUseCase.On("DefaultCertificateName", ctx, keyName).Return(certName, nil).Once()
		mockMetrics.expectObservation(ctx, "certificate_get_default", "success")

		decorator := NewPibUseCaseWithMetrics(mockUseCase, mockMetrics)
		name, err := decorator.DefaultCertificateName(ctx, keyName)
		assert.NoError(t, err)
		assert.True(t, certName.Equals(name))

		mockUseCase.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})
}
