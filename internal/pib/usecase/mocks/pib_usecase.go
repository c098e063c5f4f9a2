// Package mocks provides mock implementations for testing HTTP handlers and commands.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/allisson/pib/internal/ndn"
	pibDomain "github.com/allisson/pib/internal/pib/domain"
)

// MockPibUseCase is a mock implementation of PibUseCase for testing.
type MockPibUseCase struct {
	mock.Mock
}

// IdentityExists mocks the IdentityExists method of PibUseCase.
func (m *MockPibUseCase) IdentityExists(ctx context.Context, identityName ndn.Name) (bool, error) {
	args := m.Called(ctx, identityName)
	return args.Bool(0), args.Error(1)
}

// AddIdentity mocks the AddIdentity method of PibUseCase.
func (m *MockPibUseCase) AddIdentity(ctx context.Context, identityName ndn.Name) error {
	args := m.Called(ctx, identityName)
	return args.Error(0)
}

// SetDefaultIdentity mocks the SetDefaultIdentity method of PibUseCase.
func (m *MockPibUseCase) SetDefaultIdentity(ctx context.Context, identityName ndn.Name) error {
	args := m.Called(ctx, identityName)
	return args.Error(0)
}

// DefaultIdentity mocks the DefaultIdentity method of PibUseCase.
func (m *MockPibUseCase) DefaultIdentity(ctx context.Context) (ndn.Name, error) {
	args := m.Called(ctx)
	return args.Get(0).(ndn.Name), args.Error(1)
}

// DeleteIdentity mocks the DeleteIdentity method of PibUseCase.
func (m *MockPibUseCase) DeleteIdentity(ctx context.Context, identityName ndn.Name) error {
	args := m.Called(ctx, identityName)
	return args.Error(0)
}

// KeyExists mocks the KeyExists method of PibUseCase.
func (m *MockPibUseCase) KeyExists(ctx context.Context, keyName ndn.Name) (bool, error) {
	args := m.Called(ctx, keyName)
	return args.Bool(0), args.Error(1)
}

// AddKey mocks the AddKey method of PibUseCase.
func (m *MockPibUseCase) AddKey(
	ctx context.Context,
	keyName ndn.Name,
	keyType pibDomain.KeyType,
	publicKey []byte,
) error {
	args := m.Called(ctx, keyName, keyType, publicKey)
	return args.Error(0)
}

// Key mocks the Key method of PibUseCase.
func (m *MockPibUseCase) Key(ctx context.Context, keyName ndn.Name) ([]byte, error) {
	args := m.Called(ctx, keyName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// UpdateKeyStatus mocks the UpdateKeyStatus method of PibUseCase.
func (m *MockPibUseCase) UpdateKeyStatus(ctx context.Context, keyName ndn.Name, isActive bool) error {
	args := m.Called(ctx, keyName, isActive)
	return args.Error(0)
}

// SetDefaultKey mocks the SetDefaultKey method of PibUseCase.
func (m *MockPibUseCase) SetDefaultKey(ctx context.Context, keyName, identityCheck ndn.Name) error {
	args := m.Called(ctx, keyName, identityCheck)
	return args.Error(0)
}

// DefaultKeyName mocks the DefaultKeyName method of PibUseCase.
func (m *MockPibUseCase) DefaultKeyName(ctx context.Context, identityName ndn.Name) (ndn.Name, error) {
	args := m.Called(ctx, identityName)
	return args.Get(0).(ndn.Name), args.Error(1)
}

// ListKeyNames mocks the ListKeyNames method of PibUseCase.
func (m *MockPibUseCase) ListKeyNames(
	ctx context.Context,
	identityName ndn.Name,
	isDefault bool,
) ([]ndn.Name, error) {
	args := m.Called(ctx, identityName, isDefault)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ndn.Name), args.Error(1)
}

// DeleteKey mocks the DeleteKey method of PibUseCase.
func (m *MockPibUseCase) DeleteKey(ctx context.Context, keyName ndn.Name) error {
	args := m.Called(ctx, keyName)
	return args.Error(0)
}

// CertificateExists mocks the CertificateExists method of PibUseCase.
func (m *MockPibUseCase) CertificateExists(ctx context.Context, certificateName ndn.Name) (bool, error) {
	args := m.Called(ctx, certificateName)
	return args.Bool(0), args.Error(1)
}

// AddCertificate mocks the AddCertificate method of PibUseCase.
func (m *MockPibUseCase) AddCertificate(ctx context.Context, cert *ndn.Certificate) error {
	args := m.Called(ctx, cert)
	return args.Error(0)
}

// Certificate mocks the Certificate method of PibUseCase.
func (m *MockPibUseCase) Certificate(
	ctx context.Context,
	certificateName ndn.Name,
	allowAny bool,
) (*ndn.Certificate, error) {
	args := m.Called(ctx, certificateName, allowAny)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ndn.Certificate), args.Error(1)
}

// SetDefaultCertificate mocks the SetDefaultCertificate method of PibUseCase.
func (m *MockPibUseCase) SetDefaultCertificate(ctx context.Context, keyName, certificateName ndn.Name) error {
	args := m.Called(ctx, keyName, certificateName)
	return args.Error(0)
}

// DefaultCertificateName mocks the DefaultCertificateName method of PibUseCase.
func (m *MockPibUseCase) DefaultCertificateName(ctx context.Context, keyName ndn.Name) (ndn.Name, error) {
	args := m.Called(ctx, keyName)
	return args.Get(0).(ndn.Name), args.Error(1)
}

// DeleteCertificate mocks the DeleteCertificate method of PibUseCase.
func (m *MockPibUseCase) DeleteCertificate(ctx context.Context, certificateName ndn.Name) error {
	args := m.Called(ctx, certificateName)
	return args.Error(0)
}
