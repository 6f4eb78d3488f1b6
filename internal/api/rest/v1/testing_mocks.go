//go:build unit
// +build unit

package v1

import (
	"context"
	"math/big"

	"github.com/MGTheTrain/rsa-sign-vault/internal/domain/keys"

	"github.com/stretchr/testify/mock"
)

// MockKeyGenerationService is a mock implementation of KeyGenerationService
type MockKeyGenerationService struct {
	mock.Mock
}

func (m *MockKeyGenerationService) Generate(ctx context.Context, name, department string, keySize uint32) (*keys.GeneratedKey, error) {
	args := m.Called(ctx, name, department, keySize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*keys.GeneratedKey), args.Error(1)
}

// MockKeyDirectoryService is a mock implementation of KeyDirectoryService
type MockKeyDirectoryService struct {
	mock.Mock
}

func (m *MockKeyDirectoryService) Register(ctx context.Context, name, department, publicKey string) (*keys.KeyEntry, error) {
	args := m.Called(ctx, name, department, publicKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*keys.KeyEntry), args.Error(1)
}

func (m *MockKeyDirectoryService) List(ctx context.Context, query *keys.KeyEntryQuery) ([]*keys.KeyEntry, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*keys.KeyEntry), args.Error(1)
}

func (m *MockKeyDirectoryService) GetByID(ctx context.Context, keyID string) (*keys.KeyEntry, error) {
	args := m.Called(ctx, keyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*keys.KeyEntry), args.Error(1)
}

func (m *MockKeyDirectoryService) DeleteByID(ctx context.Context, keyID string) error {
	args := m.Called(ctx, keyID)
	return args.Error(0)
}

// MockSignatureService is a mock implementation of SignatureService
type MockSignatureService struct {
	mock.Mock
}

func (m *MockSignatureService) Sign(ctx context.Context, data []byte, privateKey string) (*big.Int, error) {
	args := m.Called(ctx, data, privateKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (m *MockSignatureService) Verify(ctx context.Context, data []byte, signature *big.Int, keyID, publicKey string) (*keys.VerificationResult, error) {
	args := m.Called(ctx, data, signature, keyID, publicKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*keys.VerificationResult), args.Error(1)
}

func (m *MockSignatureService) Digest(data []byte) string {
	args := m.Called(data)
	return args.String(0)
}
