//go:build unit
// +build unit

package app

import (
	"context"
	"math/big"

	"github.com/MGTheTrain/rsa-sign-vault/internal/domain/cryptoalg"
	"github.com/MGTheTrain/rsa-sign-vault/internal/domain/keys"

	"github.com/stretchr/testify/mock"
)

// MockKeyEntryRepository is a mock implementation of KeyEntryRepository
type MockKeyEntryRepository struct {
	mock.Mock
}

func (m *MockKeyEntryRepository) Create(ctx context.Context, entry *keys.KeyEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockKeyEntryRepository) List(ctx context.Context, query *keys.KeyEntryQuery) ([]*keys.KeyEntry, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*keys.KeyEntry), args.Error(1)
}

func (m *MockKeyEntryRepository) GetByID(ctx context.Context, keyID string) (*keys.KeyEntry, error) {
	args := m.Called(ctx, keyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*keys.KeyEntry), args.Error(1)
}

func (m *MockKeyEntryRepository) DeleteByID(ctx context.Context, keyID string) error {
	args := m.Called(ctx, keyID)
	return args.Error(0)
}

// MockKeyGenerator is a mock implementation of cryptoalg.KeyGenerator
type MockKeyGenerator struct {
	mock.Mock
}

func (m *MockKeyGenerator) GeneratePrime(ctx context.Context, bits int) (*big.Int, error) {
	args := m.Called(ctx, bits)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (m *MockKeyGenerator) GenerateKeyPair(ctx context.Context, keySize int) (*cryptoalg.KeyPair, error) {
	args := m.Called(ctx, keySize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoalg.KeyPair), args.Error(1)
}
