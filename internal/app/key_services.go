package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MGTheTrain/rsa-sign-vault/internal/domain/cryptoalg"
	"github.com/MGTheTrain/rsa-sign-vault/internal/domain/keys"
	"github.com/MGTheTrain/rsa-sign-vault/internal/pkg/logger"
	"github.com/MGTheTrain/rsa-sign-vault/internal/pkg/validators"
)

// keyGenerationService implements the KeyGenerationService interface
type keyGenerationService struct {
	keyEntryRepo keys.KeyEntryRepository
	generator    cryptoalg.KeyGenerator
	timeout      time.Duration
	logger       logger.Logger
}

// NewKeyGenerationService creates a new keyGenerationService instance.
// A timeout of zero or less leaves the caller's context unbounded.
func NewKeyGenerationService(keyEntryRepo keys.KeyEntryRepository, generator cryptoalg.KeyGenerator, timeout time.Duration, logger logger.Logger) (keys.KeyGenerationService, error) {
	if keyEntryRepo == nil {
		return nil, errors.New("key entry repository cannot be nil")
	}
	if generator == nil {
		return nil, errors.New("key generator cannot be nil")
	}

	return &keyGenerationService{
		keyEntryRepo: keyEntryRepo,
		generator:    generator,
		timeout:      timeout,
		logger:       logger,
	}, nil
}

// Generate creates a key pair and registers its public key in the directory
func (s *keyGenerationService) Generate(ctx context.Context, name, department string, keySize uint32) (*keys.GeneratedKey, error) {
	if !validators.IsSupportedKeySize(keySize) {
		return nil, fmt.Errorf("%w: %d (supported: %v)", keys.ErrUnsupportedKeySize, keySize, validators.SupportedKeySizes)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	keyPair, err := s.generator.GenerateKeyPair(ctx, int(keySize))
	if err != nil {
		return nil, fmt.Errorf("failed to generate key pair: %w", err)
	}

	entry := &keys.KeyEntry{
		ID:              keys.NewKeyEntryID(),
		Name:            name,
		Department:      department,
		PublicKey:       keyPair.Public.String(),
		KeySize:         keySize,
		DateTimeCreated: time.Now(),
	}

	if err := s.keyEntryRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to register public key: %w", err)
	}

	s.logger.Info(fmt.Sprintf("Generated %d-bit key %s for %s", keySize, entry.ID, entry.Signer()))
	return &keys.GeneratedKey{
		Entry:      entry,
		PrivateKey: keyPair.Private,
	}, nil
}

// keyDirectoryService implements the KeyDirectoryService interface
type keyDirectoryService struct {
	keyEntryRepo keys.KeyEntryRepository
	logger       logger.Logger
}

// NewKeyDirectoryService creates a new keyDirectoryService instance
func NewKeyDirectoryService(keyEntryRepo keys.KeyEntryRepository, logger logger.Logger) (keys.KeyDirectoryService, error) {
	if keyEntryRepo == nil {
		return nil, errors.New("key entry repository cannot be nil")
	}

	return &keyDirectoryService{
		keyEntryRepo: keyEntryRepo,
		logger:       logger,
	}, nil
}

// Register adds an existing public key to the directory
func (s *keyDirectoryService) Register(ctx context.Context, name, department, publicKey string) (*keys.KeyEntry, error) {
	key, err := cryptoalg.ParsePublicKey(publicKey)
	if err != nil {
		return nil, err
	}

	entry := &keys.KeyEntry{
		ID:              keys.NewKeyEntryID(),
		Name:            name,
		Department:      department,
		PublicKey:       key.String(),
		KeySize:         uint32(key.BitLen()),
		DateTimeCreated: time.Now(),
	}

	if err := s.keyEntryRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to register public key: %w", err)
	}

	s.logger.Info(fmt.Sprintf("Registered %d-bit key %s for %s", entry.KeySize, entry.ID, entry.Signer()))
	return entry, nil
}

// List retrieves directory entries considering a query filter when set
func (s *keyDirectoryService) List(ctx context.Context, query *keys.KeyEntryQuery) ([]*keys.KeyEntry, error) {
	entries, err := s.keyEntryRepo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list key entries: %w", err)
	}
	return entries, nil
}

// GetByID retrieves a directory entry by its ID
func (s *keyDirectoryService) GetByID(ctx context.Context, keyID string) (*keys.KeyEntry, error) {
	return s.keyEntryRepo.GetByID(ctx, keyID)
}

// DeleteByID removes a directory entry by its ID
func (s *keyDirectoryService) DeleteByID(ctx context.Context, keyID string) error {
	if err := s.keyEntryRepo.DeleteByID(ctx, keyID); err != nil {
		return err
	}

	s.logger.Info("Removed key entry ", keyID)
	return nil
}
