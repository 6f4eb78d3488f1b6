package app

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/MGTheTrain/rsa-sign-vault/internal/domain/cryptoalg"
	"github.com/MGTheTrain/rsa-sign-vault/internal/domain/keys"
	"github.com/MGTheTrain/rsa-sign-vault/internal/pkg/logger"
)

const (
	validSignatureMessage   = "Signature is valid: the document is unmodified and the signer is authenticated"
	invalidSignatureMessage = "Signature is invalid: the document may have been modified or signed with another key"
)

// signatureService implements the SignatureService interface
type signatureService struct {
	keyEntryRepo keys.KeyEntryRepository
	engine       cryptoalg.SignatureEngine
	logger       logger.Logger
}

// NewSignatureService creates a new signatureService instance
func NewSignatureService(keyEntryRepo keys.KeyEntryRepository, engine cryptoalg.SignatureEngine, logger logger.Logger) (keys.SignatureService, error) {
	if keyEntryRepo == nil {
		return nil, errors.New("key entry repository cannot be nil")
	}
	if engine == nil {
		return nil, errors.New("signature engine cannot be nil")
	}

	return &signatureService{
		keyEntryRepo: keyEntryRepo,
		engine:       engine,
		logger:       logger,
	}, nil
}

// Sign signs data with an exponent:modulus private key
func (s *signatureService) Sign(_ context.Context, data []byte, privateKey string) (*big.Int, error) {
	key, err := cryptoalg.ParsePrivateKey(privateKey)
	if err != nil {
		return nil, err
	}

	return s.engine.Sign(data, key)
}

// Verify checks a signature against a directory entry or an uploaded public key
func (s *signatureService) Verify(ctx context.Context, data []byte, signature *big.Int, keyID, publicKey string) (*keys.VerificationResult, error) {
	key, signer, err := s.resolveVerificationKey(ctx, keyID, publicKey)
	if err != nil {
		return nil, err
	}

	valid, err := s.engine.Verify(data, signature, key)
	if err != nil {
		return nil, err
	}

	if !valid {
		s.logger.Warn("Signature verification failed")
		return &keys.VerificationResult{Valid: false, Message: invalidSignatureMessage}, nil
	}

	s.logger.Info("Signature verified for ", signer)
	return &keys.VerificationResult{Valid: true, Message: validSignatureMessage, Signer: signer}, nil
}

// resolveVerificationKey prefers the directory entry keyID and falls back to the
// uploaded publicKey when the entry does not exist.
func (s *signatureService) resolveVerificationKey(ctx context.Context, keyID, publicKey string) (*cryptoalg.PublicKey, string, error) {
	if keyID != "" {
		entry, err := s.keyEntryRepo.GetByID(ctx, keyID)
		switch {
		case err == nil:
			key, err := cryptoalg.ParsePublicKey(entry.PublicKey)
			if err != nil {
				return nil, "", fmt.Errorf("stored key %s is corrupt: %w", keyID, err)
			}
			return key, entry.Signer(), nil
		case !errors.Is(err, keys.ErrKeyEntryNotFound) || publicKey == "":
			return nil, "", err
		}
	}

	if publicKey == "" {
		return nil, "", keys.ErrVerificationKeyMissing
	}

	key, err := cryptoalg.ParsePublicKey(publicKey)
	if err != nil {
		return nil, "", err
	}
	return key, keys.UploadedKeySigner, nil
}

// Digest returns the hexadecimal digest of data
func (s *signatureService) Digest(data []byte) string {
	return s.engine.Digest(data)
}
