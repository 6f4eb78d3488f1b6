package cryptography

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/MGTheTrain/rsa-sign-vault/internal/domain/cryptoalg"
	"github.com/MGTheTrain/rsa-sign-vault/internal/pkg/logger"
)

// signatureEngine implements cryptoalg.SignatureEngine.
// It is Unkeyed until GenerateKeys succeeds; explicit keys passed to Sign and Verify
// work in either state.
type signatureEngine struct {
	mu      sync.RWMutex
	keyPair *cryptoalg.KeyPair

	keySize   int
	generator cryptoalg.KeyGenerator
	cipher    cryptoalg.RSACipher
	hash      cryptoalg.HashFunction
	logger    logger.Logger
}

// NewSignatureEngine creates an unkeyed signature engine generating keySize-bit keys.
func NewSignatureEngine(generator cryptoalg.KeyGenerator, cipher cryptoalg.RSACipher, hash cryptoalg.HashFunction, keySize int, logger logger.Logger) (cryptoalg.SignatureEngine, error) {
	if cipher == nil {
		return nil, errors.New("cipher cannot be nil")
	}
	if hash == nil {
		return nil, errors.New("hash function cannot be nil")
	}

	return &signatureEngine{
		keySize:   keySize,
		generator: generator,
		cipher:    cipher,
		hash:      hash,
		logger:    logger,
	}, nil
}

// GenerateKeys creates a key pair and makes it the engine's default key.
func (s *signatureEngine) GenerateKeys(ctx context.Context) (*cryptoalg.KeyPair, error) {
	if s.generator == nil {
		return nil, errors.New("signature engine has no key generator")
	}

	keyPair, err := s.generator.GenerateKeyPair(ctx, s.keySize)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.keyPair = keyPair
	s.mu.Unlock()

	return keyPair, nil
}

// KeyPair returns the engine's key pair or nil when unkeyed.
func (s *signatureEngine) KeyPair() *cryptoalg.KeyPair {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.keyPair
}

// Sign returns (H(message) mod n)^d mod n.
// NOTE: the digest is reduced modulo n as is, without PKCS#1 or PSS encoding.
func (s *signatureEngine) Sign(message []byte, privateKey *cryptoalg.PrivateKey) (*big.Int, error) {
	if privateKey == nil {
		if keyPair := s.KeyPair(); keyPair != nil {
			privateKey = keyPair.Private
		}
	}
	if privateKey == nil {
		return nil, fmt.Errorf("cannot sign: %w", cryptoalg.ErrKeyNotSet)
	}

	digest, err := s.reducedDigest(message, privateKey.N)
	if err != nil {
		return nil, fmt.Errorf("failed to sign message: %w", err)
	}
	signature, err := s.cipher.Decrypt(digest, privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign message: %w", err)
	}

	s.logger.Info(fmt.Sprintf("Created %s/RSA signature with %d-bit key", s.hash.Name(), privateKey.BitLen()))
	return signature, nil
}

// Verify reports whether signature^e mod n equals H(message) mod n.
// Signatures outside [0, n) are reported as invalid.
func (s *signatureEngine) Verify(message []byte, signature *big.Int, publicKey *cryptoalg.PublicKey) (bool, error) {
	if publicKey == nil {
		if keyPair := s.KeyPair(); keyPair != nil {
			publicKey = keyPair.Public
		}
	}
	if publicKey == nil {
		return false, fmt.Errorf("cannot verify: %w", cryptoalg.ErrKeyNotSet)
	}

	recovered, err := s.cipher.Encrypt(signature, publicKey)
	if errors.Is(err, cryptoalg.ErrOutOfRange) {
		s.logger.Warn("Signature out of range for modulus")
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to verify signature: %w", err)
	}

	digest, err := s.reducedDigest(message, publicKey.N)
	if err != nil {
		return false, fmt.Errorf("failed to verify signature: %w", err)
	}
	valid := digest.Cmp(recovered) == 0
	s.logger.Info(fmt.Sprintf("Verified %s/RSA signature: valid=%t", s.hash.Name(), valid))
	return valid, nil
}

// Digest returns the hexadecimal digest of message.
func (s *signatureEngine) Digest(message []byte) string {
	return s.hash.HexDigest(message)
}

func (s *signatureEngine) reducedDigest(message []byte, modulus *big.Int) (*big.Int, error) {
	if err := checkModulus(modulus); err != nil {
		return nil, err
	}
	h := s.hash.DigestToInteger(message)
	return h.Mod(h, modulus), nil
}
