package cryptography

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/MGTheTrain/rsa-sign-vault/internal/domain/cryptoalg"
	"github.com/MGTheTrain/rsa-sign-vault/internal/pkg/logger"
)

// rsaCipher implements cryptoalg.RSACipher as the textbook RSA permutation.
// It holds no key material between calls.
type rsaCipher struct {
	logger logger.Logger
}

// NewRSACipher creates and returns a new textbook RSA cipher.
func NewRSACipher(logger logger.Logger) (cryptoalg.RSACipher, error) {
	return &rsaCipher{
		logger: logger,
	}, nil
}

// Encrypt returns plaintext^e mod n.
// NOTE: no padding is applied, so equal plaintexts give equal ciphertexts
// and ciphertexts can be multiplied into valid ciphertexts of the product.
func (c *rsaCipher) Encrypt(plaintext *big.Int, publicKey *cryptoalg.PublicKey) (*big.Int, error) {
	if publicKey == nil {
		return nil, errors.New("public key cannot be nil")
	}
	if err := checkModulus(publicKey.N); err != nil {
		return nil, fmt.Errorf("failed to encrypt: %w", err)
	}
	if plaintext == nil || plaintext.Sign() < 0 || plaintext.Cmp(publicKey.N) >= 0 {
		return nil, fmt.Errorf("%w: plaintext must be in [0, n) for a %d-bit modulus", cryptoalg.ErrOutOfRange, publicKey.BitLen())
	}

	ciphertext, err := PowerMod(plaintext, publicKey.E, publicKey.N)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt: %w", err)
	}

	c.logger.Debug("RSA encryption succeeded")
	return ciphertext, nil
}

// Decrypt returns ciphertext^d mod n without validating the ciphertext range.
func (c *rsaCipher) Decrypt(ciphertext *big.Int, privateKey *cryptoalg.PrivateKey) (*big.Int, error) {
	if privateKey == nil {
		return nil, errors.New("private key cannot be nil")
	}
	if ciphertext == nil {
		return nil, fmt.Errorf("%w: ciphertext cannot be nil", cryptoalg.ErrOutOfRange)
	}

	plaintext, err := PowerMod(ciphertext, privateKey.D, privateKey.N)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}

	c.logger.Debug("RSA decryption succeeded")
	return plaintext, nil
}
