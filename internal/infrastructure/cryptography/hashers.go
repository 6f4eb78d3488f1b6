package cryptography

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/MGTheTrain/rsa-sign-vault/internal/domain/cryptoalg"
	"github.com/MGTheTrain/rsa-sign-vault/internal/pkg/config"

	"golang.org/x/crypto/blake2b"
)

type sha256Hash struct{}

// NewSHA256Hash returns the SHA-256 HashFunction.
func NewSHA256Hash() cryptoalg.HashFunction {
	return sha256Hash{}
}

func (sha256Hash) Name() string { return config.HashAlgorithmSHA256 }

func (sha256Hash) HexDigest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func (sha256Hash) DigestToInteger(data []byte) *big.Int {
	sum := sha256.Sum256(data)
	return new(big.Int).SetBytes(sum[:])
}

type blake2bHash struct{}

// NewBLAKE2bHash returns the BLAKE2b-256 HashFunction.
func NewBLAKE2bHash() cryptoalg.HashFunction {
	return blake2bHash{}
}

func (blake2bHash) Name() string { return config.HashAlgorithmBLAKE2b }

func (blake2bHash) HexDigest(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func (blake2bHash) DigestToInteger(data []byte) *big.Int {
	sum := blake2b.Sum256(data)
	return new(big.Int).SetBytes(sum[:])
}

// NewHashFunction returns the HashFunction registered under name.
func NewHashFunction(name string) (cryptoalg.HashFunction, error) {
	switch name {
	case config.HashAlgorithmSHA256:
		return NewSHA256Hash(), nil
	case config.HashAlgorithmBLAKE2b:
		return NewBLAKE2bHash(), nil
	default:
		return nil, fmt.Errorf("unsupported hash algorithm: %s", name)
	}
}
