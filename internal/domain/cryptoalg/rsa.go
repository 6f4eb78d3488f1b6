package cryptoalg

import (
	"context"
	"math/big"
)

// HashFunction reduces arbitrary bytes to a fixed-width digest.
type HashFunction interface {
	// Name returns the algorithm name, e.g. "sha256".
	Name() string

	// HexDigest returns the hexadecimal digest of data for display.
	HexDigest(data []byte) string

	// DigestToInteger returns the same digest interpreted as a non-negative big-endian integer.
	DigestToInteger(data []byte) *big.Int
}

// PrimalityTester decides whether an integer is (probably) prime.
type PrimalityTester interface {
	// IsProbablePrime reports whether n is probably prime.
	// It only returns an error when the random witness source fails.
	IsProbablePrime(n *big.Int) (bool, error)
}

// KeyGenerator samples primes and assembles RSA key pairs.
type KeyGenerator interface {
	// GeneratePrime returns a probable prime of exactly bits bits.
	// It fails with ErrPrimalityExhaustion once its attempt budget is spent
	// and returns ctx.Err() when the context is done between attempts.
	GeneratePrime(ctx context.Context, bits int) (*big.Int, error)

	// GenerateKeyPair builds a key pair whose modulus is the product of two distinct keySize/2-bit primes.
	GenerateKeyPair(ctx context.Context, keySize int) (*KeyPair, error)
}

// RSACipher is the raw RSA trapdoor permutation.
// NOTE: no padding is applied. The permutation is deterministic and malleable
// and must not be used for general confidentiality on its own.
type RSACipher interface {
	// Encrypt returns plaintext^e mod n. It fails with ErrOutOfRange unless 0 <= plaintext < n.
	Encrypt(plaintext *big.Int, publicKey *PublicKey) (*big.Int, error)

	// Decrypt returns ciphertext^d mod n. The ciphertext is not range checked.
	Decrypt(ciphertext *big.Int, privateKey *PrivateKey) (*big.Int, error)
}

// SignatureEngine implements hash-then-sign over the raw RSA permutation.
// NOTE: the digest is reduced modulo n without any encoding scheme (no PKCS#1 v1.5 or PSS).
// When the digest is as wide as the modulus or wider, distinct digests can collide modulo n.
type SignatureEngine interface {
	// GenerateKeys creates a key pair and keeps it as the engine's default key.
	GenerateKeys(ctx context.Context) (*KeyPair, error)

	// Sign returns (H(message) mod n)^d mod n. A nil key selects the engine's key pair.
	Sign(message []byte, privateKey *PrivateKey) (*big.Int, error)

	// Verify reports whether signature^e mod n equals H(message) mod n. A nil key selects the engine's key pair.
	Verify(message []byte, signature *big.Int, publicKey *PublicKey) (bool, error)

	// Digest returns the hexadecimal digest of message.
	Digest(message []byte) string

	// KeyPair returns the engine's key pair or nil when unkeyed.
	KeyPair() *KeyPair
}

// KeyGenStage names an intermediate value reported during key generation.
type KeyGenStage string

// Key generation stages reported to a KeyGenObserver.
const (
	StagePrimeP          KeyGenStage = "p"
	StagePrimeQ          KeyGenStage = "q"
	StageModulus         KeyGenStage = "n"
	StagePublicExponent  KeyGenStage = "e"
	StagePrivateExponent KeyGenStage = "d"
)

// KeyGenEvent carries one intermediate value of a key generation run.
type KeyGenEvent struct {
	Stage KeyGenStage
	Value *big.Int
}

// KeyGenObserver receives key generation diagnostics. It is optional and
// sees private material, so callers must not attach one in production paths.
type KeyGenObserver func(KeyGenEvent)
