package keys

import (
	"context"
	"errors"
	"math/big"

	"github.com/MGTheTrain/rsa-sign-vault/internal/domain/cryptoalg"
)

var (
	// ErrKeyEntryNotFound is returned when no directory entry has the requested ID.
	ErrKeyEntryNotFound = errors.New("key entry not found")

	// ErrVerificationKeyMissing is returned when a verification names neither a directory entry nor a public key.
	ErrVerificationKeyMissing = errors.New("either a key ID or a public key is required")

	// ErrUnsupportedKeySize is returned for key sizes outside the supported set.
	ErrUnsupportedKeySize = errors.New("unsupported key size")
)

// UploadedKeySigner is the signer reported for a valid signature checked against an uploaded public key.
const UploadedKeySigner = "Uploaded Key"

// GeneratedKey is the result of a key generation: the registered entry and the private key
// handed back to the caller. The private key is never persisted.
type GeneratedKey struct {
	Entry      *KeyEntry
	PrivateKey *cryptoalg.PrivateKey
}

// VerificationResult describes the outcome of a signature verification.
// Signer is only set when Valid is true.
type VerificationResult struct {
	Valid   bool
	Message string
	Signer  string
}

// KeyGenerationService defines methods for generating and registering key pairs.
type KeyGenerationService interface {
	// Generate creates a key pair of keySize bits and registers its public key under name and department.
	// It returns the entry and the private key, and any error encountered during generation.
	Generate(ctx context.Context, name, department string, keySize uint32) (*GeneratedKey, error)
}

// KeyDirectoryService defines methods for managing the public key directory.
type KeyDirectoryService interface {
	// Register adds an existing exponent:modulus public key to the directory.
	Register(ctx context.Context, name, department, publicKey string) (*KeyEntry, error)

	// List retrieves directory entries considering a query filter when set.
	List(ctx context.Context, query *KeyEntryQuery) ([]*KeyEntry, error)

	// GetByID retrieves a directory entry by its ID.
	// It returns ErrKeyEntryNotFound when no entry matches.
	GetByID(ctx context.Context, keyID string) (*KeyEntry, error)

	// DeleteByID removes a directory entry by its ID.
	DeleteByID(ctx context.Context, keyID string) error
}

// SignatureService defines methods for signing and verifying documents.
type SignatureService interface {
	// Sign signs data with an exponent:modulus private key and returns the signature.
	Sign(ctx context.Context, data []byte, privateKey string) (*big.Int, error)

	// Verify checks a signature over data against the directory entry keyID. When keyID is empty
	// or unknown it falls back to the exponent:modulus publicKey.
	Verify(ctx context.Context, data []byte, signature *big.Int, keyID, publicKey string) (*VerificationResult, error)

	// Digest returns the hexadecimal digest of data.
	Digest(data []byte) string
}

// KeyEntryRepository defines the interface for KeyEntry-related operations
type KeyEntryRepository interface {
	Create(ctx context.Context, entry *KeyEntry) error
	List(ctx context.Context, query *KeyEntryQuery) ([]*KeyEntry, error)
	GetByID(ctx context.Context, keyID string) (*KeyEntry, error)
	DeleteByID(ctx context.Context, keyID string) error
}
