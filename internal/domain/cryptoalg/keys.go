package cryptoalg

import (
	"fmt"
	"log/slog"
	"math/big"
	"strings"
)

// PublicKey is the public half (e, n) of an RSA key pair.
type PublicKey struct {
	E *big.Int
	N *big.Int
}

// PrivateKey is the private half (d, n) of an RSA key pair.
// It never prints its exponent through fmt or slog; use Encode to serialize it.
type PrivateKey struct {
	D *big.Int
	N *big.Int
}

// KeyPair holds both halves of a key produced by a KeyGenerator.
// It is immutable after creation.
type KeyPair struct {
	Public  *PublicKey
	Private *PrivateKey
}

// BitLen returns the bit length of the modulus.
func (k *PublicKey) BitLen() int {
	return k.N.BitLen()
}

// String returns the exponent:modulus encoding of the public key.
func (k *PublicKey) String() string {
	return encodePair(k.E, k.N)
}

// BitLen returns the bit length of the modulus.
func (k *PrivateKey) BitLen() int {
	return k.N.BitLen()
}

// Encode returns the exponent:modulus encoding of the private key.
func (k *PrivateKey) Encode() string {
	return encodePair(k.D, k.N)
}

// Format implements fmt.Formatter and redacts the private exponent.
func (k *PrivateKey) Format(f fmt.State, _ rune) {
	_, _ = fmt.Fprintf(f, "PrivateKey([REDACTED], %d bits)", k.BitLen())
}

// LogValue implements slog.LogValuer and redacts the private exponent.
func (k *PrivateKey) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("d", "[REDACTED]"),
		slog.Int("bits", k.BitLen()),
	)
}

// ParsePublicKey decodes an exponent:modulus string into a PublicKey.
func ParsePublicKey(s string) (*PublicKey, error) {
	e, n, err := decodePair(s)
	if err != nil {
		return nil, err
	}
	return &PublicKey{E: e, N: n}, nil
}

// ParsePrivateKey decodes an exponent:modulus string into a PrivateKey.
func ParsePrivateKey(s string) (*PrivateKey, error) {
	d, n, err := decodePair(s)
	if err != nil {
		return nil, err
	}
	return &PrivateKey{D: d, N: n}, nil
}

func encodePair(exponent, modulus *big.Int) string {
	return exponent.String() + ":" + modulus.String()
}

func decodePair(s string) (*big.Int, *big.Int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return nil, nil, fmt.Errorf("%w: expected exponent:modulus, got %d field(s)", ErrInvalidKeyEncoding, len(parts))
	}

	exponent, ok := new(big.Int).SetString(strings.TrimSpace(parts[0]), 10)
	if !ok {
		return nil, nil, fmt.Errorf("%w: exponent is not a decimal integer", ErrInvalidKeyEncoding)
	}
	modulus, ok := new(big.Int).SetString(strings.TrimSpace(parts[1]), 10)
	if !ok {
		return nil, nil, fmt.Errorf("%w: modulus is not a decimal integer", ErrInvalidKeyEncoding)
	}

	if exponent.Sign() <= 0 {
		return nil, nil, fmt.Errorf("%w: exponent must be positive", ErrInvalidKeyEncoding)
	}
	if modulus.Cmp(big.NewInt(2)) < 0 {
		return nil, nil, fmt.Errorf("%w: modulus must be at least 2", ErrInvalidKeyEncoding)
	}

	return exponent, modulus, nil
}
