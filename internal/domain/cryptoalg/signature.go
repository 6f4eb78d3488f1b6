package cryptoalg

import (
	"encoding/base64"
	"fmt"
	"math/big"
	"strings"
)

// FormatSignature returns the decimal form of a signature.
func FormatSignature(signature *big.Int) string {
	return signature.String()
}

// ParseSignature parses a non-negative decimal signature.
func ParseSignature(s string) (*big.Int, error) {
	signature, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok {
		return nil, fmt.Errorf("signature is not a decimal integer")
	}
	if signature.Sign() < 0 {
		return nil, fmt.Errorf("signature must not be negative")
	}
	return signature, nil
}

// EncodeSignatureFile returns the .sig file content for a signature:
// the base64 encoding of its decimal form.
func EncodeSignatureFile(signature *big.Int) []byte {
	decimal := []byte(FormatSignature(signature))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(decimal)))
	base64.StdEncoding.Encode(out, decimal)
	return out
}

// DecodeSignatureFile reverses EncodeSignatureFile.
func DecodeSignatureFile(data []byte) (*big.Int, error) {
	decimal, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to decode signature file: %w", err)
	}
	return ParseSignature(string(decimal))
}
