package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Hash algorithm constants
const (
	HashAlgorithmSHA256  = "sha256"
	HashAlgorithmBLAKE2b = "blake2b"
)

// CryptoSettings holds the parameters of key generation and signing
type CryptoSettings struct {
	DefaultKeySize    uint32        `mapstructure:"default_key_size" validate:"required,oneof=512 1024 2048"`
	MillerRabinRounds int           `mapstructure:"miller_rabin_rounds" validate:"required,min=1,max=64"`
	MaxPrimeAttempts  int           `mapstructure:"max_prime_attempts" validate:"min=0"`
	HashAlgorithm     string        `mapstructure:"hash_algorithm" validate:"required,oneof=sha256 blake2b"`
	KeyGenTimeout     time.Duration `mapstructure:"key_gen_timeout" validate:"required,gt=0"`
}

// Validate checks that all fields in CryptoSettings are valid
func (s *CryptoSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for CryptoSettings: %w", err)
	}

	return nil
}
