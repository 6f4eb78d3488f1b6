package cryptoalg

import "errors"

var (
	// ErrNoModularInverse is returned when gcd(a, m) != 1 during a modular inversion.
	ErrNoModularInverse = errors.New("modular inverse does not exist")

	// ErrOutOfRange is returned when a plaintext is not in [0, n).
	ErrOutOfRange = errors.New("plaintext out of range")

	// ErrKeyNotSet is returned when signing or verifying without key material.
	ErrKeyNotSet = errors.New("key not set")

	// ErrPrimalityExhaustion is returned when prime sampling exceeds its attempt budget.
	ErrPrimalityExhaustion = errors.New("prime sampling exhausted its attempt budget")

	// ErrInvalidKeyEncoding is returned for malformed exponent:modulus strings.
	ErrInvalidKeyEncoding = errors.New("invalid key encoding")

	// ErrNegativeExponent is returned by modular exponentiation for exponents below zero.
	ErrNegativeExponent = errors.New("negative exponent")

	// ErrInvalidModulus is returned for moduli below one.
	ErrInvalidModulus = errors.New("modulus must be positive")

	// ErrInvalidKeySize is returned for key sizes that cannot be split into two primes.
	ErrInvalidKeySize = errors.New("invalid key size")
)
