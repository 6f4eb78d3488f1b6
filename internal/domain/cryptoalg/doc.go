// Package cryptoalg defines the core types and interfaces of the textbook RSA engine:
// distinct public and private key types, their exponent:modulus encoding,
// and the contracts for key generation, raw encryption/decryption and hash-then-sign signatures.
package cryptoalg
